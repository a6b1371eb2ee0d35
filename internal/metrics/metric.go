package metrics

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/chainstat/walletstat/internal/domain"
)

// MetricMeta holds the canonical name and unit for a metric.
type MetricMeta struct {
	Name string
	Unit string
}

// metricRegistry maps metric IDs to their canonical metadata.
// All calculators MUST use NewMetric() to construct metrics from this registry.
var metricRegistry = map[int]MetricMeta{
	1: {Name: "Total USD Value", Unit: "cents"},
	2: {Name: "Token Count", Unit: "tokens"},
	3: {Name: "NFT Count", Unit: "nfts"},
	4: {Name: "Lifetime Transactions", Unit: "transactions"},
	5: {Name: "Portfolio Diversity", Unit: "score"},
	6: {Name: "Risk Score", Unit: "score"},
	7: {Name: "Best Performing Token", Unit: "symbol"},
	8: {Name: "Worst Performing Token", Unit: "symbol"},
}

// Metric represents one computed portfolio metric. Numeric metrics carry
// Value; the performer metrics carry their symbol in Label.
type Metric struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Value uint64 `json:"value"`
	Label string `json:"label,omitempty"`
	Unit  string `json:"unit"`
}

// NewMetric creates a metric using the canonical metadata from the registry.
func NewMetric(id int, value uint64, label string) Metric {
	meta := metricRegistry[id]
	return Metric{ID: id, Name: meta.Name, Value: value, Label: label, Unit: meta.Unit}
}

// Calculator computes one or more metrics from a ledger snapshot and
// previously computed metrics.
type Calculator interface {
	IDs() []int
	Dependencies() []int
	Calculate(state domain.LedgerState, deps map[int]Metric) ([]Metric, error)
}

// Registry manages the execution of calculators in dependency order.
type Registry struct {
	calculators   []Calculator
	registeredIDs map[int]bool
}

// NewRegistry creates a new metric registry.
func NewRegistry() *Registry {
	return &Registry{registeredIDs: make(map[int]bool)}
}

// Register adds a calculator to the registry.
// Panics if any metric ID is already registered (programming error).
func (r *Registry) Register(calc Calculator) {
	for _, id := range calc.IDs() {
		if r.registeredIDs[id] {
			panic(fmt.Sprintf("duplicate metric ID %d registered", id))
		}
		r.registeredIDs[id] = true
	}
	r.calculators = append(r.calculators, calc)
}

// CalculateAll runs all registered calculators in dependency order.
func (r *Registry) CalculateAll(state domain.LedgerState) ([]Metric, error) {
	ordered, err := r.topologicalSort()
	if err != nil {
		return nil, fmt.Errorf("sorting calculators: %w", err)
	}

	computed := make(map[int]Metric)
	var all []Metric

	for _, calc := range ordered {
		for _, dep := range calc.Dependencies() {
			if _, ok := computed[dep]; !ok {
				return nil, fmt.Errorf("metrics %v depend on metric %d which is not yet computed", calc.IDs(), dep)
			}
		}

		results, err := calc.Calculate(state, computed)
		if err != nil {
			return nil, fmt.Errorf("calculating metrics %v: %w", calc.IDs(), err)
		}

		for _, m := range results {
			computed[m.ID] = m
			all = append(all, m)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})

	return all, nil
}

// topologicalSort orders calculators so dependencies come first.
// Returns an error if a dependency cycle is detected.
func (r *Registry) topologicalSort() ([]Calculator, error) {
	calcByID := make(map[int]Calculator)
	for _, calc := range r.calculators {
		for _, id := range calc.IDs() {
			calcByID[id] = calc
		}
	}

	visited := make(map[Calculator]bool)
	inProgress := make(map[Calculator]bool)
	var ordered []Calculator

	var visit func(calc Calculator) error
	visit = func(calc Calculator) error {
		if visited[calc] {
			return nil
		}
		if inProgress[calc] {
			return fmt.Errorf("dependency cycle detected involving metrics %v", calc.IDs())
		}
		inProgress[calc] = true

		for _, dep := range calc.Dependencies() {
			if depCalc, ok := calcByID[dep]; ok {
				if err := visit(depCalc); err != nil {
					return err
				}
			}
		}

		delete(inProgress, calc)
		visited[calc] = true
		ordered = append(ordered, calc)
		return nil
	}

	for _, calc := range r.calculators {
		if err := visit(calc); err != nil {
			return nil, err
		}
	}

	return lo.Uniq(ordered), nil
}
