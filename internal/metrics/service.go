package metrics

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/chainstat/walletstat/internal/domain"
)

// Engine wraps a fully populated metric registry and assembles portfolio
// summaries. Pure: every call recomputes from the snapshot it is given,
// nothing is cached.
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine with the default calculator set registered.
func NewEngine() *Engine {
	r := NewRegistry()
	r.Register(&ScoreCalculator{})
	r.Register(&PerformerCalculator{})
	r.Register(&HoldingsCalculator{})
	return &Engine{registry: r}
}

// Metrics computes the full metric set for a ledger snapshot, ordered by ID.
func (e *Engine) Metrics(state domain.LedgerState) ([]Metric, error) {
	return e.registry.CalculateAll(state)
}

// Summarize computes all metrics and folds them into a PortfolioSummary.
func (e *Engine) Summarize(state domain.LedgerState) (domain.PortfolioSummary, error) {
	all, err := e.registry.CalculateAll(state)
	if err != nil {
		return domain.PortfolioSummary{}, fmt.Errorf("computing metrics for %s: %w", state.Owner, err)
	}

	byID := lo.KeyBy(all, func(m Metric) int { return m.ID })

	return domain.PortfolioSummary{
		TotalUSDValue:           byID[1].Value,
		TotalTokens:             int(byID[2].Value),
		TotalNFTs:               int(byID[3].Value),
		BestPerformingToken:     byID[7].Label,
		WorstPerformingToken:    byID[8].Label,
		PortfolioDiversityScore: byID[5].Value,
		RiskScore:               byID[6].Value,
	}, nil
}
