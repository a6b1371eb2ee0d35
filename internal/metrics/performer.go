package metrics

import (
	"github.com/samber/lo"

	"github.com/chainstat/walletstat/internal/domain"
)

// PerformerCalculator scans the token table for the highest- and
// lowest-valued holdings (M7, M8). Ties resolve to the earliest insert;
// an empty table yields empty symbols.
type PerformerCalculator struct{}

func (c *PerformerCalculator) IDs() []int          { return []int{7, 8} }
func (c *PerformerCalculator) Dependencies() []int { return nil }

func (c *PerformerCalculator) Calculate(state domain.LedgerState, _ map[int]Metric) ([]Metric, error) {
	best := lo.MaxBy(state.Tokens, func(a, b domain.TokenHolding) bool {
		return a.USDValue > b.USDValue
	})
	worst := lo.MinBy(state.Tokens, func(a, b domain.TokenHolding) bool {
		return a.USDValue < b.USDValue
	})

	return []Metric{
		NewMetric(7, best.USDValue, best.Symbol),
		NewMetric(8, worst.USDValue, worst.Symbol),
	}, nil
}
