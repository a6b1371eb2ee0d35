package metrics

import (
	"github.com/chainstat/walletstat/internal/domain"
)

// HoldingsCalculator reads the passthrough metrics (M1, M2, M3, M4)
// straight off the ledger snapshot.
type HoldingsCalculator struct{}

func (c *HoldingsCalculator) IDs() []int          { return []int{1, 2, 3, 4} }
func (c *HoldingsCalculator) Dependencies() []int { return nil }

func (c *HoldingsCalculator) Calculate(state domain.LedgerState, _ map[int]Metric) ([]Metric, error) {
	return []Metric{
		NewMetric(1, state.TotalBalance, ""),
		NewMetric(2, uint64(state.TokenCount), ""),
		NewMetric(3, uint64(state.NFTCount), ""),
		NewMetric(4, state.TransactionCount, ""),
	}, nil
}
