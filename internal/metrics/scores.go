package metrics

import (
	"github.com/chainstat/walletstat/internal/domain"
)

// ScoreCalculator computes the step-function scores (M5 diversity, M6 risk)
// from the token count.
type ScoreCalculator struct{}

func (c *ScoreCalculator) IDs() []int          { return []int{5, 6} }
func (c *ScoreCalculator) Dependencies() []int { return []int{2} }

func (c *ScoreCalculator) Calculate(_ domain.LedgerState, deps map[int]Metric) ([]Metric, error) {
	count := deps[2].Value

	return []Metric{
		NewMetric(5, diversityScore(count), ""),
		NewMetric(6, riskScore(count), ""),
	}, nil
}

// diversityScore maps the token count onto a 100..1000 scale.
func diversityScore(tokenCount uint64) uint64 {
	switch {
	case tokenCount <= 1:
		return 100
	case tokenCount >= 10:
		return 1000
	default:
		return tokenCount * 100
	}
}

// riskScore scores concentration risk. Holding more than five tokens drops
// the score to a flat 400; an empty portfolio is maximally risky. Between
// one and five tokens the score falls by 50 per additional token, so the
// scale is discontinuous at the five-to-six boundary (500 vs 400).
func riskScore(tokenCount uint64) uint64 {
	switch {
	case tokenCount > 5:
		return 400
	case tokenCount == 0:
		return 1000
	default:
		return 500 + (5-tokenCount)*50
	}
}
