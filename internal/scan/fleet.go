package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/chainstat/walletstat/internal/domain"
)

// FleetReport aggregates one scan pass over a set of wallets.
type FleetReport struct {
	RunID          uuid.UUID        `json:"runId"`
	Analyses       []WalletAnalysis `json:"analyses"`
	TotalUSDValue  uint64           `json:"totalUsdValue"`
	MeanUSDValue   decimal.Decimal  `json:"meanUsdValue"`
	MedianUSDValue decimal.Decimal  `json:"medianUsdValue"`
	Duration       time.Duration    `json:"duration"`
}

// AnalyzeFleet scans every address with bounded concurrency, honoring the
// configured rate limit, and aggregates the per-wallet summaries. Any wallet
// failure aborts the whole pass.
func (s *Service) AnalyzeFleet(ctx context.Context, addrs []domain.Address) (FleetReport, error) {
	start := time.Now()

	analyses := make([]WalletAnalysis, len(addrs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, addr := range addrs {
		g.Go(func() error {
			if s.limiter != nil {
				if err := s.limiter.Wait(gctx); err != nil {
					return err
				}
			}
			analysis, err := s.AnalyzeWallet(gctx, addr)
			if err != nil {
				return fmt.Errorf("analyzing %s: %w", addr.Short(), err)
			}
			analyses[i] = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return FleetReport{}, err
	}

	values := lo.Map(analyses, func(a WalletAnalysis, _ int) decimal.Decimal {
		return decimal.NewFromUint64(a.Summary.TotalUSDValue)
	})

	return FleetReport{
		RunID:    uuid.New(),
		Analyses: analyses,
		TotalUSDValue: lo.SumBy(analyses, func(a WalletAnalysis) uint64 {
			return a.Summary.TotalUSDValue
		}),
		MeanUSDValue:   Mean(values),
		MedianUSDValue: Median(values),
		Duration:       time.Since(start),
	}, nil
}
