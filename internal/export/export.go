package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/chainstat/walletstat/internal/domain"
	"github.com/chainstat/walletstat/internal/oracle"
	"github.com/chainstat/walletstat/internal/scan"
	"github.com/chainstat/walletstat/internal/snapshot"
)

// historyLimit caps how many snapshots a per-wallet timeline carries.
const historyLimit = 30

// Row is one wallet line in the report, taken from its latest snapshot.
type Row struct {
	Address   string
	TakenAt   time.Time
	USDCents  uint64
	TotalUSD  string
	Tokens    int
	NFTs      int
	Best      string
	Worst     string
	Diversity uint64
	Risk      uint64
	History   []HistoryPoint
}

// HistoryPoint is one historical snapshot of a wallet, newest first.
type HistoryPoint struct {
	TakenAt  time.Time
	USDCents uint64
	Tokens   int
	NFTs     int
}

// Report is a point-in-time export of every tracked wallet.
type Report struct {
	GeneratedAt time.Time
	Rows        []Row
	WalletCount int
	TotalUSD    string
	MeanUSD     string
	MedianUSD   string
}

// Writer renders a report to a destination.
type Writer interface {
	Write(ctx context.Context, report Report) error
}

// Service builds wallet reports from stored snapshots and hands them to writers.
type Service struct {
	snapshots snapshot.Repository
	writers   []Writer
}

// NewService creates a new export Service.
func NewService(snapshots snapshot.Repository, writers ...Writer) *Service {
	return &Service{snapshots: snapshots, writers: writers}
}

// Export builds the current report and writes it to every configured writer.
func (s *Service) Export(ctx context.Context) error {
	report, err := s.BuildReport(ctx)
	if err != nil {
		return err
	}
	for _, w := range s.writers {
		if err := w.Write(ctx, report); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// BuildReport assembles one row per known wallet from its latest snapshot.
// Wallets whose stored summary cannot be read keep their scalar columns.
func (s *Service) BuildReport(ctx context.Context) (Report, error) {
	addrs, err := s.snapshots.Addresses(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("listing wallets: %w", err)
	}

	rows := make([]Row, 0, len(addrs))
	for _, addr := range addrs {
		latest, err := s.snapshots.Latest(ctx, addr)
		if err != nil {
			slog.Warn("skipping wallet without readable snapshot", "wallet", addr, "error", err)
			continue
		}

		row := Row{
			Address:  addr,
			TakenAt:  latest.TakenAt,
			USDCents: latest.TotalUSDValue,
			TotalUSD: oracle.FormatUSDCents(latest.TotalUSDValue),
			Tokens:   latest.TokenCount,
			NFTs:     latest.NFTCount,
		}

		var summary domain.PortfolioSummary
		if err := json.Unmarshal(latest.Summary, &summary); err != nil {
			slog.Warn("stored summary not parseable", "wallet", addr, "error", err)
		} else {
			row.Best = summary.BestPerformingToken
			row.Worst = summary.WorstPerformingToken
			row.Diversity = summary.PortfolioDiversityScore
			row.Risk = summary.RiskScore
		}

		history, err := s.snapshots.History(ctx, addr, historyLimit)
		if err != nil {
			slog.Warn("wallet history unavailable", "wallet", addr, "error", err)
		}
		for _, h := range history {
			row.History = append(row.History, HistoryPoint{
				TakenAt:  h.TakenAt,
				USDCents: h.TotalUSDValue,
				Tokens:   h.TokenCount,
				NFTs:     h.NFTCount,
			})
		}

		rows = append(rows, row)
	}

	values := lo.Map(rows, func(r Row, _ int) decimal.Decimal {
		return decimal.NewFromUint64(r.USDCents)
	})
	totalCents := lo.SumBy(rows, func(r Row) uint64 { return r.USDCents })

	return Report{
		GeneratedAt: time.Now(),
		Rows:        rows,
		WalletCount: len(rows),
		TotalUSD:    oracle.FormatUSDCents(totalCents),
		MeanUSD:     scan.Mean(values).Shift(-2).StringFixed(2),
		MedianUSD:   scan.Median(values).Shift(-2).StringFixed(2),
	}, nil
}
