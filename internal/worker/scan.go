package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/chainstat/walletstat/internal/domain"
	"github.com/chainstat/walletstat/internal/scan"
)

// FleetAnalyzer runs one analysis pass over a set of wallets.
type FleetAnalyzer interface {
	AnalyzeFleet(ctx context.Context, addrs []domain.Address) (scan.FleetReport, error)
}

// ScanWorker periodically re-analyzes a fixed set of wallets.
type ScanWorker struct {
	analyzer FleetAnalyzer
	addrs    []domain.Address
	interval time.Duration
}

// NewScanWorker creates a new ScanWorker.
func NewScanWorker(analyzer FleetAnalyzer, addrs []domain.Address, interval time.Duration) *ScanWorker {
	return &ScanWorker{
		analyzer: analyzer,
		addrs:    addrs,
		interval: interval,
	}
}

// Run starts the scan worker loop. It blocks until the context is cancelled.
func (w *ScanWorker) Run(ctx context.Context) {
	if len(w.addrs) == 0 {
		slog.Info("ScanWorker: no addresses configured, not starting")
		return
	}
	slog.Info("ScanWorker: starting", "wallets", len(w.addrs), "interval", w.interval)

	// Scan immediately on startup
	w.scanOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ScanWorker: shutting down")
			return
		case <-ticker.C:
			w.scanOnce(ctx)
		}
	}
}

func (w *ScanWorker) scanOnce(ctx context.Context) {
	report, err := w.analyzer.AnalyzeFleet(ctx, w.addrs)
	if err != nil {
		slog.Error("ScanWorker: fleet scan failed", "error", err)
		return
	}
	slog.Info("ScanWorker: fleet scan completed",
		"wallets", len(report.Analyses),
		"totalUsdCents", report.TotalUSDValue,
		"duration", report.Duration,
	)
}
