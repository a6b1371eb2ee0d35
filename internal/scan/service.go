package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/chainstat/walletstat/internal/domain"
	"github.com/chainstat/walletstat/internal/event"
	"github.com/chainstat/walletstat/internal/ledger"
	"github.com/chainstat/walletstat/internal/metrics"
	"github.com/chainstat/walletstat/internal/snapshot"
)

// FactSource derives raw holdings for a wallet address.
type FactSource interface {
	Facts(addr domain.Address) domain.WalletFacts
}

// QuoteSource resolves a token symbol to a USD price in cents.
type QuoteSource interface {
	PriceCents(ctx context.Context, symbol string) (uint64, error)
}

// Counter records lifetime analysis activity.
type Counter interface {
	RecordWalletAnalyzed() uint64
	RecordTokensIngested(n uint64)
}

// SnapshotStore persists finished analyses.
type SnapshotStore interface {
	Save(ctx context.Context, snap snapshot.Snapshot) error
}

// Options tunes fleet scanning.
type Options struct {
	Concurrency int        // parallel wallet scans, default 4
	RateLimit   rate.Limit // wallet scans per second across the fleet, 0 disables
}

// Service orchestrates the full wallet analysis pipeline.
type Service struct {
	facts       FactSource
	quotes      QuoteSource
	counter     Counter
	sink        event.Sink
	store       SnapshotStore
	engine      *metrics.Engine
	concurrency int
	limiter     *rate.Limiter
}

// NewService creates a scan service. facts and counter are required; quotes,
// sink, and store may be nil (catalog prices, no events, no persistence).
func NewService(facts FactSource, quotes QuoteSource, counter Counter, sink event.Sink, store SnapshotStore, opts Options) *Service {
	if facts == nil {
		panic("scan.NewService: facts is nil")
	}
	if counter == nil {
		panic("scan.NewService: counter is nil")
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(opts.RateLimit, 1)
	}

	return &Service{
		facts:       facts,
		quotes:      quotes,
		counter:     counter,
		sink:        sink,
		store:       store,
		engine:      metrics.NewEngine(),
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// WalletAnalysis is the result of one full wallet scan.
type WalletAnalysis struct {
	RunID         uuid.UUID               `json:"runId"`
	Address       string                  `json:"address"`
	NativeBalance uint64                  `json:"nativeBalance"`
	Summary       domain.PortfolioSummary `json:"summary"`
	State         domain.LedgerState      `json:"state"`
	Warnings      []string                `json:"warnings,omitempty"`
	Duration      time.Duration           `json:"duration"`
}

// AnalyzeWallet derives facts for one address, feeds them through a fresh
// ledger, and summarizes the result. Token-level failures degrade to
// warnings; only structural failures abort the analysis.
func (s *Service) AnalyzeWallet(ctx context.Context, addr domain.Address) (WalletAnalysis, error) {
	select {
	case <-ctx.Done():
		return WalletAnalysis{}, ctx.Err()
	default:
	}

	start := time.Now()
	runID := uuid.New()
	owner := addr.String()

	led, facts, warnings, ingested := s.replayLedger(ctx, addr, start)
	s.counter.RecordTokensIngested(ingested)

	if err := led.RecomputePercentages(); err != nil {
		return WalletAnalysis{}, fmt.Errorf("recomputing percentages for %s: %w", addr.Short(), err)
	}

	state := led.Snapshot()
	summary, err := s.engine.Summarize(state)
	if err != nil {
		return WalletAnalysis{}, fmt.Errorf("summarizing %s: %w", addr.Short(), err)
	}

	s.counter.RecordWalletAnalyzed()

	if s.store != nil {
		if err := s.saveSnapshot(ctx, runID, owner, summary); err != nil {
			w := fmt.Sprintf("failed to persist analysis for %s: %v", addr.Short(), err)
			slog.Warn(w)
			warnings = append(warnings, w)
		}
	}

	return WalletAnalysis{
		RunID:         runID,
		Address:       owner,
		NativeBalance: facts.NativeBalance,
		Summary:       summary,
		State:         state,
		Warnings:      warnings,
		Duration:      time.Since(start),
	}, nil
}

// ClearWallet rebuilds the wallet's ledger and applies an owner clear with
// the given identity. The post-clear state keeps the token table, matching
// the ledger's clear contract, and is persisted so history records the reset.
func (s *Service) ClearWallet(ctx context.Context, addr domain.Address, identity string) (domain.LedgerState, error) {
	select {
	case <-ctx.Done():
		return domain.LedgerState{}, ctx.Err()
	default:
	}

	led, _, _, _ := s.replayLedger(ctx, addr, time.Now())
	if err := led.RecomputePercentages(); err != nil {
		return domain.LedgerState{}, fmt.Errorf("recomputing percentages for %s: %w", addr.Short(), err)
	}
	if err := led.Clear(identity); err != nil {
		return domain.LedgerState{}, fmt.Errorf("clearing %s: %w", addr.Short(), err)
	}

	state := led.Snapshot()
	summary, err := s.engine.Summarize(state)
	if err != nil {
		return domain.LedgerState{}, fmt.Errorf("summarizing %s: %w", addr.Short(), err)
	}

	if s.store != nil {
		if err := s.saveSnapshot(ctx, uuid.New(), addr.String(), summary); err != nil {
			slog.Warn("failed to persist cleared state", "wallet", addr.Short(), "error", err)
		}
	}
	return state, nil
}

// replayLedger feeds the wallet's derived holdings through a fresh ledger.
// Token-level quote and ingestion failures are returned as warnings.
func (s *Service) replayLedger(ctx context.Context, addr domain.Address, at time.Time) (*ledger.Ledger, domain.WalletFacts, []string, uint64) {
	facts := s.facts.Facts(addr)
	led := ledger.New(addr.String(), at, s.sink)

	var warnings []string
	var ingested uint64
	for _, fact := range facts.Tokens {
		price := fact.USDPriceCents
		if s.quotes != nil {
			quoted, err := s.quotes.PriceCents(ctx, fact.Symbol)
			if err != nil {
				w := fmt.Sprintf("quote for %s unavailable, using catalog price: %v", fact.Symbol, err)
				slog.Warn(w)
				warnings = append(warnings, w)
			} else {
				price = quoted
			}
		}

		if err := led.AddToken(fact.Symbol, fact.CoinType, fact.RawBalance, fact.Decimals, price); err != nil {
			w := fmt.Sprintf("failed to ingest %s on %s: %v", fact.Symbol, addr.Short(), err)
			slog.Warn(w)
			warnings = append(warnings, w)
			continue
		}
		ingested++
	}

	for i, nft := range syntheticNFTs(addr, facts.NFTCount) {
		led.AddNFT(nft.ObjectID, nft.Name, nft.Description, nft.ImageURL, nft.Collection, nft.Creator)
		for _, tr := range syntheticTraits(addr, i) {
			led.AddTrait(i, tr.TraitType, tr.Value, tr.RarityScore)
		}
	}

	for _, rec := range syntheticTransactions(addr, facts) {
		led.AddTransaction(rec)
	}

	return led, facts, warnings, ingested
}

func (s *Service) saveSnapshot(ctx context.Context, runID uuid.UUID, address string, summary domain.PortfolioSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	return s.store.Save(ctx, snapshot.Snapshot{
		ID:            runID,
		Address:       address,
		TakenAt:       time.Now(),
		TotalUSDValue: summary.TotalUSDValue,
		TokenCount:    summary.TotalTokens,
		NFTCount:      summary.TotalNFTs,
		Summary:       payload,
	})
}
