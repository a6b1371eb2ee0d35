package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chainstat/walletstat/internal/derive"
)

func TestCatalogSourceKnownSymbol(t *testing.T) {
	src := NewCatalogSource(derive.DefaultCatalog())

	cents, err := src.PriceCents(context.Background(), "USDC")
	if err != nil {
		t.Fatalf("PriceCents(USDC) error: %v", err)
	}
	if cents != 100 {
		t.Errorf("PriceCents(USDC) = %d, want 100", cents)
	}
}

func TestCatalogSourceUnknownSymbol(t *testing.T) {
	src := NewCatalogSource(derive.DefaultCatalog())

	_, err := src.PriceCents(context.Background(), "DOGE")
	if !errors.Is(err, ErrNoQuote) {
		t.Errorf("PriceCents(DOGE) error = %v, want ErrNoQuote", err)
	}
}

func TestCacheHitAndMiss(t *testing.T) {
	c := newQuoteCache()
	c.set("USDC", 100)

	got, ok := c.get("USDC")
	if !ok {
		t.Fatal("expected cache hit, got miss")
	}
	if got != 100 {
		t.Errorf("cached price = %d, want 100", got)
	}

	_, ok = c.get("MISSING")
	if ok {
		t.Error("expected cache miss for missing symbol")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := newQuoteCache()
	c.set("WETH", 250_000)

	// Manually expire the entry
	c.mu.Lock()
	entry := c.entries["WETH"]
	entry.expiresAt = time.Now().Add(-1 * time.Second)
	c.entries["WETH"] = entry
	c.mu.Unlock()

	_, ok := c.get("WETH")
	if ok {
		t.Error("expected cache miss for expired entry")
	}
}

type countingSource struct {
	calls int
	cents uint64
	err   error
}

func (s *countingSource) PriceCents(_ context.Context, _ string) (uint64, error) {
	s.calls++
	return s.cents, s.err
}

func TestCachedSourceCallsNextOnce(t *testing.T) {
	next := &countingSource{cents: 15}
	src := NewCachedSource(next)

	for i := 0; i < 3; i++ {
		cents, err := src.PriceCents(context.Background(), "CETUS")
		if err != nil {
			t.Fatalf("PriceCents error: %v", err)
		}
		if cents != 15 {
			t.Errorf("PriceCents = %d, want 15", cents)
		}
	}
	if next.calls != 1 {
		t.Errorf("next source called %d times, want 1", next.calls)
	}
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	next := &countingSource{err: ErrNoQuote}
	src := NewCachedSource(next)

	for i := 0; i < 2; i++ {
		if _, err := src.PriceCents(context.Background(), "DOGE"); !errors.Is(err, ErrNoQuote) {
			t.Fatalf("PriceCents error = %v, want ErrNoQuote", err)
		}
	}
	if next.calls != 2 {
		t.Errorf("next source called %d times, want 2 (errors are not cached)", next.calls)
	}
}

func TestFormatUSDCents(t *testing.T) {
	tests := []struct {
		cents uint64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{123456, "1234.56"},
		{250_000, "2500.00"},
	}
	for _, tt := range tests {
		if got := FormatUSDCents(tt.cents); got != tt.want {
			t.Errorf("FormatUSDCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
