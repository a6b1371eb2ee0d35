package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chainstat/walletstat/internal/derive"
)

// ErrNoQuote indicates that no quote could be determined.
var ErrNoQuote = errors.New("no quote available")

// QuoteSource resolves a token symbol to a USD price in cents.
type QuoteSource interface {
	PriceCents(ctx context.Context, symbol string) (uint64, error)
}

// CatalogSource serves quotes from a synthetic token catalog. It stands in
// for a real price feed; every lookup is deterministic.
type CatalogSource struct {
	catalog derive.Catalog
}

// NewCatalogSource creates a quote source backed by the given catalog.
func NewCatalogSource(catalog derive.Catalog) *CatalogSource {
	return &CatalogSource{catalog: catalog}
}

func (s *CatalogSource) PriceCents(_ context.Context, symbol string) (uint64, error) {
	price, ok := s.catalog.PriceCents(symbol)
	if !ok {
		return 0, fmt.Errorf("quote for %q: %w", symbol, ErrNoQuote)
	}
	return price, nil
}

// FormatUSDCents renders a cent amount as a fixed two-decimal dollar string.
func FormatUSDCents(cents uint64) string {
	return decimal.NewFromUint64(cents).Shift(-2).StringFixed(2)
}
