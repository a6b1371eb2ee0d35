package derive

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/chainstat/walletstat/internal/domain"
)

// TokenRule describes one synthetic catalog token. An address holds the token
// iff its byte at SeedIndex is divisible by Modulus; the raw balance is the
// byte at BalanceIndex times Scale.
type TokenRule struct {
	Symbol        string `json:"symbol"`
	CoinType      string `json:"coinType"`
	SeedIndex     int    `json:"seedIndex"`
	Modulus       uint8  `json:"modulus"`
	BalanceIndex  int    `json:"balanceIndex"`
	Scale         uint64 `json:"scale"`
	Decimals      uint8  `json:"decimals"`
	USDPriceCents uint64 `json:"usdPriceCents"`
}

// Catalog is an ordered set of token rules. Order is preserved into the
// derived facts, so ingestion order is stable for a given catalog.
type Catalog []TokenRule

// defaultCatalog is unexported to prevent external mutation.
var defaultCatalog = Catalog{
	{Symbol: "USDC", CoinType: "0xusdc::usdc::USDC", SeedIndex: 0, Modulus: 2, BalanceIndex: 1, Scale: 1_000_000, Decimals: 6, USDPriceCents: 100},
	{Symbol: "WETH", CoinType: "0xweth::weth::WETH", SeedIndex: 2, Modulus: 3, BalanceIndex: 3, Scale: 10_000_000, Decimals: 8, USDPriceCents: 250_000},
	{Symbol: "CETUS", CoinType: "0xcetus::cetus::CETUS", SeedIndex: 4, Modulus: 4, BalanceIndex: 5, Scale: 100_000_000, Decimals: 9, USDPriceCents: 15},
	{Symbol: "NAVX", CoinType: "0xnavx::navx::NAVX", SeedIndex: 6, Modulus: 5, BalanceIndex: 7, Scale: 1_000_000_000, Decimals: 9, USDPriceCents: 8},
}

// DefaultCatalog returns a copy of the built-in synthetic token catalog.
func DefaultCatalog() Catalog {
	return slices.Clone(defaultCatalog)
}

// TokenFacts derives the held-token facts for an address: rules whose gate
// byte passes the modulus check, in catalog order. Rules that would not pass
// Validate are skipped.
func (c Catalog) TokenFacts(addr domain.Address) []domain.TokenFact {
	return lo.FilterMap(c, func(rule TokenRule, _ int) (domain.TokenFact, bool) {
		if rule.Modulus == 0 ||
			rule.SeedIndex < 0 || rule.SeedIndex >= domain.AddressLength ||
			rule.BalanceIndex < 0 || rule.BalanceIndex >= domain.AddressLength {
			return domain.TokenFact{}, false
		}
		if addr[rule.SeedIndex]%rule.Modulus != 0 {
			return domain.TokenFact{}, false
		}
		return domain.TokenFact{
			Symbol:        rule.Symbol,
			CoinType:      rule.CoinType,
			RawBalance:    uint64(addr[rule.BalanceIndex]) * rule.Scale,
			Decimals:      rule.Decimals,
			USDPriceCents: rule.USDPriceCents,
		}, true
	})
}

// PriceCents returns the catalog USD price for a symbol.
func (c Catalog) PriceCents(symbol string) (uint64, bool) {
	rule, ok := lo.Find(c, func(r TokenRule) bool { return r.Symbol == symbol })
	if !ok {
		return 0, false
	}
	return rule.USDPriceCents, true
}

// Validate checks every rule for usable indices and factors. The scale bound
// keeps RawBalance (byte * Scale) inside uint64 for any byte value.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c))
	for i, rule := range c {
		if rule.Symbol == "" {
			return fmt.Errorf("catalog rule %d: empty symbol: %w", i, domain.ErrInvalidInput)
		}
		if seen[rule.Symbol] {
			return fmt.Errorf("catalog rule %d: duplicate symbol %s: %w", i, rule.Symbol, domain.ErrInvalidInput)
		}
		seen[rule.Symbol] = true
		if rule.SeedIndex < 0 || rule.SeedIndex >= domain.AddressLength {
			return fmt.Errorf("catalog rule %s: seed index %d out of range: %w", rule.Symbol, rule.SeedIndex, domain.ErrInvalidInput)
		}
		if rule.BalanceIndex < 0 || rule.BalanceIndex >= domain.AddressLength {
			return fmt.Errorf("catalog rule %s: balance index %d out of range: %w", rule.Symbol, rule.BalanceIndex, domain.ErrInvalidInput)
		}
		if rule.Modulus == 0 {
			return fmt.Errorf("catalog rule %s: zero modulus: %w", rule.Symbol, domain.ErrInvalidInput)
		}
		if rule.Decimals > 19 {
			return fmt.Errorf("catalog rule %s: decimals %d exceed uint64 range: %w", rule.Symbol, rule.Decimals, domain.ErrInvalidInput)
		}
		if _, err := domain.SafeMul(255, rule.Scale); err != nil {
			return fmt.Errorf("catalog rule %s: scale %d: %w", rule.Symbol, rule.Scale, err)
		}
	}
	return nil
}
