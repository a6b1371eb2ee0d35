package derive

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCatalog parses a catalog override string into a validated Catalog.
// Entries are separated by ';', fields inside an entry by whitespace:
//
//	SYMBOL COIN_TYPE SEED_INDEX MODULUS BALANCE_INDEX SCALE DECIMALS PRICE_CENTS
//
// Example: "USDC 0xusdc::usdc::USDC 0 2 1 1000000 6 100; GOLD 0xau::au::GOLD 8 3 9 100000 5 6400"
func ParseCatalog(raw string) (Catalog, error) {
	var cat Catalog
	for i, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		rule, err := ParseCatalogEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i+1, err)
		}
		cat = append(cat, rule)
	}
	if len(cat) == 0 {
		return nil, fmt.Errorf("catalog contains no entries")
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// ParseCatalogEntry parses a single whitespace-separated catalog entry.
func ParseCatalogEntry(raw string) (TokenRule, error) {
	fields := strings.Fields(raw)
	if len(fields) != 8 {
		return TokenRule{}, fmt.Errorf("%q: got %d fields, want 8 (symbol coin_type seed_index modulus balance_index scale decimals price_cents)", raw, len(fields))
	}

	seedIndex, err := strconv.Atoi(fields[2])
	if err != nil {
		return TokenRule{}, fmt.Errorf("seed index %q: %v", fields[2], err)
	}
	modulus, err := strconv.ParseUint(fields[3], 10, 8)
	if err != nil {
		return TokenRule{}, fmt.Errorf("modulus %q: %v", fields[3], err)
	}
	balanceIndex, err := strconv.Atoi(fields[4])
	if err != nil {
		return TokenRule{}, fmt.Errorf("balance index %q: %v", fields[4], err)
	}
	scale, err := strconv.ParseUint(fields[5], 10, 64)
	if err != nil {
		return TokenRule{}, fmt.Errorf("scale %q: %v", fields[5], err)
	}
	decimals, err := strconv.ParseUint(fields[6], 10, 8)
	if err != nil {
		return TokenRule{}, fmt.Errorf("decimals %q: %v", fields[6], err)
	}
	priceCents, err := strconv.ParseUint(fields[7], 10, 64)
	if err != nil {
		return TokenRule{}, fmt.Errorf("price cents %q: %v", fields[7], err)
	}

	return TokenRule{
		Symbol:        fields[0],
		CoinType:      fields[1],
		SeedIndex:     seedIndex,
		Modulus:       uint8(modulus),
		BalanceIndex:  balanceIndex,
		Scale:         scale,
		Decimals:      uint8(decimals),
		USDPriceCents: priceCents,
	}, nil
}
