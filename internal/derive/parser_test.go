package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalogEntry(t *testing.T) {
	rule, err := ParseCatalogEntry("GOLD 0xau::au::GOLD 8 3 9 100000 5 6400")
	require.NoError(t, err)

	assert.Equal(t, "GOLD", rule.Symbol)
	assert.Equal(t, "0xau::au::GOLD", rule.CoinType)
	assert.Equal(t, 8, rule.SeedIndex)
	assert.Equal(t, uint8(3), rule.Modulus)
	assert.Equal(t, 9, rule.BalanceIndex)
	assert.Equal(t, uint64(100000), rule.Scale)
	assert.Equal(t, uint8(5), rule.Decimals)
	assert.Equal(t, uint64(6400), rule.USDPriceCents)
}

func TestParseCatalogEntryErrors(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"too few fields", "GOLD 0xau::au::GOLD 8 3"},
		{"too many fields", "GOLD 0xau::au::GOLD 8 3 9 100000 5 6400 extra"},
		{"bad seed index", "GOLD 0xau::au::GOLD x 3 9 100000 5 6400"},
		{"bad modulus", "GOLD 0xau::au::GOLD 8 -3 9 100000 5 6400"},
		{"modulus too wide", "GOLD 0xau::au::GOLD 8 300 9 100000 5 6400"},
		{"bad scale", "GOLD 0xau::au::GOLD 8 3 9 1e5 5 6400"},
		{"bad decimals", "GOLD 0xau::au::GOLD 8 3 9 100000 five 6400"},
		{"bad price", "GOLD 0xau::au::GOLD 8 3 9 100000 5 -1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalogEntry(tt.entry)
			assert.Error(t, err)
		})
	}
}

func TestParseCatalog(t *testing.T) {
	raw := "USDC 0xusdc::usdc::USDC 0 2 1 1000000 6 100; GOLD 0xau::au::GOLD 8 3 9 100000 5 6400;"
	cat, err := ParseCatalog(raw)
	require.NoError(t, err)
	require.Len(t, cat, 2)

	assert.Equal(t, "USDC", cat[0].Symbol)
	assert.Equal(t, "GOLD", cat[1].Symbol)
}

func TestParseCatalogEmpty(t *testing.T) {
	_, err := ParseCatalog("  ;  ; ")
	assert.Error(t, err)
}

func TestParseCatalogRejectsInvalidRules(t *testing.T) {
	// Syntactically fine, semantically out of range.
	_, err := ParseCatalog("GOLD 0xau::au::GOLD 40 3 9 100000 5 6400")
	require.Error(t, err)

	_, err = ParseCatalog("A 0xa::a::A 0 2 1 10 2 5; A 0xa::a::A 2 2 3 10 2 5")
	require.Error(t, err)
}

func TestParseCatalogReportsEntryPosition(t *testing.T) {
	_, err := ParseCatalog("USDC 0xusdc::usdc::USDC 0 2 1 1000000 6 100; broken entry")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 2")
}
