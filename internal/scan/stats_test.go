package scan

import (
	"testing"

	"github.com/shopspring/decimal"
)

func decimals(values ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []decimal.Decimal
		want   string
	}{
		{"empty", nil, "0"},
		{"single", decimals(42), "42"},
		{"integers", decimals(1, 2, 3, 4, 5), "3"},
		{"fractional", decimals(1, 2), "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mean(tt.values)
			if got.String() != tt.want {
				t.Errorf("Mean() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []decimal.Decimal
		want   string
	}{
		{"empty", nil, "0"},
		{"single", decimals(7), "7"},
		{"odd count", decimals(3, 1, 2), "2"},
		{"even count", decimals(4, 1, 3, 2), "2.5"},
		{"unsorted input", decimals(9, 1, 8, 2, 5), "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Median(tt.values)
			if got.String() != tt.want {
				t.Errorf("Median() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := decimals(3, 1, 2)
	Median(values)
	if values[0].String() != "3" || values[1].String() != "1" || values[2].String() != "2" {
		t.Error("Median reordered the caller's slice")
	}
}
