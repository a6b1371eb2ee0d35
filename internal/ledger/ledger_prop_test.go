package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/chainstat/walletstat/internal/domain"
)

func domainTx(i int) domain.TransactionRecord {
	return domain.TransactionRecord{
		Digest:          fmt.Sprintf("0xtx%04d", i),
		TransactionType: "transfer",
		Amount:          uint64(i),
		CoinType:        "0xusdc::usdc::USDC",
		Timestamp:       uint64(1_700_000_000 + i),
		Status:          "success",
	}
}

func TestTransactionLogProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("log holds the newest min(n, cap) records in order", prop.ForAll(
		func(n int) bool {
			l := New(testOwner, time.Now(), nil)
			for i := 0; i < n; i++ {
				l.AddTransaction(domainTx(i))
			}

			log := l.Transactions()
			wantLen := n
			if wantLen > TransactionLogCap {
				wantLen = TransactionLogCap
			}
			if len(log) != wantLen {
				return false
			}
			if l.TransactionCount() != uint64(n) {
				return false
			}
			first := n - wantLen
			for i, rec := range log {
				if rec.Digest != fmt.Sprintf("0xtx%04d", first+i) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 130),
	))

	properties.TestingRun(t)
}

func TestPercentageProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("percentages are floor(value*10000/total) and sum to at most 10000", prop.ForAll(
		func(values []uint64) bool {
			l := New(testOwner, time.Now(), nil)
			var total uint64
			for i, v := range values {
				if err := l.AddToken(fmt.Sprintf("T%d", i), "0xt", v, 0, 100); err != nil {
					return false
				}
				total += v
			}
			if err := l.RecomputePercentages(); err != nil {
				return false
			}

			var sum uint64
			for i, tok := range l.Tokens() {
				want := uint64(0)
				if total != 0 {
					want = values[i] * 10_000 / total
				}
				if tok.PercentageOfPortfolio != want {
					return false
				}
				sum += tok.PercentageOfPortfolio
			}
			return sum <= 10_000
		},
		gen.SliceOf(gen.UInt64Range(0, 1_000_000)),
	))

	properties.TestingRun(t)
}

func TestOverwriteProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("repeated adds keep the last balance and accumulate the total", prop.ForAll(
		func(balances []uint64) bool {
			if len(balances) == 0 {
				return true
			}
			l := New(testOwner, time.Now(), nil)
			var runningTotal uint64
			for _, b := range balances {
				if err := l.AddToken("TOK", "0xtok", b, 0, 100); err != nil {
					return false
				}
				runningTotal += b
			}

			tok, err := l.Token("TOK")
			if err != nil {
				return false
			}
			last := balances[len(balances)-1]
			return tok.Balance == last &&
				tok.USDValue == last &&
				l.TotalBalance() == runningTotal &&
				l.TokenCount() == 1
		},
		gen.SliceOf(gen.UInt64Range(0, 1_000_000)),
	))

	properties.TestingRun(t)
}
