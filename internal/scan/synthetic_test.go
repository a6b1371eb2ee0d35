package scan

import (
	"reflect"
	"strings"
	"testing"

	"github.com/chainstat/walletstat/internal/domain"
)

func testAddr() domain.Address {
	var addr domain.Address
	for i := range addr {
		addr[i] = byte(i * 7)
	}
	return addr
}

func TestSyntheticNFTsDeterministic(t *testing.T) {
	addr := testAddr()

	a := syntheticNFTs(addr, 5)
	b := syntheticNFTs(addr, 5)
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated derivation produced different NFTs")
	}
	if len(a) != 5 {
		t.Fatalf("got %d NFTs, want 5", len(a))
	}
	if a[0].Name != "Artifact #1" || a[4].Name != "Artifact #5" {
		t.Errorf("names = %q, %q, want Artifact #1..#5", a[0].Name, a[4].Name)
	}
	if a[0].Creator != addr.String() {
		t.Errorf("creator = %q, want wallet address", a[0].Creator)
	}
	if a[0].ObjectID == a[1].ObjectID {
		t.Error("object IDs must be unique per index")
	}
}

func TestSyntheticTraitsPerIndex(t *testing.T) {
	addr := testAddr()

	traits := syntheticTraits(addr, 3)
	if len(traits) != 2 {
		t.Fatalf("got %d traits, want 2", len(traits))
	}
	// addr[3] = 21: odd byte means gloss finish.
	if traits[0].RarityScore != 21 {
		t.Errorf("series rarity = %d, want 21", traits[0].RarityScore)
	}
	if traits[1].Value != "Gloss" {
		t.Errorf("finish = %q, want Gloss", traits[1].Value)
	}
	if traits[1].RarityScore != 234 {
		t.Errorf("finish rarity = %d, want 234", traits[1].RarityScore)
	}
}

func TestSyntheticTransactions(t *testing.T) {
	addr := testAddr()
	facts := domain.WalletFacts{
		Address: addr,
		Tokens: []domain.TokenFact{
			{Symbol: "A", CoinType: "0xa"},
			{Symbol: "B", CoinType: "0xb"},
		},
	}

	recs := syntheticTransactions(addr, facts)
	// addr[1] = 7, so 7%8 + 2 tokens = 9 records.
	if len(recs) != 9 {
		t.Fatalf("got %d records, want 9", len(recs))
	}

	seen := make(map[string]bool)
	for i, rec := range recs {
		if seen[rec.Digest] {
			t.Errorf("duplicate digest at %d: %s", i, rec.Digest)
		}
		seen[rec.Digest] = true

		wantCoin := "0xa"
		if i%2 == 1 {
			wantCoin = "0xb"
		}
		if rec.CoinType != wantCoin {
			t.Errorf("record %d coin type = %s, want %s", i, rec.CoinType, wantCoin)
		}
		if rec.Status != "success" {
			t.Errorf("record %d status = %s", i, rec.Status)
		}
		if rec.Amount == 0 {
			t.Errorf("record %d has zero amount", i)
		}
	}

	// Timestamps advance by a fixed step.
	if recs[1].Timestamp != recs[0].Timestamp+3600 {
		t.Errorf("timestamps %d, %d are not hourly", recs[0].Timestamp, recs[1].Timestamp)
	}
}

func TestSyntheticTransactionsNoTokens(t *testing.T) {
	addr := testAddr()
	recs := syntheticTransactions(addr, domain.WalletFacts{Address: addr})

	// addr[1] = 7, no tokens: 7 native records.
	if len(recs) != 7 {
		t.Fatalf("got %d records, want 7", len(recs))
	}
	for _, rec := range recs {
		if rec.CoinType != "native" {
			t.Errorf("coin type = %s, want native", rec.CoinType)
		}
	}
}

func TestCounterpartyMirrorsAddress(t *testing.T) {
	var addr domain.Address
	addr[0] = 0x12

	peer := counterparty(addr)
	if !strings.HasPrefix(peer, "0x") {
		t.Fatalf("counterparty = %q, want 0x prefix", peer)
	}
	if !strings.HasSuffix(peer, "12") {
		t.Errorf("counterparty = %q, want reversed bytes ending in 12", peer)
	}
	if peer == addr.String() {
		t.Error("counterparty must differ from the wallet address")
	}
}
