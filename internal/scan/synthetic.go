package scan

import (
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/chainstat/walletstat/internal/domain"
)

const (
	artifactCollection = "Derived Artifacts"
	syntheticEpoch     = 1_700_000_000
)

// syntheticNFTs fabricates placeholder NFT metadata for a wallet. Everything
// is deterministic in the address so repeated scans agree.
func syntheticNFTs(addr domain.Address, count int) []domain.NFT {
	nfts := make([]domain.NFT, 0, count)
	for i := 0; i < count; i++ {
		nfts = append(nfts, domain.NFT{
			ObjectID:    fmt.Sprintf("%s::artifact::%d", addr.String(), i),
			Name:        fmt.Sprintf("Artifact #%d", i+1),
			Description: "synthetic holding derived from wallet activity",
			ImageURL:    fmt.Sprintf("https://artifacts.invalid/%s/%d.png", addr.Short(), i),
			Collection:  artifactCollection,
			Creator:     addr.String(),
		})
	}
	return nfts
}

// syntheticTraits derives the trait set for the NFT at the given index.
func syntheticTraits(addr domain.Address, nftIndex int) []domain.Trait {
	b := addr[nftIndex%domain.AddressLength]

	finish := "Gloss"
	if b%2 == 0 {
		finish = "Matte"
	}
	return []domain.Trait{
		{TraitType: "Series", Value: fmt.Sprintf("%d", nftIndex+1), RarityScore: uint64(b)},
		{TraitType: "Finish", Value: finish, RarityScore: uint64(255 - b)},
	}
}

// syntheticTransactions fabricates a short deterministic transfer history,
// cycling through the wallet's token types.
func syntheticTransactions(addr domain.Address, facts domain.WalletFacts) []domain.TransactionRecord {
	count := int(addr[1]%8) + len(facts.Tokens)

	recs := make([]domain.TransactionRecord, 0, count)
	for i := 0; i < count; i++ {
		coinType := "native"
		if len(facts.Tokens) > 0 {
			coinType = facts.Tokens[i%len(facts.Tokens)].CoinType
		}
		txType := "receive"
		if addr[(i*3)%domain.AddressLength]%2 == 1 {
			txType = "send"
		}

		recs = append(recs, domain.TransactionRecord{
			Digest:          syntheticDigest(addr, i),
			TransactionType: txType,
			Amount:          (uint64(addr[(i*5+7)%domain.AddressLength]) + 1) * 1_000_000,
			CoinType:        coinType,
			Timestamp:       syntheticEpoch + uint64(i)*3600,
			Counterparty:    counterparty(addr),
			Status:          "success",
		})
	}
	return recs
}

// syntheticDigest perturbs the address bytes so each record carries a unique
// digest-shaped identifier.
func syntheticDigest(addr domain.Address, n int) string {
	b := addr.Bytes()
	b[0] ^= byte(n)
	b[1] ^= byte(n >> 8)
	return "0x" + hex.EncodeToString(b)
}

// counterparty mirrors the address bytes to produce a distinct peer identity.
func counterparty(addr domain.Address) string {
	b := addr.Bytes()
	slices.Reverse(b)
	return "0x" + hex.EncodeToString(b)
}
