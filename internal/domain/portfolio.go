package domain

import "time"

// TokenHolding is one row of a wallet's token table, keyed by Symbol.
// Balance is decimal-adjusted (whole units); USDValue is in cents.
// PercentageOfPortfolio is in basis points (0-10000) and is stale until the
// owning ledger recomputes percentages.
type TokenHolding struct {
	CoinType              string `json:"coinType"`
	Symbol                string `json:"symbol"`
	Balance               uint64 `json:"balance"`
	Decimals              uint8  `json:"decimals"`
	USDValue              uint64 `json:"usdValue"`
	PercentageOfPortfolio uint64 `json:"percentageOfPortfolio"`
}

// Trait is a free-form NFT attribute. No uniqueness constraint.
type Trait struct {
	TraitType   string `json:"traitType"`
	Value       string `json:"value"`
	RarityScore uint64 `json:"rarityScore"`
}

// NFT is one entry of a wallet's NFT sequence. Insertion order is the index
// identity callers use when attaching traits. Traits are append-only.
type NFT struct {
	ObjectID    string  `json:"objectId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Collection  string  `json:"collection"`
	Creator     string  `json:"creator"`
	Traits      []Trait `json:"traits"`
}

// TransactionRecord is one entry of a wallet's bounded transaction log.
type TransactionRecord struct {
	Digest          string `json:"digest"`
	TransactionType string `json:"transactionType"`
	Amount          uint64 `json:"amount"`
	CoinType        string `json:"coinType"`
	Timestamp       uint64 `json:"timestamp"`
	Counterparty    string `json:"counterparty"`
	Status          string `json:"status"`
}

// LedgerState is a point-in-time copy of a wallet ledger, consumed by the
// metrics engine and the snapshot store. TransactionCount is the lifetime
// count, which exceeds the bounded log length once eviction starts.
type LedgerState struct {
	Owner            string              `json:"owner"`
	Tokens           []TokenHolding      `json:"tokens"`
	NFTs             []NFT               `json:"nfts,omitempty"`
	Transactions     []TransactionRecord `json:"transactions,omitempty"`
	TotalBalance     uint64              `json:"totalBalance"`
	TokenCount       int                 `json:"tokenCount"`
	NFTCount         int                 `json:"nftCount"`
	TransactionCount uint64              `json:"transactionCount"`
	LastUpdated      time.Time           `json:"lastUpdated"`
}

// PortfolioSummary is the derived point-in-time summary of a wallet.
// Recomputed on every request, never cached by the core.
type PortfolioSummary struct {
	TotalUSDValue           uint64 `json:"totalUsdValue"`
	TotalTokens             int    `json:"totalTokens"`
	TotalNFTs               int    `json:"totalNfts"`
	BestPerformingToken     string `json:"bestPerformingToken"`
	WorstPerformingToken    string `json:"worstPerformingToken"`
	PortfolioDiversityScore uint64 `json:"portfolioDiversityScore"`
	RiskScore               uint64 `json:"riskScore"`
}
