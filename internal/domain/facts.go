package domain

// TokenFact is one synthetic token holding derived from an address.
type TokenFact struct {
	Symbol        string `json:"symbol"`
	CoinType      string `json:"coinType"`
	RawBalance    uint64 `json:"rawBalance"`
	Decimals      uint8  `json:"decimals"`
	USDPriceCents uint64 `json:"usdPriceCents"`
}

// WalletFacts bundles everything derivable for a wallet address: the native
// balance, the held catalog tokens, and the NFT count.
type WalletFacts struct {
	Address       Address     `json:"address"`
	NativeBalance uint64      `json:"nativeBalance"`
	Tokens        []TokenFact `json:"tokens"`
	NFTCount      int         `json:"nftCount"`
}
