package ledger

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/chainstat/walletstat/internal/domain"
	"github.com/chainstat/walletstat/internal/event"
)

// TransactionLogCap bounds the visible transaction log. Insertions past the
// cap evict the oldest entries first.
const TransactionLogCap = 50

// Ledger is the per-wallet analytics entity: token table, NFT sequence,
// bounded transaction log, and running totals. A Ledger instance is
// single-threaded; ledgers of different wallets share no state and may be
// driven in parallel.
type Ledger struct {
	owner string
	sink  event.Sink

	tokens map[string]*domain.TokenHolding
	order  []string

	nfts  []domain.NFT
	txLog []domain.TransactionRecord

	totalBalance     uint64
	tokenCount       int
	nftCount         int
	transactionCount uint64

	createdAt   time.Time
	lastUpdated time.Time
}

// New creates an empty ledger owned by owner. A nil sink disables event
// emission.
func New(owner string, createdAt time.Time, sink event.Sink) *Ledger {
	if sink == nil {
		sink = event.NopSink{}
	}
	return &Ledger{
		owner:       owner,
		sink:        sink,
		tokens:      make(map[string]*domain.TokenHolding),
		createdAt:   createdAt,
		lastUpdated: createdAt,
	}
}

// AddToken ingests one token balance. The decimal-adjusted balance is
// rawBalance / 10^decimals and its USD value is balance * usdPriceCents / 100,
// both truncating. A new symbol is inserted and counted; an existing symbol
// has only its balance and USD value overwritten. The computed USD value is
// added to the running total in both cases; the replaced entry's value is not
// subtracted, so totals accumulate across overwrites.
// A failed operation leaves the ledger unchanged.
func (l *Ledger) AddToken(symbol, coinType string, rawBalance uint64, decimals uint8, usdPriceCents uint64) error {
	divisor, err := domain.Pow10(decimals)
	if err != nil {
		return fmt.Errorf("add token %s: %w", symbol, err)
	}
	balance := rawBalance / divisor
	usdValue, err := domain.MulDiv(balance, usdPriceCents, 100)
	if err != nil {
		return fmt.Errorf("add token %s: %w", symbol, err)
	}
	newTotal, err := domain.SafeAdd(l.totalBalance, usdValue)
	if err != nil {
		return fmt.Errorf("add token %s: %w", symbol, err)
	}

	if existing, ok := l.tokens[symbol]; ok {
		existing.Balance = balance
		existing.USDValue = usdValue
	} else {
		l.tokens[symbol] = &domain.TokenHolding{
			CoinType: coinType,
			Symbol:   symbol,
			Balance:  balance,
			Decimals: decimals,
			USDValue: usdValue,
		}
		l.order = append(l.order, symbol)
		l.tokenCount++
	}
	l.totalBalance = newTotal

	l.touch()
	l.emit(event.FieldTotalBalance, strconv.FormatUint(newTotal, 10))
	return nil
}

// Token returns the holding for symbol, or ErrNotFound.
func (l *Ledger) Token(symbol string) (domain.TokenHolding, error) {
	tok, ok := l.tokens[symbol]
	if !ok {
		return domain.TokenHolding{}, fmt.Errorf("token %s: %w", symbol, domain.ErrNotFound)
	}
	return *tok, nil
}

// Tokens returns the holdings in first-insertion order.
func (l *Ledger) Tokens() []domain.TokenHolding {
	out := make([]domain.TokenHolding, 0, len(l.order))
	for _, sym := range l.order {
		out = append(out, *l.tokens[sym])
	}
	return out
}

// AddNFT appends an NFT with an empty trait sequence. The sequence index is
// the identity callers use when attaching traits.
func (l *Ledger) AddNFT(objectID, name, description, imageURL, collection, creator string) {
	l.nfts = append(l.nfts, domain.NFT{
		ObjectID:    objectID,
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		Collection:  collection,
		Creator:     creator,
	})
	l.nftCount++

	l.touch()
	l.emit(event.FieldNFTCount, strconv.Itoa(l.nftCount))
}

// AddTrait appends a trait to the NFT at nftIndex. An out-of-range index is a
// silent no-op; the ledger tolerates trait writes addressed at NFTs it never
// saw.
func (l *Ledger) AddTrait(nftIndex int, traitType, value string, rarityScore uint64) {
	if nftIndex < 0 || nftIndex >= len(l.nfts) {
		return
	}
	nft := &l.nfts[nftIndex]
	nft.Traits = append(nft.Traits, domain.Trait{
		TraitType:   traitType,
		Value:       value,
		RarityScore: rarityScore,
	})

	l.touch()
	l.emit(event.FieldTraitCount, strconv.Itoa(len(nft.Traits)))
}

// AddTransaction appends a record and bumps the lifetime count. The visible
// log keeps only the most recent TransactionLogCap records; older entries are
// evicted front-first, while the lifetime count keeps growing.
func (l *Ledger) AddTransaction(rec domain.TransactionRecord) {
	l.txLog = append(l.txLog, rec)
	l.transactionCount++
	for len(l.txLog) > TransactionLogCap {
		l.txLog = l.txLog[1:]
	}

	l.touch()
	l.emit(event.FieldTransactionCount, strconv.FormatUint(l.transactionCount, 10))
}

// RecomputePercentages refreshes every token's portfolio percentage in basis
// points of the current running total: usd_value * 10000 / total, truncating.
// Callers invoke it explicitly after a batch of token updates; it is a no-op
// while the total is zero.
func (l *Ledger) RecomputePercentages() error {
	if l.totalBalance == 0 {
		return nil
	}
	for _, sym := range l.order {
		tok := l.tokens[sym]
		pct, err := domain.MulDiv(tok.USDValue, 10_000, l.totalBalance)
		if err != nil {
			return fmt.Errorf("recomputing percentage for %s: %w", sym, err)
		}
		tok.PercentageOfPortfolio = pct
	}
	l.touch()
	return nil
}

// Clear zeroes the counters and totals and empties the NFT sequence and the
// transaction log. Only the owner may clear; any other identity fails with
// ErrNotAuthorized. Token table entries survive a clear: their balances and
// values remain readable but no longer count toward the zeroed totals, and
// re-adding a surviving symbol is an overwrite, not an insert.
func (l *Ledger) Clear(requestingIdentity string) error {
	if requestingIdentity != l.owner {
		return fmt.Errorf("clear of %s requested by %q: %w", l.owner, requestingIdentity, domain.ErrNotAuthorized)
	}
	l.tokenCount = 0
	l.nftCount = 0
	l.transactionCount = 0
	l.totalBalance = 0
	l.nfts = nil
	l.txLog = nil

	l.touch()
	l.emit(event.FieldCleared, "true")
	return nil
}

// Owner returns the identity allowed to clear this ledger.
func (l *Ledger) Owner() string { return l.owner }

// TotalBalance returns the running USD total in cents.
func (l *Ledger) TotalBalance() uint64 { return l.totalBalance }

// TokenCount returns the number of counted token insertions.
func (l *Ledger) TokenCount() int { return l.tokenCount }

// NFTCount returns the number of counted NFT insertions.
func (l *Ledger) NFTCount() int { return l.nftCount }

// TransactionCount returns the lifetime number of ingested transactions,
// which exceeds the visible log length once eviction starts.
func (l *Ledger) TransactionCount() uint64 { return l.transactionCount }

// CreatedAt returns the ledger creation timestamp.
func (l *Ledger) CreatedAt() time.Time { return l.createdAt }

// LastUpdated returns the wall-clock time of the most recent mutation.
func (l *Ledger) LastUpdated() time.Time { return l.lastUpdated }

// NFTs returns a copy of the NFT sequence, traits included.
func (l *Ledger) NFTs() []domain.NFT {
	out := make([]domain.NFT, len(l.nfts))
	for i, n := range l.nfts {
		n.Traits = append([]domain.Trait(nil), n.Traits...)
		out[i] = n
	}
	return out
}

// Transactions returns a copy of the visible transaction log, oldest first.
func (l *Ledger) Transactions() []domain.TransactionRecord {
	return append([]domain.TransactionRecord(nil), l.txLog...)
}

// Snapshot captures the current state for the metrics engine and the
// snapshot store.
func (l *Ledger) Snapshot() domain.LedgerState {
	return domain.LedgerState{
		Owner:            l.owner,
		Tokens:           l.Tokens(),
		NFTs:             l.NFTs(),
		Transactions:     l.Transactions(),
		TotalBalance:     l.totalBalance,
		TokenCount:       l.tokenCount,
		NFTCount:         l.nftCount,
		TransactionCount: l.transactionCount,
		LastUpdated:      l.lastUpdated,
	}
}

func (l *Ledger) touch() {
	l.lastUpdated = time.Now()
}

// emit reports a mutation to the sink. Sink errors are logged and dropped;
// ledger state and event delivery are not transactional together.
func (l *Ledger) emit(field, value string) {
	err := l.sink.Emit(event.Event{
		WalletAddress: l.owner,
		FieldChanged:  field,
		NewValue:      value,
		Timestamp:     time.Now(),
	})
	if err != nil {
		slog.Debug("ledger event dropped", "wallet", l.owner, "field", field, "error", err)
	}
}
