package event

import (
	"log/slog"
	"time"
)

// Field names reported in Event.FieldChanged.
const (
	FieldTotalBalance     = "total_balance"
	FieldNFTCount         = "nft_count"
	FieldTraitCount       = "trait_count"
	FieldTransactionCount = "transaction_count"
	FieldCleared          = "cleared"
)

// Event is one observability record describing a ledger mutation.
type Event struct {
	WalletAddress string    `json:"walletAddress"`
	FieldChanged  string    `json:"fieldChanged"`
	NewValue      string    `json:"newValue"`
	Timestamp     time.Time `json:"timestamp"`
}

// Sink consumes mutation events. Emission is fire-and-forget: a Sink error
// never affects ledger state, and implementations must not block on slow
// downstreams.
type Sink interface {
	Emit(evt Event) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Emit(Event) error { return nil }

// SlogSink writes one structured log line per event. A nil Logger falls back
// to slog.Default.
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Emit(evt Event) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("wallet event",
		"wallet", evt.WalletAddress,
		"field", evt.FieldChanged,
		"value", evt.NewValue,
		"ts", evt.Timestamp,
	)
	return nil
}

// MultiSink fans an event out to several sinks. Every sink sees the event
// even when an earlier one fails; the first error is returned.
type MultiSink []Sink

func (m MultiSink) Emit(evt Event) error {
	var first error
	for _, s := range m {
		if err := s.Emit(evt); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// EmitCounter receives one tick per successfully delivered event.
type EmitCounter interface {
	RecordEventEmitted()
}

// CountingSink wraps a sink and reports delivered events to a counter.
type CountingSink struct {
	Next    Sink
	Counter EmitCounter
}

func (c CountingSink) Emit(evt Event) error {
	if err := c.Next.Emit(evt); err != nil {
		return err
	}
	if c.Counter != nil {
		c.Counter.RecordEventEmitted()
	}
	return nil
}
