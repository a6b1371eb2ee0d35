package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgSink persists events into the wallet_events table. Insert failures are
// logged and dropped; the sink never reports them back to the mutation path.
type PgSink struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewPgSink creates a PgSink writing through the given pool.
func NewPgSink(pool *pgxpool.Pool) *PgSink {
	return &PgSink{pool: pool, timeout: 5 * time.Second}
}

func (s *PgSink) Emit(evt Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO wallet_events (wallet_address, field_changed, new_value, occurred_at)
		 VALUES ($1, $2, $3, $4)`,
		evt.WalletAddress, evt.FieldChanged, evt.NewValue, evt.Timestamp)
	if err != nil {
		slog.Warn("event sink: insert failed",
			"wallet", evt.WalletAddress, "field", evt.FieldChanged, "error", err)
	}
	return nil
}
