package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that the requested snapshot was not found.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot represents one stored wallet analysis.
type Snapshot struct {
	ID            uuid.UUID       `json:"id"`
	Address       string          `json:"address"`
	TakenAt       time.Time       `json:"takenAt"`
	TotalUSDValue uint64          `json:"totalUsdValue"`
	TokenCount    int             `json:"tokenCount"`
	NFTCount      int             `json:"nftCount"`
	Summary       json.RawMessage `json:"summary"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Repository defines persistent storage for wallet snapshots.
type Repository interface {
	Save(ctx context.Context, snap Snapshot) error
	Latest(ctx context.Context, address string) (*Snapshot, error)
	History(ctx context.Context, address string, limit int) ([]Snapshot, error)
	Addresses(ctx context.Context) ([]string, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL snapshot repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Save(ctx context.Context, snap Snapshot) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO wallet_snapshots (id, wallet_address, taken_at, total_usd_value, token_count, nft_count, summary)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb)`,
		snap.ID, snap.Address, snap.TakenAt, snap.TotalUSDValue, snap.TokenCount, snap.NFTCount, snap.Summary)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (r *PgRepository) Latest(ctx context.Context, address string) (*Snapshot, error) {
	var s Snapshot
	err := r.pool.QueryRow(ctx,
		`SELECT id, wallet_address, taken_at, total_usd_value, token_count, nft_count, summary, created_at
		 FROM wallet_snapshots
		 WHERE wallet_address = $1
		 ORDER BY taken_at DESC
		 LIMIT 1`, address).
		Scan(&s.ID, &s.Address, &s.TakenAt, &s.TotalUSDValue, &s.TokenCount, &s.NFTCount, &s.Summary, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting latest snapshot: %w", err)
	}
	return &s, nil
}

func (r *PgRepository) History(ctx context.Context, address string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, wallet_address, taken_at, total_usd_value, token_count, nft_count, summary, created_at
		 FROM wallet_snapshots
		 WHERE wallet_address = $1
		 ORDER BY taken_at DESC
		 LIMIT $2`, address, limit)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Address, &s.TakenAt, &s.TotalUSDValue, &s.TokenCount, &s.NFTCount, &s.Summary, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

func (r *PgRepository) Addresses(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT wallet_address FROM wallet_snapshots ORDER BY wallet_address`)
	if err != nil {
		return nil, fmt.Errorf("listing addresses: %w", err)
	}
	defer rows.Close()

	var addrs []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("scanning address: %w", err)
		}
		addrs = append(addrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating addresses: %w", err)
	}
	return addrs, nil
}
