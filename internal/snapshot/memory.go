package snapshot

import (
	"context"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// MemRepository implements Repository in process memory. It backs db-less
// deployments and tests; history is newest-first like the SQL queries.
type MemRepository struct {
	mu     sync.RWMutex
	byAddr map[string][]Snapshot
}

// NewMemRepository creates an empty in-memory repository.
func NewMemRepository() *MemRepository {
	return &MemRepository{byAddr: make(map[string][]Snapshot)}
}

func (r *MemRepository) Save(_ context.Context, snap Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = snap.TakenAt
	}
	r.byAddr[snap.Address] = append(r.byAddr[snap.Address], snap)
	return nil
}

func (r *MemRepository) Latest(_ context.Context, address string) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snaps := r.byAddr[address]
	if len(snaps) == 0 {
		return nil, ErrNotFound
	}

	latest := snaps[0]
	for _, s := range snaps[1:] {
		if s.TakenAt.After(latest.TakenAt) {
			latest = s
		}
	}
	return &latest, nil
}

func (r *MemRepository) History(_ context.Context, address string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 30
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	snaps := make([]Snapshot, len(r.byAddr[address]))
	copy(snaps, r.byAddr[address])
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].TakenAt.After(snaps[j].TakenAt)
	})
	if len(snaps) > limit {
		snaps = snaps[:limit]
	}
	return snaps, nil
}

func (r *MemRepository) Addresses(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	addrs := lo.Keys(r.byAddr)
	sort.Strings(addrs)
	return addrs, nil
}
