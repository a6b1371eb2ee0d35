package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testSnap(address string, takenAt time.Time, total uint64) Snapshot {
	return Snapshot{
		ID:            uuid.New(),
		Address:       address,
		TakenAt:       takenAt,
		TotalUSDValue: total,
		Summary:       []byte(`{}`),
	}
}

func TestMemRepositoryLatest(t *testing.T) {
	repo := NewMemRepository()
	ctx := context.Background()
	base := time.Now()

	// Saved out of order; Latest must follow TakenAt, not insert order.
	if err := repo.Save(ctx, testSnap("0xaaa", base.Add(2*time.Hour), 300)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, testSnap("0xaaa", base, 100)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, testSnap("0xaaa", base.Add(time.Hour), 200)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Latest(ctx, "0xaaa")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.TotalUSDValue != 300 {
		t.Errorf("Latest total = %d, want 300", got.TotalUSDValue)
	}
}

func TestMemRepositoryLatestNotFound(t *testing.T) {
	repo := NewMemRepository()

	_, err := repo.Latest(context.Background(), "0xmissing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Latest() error = %v, want ErrNotFound", err)
	}
}

func TestMemRepositoryHistoryNewestFirst(t *testing.T) {
	repo := NewMemRepository()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 5; i++ {
		snap := testSnap("0xbbb", base.Add(time.Duration(i)*time.Minute), uint64(i))
		if err := repo.Save(ctx, snap); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	history, err := repo.History(ctx, "0xbbb", 3)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	for i, want := range []uint64{4, 3, 2} {
		if history[i].TotalUSDValue != want {
			t.Errorf("history[%d] total = %d, want %d", i, history[i].TotalUSDValue, want)
		}
	}
}

func TestMemRepositoryHistoryDefaultLimit(t *testing.T) {
	repo := NewMemRepository()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 40; i++ {
		if err := repo.Save(ctx, testSnap("0xccc", base.Add(time.Duration(i)*time.Second), uint64(i))); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	history, err := repo.History(ctx, "0xccc", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 30 {
		t.Errorf("history length = %d, want default cap 30", len(history))
	}
}

func TestMemRepositoryAddressesSorted(t *testing.T) {
	repo := NewMemRepository()
	ctx := context.Background()
	now := time.Now()

	for _, addr := range []string{"0xccc", "0xaaa", "0xbbb"} {
		if err := repo.Save(ctx, testSnap(addr, now, 1)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	addrs, err := repo.Addresses(ctx)
	if err != nil {
		t.Fatalf("Addresses: %v", err)
	}
	want := []string{"0xaaa", "0xbbb", "0xccc"}
	if len(addrs) != len(want) {
		t.Fatalf("addresses = %v, want %v", addrs, want)
	}
	for i := range want {
		if addrs[i] != want[i] {
			t.Errorf("addresses[%d] = %s, want %s", i, addrs[i], want[i])
		}
	}
}
