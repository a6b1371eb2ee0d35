package registry

import (
	"sync"
	"testing"
)

func TestCountersStartAtZero(t *testing.T) {
	r := New()
	stats := r.Stats()
	if stats.WalletsAnalyzed != 0 || stats.TokensIngested != 0 || stats.EventsEmitted != 0 {
		t.Errorf("fresh registry stats = %+v, want all zero", stats)
	}
}

func TestRecordWalletAnalyzedReturnsNewValue(t *testing.T) {
	r := New()
	if got := r.RecordWalletAnalyzed(); got != 1 {
		t.Errorf("first increment = %d, want 1", got)
	}
	if got := r.RecordWalletAnalyzed(); got != 2 {
		t.Errorf("second increment = %d, want 2", got)
	}
}

func TestConcurrentIncrements(t *testing.T) {
	r := New()

	const workers = 32
	const perWorker = 1000

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				r.RecordWalletAnalyzed()
				r.RecordTokensIngested(3)
				r.RecordEventEmitted()
			}
		}()
	}
	wg.Wait()

	stats := r.Stats()
	if stats.WalletsAnalyzed != workers*perWorker {
		t.Errorf("WalletsAnalyzed = %d, want %d", stats.WalletsAnalyzed, workers*perWorker)
	}
	if stats.TokensIngested != workers*perWorker*3 {
		t.Errorf("TokensIngested = %d, want %d", stats.TokensIngested, workers*perWorker*3)
	}
	if stats.EventsEmitted != workers*perWorker {
		t.Errorf("EventsEmitted = %d, want %d", stats.EventsEmitted, workers*perWorker)
	}
}
