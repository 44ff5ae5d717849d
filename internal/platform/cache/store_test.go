package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "divisions", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "divisions:season:spring", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "divisions" {
				errCh <- errors.New("unexpected loaded value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("load failed: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one loader call, got %d", got)
	}
}

func TestStore_ExpiresWithClock(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	store := NewStore(time.Minute, WithClock(clock))
	ctx := context.Background()

	store.Set(ctx, "teams:season:spring", 3)
	v, ok := store.Get(ctx, "teams:season:spring")
	if !ok || v != 3 {
		t.Fatalf("expected cached 3, got %v (found=%t)", v, ok)
	}

	clock.Advance(61 * time.Second)
	if _, ok := store.Get(ctx, "teams:season:spring"); ok {
		t.Fatalf("expected entry to expire")
	}
	if n := store.Len(); n != 0 {
		t.Fatalf("expected expired entry removed, len=%d", n)
	}
}

func TestStore_LoadErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	var calls int

	_, err := Load(ctx, store, "seasons", func(context.Context) ([]string, error) {
		calls++
		return nil, errors.New("db down")
	})
	if err == nil {
		t.Fatalf("expected loader error")
	}

	got, err := Load(ctx, store, "seasons", func(context.Context) ([]string, error) {
		calls++
		return []string{"spring-2026"}, nil
	})
	if err != nil {
		t.Fatalf("load seasons: %v", err)
	}
	if len(got) != 1 || got[0] != "spring-2026" {
		t.Fatalf("unexpected seasons: %v", got)
	}
	if calls != 2 {
		t.Fatalf("expected failed load not cached, calls=%d", calls)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "teams:season:a", 1)
	store.Set(ctx, "teams:season:b", 2)
	store.Set(ctx, "seasons", 3)

	store.DeletePrefix(ctx, "teams:")

	if _, ok := store.Get(ctx, "teams:season:a"); ok {
		t.Fatalf("expected prefixed key deleted")
	}
	if _, ok := store.Get(ctx, "seasons"); !ok {
		t.Fatalf("expected other key kept")
	}
}

func TestLoad_TypeMismatch(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	store.Set(ctx, "k", "a string")

	if _, err := Load(ctx, store, "k", func(context.Context) (int, error) { return 1, nil }); err == nil {
		t.Fatalf("expected type mismatch error")
	}
}
