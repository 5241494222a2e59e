package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
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
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (int, error) {
		calls.Add(1)
		return 42, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresEntries(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	store := NewStore[string](10 * time.Second)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "scores:cred", "snapshot")
	if _, ok := store.Get(context.Background(), "scores:cred"); !ok {
		t.Fatalf("expected fresh entry")
	}

	now = now.Add(11 * time.Second)
	if _, ok := store.Get(context.Background(), "scores:cred"); ok {
		t.Fatalf("expected expired entry")
	}
	if store.Len() != 0 {
		t.Fatalf("expired entry should be evicted, len=%d", store.Len())
	}
}

func TestStore_SetIfGeneration(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore[int](0)
	gen := store.Generation("scores:cred")

	store.Delete(ctx, "scores:cred")
	if store.SetIfGeneration(ctx, "scores:cred", 1, gen) {
		t.Fatalf("value loaded before delete must not be stored")
	}
	if _, ok := store.Get(ctx, "scores:cred"); ok {
		t.Fatalf("expected no entry")
	}

	if !store.SetIfGeneration(ctx, "scores:cred", 2, store.Generation("scores:cred")) {
		t.Fatalf("value at current generation should be stored")
	}
	if v, ok := store.Get(ctx, "scores:cred"); !ok || v != 2 {
		t.Fatalf("got %d, %v", v, ok)
	}
}

func TestStore_GetOrLoad_DropsLoadStartedBeforeDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewStore[string](time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = store.GetOrLoad(ctx, "scores:cred", func(context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()

	<-started
	store.Delete(ctx, "scores:cred")
	fresh, err := store.GetOrLoad(ctx, "scores:cred", func(context.Context) (string, error) {
		return "fresh", nil
	})
	if err != nil || fresh != "fresh" {
		t.Fatalf("reload after delete: %q, %v", fresh, err)
	}

	close(release)
	<-done
	if v, ok := store.Get(ctx, "scores:cred"); !ok || v != "fresh" {
		t.Fatalf("stale load overwrote newer snapshot: %q, %v", v, ok)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	boom := errors.New("store down")
	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("failed load must not be cached")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
