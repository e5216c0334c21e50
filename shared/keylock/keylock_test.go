package keylock_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"roombook/shared/keylock"
)

func TestLocker_SerializesSameKey(t *testing.T) {
	locker := keylock.New()

	var (
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)

	for range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			unlock, err := locker.Lock(context.Background(), "room-1|2024-06-01")
			if err != nil {
				t.Errorf("unexpected error: %v", err)

				return
			}
			defer unlock()

			current := inside.Add(1)
			if current > maxSeen.Load() {
				maxSeen.Store(current)
			}

			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}

	wg.Wait()

	if maxSeen.Load() != 1 {
		t.Errorf("expected at most one holder at a time, saw %d", maxSeen.Load())
	}

	if locker.Held("room-1|2024-06-01") != 0 {
		t.Errorf("expected key to be released, still held by %d", locker.Held("room-1|2024-06-01"))
	}
}

func TestLocker_DifferentKeysDoNotBlock(t *testing.T) {
	locker := keylock.New()

	unlock, err := locker.Lock(context.Background(), "room-1|2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	other, err := locker.Lock(ctx, "room-1|2024-06-02")
	if err != nil {
		t.Fatalf("expected a different key to be free, got %v", err)
	}

	other()
}

func TestLocker_TimesOut(t *testing.T) {
	locker := keylock.New()

	unlock, err := locker.Lock(context.Background(), "room-1|2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Lock(ctx, "room-1|2024-06-01")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}

	if locker.Held("room-1|2024-06-01") != 1 {
		t.Errorf("expected only the holder to remain, got %d", locker.Held("room-1|2024-06-01"))
	}

	unlock()
	unlock()

	if locker.Held("room-1|2024-06-01") != 0 {
		t.Errorf("expected key to be released, got %d", locker.Held("room-1|2024-06-01"))
	}
}
