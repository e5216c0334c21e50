package keylock

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

type entry struct {
	sem     *semaphore.Weighted
	waiters int
}

// Locker hands out one mutual-exclusion scope per key. Different keys never block each other.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Locker {
	return &Locker{
		entries: map[string]*entry{},
	}
}

// Lock blocks until the scope for key is free or ctx is done. The returned func releases the scope.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()

	ent, ok := l.entries[key]
	if !ok {
		ent = &entry{sem: semaphore.NewWeighted(1)}
		l.entries[key] = ent
	}

	ent.waiters++
	l.mu.Unlock()

	if err := ent.sem.Acquire(ctx, 1); err != nil {
		l.release(key, ent, false)

		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			l.release(key, ent, true)
		})
	}, nil
}

// Held returns how many callers currently hold or wait for key.
func (l *Locker) Held(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ent, ok := l.entries[key]; ok {
		return ent.waiters
	}

	return 0
}

func (l *Locker) release(key string, ent *entry, acquired bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if acquired {
		ent.sem.Release(1)
	}

	ent.waiters--
	if ent.waiters == 0 {
		delete(l.entries, key)
	}
}
