// Package ratelimit provides fixed-window request counting. The window
// resets entirely at its deadline; there is no rolling decay.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CounterStore counts hits per key within a fixed window. Implementations
// must be safe for concurrent use; concurrent increments to the same key
// must not lose updates.
type CounterStore interface {
	// Incr bumps the counter for key and returns the new count within the
	// current window. A fresh window starts at 1.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// ==================== IN-MEMORY ====================

type memoryWindow struct {
	count    int64
	resetsAt time.Time
}

// MemoryStore is a process-local counter map, suitable for single-instance
// deployments. Key cardinality is unbounded; expired windows are dropped
// lazily on the next hit for the same key.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*memoryWindow
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*memoryWindow),
		now:     time.Now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || now.After(w.resetsAt) {
		// Window expired: replace it wholesale
		w = &memoryWindow{count: 0, resetsAt: now.Add(window)}
		s.windows[key] = w
	}

	w.count++
	return w.count, nil
}

// ==================== REDIS ====================

// RedisStore shares counters across instances. INCR is atomic on the
// server; the expiry is attached when the window is first created.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}
