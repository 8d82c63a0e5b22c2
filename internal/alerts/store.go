package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/warehouse-inventory/internal/redissvc"
)

const DailyLowStockLogKey = "inventory:lowstock:daily"

// Entry records a stock change that left a product at or below its minimum.
type Entry struct {
	ProductID    int       `json:"product_id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Stock        int       `json:"stock"`
	MinimumStock int       `json:"minimum_stock"`
	PerformedBy  string    `json:"performed_by"`
	Time         time.Time `json:"time"`
}

// Store keeps alert entries until a digest has delivered them.
// Read returns the pending entries and the number of log items they were read
// from. Discard removes that many items from the head of the log, so entries
// appended after Read survive.
type Store interface {
	Append(ctx context.Context, e Entry) error
	Read(ctx context.Context) ([]Entry, int, error)
	Discard(ctx context.Context, n int) error
}

type RedisStore struct {
	rdb *redis.Client
	key string
}

func NewRedisStore(rs *redissvc.RedisService) *RedisStore {
	return &RedisStore{rdb: rs.Rdb(), key: DailyLowStockLogKey}
}

func (s *RedisStore) Append(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, s.key, data).Err()
}

func (s *RedisStore) Read(ctx context.Context) ([]Entry, int, error) {
	items, err := s.rdb.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read low-stock log: %w", err)
	}

	entries := []Entry{}
	for _, item := range items {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries, len(items), nil
}

func (s *RedisStore) Discard(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	if err := s.rdb.LTrim(ctx, s.key, int64(n), -1).Err(); err != nil {
		return fmt.Errorf("failed to trim low-stock log: %w", err)
	}
	return nil
}

// MemoryStore is used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *MemoryStore) Read(_ context.Context) ([]Entry, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, len(out), nil
}

func (s *MemoryStore) Discard(_ context.Context, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n >= len(s.entries) {
		s.entries = nil
		return nil
	}
	if n > 0 {
		s.entries = append([]Entry(nil), s.entries[n:]...)
	}
	return nil
}
