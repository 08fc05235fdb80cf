package recentsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flight-search/skysearch/internal/domain"
)

// DefaultTTL matches the maximum age of a log entry.
const DefaultTTL = 30 * 24 * time.Hour

// RedisConfig holds the connection settings.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings the server.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// RedisStore keeps each client's log as one JSON array under Key(clientID).
// Every save refreshes the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. A non-positive ttl means DefaultTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Load returns the stored entries or an empty slice when the key is missing.
// A payload that is not a JSON array is reported as an error.
func (s *RedisStore) Load(ctx context.Context, clientID string) ([]domain.RecentSearch, error) {
	raw, err := s.client.Get(ctx, Key(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.RecentSearch{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load recent searches: %w", err)
	}

	var entries []domain.RecentSearch
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode recent searches: %w", err)
	}
	if entries == nil {
		entries = []domain.RecentSearch{}
	}
	return entries, nil
}

// Save replaces the stored entries.
func (s *RedisStore) Save(ctx context.Context, clientID string, entries []domain.RecentSearch) error {
	if entries == nil {
		entries = []domain.RecentSearch{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode recent searches: %w", err)
	}
	if err := s.client.Set(ctx, Key(clientID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save recent searches: %w", err)
	}
	return nil
}

// Delete removes the key.
func (s *RedisStore) Delete(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, Key(clientID)).Err(); err != nil {
		return fmt.Errorf("delete recent searches: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ domain.RecentSearchStore = (*RedisStore)(nil)
