// Package redisstore persists the weather mode in Redis.
//
// The mode lives under a single string key with no expiry, so every page or
// process pointed at the same server restores the same mode:
//
//	store, err := redisstore.New(ctx, redisstore.Config{Addr: "localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//	engine := weather.NewEngine(doc, weather.WithStore(store))
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKey matches weather.DefaultConfig().StoreKey.
const DefaultKey = "theme-fuwari-weather"

// Config configures a Store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Key is the string key holding the mode. Defaults to DefaultKey.
	Key string
}

// Store implements weather.ModeStore over a Redis string key.
type Store struct {
	client *redis.Client
	key    string
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisstore: ping %s: %w", cfg.Addr, err)
	}
	return NewWithClient(client, cfg.Key), nil
}

// NewWithClient wraps an existing client. An empty key selects DefaultKey.
func NewWithClient(client *redis.Client, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

// Load returns the stored mode, or "" when the key does not exist.
func (s *Store) Load(ctx context.Context) (string, error) {
	v, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redisstore: get %s: %w", s.key, err)
	}
	return v, nil
}

// Save stores mode with no expiry.
func (s *Store) Save(ctx context.Context, mode string) error {
	if err := s.client.Set(ctx, s.key, mode, 0).Err(); err != nil {
		return fmt.Errorf("redisstore: set %s: %w", s.key, err)
	}
	return nil
}

// Key returns the key the mode is stored under.
func (s *Store) Key() string {
	return s.key
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
