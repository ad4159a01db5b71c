// Package redis provides a Redis-backed store.Store so wizard sessions can be
// shared by several server replicas.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-formwizard/pkg/store"
)

// Config contains configuration options for the Redis store. Defaults can be
// loaded from the environment via NewFromEnv.
type Config struct {
	// Addr like "localhost:6379". ENV: REDIS_ADDR
	Addr string `env:"REDIS_ADDR,default=localhost:6379"`

	// KeyPrefix for all keys. ENV: FORMWIZARD_REDIS_PREFIX
	KeyPrefix string `env:"FORMWIZARD_REDIS_PREFIX,default=formwizard:"`

	// TTL expires abandoned sessions; zero keeps them forever.
	// ENV: FORMWIZARD_REDIS_TTL
	TTL time.Duration `env:"FORMWIZARD_REDIS_TTL,default=0s"`
}

// Store implements store.Store using Redis strings.
type Store struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// New dials cfg.Addr and pings it so misconfiguration surfaces at startup.
func New(cfg Config) (*Store, error) {
	addr := cfg.Addr
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis store: ping %s: %w", addr, err)
	}
	return NewWithClient(client, cfg), nil
}

// NewWithClient wraps an existing client; cfg.Addr is ignored. The store
// takes ownership of the client and closes it on Close.
func NewWithClient(client *redis.Client, cfg Config) *Store {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "formwizard:"
	}
	return &Store{
		client:    client,
		keyPrefix: prefix,
		ttl:       cfg.TTL,
	}
}

// NewFromEnv builds a Store using envdecode to populate Config.
func NewFromEnv() (*Store, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("redis store: decode env: %w", err)
	}
	return New(cfg)
}

// Load retrieves the blob stored under key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if err := store.ValidateKey(key); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, s.buildKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis store: get %q: %w", key, err)
	}
	return data, nil
}

// Save stores blob under key, applying the configured TTL.
func (s *Store) Save(ctx context.Context, key string, blob []byte) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.buildKey(key), blob, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis store: set %q: %w", key, err)
	}
	return nil
}

// Clear deletes key.
func (s *Store) Clear(ctx context.Context, key string) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	if err := s.client.Del(ctx, s.buildKey(key)).Err(); err != nil {
		return fmt.Errorf("redis store: del %q: %w", key, err)
	}
	return nil
}

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) buildKey(key string) string {
	return s.keyPrefix + "session:" + key
}

// Compile-time interface check
var _ store.Store = (*Store)(nil)
