package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/startpage/internal/store"
)

// Store persists the configuration document under a single Redis key
type Store struct {
	client *redis.Client
	key    string
}

var _ store.Backend = (*Store)(nil)

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
		key:    ConfigKey(),
	}
}

// Load returns the persisted document, or store.ErrNotFound when the key is absent
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	return data, nil
}

// Save replaces the persisted document. The key never expires.
func (s *Store) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Ping checks the underlying connection
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
