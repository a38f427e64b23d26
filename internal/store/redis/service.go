package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// scanBatch is the COUNT hint passed to SCAN
const scanBatch = 100

// Store handles Redis operations for the shared page cache
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

// PublishRevision records the content revision this instance serves
func (s *Store) PublishRevision(ctx context.Context, revision string) error {
	if err := s.client.Set(ctx, KeyRevision, revision, 0).Err(); err != nil {
		return fmt.Errorf("failed to publish revision: %w", err)
	}
	return nil
}

// GetRevision returns the last published revision, empty if none
func (s *Store) GetRevision(ctx context.Context) (string, error) {
	rev, err := s.client.Get(ctx, KeyRevision).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get revision: %w", err)
	}
	return rev, nil
}
