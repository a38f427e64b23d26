package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/awareness/internal/index"
)

// SavePage stores a rendered page
func (s *Store) SavePage(ctx context.Context, e *index.Entry, ttl time.Duration) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	if err := s.client.Set(ctx, PageKey(e.Revision, e.Key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save page: %w", err)
	}
	return nil
}

// GetPage retrieves a rendered page. A miss returns nil, nil.
func (s *Store) GetPage(ctx context.Context, revision, key string) (*index.Entry, error) {
	data, err := s.client.Get(ctx, PageKey(revision, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	var e index.Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal page: %w", err)
	}
	return &e, nil
}

// LoadRevision returns every stored page of revision
func (s *Store) LoadRevision(ctx context.Context, revision string) ([]*index.Entry, error) {
	var entries []*index.Entry

	iter := s.client.Scan(ctx, 0, RevisionPattern(revision), scanBatch).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			// Expired between SCAN and GET
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to load page: %w", err)
		}
		var e index.Entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		entries = append(entries, &e)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan pages: %w", err)
	}
	return entries, nil
}

// FlushStale removes pages of every revision except keep
func (s *Store) FlushStale(ctx context.Context, keep string) (int, error) {
	removed := 0
	iter := s.client.Scan(ctx, 0, KeyPrefixPage+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		rev, err := ExtractRevision(iter.Val())
		if err == nil && rev == keep {
			continue
		}
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("failed to delete page key: %w", err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to flush stale pages: %w", err)
	}
	return removed, nil
}
