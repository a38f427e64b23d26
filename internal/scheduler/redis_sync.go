package scheduler

import (
	"context"

	"github.com/MrSnakeDoc/awareness/internal/index"
	"github.com/MrSnakeDoc/awareness/internal/logger"
)

// RevisionLoader reads every shared page of one revision.
type RevisionLoader interface {
	LoadRevision(ctx context.Context, revision string) ([]*index.Entry, error)
}

// RedisSyncer warms the memory cache from Redis on startup
type RedisSyncer struct {
	store  RevisionLoader
	cache  *index.PageCache
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store RevisionLoader,
	cache *index.PageCache,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		cache:  cache,
		logger: log,
	}
}

// Sync copies the pages Redis holds for the live revision into memory.
// It must run after the first content load.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rev := rs.cache.Revision()
	if rev == "" {
		rs.logger.Debug("no revision yet, skipping redis warm-up")
		return nil
	}

	rs.logger.Info("warming page cache from redis",
		logger.String("revision", rev))

	entries, err := rs.store.LoadRevision(ctx, rev)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		rs.logger.Info("no pages found in redis")
		return nil
	}

	added := rs.cache.PutAll(entries)

	rs.logger.Info("warmed page cache from redis",
		logger.Int("count", added))

	return nil
}
