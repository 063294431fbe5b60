package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fathsl/ranya-front-sub000/internal/model"
)

// DefinitionCache is a read-through cache of loaded evaluation blueprints
// (definition plus sorted questions). Live attempt state is never cached;
// abandoning an attempt leaves nothing to rehydrate.
type DefinitionCache interface {
	Get(ctx context.Context, evaluationID string) (*model.Evaluation, error)
	Set(ctx context.Context, eval *model.Evaluation) error
}

type definitionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDefinitionCache creates a Redis-backed definition cache
func NewDefinitionCache(client *redis.Client, ttl time.Duration) DefinitionCache {
	return &definitionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *definitionCache) key(evaluationID string) string {
	return "evaluation:" + evaluationID
}

// Get returns (nil, nil) on a cache miss
func (c *definitionCache) Get(ctx context.Context, evaluationID string) (*model.Evaluation, error) {
	data, err := c.client.Get(ctx, c.key(evaluationID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var eval model.Evaluation
	if err := json.Unmarshal([]byte(data), &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

func (c *definitionCache) Set(ctx context.Context, eval *model.Evaluation) error {
	data, err := json.Marshal(eval)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(eval.ID.String()), data, c.ttl).Err()
}
