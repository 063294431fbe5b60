package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ScoreBoard handles Redis ZSET operations for per-evaluation score boards
type ScoreBoard interface {
	RecordScore(ctx context.Context, evaluationID, participantID string, percentage int) error
	Top(ctx context.Context, evaluationID string, limit int) ([]ScoreEntry, error)
}

// ScoreEntry is a single score board row
type ScoreEntry struct {
	ParticipantID string `json:"participantId"`
	Percentage    int    `json:"percentage"`
	Rank          int    `json:"rank"`
}

type scoreBoard struct {
	client *redis.Client
}

// NewScoreBoard creates a Redis-backed score board
func NewScoreBoard(client *redis.Client) ScoreBoard {
	return &scoreBoard{
		client: client,
	}
}

func (c *scoreBoard) key(evaluationID string) string {
	return fmt.Sprintf("evaluation:%s:scores", evaluationID)
}

func (c *scoreBoard) RecordScore(ctx context.Context, evaluationID, participantID string, percentage int) error {
	return c.client.ZAdd(ctx, c.key(evaluationID), redis.Z{
		Score:  float64(percentage),
		Member: participantID,
	}).Err()
}

func (c *scoreBoard) Top(ctx context.Context, evaluationID string, limit int) ([]ScoreEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(evaluationID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreEntry, len(results))
	for i, z := range results {
		entries[i] = ScoreEntry{
			ParticipantID: z.Member.(string),
			Percentage:    int(z.Score),
			Rank:          i + 1,
		}
	}
	return entries, nil
}
