package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultKey is the redis list holding the commit history.
const DefaultKey = "inventory:commits"

// RedisJournal stores entries as JSON in a capped redis list.
type RedisJournal struct {
	rdb *redis.Client
	key string
	max int64
}

func NewRedisJournal(rdb *redis.Client, key string, max int) *RedisJournal {
	if key == "" {
		key = DefaultKey
	}
	return &RedisJournal{rdb: rdb, key: key, max: int64(max)}
}

// Connect opens a client for addr and checks it answers.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}
	return rdb, nil
}

func (j *RedisJournal) Record(ctx context.Context, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode journal entry: %w", err)
	}

	pipe := j.rdb.TxPipeline()
	pipe.RPush(ctx, j.key, data)
	if j.max > 0 {
		pipe.LTrim(ctx, j.key, -j.max, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record journal entry: %w", err)
	}
	return nil
}

func (j *RedisJournal) Recent(ctx context.Context, n int) ([]Entry, error) {
	start := int64(0)
	if n > 0 {
		start = -int64(n)
	}

	items, err := j.rdb.LRange(ctx, j.key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	return decodeEntries(j.key, items), nil
}

// decodeEntries keeps the items that decode. Broken ones are logged and dropped.
func decodeEntries(key string, items []string) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			zap.L().Warn("skipping undecodable journal entry", zap.String("key", key), zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
