package redis

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const countKeyPrefix = "ccount:"

// CommentCountCacheRedis keeps per-post comment counts in plain Redis
// counters. A missing key means "cold", never "zero"; callers fall back to
// the database and backfill with Set.
type CommentCountCacheRedis struct {
	Client *redis.Client
}

func NewCommentCountCacheRedis(client *redis.Client) *CommentCountCacheRedis {
	return &CommentCountCacheRedis{Client: client}
}

func (r *CommentCountCacheRedis) Get(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	keys := make([]string, len(postIDs))
	for i, id := range postIDs {
		keys[i] = countKeyPrefix + id
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // cold key
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			continue
		}
		counts[postIDs[i]] = n
	}
	return counts, nil
}

func (r *CommentCountCacheRedis) Set(ctx context.Context, postID string, count int64) error {
	return r.Client.Set(ctx, countKeyPrefix+postID, count, 0).Err()
}

func (r *CommentCountCacheRedis) Incr(ctx context.Context, postID string) error {
	return r.Client.Incr(ctx, countKeyPrefix+postID).Err()
}

func (r *CommentCountCacheRedis) Decr(ctx context.Context, postID string) error {
	return r.Client.Decr(ctx, countKeyPrefix+postID).Err()
}

func (r *CommentCountCacheRedis) Invalidate(ctx context.Context, postID string) error {
	return r.Client.Del(ctx, countKeyPrefix+postID).Err()
}
