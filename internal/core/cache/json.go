package cache

import (
	"context"
	"encoding/json"
	"time"
)

// GetOrLoadJSON wraps GetOrLoad with JSON (de)serialization of a typed value.
// "null" 作为负缓存哨兵：load 返回 nil 即缓存住"不存在"。
func GetOrLoadJSON[T any](
	c *Cache,
	ctx context.Context,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (*T, error),
) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if v == nil {
			return []byte("null"), nil
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	if string(b) == "null" {
		return nil, nil
	}
	var out T
	if e := json.Unmarshal(b, &out); e != nil {
		return nil, e
	}
	return &out, nil
}
