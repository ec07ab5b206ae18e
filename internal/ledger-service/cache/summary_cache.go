package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache guarda o resumo calculado de cada perfil para poupar o recálculo a
// cada leitura. Escritas na caderneta invalidam a chave.
type Cache struct{ R *redis.Client }

func New(r *redis.Client) *Cache { return &Cache{R: r} }

func keySummary(profileID string) string { return "summary:profile:" + profileID }

func (c *Cache) GetSummary(ctx context.Context, profileID string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, keySummary(profileID)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) SetSummary(ctx context.Context, profileID string, v any, ttl time.Duration) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, keySummary(profileID), b, ttl).Err()
}

func (c *Cache) InvalidateSummary(ctx context.Context, profileID string) error {
	return c.R.Del(ctx, keySummary(profileID)).Err()
}
