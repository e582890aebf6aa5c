package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"reviewBack/internal/models"
)

// StatsCache is an optional cache-aside layer for per-page aggregates.
// A nil *StatsCache is valid and disables caching entirely.
type StatsCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewStatsCache(addr, password string, db int, ttl time.Duration) *StatsCache {
	if addr == "" {
		return nil
	}
	return &StatsCache{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		TTL: ttl,
	}
}

func statsKey(pageID string) string {
	return "review:stats:" + pageID
}

func (c *StatsCache) GetPageStats(ctx context.Context, pageID string) (models.PageStats, bool) {
	if c == nil {
		return models.PageStats{}, false
	}
	data, err := c.Client.Get(ctx, statsKey(pageID)).Bytes()
	if err != nil {
		return models.PageStats{}, false
	}
	var stats models.PageStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return models.PageStats{}, false
	}
	return stats, true
}

func (c *StatsCache) SetPageStats(ctx context.Context, pageID string, stats models.PageStats) {
	if c == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, statsKey(pageID), data, c.TTL).Err(); err != nil {
		log.Printf("stats cache set failed for %s: %v", pageID, err)
	}
}

func (c *StatsCache) Invalidate(ctx context.Context, pageID string) {
	if c == nil {
		return
	}
	if err := c.Client.Del(ctx, statsKey(pageID)).Err(); err != nil {
		log.Printf("stats cache invalidate failed for %s: %v", pageID, err)
	}
}
