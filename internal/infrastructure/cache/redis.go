package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	leaderboardKey = "leaderboard:top"
	leaderboardTTL = 30 * time.Second
)

type LeaderboardEntry struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
	AvatarID int    `json:"avatar_id"`
}

// LeaderboardCache снимает нагрузку с основной таблицы users:
// топ пересчитывается не чаще раза в 30 секунд, а начисления
// очков просто сбрасывают ключ.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

func (c *LeaderboardCache) Get(ctx context.Context) ([]LeaderboardEntry, error) {
	raw, err := c.client.Get(ctx, leaderboardKey).Result()
	if err != nil {
		return nil, err // redis.Nil на промахе — решает вызывающий
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, entries []LeaderboardEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, leaderboardKey, raw, leaderboardTTL).Err()
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, leaderboardKey).Err()
}
