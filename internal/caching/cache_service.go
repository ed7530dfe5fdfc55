package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"tableside/internal/models"
)

type CacheService interface {
	// Menu item caching
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
	SetMenuItem(ctx context.Context, item *models.MenuItem, ttl time.Duration) error
	DeleteMenuItem(ctx context.Context, id int64) error

	// Dashboard caching, keyed by calendar day (YYYY-MM-DD)
	GetDailyStats(ctx context.Context, day string) (*models.DailyStats, error)
	SetDailyStats(ctx context.Context, day string, stats *models.DailyStats, ttl time.Duration) error
	InvalidateDashboard(ctx context.Context) error

	// Session management
	SetSession(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port style addresses as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	key := fmt.Sprintf("tableside:menu:%d", id)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var item models.MenuItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *redisCacheService) SetMenuItem(ctx context.Context, item *models.MenuItem, ttl time.Duration) error {
	key := fmt.Sprintf("tableside:menu:%d", item.ID)
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteMenuItem(ctx context.Context, id int64) error {
	key := fmt.Sprintf("tableside:menu:%d", id)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetDailyStats(ctx context.Context, day string) (*models.DailyStats, error) {
	key := fmt.Sprintf("tableside:dashboard:%s", day)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stats models.DailyStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *redisCacheService) SetDailyStats(ctx context.Context, day string, stats *models.DailyStats, ttl time.Duration) error {
	key := fmt.Sprintf("tableside:dashboard:%s", day)
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidateDashboard(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "tableside:dashboard:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetSession(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	key := fmt.Sprintf("tableside:session:%s", sessionID)
	return r.client.Set(ctx, key, userID, ttl).Err()
}

func (r *redisCacheService) GetSession(ctx context.Context, sessionID string) (string, error) {
	key := fmt.Sprintf("tableside:session:%s", sessionID)
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // not found
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) DeleteSession(ctx context.Context, sessionID string) error {
	key := fmt.Sprintf("tableside:session:%s", sessionID)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
