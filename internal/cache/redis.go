package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Freeeeeet/rental_booking/internal/model"
	"github.com/redis/go-redis/v9"
)

const (
	availabilityPrefix = "cache:availability:"
	scanBatch          = 100
)

type RedisCache struct {
	client          redis.UniversalClient
	availabilityTTL time.Duration
}

func NewRedisCache(client redis.UniversalClient, availabilityTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:          client,
		availabilityTTL: availabilityTTL,
	}
}

// NewRedisClient создаёт клиента и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// GetAvailability возвращает загрузку на день или nil, если в кэше ничего нет
func (c *RedisCache) GetAvailability(ctx context.Context, day string) (map[string]model.Availability, error) {
	data, err := c.client.Get(ctx, availabilityKey(day)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var availability map[string]model.Availability
	if err := json.Unmarshal(data, &availability); err != nil {
		return nil, err
	}
	return availability, nil
}

func (c *RedisCache) SetAvailability(ctx context.Context, day string, availability map[string]model.Availability) error {
	payload, err := json.Marshal(availability)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, availabilityKey(day), payload, c.availabilityTTL).Err()
}

func (c *RedisCache) InvalidateAvailability(ctx context.Context, day string) error {
	return c.client.Del(ctx, availabilityKey(day)).Err()
}

// InvalidateAllAvailability удаляет загрузку по всем дням
func (c *RedisCache) InvalidateAllAvailability(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, availabilityPrefix+"*", scanBatch).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func availabilityKey(day string) string {
	return availabilityPrefix + day
}
