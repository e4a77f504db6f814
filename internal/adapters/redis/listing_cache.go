package redis_adapter

import (
	"addisnest-service/internal/core/domain"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "addisnest:listings"
	versionKey = keyPrefix + ":version"
)

// ListingCache кэширует страницы выдачи. Сброс - инкремент версии:
// старые ключи перестают читаться и доживают до своего TTL.
type ListingCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewListingCache(client redis.Cmdable, ttl time.Duration) (*ListingCache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListingCache{client: client, ttl: ttl}, nil
}

// NewClient создает клиента и проверяет соединение
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Get читает страницу под текущей версией. При промахе возвращает ключ этой версии:
// если до Set кто-то вызовет Invalidate, страница ляжет под устаревший ключ и читаться не будет.
func (c *ListingCache) Get(ctx context.Context, query domain.ListingQuery) (*domain.ListingPage, string, error) {
	key, err := c.key(ctx, query)
	if err != nil {
		return nil, "", err
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, key, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("redis get failed: %w", err)
	}

	var page domain.ListingPage
	if err := json.Unmarshal(data, &page); err != nil {
		// битая запись перезапишется свежей страницей
		return nil, key, fmt.Errorf("cached page is corrupted: %w", err)
	}
	return &page, key, nil
}

// Set сохраняет страницу под ключом, который вернул Get.
func (c *ListingCache) Set(ctx context.Context, key string, page *domain.ListingPage) error {
	if key == "" {
		return fmt.Errorf("cache key is empty")
	}
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *ListingCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("redis invalidate failed: %w", err)
	}
	return nil
}

func (c *ListingCache) key(ctx context.Context, query domain.ListingQuery) (string, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("redis version read failed: %w", err)
	}
	return QueryCacheKey(version, query)
}

// QueryCacheKey: md5 от JSON запроса. Поля ListingQuery сериализуются в фиксированном порядке.
func QueryCacheKey(version int64, query domain.ListingQuery) (string, error) {
	raw, err := json.Marshal(query)
	if err != nil {
		return "", fmt.Errorf("failed to marshal query: %w", err)
	}
	hash := md5.Sum(raw)
	return fmt.Sprintf("%s:v%d:%s", keyPrefix, version, hex.EncodeToString(hash[:])), nil
}
