// Package redis хранит в Redis сессии дашборда и общий кэш вариантов выбора,
// чтобы несколько экземпляров за балансировщиком видели одно состояние.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"irrigation-dashboard/internal/app/config"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	pingTimeout = 5 * time.Second

	// Префиксы для ключей Redis
	sessionPrefix = "dashboard:session:"
	optionsPrefix = "dashboard:options:"
)

// Client - доступ к ключам дашборда. Все ключи пишутся с TTL.
type Client struct {
	client *redis.Client
}

// NewClient подключается к Redis из конфигурации и проверяет соединение
func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", rdb.Options().Addr, err)
	}

	logrus.Infof("Redis connected at %s", rdb.Options().Addr)
	return &Client{client: rdb}, nil
}

// NewFromRedis оборачивает готовый клиент (используется в тестах)
func NewFromRedis(rdb *redis.Client) *Client {
	return &Client{client: rdb}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// putSession заменяет поля сессии и TTL одной транзакцией
func (c *Client) putSession(ctx context.Context, id string, fields map[string]interface{}, ttl time.Duration) error {
	key := sessionPrefix + id
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

// sessionFields читает поля сессии. Отсутствующая сессия дает пустой map.
func (c *Client) sessionFields(ctx context.Context, id string) (map[string]string, error) {
	return c.client.HGetAll(ctx, sessionPrefix+id).Result()
}

func (c *Client) dropSession(ctx context.Context, id string) error {
	return c.client.Del(ctx, sessionPrefix+id).Err()
}

// options возвращает закодированный список вариантов; ok=false для промаха
func (c *Client) options(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, optionsPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (c *Client) putOptions(ctx context.Context, key string, encoded []byte, ttl time.Duration) error {
	return c.client.Set(ctx, optionsPrefix+key, encoded, ttl).Err()
}

func (c *Client) dropOptions(ctx context.Context, key string) error {
	return c.client.Del(ctx, optionsPrefix+key).Err()
}
