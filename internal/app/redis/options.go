package redis

import (
	"context"
	"encoding/json"
	"time"

	"irrigation-dashboard/internal/app/selector"

	"github.com/sirupsen/logrus"
)

// OptionCache - общий для всех экземпляров дашборда кэш вариантов выпадающих списков
type OptionCache struct {
	client *Client
}

func NewOptionCache(client *Client) *OptionCache {
	return &OptionCache{client: client}
}

func (c *OptionCache) Get(ctx context.Context, key string) ([]selector.Option, bool) {
	raw, ok, err := c.client.options(ctx, key)
	if err != nil {
		logrus.Warnf("option cache read %s failed: %v", key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var options []selector.Option
	if err := json.Unmarshal(raw, &options); err != nil {
		logrus.Warnf("dropping unreadable option cache entry %s: %v", key, err)
		_ = c.client.dropOptions(ctx, key)
		return nil, false
	}
	return options, true
}

func (c *OptionCache) Set(ctx context.Context, key string, options []selector.Option, ttl time.Duration) {
	encoded, err := json.Marshal(options)
	if err != nil {
		return
	}
	if err := c.client.putOptions(ctx, key, encoded, ttl); err != nil {
		logrus.Warnf("failed to cache options %s: %v", key, err)
	}
}
