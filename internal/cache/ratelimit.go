// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateKeyPrefix is the Valkey key prefix for rate limit counters.
const rateKeyPrefix = "rate:"

// RateCounter is a fixed-window request counter shared by all server
// instances through Valkey.
type RateCounter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewRateCounter allows limit requests per key in each window.
func NewRateCounter(client *redis.Client, limit int, window time.Duration) *RateCounter {
	return &RateCounter{client: client, limit: int64(limit), window: window}
}

// Allow counts one request for key and reports whether it is within the limit.
func (rc *RateCounter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := time.Now().Truncate(rc.window).Unix()
	k := fmt.Sprintf("%s%s:%d", rateKeyPrefix, key, windowStart)

	pipe := rc.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, rc.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate counter %s: %w", key, err)
	}
	return incr.Val() <= rc.limit, nil
}
