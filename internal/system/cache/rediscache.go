/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache stores JSON encoded values in redis with a fixed TTL.
type redisCache[T any] struct {
	client    redis.UniversalClient
	prefix    string
	ttl       time.Duration
	hitCount  atomic.Int64
	missCount atomic.Int64
}

// newRedisCache creates a redis backed cache. Keys are namespaced as "<prefix>:<cacheName>:<key>".
func newRedisCache[T any](client redis.UniversalClient, cacheName, keyPrefix string, ttl time.Duration) *redisCache[T] {
	prefix := cacheName
	if keyPrefix != "" {
		prefix = keyPrefix + ":" + cacheName
	}
	return &redisCache[T]{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *redisCache[T]) redisKey(key CacheKey) string {
	return c.prefix + ":" + key.ToString()
}

func (c *redisCache[T]) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisOperationTimeout*time.Second)
}

// Set stores the JSON encoding of the value.
func (c *redisCache[T]) Set(key CacheKey, value T) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	ctx, cancel := c.context()
	defer cancel()
	return c.client.Set(ctx, c.redisKey(key), payload, c.ttl).Err()
}

// Get loads and decodes a value. Decoding failures count as a miss.
func (c *redisCache[T]) Get(key CacheKey) (T, bool) {
	var zero T

	ctx, cancel := c.context()
	defer cancel()

	payload, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if err != nil {
		c.missCount.Add(1)
		return zero, false
	}

	var value T
	if err := json.Unmarshal(payload, &value); err != nil {
		c.missCount.Add(1)
		return zero, false
	}
	c.hitCount.Add(1)
	return value, true
}

// Delete removes a value.
func (c *redisCache[T]) Delete(key CacheKey) error {
	ctx, cancel := c.context()
	defer cancel()
	return c.client.Del(ctx, c.redisKey(key)).Err()
}

// Clear removes every key of this cache.
func (c *redisCache[T]) Clear() error {
	ctx, cancel := c.context()
	defer cancel()

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+":*", redisScanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// GetStats returns the hit and miss counters. Size is not tracked for redis.
func (c *redisCache[T]) GetStats() CacheStat {
	hits := c.hitCount.Load()
	misses := c.missCount.Load()
	return CacheStat{
		Enabled:   true,
		HitCount:  hits,
		MissCount: misses,
		HitRate:   hitRate(hits, misses),
	}
}

// CleanupExpired is a no-op: redis expires keys itself.
func (c *redisCache[T]) CleanupExpired() {}
