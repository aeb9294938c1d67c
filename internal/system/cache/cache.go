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

// Package cache provides a centralized cache management system for different cache implementations.
package cache

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/log"
)

// internalCacheInterface defines the common interface for internal cache implementations.
type internalCacheInterface[T any] interface {
	Set(key CacheKey, value T) error
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey) error
	Clear() error
	GetStats() CacheStat
	CleanupExpired()
}

// CacheInterface defines the common interface for cache operations.
type CacheInterface[T any] interface {
	GetName() string
	Set(key CacheKey, value T) error
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey) error
	Clear() error
	IsEnabled() bool
	GetStats() CacheStat
	CleanupExpired()
}

// Cache implements the CacheInterface for individual caches.
// Backend failures are logged and swallowed so that a cache outage degrades to a miss.
type Cache[T any] struct {
	enabled       bool
	cacheName     string
	InternalCache internalCacheInterface[T]
}

// newCache creates a new cache instance from the runtime configuration.
func newCache[T any](cacheName string) CacheInterface[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", cacheName))

	cacheConfig := config.GetServerRuntime().Config.Cache
	if cacheConfig.Disabled {
		logger.Debug("Caching is disabled, returning empty")
		return &Cache[T]{cacheName: cacheName}
	}

	cacheProperty := getCacheProperty(cacheConfig, cacheName)
	if cacheProperty.Disabled {
		logger.Debug("Individual cache is disabled, returning empty")
		return &Cache[T]{cacheName: cacheName}
	}

	size := firstPositive(cacheProperty.Size, cacheConfig.Size, defaultCacheSize)
	ttl := time.Duration(firstPositive(cacheProperty.TTL, cacheConfig.TTL, defaultCacheTTL)) * time.Second

	var internalCache internalCacheInterface[T]
	switch getCacheType(cacheConfig) {
	case cacheTypeRedis:
		logger.Debug("Initializing the redis cache", log.String("address", cacheConfig.Redis.Address))
		client := redis.NewClient(&redis.Options{
			Addr:     cacheConfig.Redis.Address,
			Password: cacheConfig.Redis.Password,
			DB:       cacheConfig.Redis.DB,
		})
		internalCache = newRedisCache[T](client, cacheName, cacheConfig.Redis.KeyPrefix, ttl)
	default:
		logger.Debug("Initializing the in-memory cache", log.Int("size", size))
		internalCache = newInMemoryCache[T](size, ttl)
	}

	return &Cache[T]{
		enabled:       true,
		cacheName:     cacheName,
		InternalCache: internalCache,
	}
}

// GetName returns the name of the cache.
func (c *Cache[T]) GetName() string {
	return c.cacheName
}

// Set stores a value in the cache.
func (c *Cache[T]) Set(key CacheKey, value T) error {
	if !c.IsEnabled() {
		return nil
	}
	if err := c.InternalCache.Set(key, value); err != nil {
		c.logger().Warn("Failed to set value in the cache", log.String("key", key.ToString()), log.Error(err))
	}
	return nil
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key CacheKey) (T, bool) {
	if c.IsEnabled() {
		if value, found := c.InternalCache.Get(key); found {
			return value, true
		}
	}
	var zero T
	return zero, false
}

// Delete removes a value from the cache.
func (c *Cache[T]) Delete(key CacheKey) error {
	if !c.IsEnabled() {
		return nil
	}
	if err := c.InternalCache.Delete(key); err != nil {
		c.logger().Warn("Failed to delete value from the cache", log.String("key", key.ToString()), log.Error(err))
	}
	return nil
}

// Clear removes all entries in the cache.
func (c *Cache[T]) Clear() error {
	if !c.IsEnabled() {
		return nil
	}
	c.logger().Debug("Clearing all entries in the cache")
	if err := c.InternalCache.Clear(); err != nil {
		c.logger().Warn("Failed to clear the cache", log.Error(err))
	}
	return nil
}

// IsEnabled returns whether the cache is enabled.
func (c *Cache[T]) IsEnabled() bool {
	return c.enabled && c.InternalCache != nil
}

// GetStats returns the statistics of the cache.
func (c *Cache[T]) GetStats() CacheStat {
	if !c.IsEnabled() {
		return CacheStat{Enabled: false}
	}
	return c.InternalCache.GetStats()
}

// CleanupExpired cleans up expired entries in the cache.
func (c *Cache[T]) CleanupExpired() {
	if c.IsEnabled() {
		c.InternalCache.CleanupExpired()
	}
}

func (c *Cache[T]) logger() *log.Logger {
	return log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", c.cacheName))
}

// getCacheType retrieves the cache type from the configuration.
func getCacheType(cacheConfig config.CacheConfig) cacheType {
	switch cacheConfig.Type {
	case "", string(cacheTypeInMemory):
		return cacheTypeInMemory
	case string(cacheTypeRedis):
		return cacheTypeRedis
	default:
		log.GetLogger().Warn("Unknown cache type, defaulting to in-memory cache",
			log.String("type", cacheConfig.Type))
		return cacheTypeInMemory
	}
}

// getCacheProperty retrieves the cache property for the specified cache name.
func getCacheProperty(cacheConfig config.CacheConfig, cacheName string) config.CacheProperty {
	for _, property := range cacheConfig.Properties {
		if property.Name == cacheName {
			return property
		}
	}
	return config.CacheProperty{}
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
