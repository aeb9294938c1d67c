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
	"reflect"
	"sync"
	"time"

	"github.com/serlo/frontend-gateway/internal/system/log"
)

// cacheStore is a singleton that holds all named caches.
type cacheStore struct {
	caches map[string]interface{}
	mu     sync.Mutex
}

var (
	instance *cacheStore
	once     sync.Once
)

func getCacheStore() *cacheStore {
	once.Do(func() {
		instance = &cacheStore{caches: make(map[string]interface{})}
	})
	return instance
}

// GetCache returns the singleton cache for the given value type and cache name.
// It returns nil if the name is already registered with a different value type.
func GetCache[T any](cacheName string) CacheInterface[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CacheStore"))

	var t T
	typeName := reflect.TypeOf(&t).Elem().String()
	storeKey := cacheName + ":" + typeName

	cs := getCacheStore()
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if existing, ok := cs.caches[storeKey]; ok {
		if typed, ok := existing.(CacheInterface[T]); ok {
			return typed
		}
		logger.Warn("Type mismatch for cache", log.String("cacheName", cacheName),
			log.String("expectedType", typeName))
		return nil
	}

	logger.Debug("Creating new cache", log.String("cacheName", cacheName), log.String("type", typeName))
	created := newCache[T](cacheName)
	cs.caches[storeKey] = created
	return created
}

// maintainable is the type-erased view of a cache used by the cleanup loop.
type maintainable interface {
	GetName() string
	GetStats() CacheStat
	CleanupExpired()
}

// StartCleanup periodically drops expired entries from every registered cache
// until the context is cancelled.
func StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cleanupAll()
			}
		}
	}()
}

// cleanupAll runs CleanupExpired on a snapshot of the registered caches.
func cleanupAll() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CacheStore"))

	cs := getCacheStore()
	cs.mu.Lock()
	caches := make([]maintainable, 0, len(cs.caches))
	for _, c := range cs.caches {
		if m, ok := c.(maintainable); ok {
			caches = append(caches, m)
		}
	}
	cs.mu.Unlock()

	for _, c := range caches {
		c.CleanupExpired()
		if logger.IsDebugEnabled() {
			stats := c.GetStats()
			logger.Debug("Cache cleanup completed", log.String("cacheName", c.GetName()),
				log.Int("size", stats.Size), log.Any("evictions", stats.EvictCount))
		}
	}
}

// resetCacheStore is used for testing purposes to reset the cache store state.
func resetCacheStore() {
	cs := getCacheStore()
	cs.mu.Lock()
	cs.caches = make(map[string]interface{})
	cs.mu.Unlock()
}
