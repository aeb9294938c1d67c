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
	"container/list"
	"sync"
	"time"
)

// lruEntry is the list payload of the in-memory cache.
type lruEntry[T any] struct {
	key   CacheKey
	entry CacheEntry[T]
}

// inMemoryCache is a size bounded LRU cache with a fixed TTL per entry.
type inMemoryCache[T any] struct {
	mu         sync.Mutex
	items      map[CacheKey]*list.Element
	order      *list.List
	size       int
	ttl        time.Duration
	hitCount   int64
	missCount  int64
	evictCount int64
	now        func() time.Time
}

// newInMemoryCache creates a new LRU cache with the given capacity and TTL.
func newInMemoryCache[T any](size int, ttl time.Duration) *inMemoryCache[T] {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL * time.Second
	}
	return &inMemoryCache[T]{
		items: make(map[CacheKey]*list.Element),
		order: list.New(),
		size:  size,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Set adds or refreshes an entry and evicts the least recently used entry when full.
func (c *inMemoryCache[T]) Set(key CacheKey, value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiry := c.now().Add(c.ttl)
	if element, ok := c.items[key]; ok {
		element.Value.(*lruEntry[T]).entry = CacheEntry[T]{Value: value, ExpiryTime: expiry}
		c.order.MoveToFront(element)
		return nil
	}

	if c.order.Len() >= c.size {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
			c.evictCount++
		}
	}

	c.items[key] = c.order.PushFront(&lruEntry[T]{
		key:   key,
		entry: CacheEntry[T]{Value: value, ExpiryTime: expiry},
	})
	return nil
}

// Get returns a live entry and marks it as recently used.
func (c *inMemoryCache[T]) Get(key CacheKey) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	element, ok := c.items[key]
	if !ok {
		c.missCount++
		return zero, false
	}

	payload := element.Value.(*lruEntry[T])
	if c.now().After(payload.entry.ExpiryTime) {
		c.removeElement(element)
		c.missCount++
		return zero, false
	}

	c.order.MoveToFront(element)
	c.hitCount++
	return payload.entry.Value, true
}

// Delete removes an entry.
func (c *inMemoryCache[T]) Delete(key CacheKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.items[key]; ok {
		c.removeElement(element)
	}
	return nil
}

// Clear removes every entry.
func (c *inMemoryCache[T]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[CacheKey]*list.Element)
	c.order.Init()
	return nil
}

// GetStats returns the statistics of the cache.
func (c *inMemoryCache[T]) GetStats() CacheStat {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStat{
		Enabled:    true,
		Size:       c.order.Len(),
		MaxSize:    c.size,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		HitRate:    hitRate(c.hitCount, c.missCount),
		EvictCount: c.evictCount,
	}
}

// CleanupExpired drops every expired entry.
func (c *inMemoryCache[T]) CleanupExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for element := c.order.Back(); element != nil; {
		previous := element.Prev()
		if now.After(element.Value.(*lruEntry[T]).entry.ExpiryTime) {
			c.removeElement(element)
		}
		element = previous
	}
}

// removeElement unlinks the element. The caller holds the lock.
func (c *inMemoryCache[T]) removeElement(element *list.Element) {
	c.order.Remove(element)
	delete(c.items, element.Value.(*lruEntry[T]).key)
}
