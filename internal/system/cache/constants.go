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

// cacheType defines the type of cache being used.
type cacheType string

const (
	// cacheTypeInMemory represents an in-memory cache type.
	cacheTypeInMemory cacheType = "inmemory"
	// cacheTypeRedis represents a redis backed cache type.
	cacheTypeRedis cacheType = "redis"
)

const (
	// defaultCacheTTL represents the default TTL for cache entries in seconds.
	defaultCacheTTL = 3600
	// defaultCacheSize represents the default size for the caches.
	defaultCacheSize = 1000
	// redisOperationTimeout bounds every redis round trip in seconds.
	redisOperationTimeout = 2
	// redisScanCount is the page size used while clearing a redis cache.
	redisScanCount = 100
)
