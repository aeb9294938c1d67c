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
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/serlo/frontend-gateway/internal/system/config"
)

type CacheTestSuite struct {
	suite.Suite
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (suite *CacheTestSuite) initRuntime(cacheConfig config.CacheConfig) {
	config.ResetServerRuntime()
	resetCacheStore()
	_ = config.InitializeServerRuntime("", &config.Config{Cache: cacheConfig})
}

func (suite *CacheTestSuite) TearDownTest() {
	config.ResetServerRuntime()
	resetCacheStore()
}

func (suite *CacheTestSuite) TestDisabledCache() {
	suite.initRuntime(config.CacheConfig{Disabled: true})

	cache := newCache[string]("IdentityFlowCache")
	assert.False(suite.T(), cache.IsEnabled())
	assert.NoError(suite.T(), cache.Set(CacheKey{Key: "a"}, "1"))
	_, ok := cache.Get(CacheKey{Key: "a"})
	assert.False(suite.T(), ok)
	assert.NoError(suite.T(), cache.Delete(CacheKey{Key: "a"}))
	assert.NoError(suite.T(), cache.Clear())
	assert.False(suite.T(), cache.GetStats().Enabled)
}

func (suite *CacheTestSuite) TestIndividuallyDisabledCache() {
	suite.initRuntime(config.CacheConfig{
		Properties: []config.CacheProperty{{Name: "IdentityFlowCache", Disabled: true}},
	})

	assert.False(suite.T(), newCache[string]("IdentityFlowCache").IsEnabled())
	assert.True(suite.T(), newCache[string]("OtherCache").IsEnabled())
}

func (suite *CacheTestSuite) TestInMemoryFromConfig() {
	suite.initRuntime(config.CacheConfig{
		Type:       "unknown",
		Properties: []config.CacheProperty{{Name: "IdentityFlowCache", Size: 5, TTL: 60}},
	})

	cache := newCache[string]("IdentityFlowCache")
	assert.Equal(suite.T(), "IdentityFlowCache", cache.GetName())
	assert.NoError(suite.T(), cache.Set(CacheKey{Key: "a"}, "1"))
	value, ok := cache.Get(CacheKey{Key: "a"})
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "1", value)
	assert.Equal(suite.T(), 5, cache.GetStats().MaxSize)
}

func (suite *CacheTestSuite) TestRedisFromConfig() {
	server := miniredis.RunT(suite.T())
	suite.initRuntime(config.CacheConfig{
		Type:  "redis",
		Redis: config.RedisConfig{Address: server.Addr(), KeyPrefix: "gw"},
	})

	cache := newCache[string]("IdentityFlowCache")
	assert.NoError(suite.T(), cache.Set(CacheKey{Key: "a"}, "1"))
	assert.True(suite.T(), server.Exists("gw:IdentityFlowCache:a"))

	value, ok := cache.Get(CacheKey{Key: "a"})
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), "1", value)
}

func (suite *CacheTestSuite) TestBackendFailureIsSwallowed() {
	server := miniredis.RunT(suite.T())
	suite.initRuntime(config.CacheConfig{Type: "redis", Redis: config.RedisConfig{Address: server.Addr()}})
	cache := newCache[string]("IdentityFlowCache")
	server.Close()

	assert.NoError(suite.T(), cache.Set(CacheKey{Key: "a"}, "1"))
	_, ok := cache.Get(CacheKey{Key: "a"})
	assert.False(suite.T(), ok)
}

func (suite *CacheTestSuite) TestGetCacheSingleton() {
	suite.initRuntime(config.CacheConfig{})

	first := GetCache[string]("IdentityFlowCache")
	second := GetCache[string]("IdentityFlowCache")
	other := GetCache[int]("IdentityFlowCache")

	assert.Same(suite.T(), first, second)
	assert.NotNil(suite.T(), other)
	_ = first.Set(CacheKey{Key: "a"}, "1")
	_, ok := other.Get(CacheKey{Key: "a"})
	assert.False(suite.T(), ok)
}
