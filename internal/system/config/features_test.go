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

package config

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type FeaturesTestSuite struct {
	suite.Suite
	toggles []FeatureToggle
}

func TestFeaturesSuite(t *testing.T) {
	suite.Run(t, new(FeaturesTestSuite))
}

func (suite *FeaturesTestSuite) SetupTest() {
	suite.toggles = []FeatureToggle{
		{Name: "addRevisionMutation", CookieName: "useAddRevisionMutation", ActiveInDev: true},
		{Name: "legacyEditor", CookieName: "useLegacyEditor", HideInProduction: true},
		{Name: "plain"},
	}
}

func (suite *FeaturesTestSuite) request(cookies map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	return req
}

func (suite *FeaturesTestSuite) TestDevelopmentDefaults() {
	features := ResolveFeatures(FeaturesConfig{Toggles: suite.toggles}, suite.request(nil))

	assert.True(suite.T(), features.IsActive("addRevisionMutation"))
	assert.False(suite.T(), features.IsActive("legacyEditor"))
	assert.False(suite.T(), features.IsActive("plain"))
	assert.False(suite.T(), features.IsActive("missing"))
}

func (suite *FeaturesTestSuite) TestDevelopmentCookies() {
	features := ResolveFeatures(FeaturesConfig{Toggles: suite.toggles}, suite.request(map[string]string{
		"useAddRevisionMutation": "0",
		"useLegacyEditor":        "1",
		"plain":                  "1",
	}))

	assert.False(suite.T(), features.IsActive("addRevisionMutation"))
	assert.True(suite.T(), features.IsActive("legacyEditor"))
	assert.True(suite.T(), features.IsActive("plain"))
}

func (suite *FeaturesTestSuite) TestProduction() {
	cfg := FeaturesConfig{Production: true, Toggles: suite.toggles}

	features := ResolveFeatures(cfg, suite.request(nil))
	assert.False(suite.T(), features.IsActive("addRevisionMutation"))

	features = ResolveFeatures(cfg, suite.request(map[string]string{
		"useAddRevisionMutation": "1",
		"useLegacyEditor":        "1",
	}))
	assert.True(suite.T(), features.IsActive("addRevisionMutation"))
	assert.False(suite.T(), features.IsActive("legacyEditor"))
}

func (suite *FeaturesTestSuite) TestNilRequest() {
	features := ResolveFeatures(FeaturesConfig{Toggles: suite.toggles}, nil)
	assert.True(suite.T(), features.IsActive("addRevisionMutation"))
}
