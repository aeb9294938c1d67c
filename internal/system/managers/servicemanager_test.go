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

package managers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/system/config"
)

type ServiceManagerTestSuite struct {
	suite.Suite
}

func TestServiceManagerTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceManagerTestSuite))
}

func (suite *ServiceManagerTestSuite) SetupTest() {
	config.ResetServerRuntime()
	cfg := &config.Config{
		IdentityProvider: config.IdentityProviderConfig{BaseURL: "http://kratos.test"},
		ContentAPI: config.ContentAPIConfig{
			Endpoint:      "http://api.test/graphql",
			LegacyBaseURL: "http://legacy.test",
		},
		Cache: config.CacheConfig{Disabled: true},
	}
	_ = config.InitializeServerRuntime("/tmp/gateway", cfg)
}

func (suite *ServiceManagerTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *ServiceManagerTestSuite) newManager(mux *http.ServeMux) *ServiceManager {
	sm := NewServiceManager(mux).(*ServiceManager)
	sm.reporter = errortracking.NewReporter(nil)
	return sm
}

func (suite *ServiceManagerTestSuite) TestRegisterServicesRegistersRoutes() {
	mux := http.NewServeMux()
	suite.Require().NoError(suite.newManager(mux).RegisterServices())

	for _, path := range []string{
		"/health/liveness",
		"/auth/flows/login",
		"/auth/me",
		"/api/frontend/graphql",
		"/api/revisions/Article",
		"/api/user-tools/create-thread",
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, path, nil))
		suite.Equal(http.StatusNoContent, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/liveness", nil))
	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *ServiceManagerTestSuite) TestRegisterServicesRequiresEndpoints() {
	sm := suite.newManager(http.NewServeMux())
	sm.config = &config.Config{ContentAPI: config.ContentAPIConfig{Endpoint: "http://api.test/graphql"}}
	suite.Error(sm.RegisterServices())

	sm.config = &config.Config{IdentityProvider: config.IdentityProviderConfig{BaseURL: "http://kratos.test"}}
	suite.Error(sm.RegisterServices())
}
