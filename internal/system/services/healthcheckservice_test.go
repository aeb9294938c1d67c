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

package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/healthcheck/model"
	"github.com/serlo/frontend-gateway/tests/mocks/healthcheck/servicemock"
)

func TestHealthCheckServiceRoutes(t *testing.T) {
	svc := &servicemock.HealthCheckServiceInterfaceMock{}
	svc.On("CheckReadiness", mock.Anything).Return(model.ServerStatus{Status: model.StatusDown})

	mux := http.NewServeMux()
	newHealthCheckService(mux, svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/liveness", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/readiness", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/health/readiness", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	svc.AssertExpectations(t)
}

func TestHealthCheckPreflightAllowsNoCredentials(t *testing.T) {
	config.ResetServerRuntime()
	defer config.ResetServerRuntime()
	_ = config.InitializeServerRuntime("", &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"https://de.serlo.org"}},
	})

	mux := http.NewServeMux()
	newHealthCheckService(mux, &servicemock.HealthCheckServiceInterfaceMock{})

	req := httptest.NewRequest(http.MethodOptions, "/health/liveness", nil)
	req.Header.Set("Origin", "https://de.serlo.org")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://de.serlo.org", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Empty(t, rec.Header().Get("Access-Control-Max-Age"))
}
