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

	"github.com/serlo/frontend-gateway/internal/system/healthcheck/handler"
	"github.com/serlo/frontend-gateway/internal/system/healthcheck/service"
	"github.com/serlo/frontend-gateway/internal/system/middleware"
)

const (
	livenessPath  = "/health/liveness"
	readinessPath = "/health/readiness"
)

// HealthCheckService exposes the liveness and readiness endpoints used by the orchestrator.
type HealthCheckService struct {
	healthCheckHandler *handler.HealthCheckHandler
}

// NewHealthCheckService registers the health endpoints backed by the shared health check service.
func NewHealthCheckService(mux *http.ServeMux) ServiceInterface {
	return newHealthCheckService(mux, service.GetHealthCheckService())
}

func newHealthCheckService(mux *http.ServeMux, svc service.HealthCheckServiceInterface) ServiceInterface {
	instance := &HealthCheckService{healthCheckHandler: handler.NewHealthCheckHandler(svc)}
	instance.RegisterRoutes(mux)
	return instance
}

// RegisterRoutes registers both endpoints. Health checks carry no credentials, so none are allowed.
func (h *HealthCheckService) RegisterRoutes(mux *http.ServeMux) {
	handlers := map[string]http.HandlerFunc{
		livenessPath:  h.healthCheckHandler.HandleLivenessRequest,
		readinessPath: h.healthCheckHandler.HandleReadinessRequest,
	}
	for path, handle := range handlers {
		middleware.HandleRoute(mux, middleware.Route{
			Path:     path,
			Handlers: map[string]http.HandlerFunc{http.MethodGet: handle},
			CORS:     middleware.CORSOptions{AllowedHeaders: []string{"Content-Type"}},
		})
	}
}
