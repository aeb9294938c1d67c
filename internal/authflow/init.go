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

package authflow

import (
	"net/http"

	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/middleware"
)

// Initialize registers the identity flow routes backed by the given service.
func Initialize(mux *http.ServeMux, flowService FlowServiceInterface,
	cookieStore session.CookieStoreInterface) FlowServiceInterface {
	flowHandler := newFlowHandler(flowService, cookieStore)
	registerRoutes(mux, flowHandler)
	return flowService
}

// registerRoutes registers the routes for identity flow operations.
func registerRoutes(mux *http.ServeMux, flowHandler *flowHandler) {
	middleware.HandleRoute(mux, middleware.Route{
		Path: "/auth/flows/{type}",
		Handlers: map[string]http.HandlerFunc{
			http.MethodGet:  flowHandler.HandleFlowGetRequest,
			http.MethodPost: flowHandler.HandleFlowPostRequest,
		},
		CORS: middleware.CORSOptions{
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           middleware.DefaultPreflightMaxAge,
		},
	})
	middleware.HandleRoute(mux, middleware.Route{
		Path:     "/auth/me",
		Handlers: map[string]http.HandlerFunc{http.MethodGet: flowHandler.HandleMeRequest},
		CORS: middleware.CORSOptions{
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		},
	})
	mux.HandleFunc("GET /user/me", flowHandler.HandleProfileRedirectRequest)
}
