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

package revision

import (
	"net/http"
	"time"

	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/config"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/middleware"
)

// Initialize registers the revision routes backed by the given service.
func Initialize(mux *http.ServeMux, revisionService RevisionServiceInterface, cookieStore session.CookieStoreInterface,
	cfg *config.Config, httpClient syshttp.HTTPClientInterface) RevisionServiceInterface {
	handler := &revisionHandler{
		revisionService: revisionService,
		cookieStore:     cookieStore,
		features:        cfg.Features,
		refreshURL:      cfg.ContentAPI.TokenRefreshURL,
		httpClient:      httpClient,
		now:             time.Now,
	}
	registerRoutes(mux, handler)
	return revisionService
}

// registerRoutes registers the routes for revision operations.
func registerRoutes(mux *http.ServeMux, revisionHandler *revisionHandler) {
	middleware.HandleRoute(mux, middleware.Route{
		Path:     "/api/revisions/{type}",
		Handlers: map[string]http.HandlerFunc{http.MethodPost: revisionHandler.HandleSaveRequest},
		CORS: middleware.CORSOptions{
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           middleware.DefaultPreflightMaxAge,
		},
	})
}
