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

package usertools

import (
	"net/http"
	"time"

	"github.com/serlo/frontend-gateway/internal/session"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/middleware"
)

// Initialize registers the author tool routes backed by the given service.
func Initialize(mux *http.ServeMux, service UserToolsServiceInterface, cookieStore session.CookieStoreInterface,
	refreshURL string, httpClient syshttp.HTTPClientInterface) UserToolsServiceInterface {
	handler := &userToolsHandler{
		service:     service,
		cookieStore: cookieStore,
		refreshURL:  refreshURL,
		httpClient:  httpClient,
		now:         time.Now,
	}
	middleware.HandleRoute(mux, middleware.Route{
		Path:     "/api/user-tools/{operation}",
		Handlers: map[string]http.HandlerFunc{http.MethodPost: handler.HandleOperationRequest},
		CORS: middleware.CORSOptions{
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           middleware.DefaultPreflightMaxAge,
		},
	})
	return service
}
