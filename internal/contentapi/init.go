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

package contentapi

import (
	"net/http"

	"github.com/serlo/frontend-gateway/internal/system/middleware"
)

// Initialize registers the GraphQL proxy route backed by the given client.
func Initialize(mux *http.ServeMux, client GraphQLClientInterface) GraphQLClientInterface {
	registerRoutes(mux, newProxyHandler(client))
	return client
}

// registerRoutes registers the routes for content API operations.
func registerRoutes(mux *http.ServeMux, proxyHandler *proxyHandler) {
	middleware.HandleRoute(mux, middleware.Route{
		Path:     "/api/frontend/graphql",
		Handlers: map[string]http.HandlerFunc{http.MethodPost: proxyHandler.HandleGraphQLRequest},
		CORS: middleware.CORSOptions{
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           middleware.DefaultPreflightMaxAge,
		},
	})
}
