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
// Package middleware provides HTTP middleware functions for request processing.
package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/log"
	"github.com/serlo/frontend-gateway/internal/system/utils"
)

// DefaultPreflightMaxAge is how long browsers may cache a preflight answer of the gateway routes.
const DefaultPreflightMaxAge = 10 * time.Minute

// CORSOptions represents the CORS configuration for a route.
type CORSOptions struct {
	// AllowedMethods defaults to the methods the route serves.
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
	// MaxAge lets browsers cache the preflight answer. Zero omits the header.
	MaxAge time.Duration
}

// Route is a path served by one handler per HTTP method.
type Route struct {
	Path     string
	Handlers map[string]http.HandlerFunc
	CORS     CORSOptions
}

// HandleRoute registers every method handler of the route and an OPTIONS handler answering
// the browser preflight for the same path.
func HandleRoute(mux *http.ServeMux, route Route) {
	opts := route.CORS
	if len(opts.AllowedMethods) == 0 {
		for method := range route.Handlers {
			opts.AllowedMethods = append(opts.AllowedMethods, method)
		}
		slices.Sort(opts.AllowedMethods)
	}

	for method, handler := range route.Handlers {
		mux.HandleFunc(WithCORS(method+" "+route.Path, handler, opts))
	}
	mux.HandleFunc(WithCORS(http.MethodOptions+" "+route.Path, func(w http.ResponseWriter, r *http.Request) {
		if opts.MaxAge > 0 && w.Header().Get("Access-Control-Allow-Origin") != "" {
			w.Header().Set("Access-Control-Max-Age", strconv.Itoa(int(opts.MaxAge.Seconds())))
		}
		w.WriteHeader(http.StatusNoContent)
	}, opts))
}

// WithCORS wraps an HTTP handler with CORS headers based on the provided options.
// It returns the pattern and wrapped handler that can be registered with http.ServeMux.
func WithCORS(pattern string, handler http.HandlerFunc, opts CORSOptions) (string, http.HandlerFunc) {
	return pattern, func(w http.ResponseWriter, r *http.Request) {
		applyCORSHeaders(w, r, opts)
		handler(w, r)
	}
}

// applyCORSHeaders sets the CORS headers when the request origin is allowed.
func applyCORSHeaders(w http.ResponseWriter, r *http.Request, opts CORSOptions) {
	// Responses differ per origin even when the origin is rejected.
	w.Header().Add("Vary", "Origin")

	requestOrigin := r.Header.Get("Origin")
	if requestOrigin == "" {
		return
	}
	allowedOrigin := utils.GetAllowedOrigin(getAllowedOrigins(), requestOrigin)
	if allowedOrigin == "" {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
	if len(opts.AllowedMethods) > 0 {
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(opts.AllowedMethods, ", "))
	}
	if len(opts.AllowedHeaders) > 0 {
		w.Header().Set("Access-Control-Allow-Headers", strings.Join(opts.AllowedHeaders, ", "))
	}
	if opts.AllowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

func getAllowedOrigins() []string {
	originList := config.GetServerRuntime().Config.CORS.AllowedOrigins
	if len(originList) == 0 {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CORSMiddleware")).
			Debug("No allowed origins configured")
	}
	return originList
}
