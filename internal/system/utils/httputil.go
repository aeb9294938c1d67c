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

// Package utils provides utility functions for HTTP operations.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/serlo/frontend-gateway/internal/system/constants"
	"github.com/serlo/frontend-gateway/internal/system/error/apierror"
	"github.com/serlo/frontend-gateway/internal/system/error/serviceerror"
	"github.com/serlo/frontend-gateway/internal/system/log"
)

// maxRequestBodySize bounds the JSON bodies accepted from the browser.
const maxRequestBodySize = 1 << 20

// WriteJSON writes the given value as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, value interface{}) {
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.GetLogger().Error("Failed to write JSON response", log.Error(err))
	}
}

// WriteServiceError maps a service error to an API error response.
// Client errors are answered with 400, everything else with 500.
func WriteServiceError(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	statusCode := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		statusCode = http.StatusBadRequest
	}
	WriteJSON(w, statusCode, apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	})
}

// DecodeJSONBody decodes the JSON body of the request into a value of type T.
func DecodeJSONBody[T any](r *http.Request) (*T, error) {
	if r.Body == nil {
		return nil, errors.New("request body is empty")
	}

	var value T
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodySize))
	if err := decoder.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("request body is empty")
		}
		return nil, fmt.Errorf("failed to decode request body: %w", err)
	}
	return &value, nil
}

// GetURIWithQueryParams appends the given query parameters to the URI.
func GetURIWithQueryParams(uri string, queryParams map[string]string) (string, error) {
	parsedURL, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("failed to parse the URI: %w", err)
	}

	query := parsedURL.Query()
	for key, value := range queryParams {
		if value == "" {
			continue
		}
		query.Set(key, value)
	}
	parsedURL.RawQuery = query.Encode()
	return parsedURL.String(), nil
}

// ParseAbsoluteURL parses an absolute http or https URL.
func ParseAbsoluteURL(urlStr string) (*url.URL, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("url %q must use http or https", urlStr)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("url %q has no host", urlStr)
	}
	return parsedURL, nil
}
