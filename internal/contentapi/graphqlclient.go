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

// Package contentapi talks to the GraphQL content API: queries, authenticated mutations with a single
// token refresh, and the cookie forwarding proxy used by the browser.
package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/serlo/frontend-gateway/internal/system/constants"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/log"
)

const clientLoggerComponentName = "GraphQLClient"

// GraphQLClientInterface executes GraphQL requests.
type GraphQLClientInterface interface {
	Execute(ctx context.Context, req Request, creds Credentials) (*Response, error)
}

// GraphQLClient posts GraphQL requests to the content API endpoint.
type GraphQLClient struct {
	endpoint   string
	httpClient syshttp.HTTPClientInterface
}

// NewGraphQLClient creates a GraphQL client for the given endpoint.
func NewGraphQLClient(endpoint string, httpClient syshttp.HTTPClientInterface) *GraphQLClient {
	return &GraphQLClient{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Execute sends the request. GraphQL errors are returned in the response; an error is returned only
// when no GraphQL response could be read.
func (c *GraphQLClient) Execute(ctx context.Context, req Request, creds Credentials) (*Response, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, clientLoggerComponentName))

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode GraphQL request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create GraphQL request: %w", err)
	}
	httpReq.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	httpReq.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)
	if creds.Token != "" {
		httpReq.Header.Set(constants.AuthorizationHeaderName, constants.TokenTypeBearer+" "+creds.Token)
	}
	if creds.Cookie != "" {
		httpReq.Header.Set(constants.CookieHeaderName, creds.Cookie)
	}
	if creds.SessionToken != "" {
		httpReq.Header.Set(constants.SessionTokenHeaderName, creds.SessionToken)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("content API request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read content API response: %w", err)
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil || (len(result.Data) == 0 && len(result.Errors) == 0) {
		if len(body) > constants.MaxErrorBodySize {
			body = body[:constants.MaxErrorBodySize]
		}
		logger.Debug("Content API returned no GraphQL response", log.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("content API returned status %d: %s", resp.StatusCode,
			strings.TrimSpace(string(body)))
	}
	return &result, nil
}
