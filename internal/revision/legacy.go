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

const (
	legacyLoggerComponentName = "LegacySubmitter"
	legacyFromHeaderName      = "X-From"
	legacyFromHeaderValue     = "legacy-serlo.org"
	requestedWithHeaderName   = "X-Requested-With"
	requestedWithHeaderValue  = "XMLHttpRequest"
	// minRedirectLength is the length a legacy redirect must exceed to be followed.
	minRedirectLength = 5
)

// LegacyResult is the answer of the legacy editor endpoint.
type LegacyResult struct {
	Success  bool            `json:"success"`
	Redirect string          `json:"redirect"`
	Errors   json.RawMessage `json:"errors,omitempty"`
}

// FollowRedirect reports whether the redirect names a real location.
func (r *LegacyResult) FollowRedirect() bool {
	return len(r.Redirect) > minRedirectLength
}

// LegacySubmitterInterface posts revision documents to the legacy editor endpoint.
type LegacySubmitterInterface interface {
	Submit(ctx context.Context, path string, doc *Document, cookie string) (*LegacyResult, error)
}

// LegacySubmitter posts the editor state to the page it was opened from on the legacy site.
type LegacySubmitter struct {
	baseURL    string
	httpClient syshttp.HTTPClientInterface
}

// NewLegacySubmitter creates a legacy submitter for the given site.
func NewLegacySubmitter(baseURL string, httpClient syshttp.HTTPClientInterface) *LegacySubmitter {
	return &LegacySubmitter{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Submit posts doc as JSON to path. The browser cookie is forwarded so the legacy site can check
// the session and the CSRF token.
func (s *LegacySubmitter) Submit(ctx context.Context, path string, doc *Document,
	cookie string) (*LegacyResult, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, legacyLoggerComponentName))

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode revision document: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create legacy request: %w", err)
	}
	req.Header.Set(requestedWithHeaderName, requestedWithHeaderValue)
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)
	req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	req.Header.Set(legacyFromHeaderName, legacyFromHeaderValue)
	if cookie != "" {
		req.Header.Set(constants.CookieHeaderName, cookie)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("legacy request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy response: %w", err)
	}
	var result LegacyResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		if len(respBody) > constants.MaxErrorBodySize {
			respBody = respBody[:constants.MaxErrorBodySize]
		}
		return nil, fmt.Errorf("legacy endpoint returned status %d: %s", resp.StatusCode,
			strings.TrimSpace(string(respBody)))
	}
	if !result.Success {
		logger.Debug("Legacy endpoint rejected the revision", log.String("errors", string(result.Errors)))
	}
	return &result, nil
}
