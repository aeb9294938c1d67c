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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/serlo/frontend-gateway/internal/system/constants"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/log"
)

const tokenLoggerComponentName = "TokenSource"

// ErrRefreshUnavailable is returned when no refresh endpoint is configured.
var ErrRefreshUnavailable = errors.New("token refresh is not configured")

// TokenSourceInterface provides the access token for content API calls.
type TokenSourceInterface interface {
	Token() string
	Refresh(ctx context.Context, usedToken string) (string, error)
}

// TokenSource holds an access token and refreshes it on demand.
// Concurrent refreshes share a single call to the refresh endpoint.
type TokenSource struct {
	mu         sync.RWMutex
	token      string
	refreshURL string
	creds      Credentials
	httpClient syshttp.HTTPClientInterface
	group      singleflight.Group
	onRefresh  func(token string)
	now        func() time.Time
}

// tokenResponse is the body returned by the refresh endpoint.
type tokenResponse struct {
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

// NewTokenSource creates a token source. creds authenticate the refresh call itself.
func NewTokenSource(token, refreshURL string, creds Credentials,
	httpClient syshttp.HTTPClientInterface) *TokenSource {
	return &TokenSource{
		token:      token,
		refreshURL: refreshURL,
		creds:      creds,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// OnRefresh registers a callback invoked with every newly fetched token.
func (t *TokenSource) OnRefresh(fn func(token string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRefresh = fn
}

// Token returns the current token.
func (t *TokenSource) Token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// Refresh replaces usedToken with a new token. When the current token already differs from usedToken
// and is not expired, another caller refreshed it and it is returned without a network call.
func (t *TokenSource) Refresh(ctx context.Context, usedToken string) (string, error) {
	if current := t.Token(); current != "" && current != usedToken && !t.Expired(current) {
		return current, nil
	}

	result, err, shared := t.group.Do("refresh", func() (interface{}, error) {
		if current := t.Token(); current != "" && current != usedToken && !t.Expired(current) {
			return current, nil
		}
		token, err := t.fetch(ctx)
		if err != nil {
			return "", err
		}

		t.mu.Lock()
		t.token = token
		onRefresh := t.onRefresh
		t.mu.Unlock()
		if onRefresh != nil {
			onRefresh(token)
		}
		return token, nil
	})
	if err != nil {
		return "", err
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, tokenLoggerComponentName))
	token := result.(string)
	logger.Debug("Access token refreshed", log.Bool("shared", shared), log.String("token", log.MaskString(token)))
	return token, nil
}

// Expired reports whether the token is a JWT whose expiry lies in the past.
// Tokens that are not JWTs or carry no expiry are treated as valid.
func (t *TokenSource) Expired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !t.now().Before(claims.ExpiresAt.Time)
}

func (t *TokenSource) fetch(ctx context.Context) (string, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, tokenLoggerComponentName))
	if t.refreshURL == "" {
		return "", ErrRefreshUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)
	if t.creds.Cookie != "" {
		req.Header.Set(constants.CookieHeaderName, t.creds.Cookie)
	}
	if t.creds.SessionToken != "" {
		req.Header.Set(constants.SessionTokenHeaderName, t.creds.SessionToken)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token refresh returned status %d", resp.StatusCode)
	}

	var body tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, constants.MaxErrorBodySize)).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	token := body.Token
	if token == "" {
		token = body.AccessToken
	}
	if token == "" {
		return "", errors.New("refresh response carries no token")
	}
	return token, nil
}
