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

// Package kratos is a client for the self-service flow API of the identity provider.
package kratos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/constants"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/log"
	"github.com/serlo/frontend-gateway/internal/system/utils"
)

const loggerComponentName = "KratosClient"

// Mode selects between browser flows (cookies and CSRF) and native API flows (session tokens).
type Mode string

const (
	// ModeBrowser initializes browser flows.
	ModeBrowser Mode = "browser"
	// ModeAPI initializes native API flows.
	ModeAPI Mode = "api"
)

// ClientInterface defines the identity provider operations used by the gateway.
type ClientInterface interface {
	GetFlow(ctx context.Context, flowType FlowType, flowID string, creds Credentials) (*FlowResult, error)
	InitializeFlow(ctx context.Context, flowType FlowType, returnTo string, creds Credentials) (*FlowResult, error)
	SubmitFlow(ctx context.Context, flowType FlowType, flowID string, body map[string]interface{},
		creds Credentials) (*SubmitResult, error)
	WhoAmI(ctx context.Context, creds Credentials) (*session.Session, error)
}

// Client talks to the identity provider public API.
type Client struct {
	baseURL    string
	mode       Mode
	httpClient syshttp.HTTPClientInterface
}

// NewClient creates a new identity provider client.
func NewClient(baseURL string, mode Mode, httpClient syshttp.HTTPClientInterface) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		mode:       mode,
		httpClient: httpClient,
	}
}

// GetFlow fetches an existing flow by id.
func (c *Client) GetFlow(ctx context.Context, flowType FlowType, flowID string,
	creds Credentials) (*FlowResult, error) {
	if err := ValidateFlowID(flowID); err != nil {
		return nil, err
	}

	endpoint, err := utils.GetURIWithQueryParams(
		fmt.Sprintf("%s/self-service/%s/flows", c.baseURL, flowType), map[string]string{"id": flowID})
	if err != nil {
		return nil, err
	}

	resp, body, err := c.do(ctx, http.MethodGet, endpoint, nil, creds)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseFlowError(resp, body)
	}

	flow, err := decodeFlow(body)
	if err != nil {
		return nil, err
	}
	return &FlowResult{Flow: flow, Cookies: resp.Cookies()}, nil
}

// InitializeFlow starts a new flow.
func (c *Client) InitializeFlow(ctx context.Context, flowType FlowType, returnTo string,
	creds Credentials) (*FlowResult, error) {
	endpoint, err := utils.GetURIWithQueryParams(
		fmt.Sprintf("%s/self-service/%s/%s", c.baseURL, flowType, c.mode), map[string]string{"return_to": returnTo})
	if err != nil {
		return nil, err
	}

	resp, body, err := c.do(ctx, http.MethodGet, endpoint, nil, creds)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseFlowError(resp, body)
	}

	flow, err := decodeFlow(body)
	if err != nil {
		return nil, err
	}
	return &FlowResult{Flow: flow, Cookies: resp.Cookies()}, nil
}

// SubmitFlow submits the values of a flow.
func (c *Client) SubmitFlow(ctx context.Context, flowType FlowType, flowID string, values map[string]interface{},
	creds Credentials) (*SubmitResult, error) {
	if err := ValidateFlowID(flowID); err != nil {
		return nil, err
	}

	endpoint, err := utils.GetURIWithQueryParams(
		fmt.Sprintf("%s/self-service/%s", c.baseURL, flowType), map[string]string{"flow": flowID})
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode flow body: %w", err)
	}

	resp, body, err := c.do(ctx, http.MethodPost, endpoint, payload, creds)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, parseFlowError(resp, body)
	}

	result := &SubmitResult{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, fmt.Errorf("failed to decode submit response: %w", err)
	}
	if flow, err := decodeFlow(body); err == nil && flow.ID != "" {
		result.Flow = flow
	}
	result.Cookies = resp.Cookies()
	return result, nil
}

// WhoAmI returns the session of the caller, or ErrNoSession.
func (c *Client) WhoAmI(ctx context.Context, creds Credentials) (*session.Session, error) {
	resp, body, err := c.do(ctx, http.MethodGet, c.baseURL+"/sessions/whoami", nil, creds)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrNoSession
	default:
		return nil, parseFlowError(resp, body)
	}

	var s session.Session
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

// do sends a request and reads the response body up to MaxResponseBodySize.
func (c *Client) do(ctx context.Context, method, endpoint string, payload []byte,
	creds Credentials) (*http.Response, []byte, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(constants.AcceptHeaderName, constants.ContentTypeJSON)
	if payload != nil {
		req.Header.Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	}
	for _, cookie := range creds.Cookies {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
	if creds.SessionToken != "" {
		req.Header.Set(constants.SessionTokenHeaderName, creds.SessionToken)
	}

	logger.Debug("Sending request to the identity provider", log.String("method", method),
		log.String("endpoint", endpoint))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("identity provider request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBodySize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read identity provider response: %w", err)
	}
	if len(body) > constants.MaxResponseBodySize {
		return nil, nil, ErrResponseTooLarge
	}
	return resp, body, nil
}

// parseFlowError turns a non-2xx response into a *FlowError.
func parseFlowError(resp *http.Response, body []byte) error {
	flowErr := &FlowError{Status: resp.StatusCode, Cookies: resp.Cookies()}

	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		flowErr.ErrorID = ErrorIDBrowserLocationChangeRequired
		flowErr.RedirectBrowserTo = resp.Header.Get("Location")
		return flowErr
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		flowErr.ErrorID = envelope.Error.ID
		flowErr.Code = envelope.Error.Code
		flowErr.Message = envelope.Error.Message
		flowErr.Reason = envelope.Error.Reason
		flowErr.RedirectBrowserTo = envelope.RedirectBrowserTo
		return flowErr
	}

	if flow, err := decodeFlow(body); err == nil && flow.ID != "" {
		flowErr.Flow = flow
		return flowErr
	}

	if len(body) > constants.MaxErrorBodySize {
		body = body[:constants.MaxErrorBodySize]
	}
	flowErr.Message = strings.TrimSpace(string(body))
	return flowErr
}

func decodeFlow(body []byte) (*Flow, error) {
	var flow Flow
	if err := json.Unmarshal(body, &flow); err != nil {
		return nil, fmt.Errorf("failed to decode flow: %w", err)
	}
	return &flow, nil
}

// ValidateFlowID checks that a flow id is a UUID.
func ValidateFlowID(flowID string) error {
	if _, err := uuid.Parse(flowID); err != nil {
		return ErrInvalidFlowID
	}
	return nil
}
