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
	"net/http"
	"strings"

	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/constants"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/log"
	"github.com/serlo/frontend-gateway/internal/ui"
)

const mutatorLoggerComponentName = "Mutator"

// Auth is the authenticated caller of a mutation.
type Auth struct {
	Payload *session.AuthenticationPayload
	Tokens  TokenSourceInterface
	// Cookie is the raw Cookie header forwarded to the content API.
	Cookie string
	// SessionToken authenticates native clients.
	SessionToken string
}

// AuthFromRequest builds the caller of a browser request. It returns nil when there is no payload.
// The bearer token is read from the Authorization header and refreshed through refreshURL.
func AuthFromRequest(r *http.Request, payload *session.AuthenticationPayload, refreshURL string,
	httpClient syshttp.HTTPClientInterface) *Auth {
	if payload == nil {
		return nil
	}
	cookie := r.Header.Get(constants.CookieHeaderName)
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get(constants.AuthorizationHeaderName),
		constants.TokenTypeBearer))
	return &Auth{
		Payload: payload,
		Tokens:  NewTokenSource(token, refreshURL, Credentials{Cookie: cookie}, httpClient),
		Cookie:  cookie,
	}
}

func (a *Auth) credentials() Credentials {
	creds := Credentials{Cookie: a.Cookie, SessionToken: a.SessionToken}
	if a.Tokens != nil {
		creds.Token = a.Tokens.Token()
	}
	return creds
}

// MutatorInterface runs authenticated mutations.
type MutatorInterface interface {
	Mutate(ctx context.Context, auth *Auth, query string, input interface{}, errorStrings ErrorStrings) bool
}

// Mutator runs mutations and turns failures into notices.
type Mutator struct {
	client   GraphQLClientInterface
	reporter errortracking.ReporterInterface
}

// NewMutator creates a mutator.
func NewMutator(client GraphQLClientInterface, reporter errortracking.ReporterInterface) *Mutator {
	return &Mutator{
		client:   client,
		reporter: reporter,
	}
}

// Mutate runs the mutation with {input} as variables and reports whether it succeeded.
// An INVALID_TOKEN answer triggers exactly one token refresh and one retry. Without error strings
// failures are silent.
func (m *Mutator) Mutate(ctx context.Context, auth *Auth, query string, input interface{},
	errorStrings ErrorStrings) bool {
	if auth == nil || auth.Payload == nil {
		return m.handleError(ctx, CodeUnauthenticated, errorStrings, nil)
	}
	return m.mutate(ctx, auth, query, input, errorStrings, false)
}

func (m *Mutator) mutate(ctx context.Context, auth *Auth, query string, input interface{},
	errorStrings ErrorStrings, isRetry bool) bool {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, mutatorLoggerComponentName))

	creds := auth.credentials()
	if logger.IsDebugEnabled() {
		logger.Debug("Running mutation", log.Bool("isRetry", isRetry), log.Any("input", input))
	}
	resp, err := m.client.Execute(ctx, Request{
		Query:     query,
		Variables: map[string]interface{}{"input": input},
	}, creds)

	code := Classify(resp, err)
	if code == "" {
		return resp.Succeeded()
	}
	if err != nil {
		logger.Warn("Mutation request failed", log.Error(err))
	} else {
		logger.Debug("Mutation returned an error", log.String("code", string(code)),
			log.String("message", resp.Errors[0].Message))
	}

	if code == CodeInvalidToken {
		if isRetry {
			return m.handleError(ctx, CodeUnknown, errorStrings, resp)
		}
		if auth.Tokens != nil {
			if _, err := auth.Tokens.Refresh(ctx, creds.Token); err != nil {
				logger.Warn("Failed to refresh the access token", log.Error(err))
				return m.handleError(ctx, CodeUnauthenticated, errorStrings, resp)
			}
			return m.mutate(ctx, auth, query, input, errorStrings, true)
		}
	}
	return m.handleError(ctx, code, errorStrings, resp)
}

// handleError shows the notice for the code. It always returns false.
func (m *Mutator) handleError(ctx context.Context, code ErrorCode, errorStrings ErrorStrings,
	resp *Response) bool {
	if errorStrings == nil {
		return false
	}
	message, ok := errorStrings[string(code)]
	if !ok {
		message = errorStrings[string(CodeUnknown)]
	}

	switch code {
	case CodeBadUserInput:
		m.report(ctx, "Bad user input in mutation", code, resp)
	case CodeUnknown:
		m.report(ctx, "Unknown API error", code, resp)
	}

	effects := ui.EffectsFromContext(ctx)
	if code == CodeUnauthenticated {
		effects.Reload()
	}
	effects.ShowNotice(ui.Notice{Text: message, Kind: ui.NoticeWarning})
	return false
}

func (m *Mutator) report(ctx context.Context, message string, code ErrorCode, resp *Response) {
	if m.reporter == nil {
		return
	}
	details := map[string]string{}
	if resp != nil && len(resp.Errors) > 0 {
		details["error"] = resp.Errors[0].Message
	}
	m.reporter.Report(ctx, errortracking.Event{
		Message:   message,
		Code:      string(code),
		Component: mutatorLoggerComponentName,
		Details:   details,
	})
}
