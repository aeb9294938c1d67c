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
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/ui"
	"github.com/serlo/frontend-gateway/tests/mocks/errortrackingmock"
)

// scriptedClient answers calls with the scripted responses in order and repeats the last one.
type scriptedClient struct {
	mu        sync.Mutex
	responses []*Response
	err       error
	requests  []Request
	creds     []Credentials
}

func (c *scriptedClient) Execute(_ context.Context, req Request, creds Credentials) (*Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	c.creds = append(c.creds, creds)
	if c.err != nil {
		return nil, c.err
	}
	idx := len(c.requests) - 1
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}
	return c.responses[idx], nil
}

type countingTokens struct {
	token     string
	refreshed int
	err       error
}

func (t *countingTokens) Token() string { return t.token }

func (t *countingTokens) Refresh(_ context.Context, _ string) (string, error) {
	t.refreshed++
	if t.err != nil {
		return "", t.err
	}
	t.token = "refreshed-token"
	return t.token, nil
}

func errorResponse(code ErrorCode) *Response {
	resp := &Response{Errors: []GraphQLError{{Message: string(code) + " failure"}}}
	resp.Errors[0].Extensions.Code = string(code)
	return resp
}

func successResponse() *Response {
	return &Response{Data: json.RawMessage(`{"entity":{"addArticleRevision":{"success":true}}}`)}
}

var testErrorStrings = ErrorStrings{
	"UNAUTHENTICATED": "Please log in",
	"FORBIDDEN":       "Not allowed",
	"BAD_USER_INPUT":  "Check your input",
	"UNKNOWN":         "Something went wrong",
}

type MutatorTestSuite struct {
	suite.Suite
	reporter *errortrackingmock.ReporterInterfaceMock
	recorder *ui.Recorder
	ctx      context.Context
	tokens   *countingTokens
	auth     *Auth
}

func TestMutatorSuite(t *testing.T) {
	suite.Run(t, new(MutatorTestSuite))
}

func (suite *MutatorTestSuite) SetupTest() {
	suite.reporter = &errortrackingmock.ReporterInterfaceMock{}
	suite.recorder = ui.NewRecorder()
	suite.ctx = ui.WithEffects(context.Background(), suite.recorder)
	suite.tokens = &countingTokens{token: "token-1"}
	suite.auth = &Auth{
		Payload: &session.AuthenticationPayload{Username: "alice", ID: 7},
		Tokens:  suite.tokens,
		Cookie:  "auth-session=abc",
	}
}

func (suite *MutatorTestSuite) TestSuccess() {
	client := &scriptedClient{responses: []*Response{successResponse()}}
	mutator := NewMutator(client, suite.reporter)

	ok := mutator.Mutate(suite.ctx, suite.auth, "mutation", map[string]interface{}{"entityId": 1}, testErrorStrings)

	assert.True(suite.T(), ok)
	assert.Len(suite.T(), client.requests, 1)
	assert.Equal(suite.T(), map[string]interface{}{"entityId": 1}, client.requests[0].Variables["input"])
	assert.Equal(suite.T(), "token-1", client.creds[0].Token)
	assert.Equal(suite.T(), "auth-session=abc", client.creds[0].Cookie)
	assert.Empty(suite.T(), suite.recorder.Result().Notices)
}

func (suite *MutatorTestSuite) TestSuccessFalsePayload() {
	client := &scriptedClient{responses: []*Response{
		{Data: json.RawMessage(`{"entity":{"addArticleRevision":{"success":false}}}`)},
	}}
	ok := NewMutator(client, suite.reporter).Mutate(suite.ctx, suite.auth, "mutation", nil, testErrorStrings)
	assert.False(suite.T(), ok)
}

func (suite *MutatorTestSuite) TestNoAuth() {
	client := &scriptedClient{responses: []*Response{successResponse()}}
	mutator := NewMutator(client, suite.reporter)

	ok := mutator.Mutate(suite.ctx, nil, "mutation", nil, testErrorStrings)

	assert.False(suite.T(), ok)
	assert.Empty(suite.T(), client.requests)
	result := suite.recorder.Result()
	assert.True(suite.T(), result.Reload)
	assert.Equal(suite.T(), []ui.Notice{{Text: "Please log in", Kind: ui.NoticeWarning}}, result.Notices)
}

func (suite *MutatorTestSuite) TestInvalidTokenRefreshesOnce() {
	client := &scriptedClient{responses: []*Response{errorResponse(CodeInvalidToken), successResponse()}}

	ok := NewMutator(client, suite.reporter).Mutate(suite.ctx, suite.auth, "mutation", nil, testErrorStrings)

	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), 1, suite.tokens.refreshed)
	assert.Len(suite.T(), client.requests, 2)
	assert.Equal(suite.T(), "refreshed-token", client.creds[1].Token)
}

func (suite *MutatorTestSuite) TestSecondInvalidTokenIsUnknown() {
	client := &scriptedClient{responses: []*Response{errorResponse(CodeInvalidToken)}}
	suite.reporter.On("Report", mock.Anything, mock.MatchedBy(func(e errortracking.Event) bool {
		return e.Message == "Unknown API error" && e.Code == string(CodeUnknown)
	})).Once()

	ok := NewMutator(client, suite.reporter).Mutate(suite.ctx, suite.auth, "mutation", nil, testErrorStrings)

	assert.False(suite.T(), ok)
	assert.Equal(suite.T(), 1, suite.tokens.refreshed)
	assert.Len(suite.T(), client.requests, 2)
	assert.Equal(suite.T(), []ui.Notice{{Text: "Something went wrong", Kind: ui.NoticeWarning}},
		suite.recorder.Result().Notices)
	suite.reporter.AssertExpectations(suite.T())
}

func (suite *MutatorTestSuite) TestRefreshFailureIsUnauthenticated() {
	suite.tokens.err = errors.New("refresh rejected")
	client := &scriptedClient{responses: []*Response{errorResponse(CodeInvalidToken)}}

	ok := NewMutator(client, suite.reporter).Mutate(suite.ctx, suite.auth, "mutation", nil, testErrorStrings)

	assert.False(suite.T(), ok)
	assert.Len(suite.T(), client.requests, 1)
	result := suite.recorder.Result()
	assert.True(suite.T(), result.Reload)
	assert.Equal(suite.T(), "Please log in", result.Notices[0].Text)
}

func (suite *MutatorTestSuite) TestErrorTable() {
	tests := []struct {
		name     string
		code     ErrorCode
		notice   string
		reported string
		reload   bool
	}{
		{"forbidden", CodeForbidden, "Not allowed", "", false},
		{"bad user input", CodeBadUserInput, "Check your input", "Bad user input in mutation", false},
		{"unknown", CodeUnknown, "Something went wrong", "Unknown API error", false},
		{"unauthenticated", CodeUnauthenticated, "Please log in", "", true},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			reporter := &errortrackingmock.ReporterInterfaceMock{}
			if tt.reported != "" {
				reporter.On("Report", mock.Anything, mock.MatchedBy(func(e errortracking.Event) bool {
					return e.Message == tt.reported && e.Details["error"] == string(tt.code)+" failure"
				})).Once()
			}
			recorder := ui.NewRecorder()
			ctx := ui.WithEffects(context.Background(), recorder)
			client := &scriptedClient{responses: []*Response{errorResponse(tt.code)}}

			ok := NewMutator(client, reporter).Mutate(ctx, suite.auth, "mutation", nil, testErrorStrings)

			assert.False(suite.T(), ok)
			result := recorder.Result()
			assert.Equal(suite.T(), tt.reload, result.Reload)
			assert.Equal(suite.T(), []ui.Notice{{Text: tt.notice, Kind: ui.NoticeWarning}}, result.Notices)
			reporter.AssertExpectations(suite.T())
		})
	}
}

func (suite *MutatorTestSuite) TestTransportErrorIsUnknown() {
	suite.reporter.On("Report", mock.Anything, mock.Anything).Once()
	client := &scriptedClient{err: errors.New("connection refused")}

	ok := NewMutator(client, suite.reporter).Mutate(suite.ctx, suite.auth, "mutation", nil, testErrorStrings)

	assert.False(suite.T(), ok)
	assert.Equal(suite.T(), "Something went wrong", suite.recorder.Result().Notices[0].Text)
	suite.reporter.AssertExpectations(suite.T())
}

func (suite *MutatorTestSuite) TestNilErrorStringsAreSilent() {
	client := &scriptedClient{responses: []*Response{errorResponse(CodeUnauthenticated)}}

	ok := NewMutator(client, suite.reporter).Mutate(suite.ctx, suite.auth, "mutation", nil, nil)

	assert.False(suite.T(), ok)
	result := suite.recorder.Result()
	assert.False(suite.T(), result.Reload)
	assert.Empty(suite.T(), result.Notices)
	suite.reporter.AssertNotCalled(suite.T(), "Report", mock.Anything, mock.Anything)
}

func (suite *MutatorTestSuite) TestAuthFromRequest() {
	req := httptest.NewRequest("POST", "/api/revisions/Article", nil)
	req.Header.Set("Authorization", "Bearer abc")
	req.Header.Set("Cookie", "auth-session=xyz")

	assert.Nil(suite.T(), AuthFromRequest(req, nil, "", nil))

	auth := AuthFromRequest(req, &session.AuthenticationPayload{Username: "alice", ID: 7}, "", nil)
	assert.Equal(suite.T(), "abc", auth.Tokens.Token())
	assert.Equal(suite.T(), "auth-session=xyz", auth.Cookie)
	assert.Equal(suite.T(), "alice", auth.Payload.Username)
}
