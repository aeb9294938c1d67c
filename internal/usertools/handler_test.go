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
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/error/serviceerror"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
)

type fakeUserToolsService struct {
	req      OperationRequest
	response *OperationResponse
	svcErr   *serviceerror.ServiceError
}

func (f *fakeUserToolsService) Run(_ context.Context, req OperationRequest) (*OperationResponse,
	*serviceerror.ServiceError) {
	f.req = req
	return f.response, f.svcErr
}

type UserToolsHandlerTestSuite struct {
	suite.Suite
	service     *fakeUserToolsService
	cookieStore *session.CookieStore
	mux         *http.ServeMux
}

func TestUserToolsHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserToolsHandlerTestSuite))
}

func (suite *UserToolsHandlerTestSuite) SetupTest() {
	suite.service = &fakeUserToolsService{response: &OperationResponse{Success: true}}
	suite.cookieStore = session.NewCookieStore(config.SessionConfig{CookieName: "auth-session"})
	suite.mux = http.NewServeMux()
	Initialize(suite.mux, suite.service, suite.cookieStore, "", syshttp.NewHTTPClient())
}

func (suite *UserToolsHandlerTestSuite) post(path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer token-1")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	suite.mux.ServeHTTP(rec, req)
	return rec
}

func (suite *UserToolsHandlerTestSuite) TestRunWithSession() {
	expires := time.Now().Add(time.Hour)
	rec := httptest.NewRecorder()
	require.NoError(suite.T(), suite.cookieStore.Set(rec, &session.Session{
		ID: "s", Active: true, ExpiresAt: &expires,
		Identity: session.Identity{Traits: session.Traits{Username: "bob"},
			MetadataPublic: &session.MetadataPublic{LegacyID: 9}},
	}))

	resp := suite.post("/api/user-tools/create-comment", `{"input":{"threadId":"t1","content":"hi"}}`,
		rec.Result().Cookies()[0])

	assert.Equal(suite.T(), http.StatusOK, resp.Code)
	assert.Equal(suite.T(), OperationCreateComment, suite.service.req.Operation)
	assert.JSONEq(suite.T(), `{"threadId":"t1","content":"hi"}`, string(suite.service.req.Input))
	require.NotNil(suite.T(), suite.service.req.Auth)
	assert.Equal(suite.T(), 9, suite.service.req.Auth.Payload.ID)
	assert.Equal(suite.T(), "token-1", suite.service.req.Auth.Tokens.Token())
}

func (suite *UserToolsHandlerTestSuite) TestRunWithoutSession() {
	resp := suite.post("/api/user-tools/set-subscription", `{"input":{"id":[1]}}`)

	assert.Equal(suite.T(), http.StatusOK, resp.Code)
	assert.Nil(suite.T(), suite.service.req.Auth)
}

func (suite *UserToolsHandlerTestSuite) TestErrors() {
	resp := suite.post("/api/user-tools/create-comment", `not json`)
	assert.Equal(suite.T(), http.StatusBadRequest, resp.Code)
	assert.Contains(suite.T(), resp.Body.String(), ErrorInvalidRequestFormat.Code)

	suite.service.svcErr = &ErrorUnknownOperation
	resp = suite.post("/api/user-tools/unknown", `{"input":{}}`)
	assert.Equal(suite.T(), http.StatusBadRequest, resp.Code)
	assert.Contains(suite.T(), resp.Body.String(), ErrorUnknownOperation.Code)
}
