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

package kratos

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/serlo/frontend-gateway/internal/system/constants"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
)

const testFlowID = "6f1b9c2e-3a0d-4c55-9d1e-8d1f2a3b4c5d"

const loginFlowJSON = `{
	"id": "` + testFlowID + `",
	"type": "browser",
	"expires_at": "2025-06-01T12:00:00Z",
	"ui": {
		"action": "https://idp.example/self-service/login?flow=` + testFlowID + `",
		"method": "POST",
		"nodes": [
			{"type": "input", "group": "default",
			 "attributes": {"node_type": "input", "name": "csrf_token", "type": "hidden", "value": "csrf-1"}},
			{"type": "input", "group": "default",
			 "attributes": {"node_type": "input", "name": "identifier", "type": "text", "required": true},
			 "meta": {"label": {"id": 1070004, "text": "ID", "type": "info"}}},
			{"type": "input", "group": "password",
			 "attributes": {"node_type": "input", "name": "password", "type": "password", "required": true}},
			{"type": "input", "group": "password",
			 "attributes": {"node_type": "input", "name": "method", "type": "submit", "value": "password"}},
			{"type": "img", "group": "totp",
			 "attributes": {"node_type": "img", "id": "totp_qr", "src": "data:image/png;base64,AA"}}
		]
	}
}`

type KratosClientTestSuite struct {
	suite.Suite
	server  *httptest.Server
	handler http.HandlerFunc
	client  *Client
}

func TestKratosClientSuite(t *testing.T) {
	suite.Run(t, new(KratosClientTestSuite))
}

func (suite *KratosClientTestSuite) SetupTest() {
	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.handler(w, r)
	}))
	suite.client = NewClient(suite.server.URL+"/", ModeBrowser, syshttp.NewHTTPClient())
}

func (suite *KratosClientTestSuite) TearDownTest() {
	suite.server.Close()
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (suite *KratosClientTestSuite) TestGetFlow() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/self-service/login/flows", r.URL.Path)
		assert.Equal(suite.T(), testFlowID, r.URL.Query().Get("id"))
		assert.Equal(suite.T(), "application/json", r.Header.Get("Accept"))
		cookie, err := r.Cookie("csrf_token_abc")
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "c1", cookie.Value)
		writeJSON(w, http.StatusOK, loginFlowJSON)
	}

	result, err := suite.client.GetFlow(context.Background(), FlowTypeLogin, testFlowID, Credentials{
		Cookies: []*http.Cookie{{Name: "csrf_token_abc", Value: "c1"}},
	})

	require.NoError(suite.T(), err)
	flow := result.Flow
	assert.Equal(suite.T(), testFlowID, flow.ID)
	assert.Equal(suite.T(), "POST", flow.UI.Method)
	assert.Len(suite.T(), flow.UI.Nodes, 5)
	assert.Equal(suite.T(), "csrf_token", flow.UI.Nodes[0].ID())
	assert.Equal(suite.T(), "ID", flow.UI.Nodes[1].Label())
	assert.Equal(suite.T(), "totp_qr", flow.UI.Nodes[4].ID())
	assert.False(suite.T(), flow.UI.Nodes[4].IsInput())
}

func (suite *KratosClientTestSuite) TestGetFlowRejectsInvalidID() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		suite.Fail("no request expected")
	}

	_, err := suite.client.GetFlow(context.Background(), FlowTypeLogin, "../../admin", Credentials{})
	assert.ErrorIs(suite.T(), err, ErrInvalidFlowID)
}

func (suite *KratosClientTestSuite) TestGetFlowExpired() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusGone, `{"error": {"id": "self_service_flow_expired", "code": 410,
			"message": "expired", "reason": "The flow expired 1.00 minutes ago."}}`)
	}

	_, err := suite.client.GetFlow(context.Background(), FlowTypeLogin, testFlowID, Credentials{})

	flowErr, ok := AsFlowError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusGone, flowErr.Status)
	assert.Equal(suite.T(), ErrorIDFlowExpired, flowErr.ErrorID)
	assert.Equal(suite.T(), "The flow expired 1.00 minutes ago.", flowErr.Reason)
	assert.Contains(suite.T(), flowErr.Error(), "self_service_flow_expired")
}

func (suite *KratosClientTestSuite) TestGetFlowRejectsOversizedResponse() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id": "`+strings.Repeat("a", constants.MaxResponseBodySize)+`"}`)
	}

	_, err := suite.client.GetFlow(context.Background(), FlowTypeLogin, testFlowID, Credentials{})
	assert.ErrorIs(suite.T(), err, ErrResponseTooLarge)
}

func (suite *KratosClientTestSuite) TestWhoAmIAtSizeLimit() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		body := `{"id": "s1", "active": true, "identity": {"id": "i1", "traits": {"username": "alice"}}}`
		writeJSON(w, http.StatusOK, body+strings.Repeat(" ", constants.MaxResponseBodySize-len(body)))
	}

	s, err := suite.client.WhoAmI(context.Background(), Credentials{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", s.Identity.Traits.Username)
}

func (suite *KratosClientTestSuite) TestInitializeFlow() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/self-service/registration/browser", r.URL.Path)
		assert.Equal(suite.T(), "/entity/create", r.URL.Query().Get("return_to"))
		http.SetCookie(w, &http.Cookie{Name: "csrf_token_abc", Value: "fresh"})
		writeJSON(w, http.StatusOK, loginFlowJSON)
	}

	result, err := suite.client.InitializeFlow(context.Background(), FlowTypeRegistration, "/entity/create",
		Credentials{})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), testFlowID, result.Flow.ID)
	require.Len(suite.T(), result.Cookies, 1)
	assert.Equal(suite.T(), "fresh", result.Cookies[0].Value)
}

func (suite *KratosClientTestSuite) TestInitializeAPIFlowUsesSessionToken() {
	client := NewClient(suite.server.URL, ModeAPI, syshttp.NewHTTPClient())
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/self-service/settings/api", r.URL.Path)
		assert.Equal(suite.T(), "ory_st_1", r.Header.Get("X-Session-Token"))
		writeJSON(w, http.StatusOK, loginFlowJSON)
	}

	_, err := client.InitializeFlow(context.Background(), FlowTypeSettings, "", Credentials{SessionToken: "ory_st_1"})
	assert.NoError(suite.T(), err)
}

func (suite *KratosClientTestSuite) TestSubmitFlowLoginSuccess() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), http.MethodPost, r.Method)
		assert.Equal(suite.T(), "/self-service/login", r.URL.Path)
		assert.Equal(suite.T(), testFlowID, r.URL.Query().Get("flow"))
		assert.Equal(suite.T(), "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(suite.T(), json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(suite.T(), "password", body["method"])
		assert.Equal(suite.T(), "alice", body["identifier"])

		http.SetCookie(w, &http.Cookie{Name: "ory_kratos_session", Value: "s"})
		writeJSON(w, http.StatusOK, `{
			"session": {"id": "s1", "active": true, "identity": {"id": "i1",
				"traits": {"username": "alice"}, "metadata_public": {"legacy_id": 7}}},
			"continue_with": [{"action": "show_verification_ui", "flow": {"id": "v1"}}]
		}`)
	}

	result, err := suite.client.SubmitFlow(context.Background(), FlowTypeLogin, testFlowID,
		map[string]interface{}{"method": "password", "identifier": "alice", "password": "secret"}, Credentials{})

	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), result.Flow)
	assert.Equal(suite.T(), "s1", result.Session.ID)
	assert.Equal(suite.T(), 7, result.Session.Identity.MetadataPublic.LegacyID)
	require.Len(suite.T(), result.ContinueWith, 1)
	assert.Equal(suite.T(), "v1", result.ContinueWith[0].Flow.ID)
	assert.Len(suite.T(), result.Cookies, 1)
}

func (suite *KratosClientTestSuite) TestSubmitFlowSettingsReturnsFlow() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, loginFlowJSON)
	}

	result, err := suite.client.SubmitFlow(context.Background(), FlowTypeSettings, testFlowID,
		map[string]interface{}{"method": "profile"}, Credentials{})

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), result.Flow)
	assert.Equal(suite.T(), testFlowID, result.Flow.ID)
}

func (suite *KratosClientTestSuite) TestSubmitFlowValidationError() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, loginFlowJSON)
	}

	_, err := suite.client.SubmitFlow(context.Background(), FlowTypeLogin, testFlowID,
		map[string]interface{}{}, Credentials{})

	flowErr, ok := AsFlowError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusBadRequest, flowErr.Status)
	assert.Empty(suite.T(), flowErr.ErrorID)
	require.NotNil(suite.T(), flowErr.Flow)
	assert.Equal(suite.T(), testFlowID, flowErr.Flow.ID)
}

func (suite *KratosClientTestSuite) TestSubmitFlowLocationChange() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, `{
			"error": {"id": "browser_location_change_required", "code": 422, "message": "change"},
			"redirect_browser_to": "https://idp.example/ui/consent"
		}`)
	}

	_, err := suite.client.SubmitFlow(context.Background(), FlowTypeLogin, testFlowID,
		map[string]interface{}{}, Credentials{})

	flowErr, ok := AsFlowError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), ErrorIDBrowserLocationChangeRequired, flowErr.ErrorID)
	assert.Equal(suite.T(), "https://idp.example/ui/consent", flowErr.RedirectBrowserTo)
}

func (suite *KratosClientTestSuite) TestRedirectResponseBecomesLocationChange() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://idp.example/login", http.StatusSeeOther)
	}

	_, err := suite.client.InitializeFlow(context.Background(), FlowTypeLogin, "", Credentials{})

	flowErr, ok := AsFlowError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusSeeOther, flowErr.Status)
	assert.Equal(suite.T(), ErrorIDBrowserLocationChangeRequired, flowErr.ErrorID)
	assert.Equal(suite.T(), "https://idp.example/login", flowErr.RedirectBrowserTo)
}

func (suite *KratosClientTestSuite) TestUnstructuredError() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "upstream down\n")
	}

	_, err := suite.client.InitializeFlow(context.Background(), FlowTypeLogin, "", Credentials{})

	flowErr, ok := AsFlowError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), http.StatusBadGateway, flowErr.Status)
	assert.Equal(suite.T(), "upstream down", flowErr.Message)
	assert.Equal(suite.T(), "identity provider returned 502", flowErr.Error())
}

func (suite *KratosClientTestSuite) TestWhoAmI() {
	suite.handler = func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/sessions/whoami", r.URL.Path)
		if _, err := r.Cookie("ory_kratos_session"); err != nil {
			writeJSON(w, http.StatusUnauthorized, `{"error": {"id": "session_inactive", "code": 401}}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"id": "s1", "active": true, "identity": {"id": "i1",
			"traits": {"username": "alice"}}}`)
	}

	s, err := suite.client.WhoAmI(context.Background(), Credentials{
		Cookies: []*http.Cookie{{Name: "ory_kratos_session", Value: "s"}},
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", s.Identity.Traits.Username)

	_, err = suite.client.WhoAmI(context.Background(), Credentials{})
	assert.ErrorIs(suite.T(), err, ErrNoSession)
}

func (suite *KratosClientTestSuite) TestParseFlowType() {
	flowType, ok := ParseFlowType("verification")
	assert.True(suite.T(), ok)
	assert.Equal(suite.T(), FlowTypeVerification, flowType)

	_, ok = ParseFlowType("logout")
	assert.False(suite.T(), ok)
}
