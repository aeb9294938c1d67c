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

package authflow

import (
	"net/http"

	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/ui"
)

// FlowRequest describes a fetch or a submission of a flow.
type FlowRequest struct {
	FlowType     kratos.FlowType
	FlowID       string
	Only         string
	ReturnTo     string
	PreviousPath string
	Values       map[string]interface{}
	Method       string
	LoggedIn     bool
	Credentials  kratos.Credentials
}

// FlowResponse is the outcome of a flow call as seen by the browser.
type FlowResponse struct {
	Form    RenderedForm `json:"form"`
	Flow    *kratos.Flow `json:"flow"`
	Effects ui.Result    `json:"effects"`
	// Pending is set when another submission of the same flow is still in flight.
	Pending bool `json:"pending,omitempty"`
	// Session is the session to persist in the session cookie.
	Session *session.Session `json:"-"`
	// Cookies are the identity provider cookies to pass on to the browser.
	Cookies []*http.Cookie `json:"-"`
}

// flowRequestBody is the JSON body of a submission.
type flowRequestBody struct {
	FlowID       string                 `json:"flowId"`
	Only         string                 `json:"only,omitempty"`
	PreviousPath string                 `json:"previousPath,omitempty"`
	Values       map[string]interface{} `json:"values"`
	Method       string                 `json:"method,omitempty"`
}
