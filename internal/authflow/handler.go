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
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/error/serviceerror"
	"github.com/serlo/frontend-gateway/internal/system/log"
	sysutils "github.com/serlo/frontend-gateway/internal/system/utils"
)

const (
	handlerLoggerComponentName = "FlowHandler"
	// loginRoute is where anonymous users asking for their profile are sent.
	loginRoute = "/api/auth/login"
)

// flowHandler is the handler for identity flow operations.
type flowHandler struct {
	flowService FlowServiceInterface
	cookieStore session.CookieStoreInterface
	now         func() time.Time
}

// newFlowHandler creates a new instance of flowHandler.
func newFlowHandler(flowService FlowServiceInterface, cookieStore session.CookieStoreInterface) *flowHandler {
	return &flowHandler{
		flowService: flowService,
		cookieStore: cookieStore,
		now:         time.Now,
	}
}

// HandleFlowGetRequest fetches a flow, or starts one when no flow id is given.
func (fh *flowHandler) HandleFlowGetRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	flowType, ok := kratos.ParseFlowType(r.PathValue("type"))
	if !ok {
		sysutils.WriteServiceError(w, &ErrorInvalidFlowType)
		return
	}

	query := r.URL.Query()
	req := FlowRequest{
		FlowType:     flowType,
		FlowID:       query.Get("flow"),
		Only:         query.Get("only"),
		ReturnTo:     query.Get("return_to"),
		PreviousPath: query.Get("previous"),
		LoggedIn:     fh.isLoggedIn(r),
		Credentials:  kratos.Credentials{Cookies: r.Cookies()},
	}

	response, svcErr := fh.flowService.Fetch(r.Context(), req)
	if svcErr != nil {
		sysutils.WriteServiceError(w, svcErr)
		return
	}

	fh.writeFlowResponse(w, response)
	logger.Debug("Flow fetched", log.String(log.LoggerKeyFlowType, string(flowType)))
}

// HandleFlowPostRequest submits the values of a flow.
func (fh *flowHandler) HandleFlowPostRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	flowType, ok := kratos.ParseFlowType(r.PathValue("type"))
	if !ok {
		sysutils.WriteServiceError(w, &ErrorInvalidFlowType)
		return
	}

	body, err := sysutils.DecodeJSONBody[flowRequestBody](r)
	if err != nil {
		sysutils.WriteServiceError(w, serviceerror.CustomServiceError(ErrorInvalidRequestFormat,
			"Failed to parse request body: "+err.Error()))
		return
	}

	req := FlowRequest{
		FlowType:     flowType,
		FlowID:       body.FlowID,
		Only:         body.Only,
		PreviousPath: body.PreviousPath,
		Values:       body.Values,
		Method:       body.Method,
		LoggedIn:     fh.isLoggedIn(r),
		Credentials:  kratos.Credentials{Cookies: r.Cookies()},
	}

	response, svcErr := fh.flowService.Submit(r.Context(), req)
	if svcErr != nil {
		sysutils.WriteServiceError(w, svcErr)
		return
	}

	fh.writeFlowResponse(w, response)
	logger.Debug("Flow submitted", log.String(log.LoggerKeyFlowType, string(flowType)),
		log.Bool("pending", response.Pending))
}

// HandleMeRequest returns the authentication payload of the session cookie, or null.
func (fh *flowHandler) HandleMeRequest(w http.ResponseWriter, r *http.Request) {
	sysutils.WriteJSON(w, http.StatusOK, fh.currentPayload(r))
}

// HandleProfileRedirectRequest sends the user to their profile page, or to the login when anonymous.
func (fh *flowHandler) HandleProfileRedirectRequest(w http.ResponseWriter, r *http.Request) {
	payload := fh.currentPayload(r)
	if payload == nil {
		http.Redirect(w, r, loginRoute, http.StatusFound)
		return
	}
	target := fmt.Sprintf("/user/%d/%s", payload.ID, url.PathEscape(payload.Username))
	http.Redirect(w, r, target, http.StatusFound)
}

func (fh *flowHandler) writeFlowResponse(w http.ResponseWriter, response *FlowResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	for _, cookie := range response.Cookies {
		http.SetCookie(w, cookie)
	}
	if response.Session != nil {
		if err := fh.cookieStore.Set(w, response.Session); err != nil {
			logger.Error("Failed to write the session cookie", log.Error(err))
		}
	}

	status := http.StatusOK
	if response.Pending {
		status = http.StatusAccepted
	}
	sysutils.WriteJSON(w, status, response)
}

func (fh *flowHandler) currentPayload(r *http.Request) *session.AuthenticationPayload {
	current, err := fh.cookieStore.Parse(r)
	if err != nil {
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))
		logger.Debug("Ignoring unreadable session cookie", log.Error(err))
		return nil
	}
	if current == nil || current.IsExpired(fh.now()) {
		return nil
	}
	return session.PayloadFromSession(current)
}

func (fh *flowHandler) isLoggedIn(r *http.Request) bool {
	return fh.currentPayload(r) != nil
}
