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
	"net/http"
	"time"

	"github.com/serlo/frontend-gateway/internal/contentapi"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/error/serviceerror"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	sysutils "github.com/serlo/frontend-gateway/internal/system/utils"
)

// userToolsHandler is the handler for author tool operations.
type userToolsHandler struct {
	service     UserToolsServiceInterface
	cookieStore session.CookieStoreInterface
	refreshURL  string
	httpClient  syshttp.HTTPClientInterface
	now         func() time.Time
}

// HandleOperationRequest runs the operation named in the path.
func (uh *userToolsHandler) HandleOperationRequest(w http.ResponseWriter, r *http.Request) {
	body, err := sysutils.DecodeJSONBody[operationRequestBody](r)
	if err != nil {
		sysutils.WriteServiceError(w, serviceerror.CustomServiceError(ErrorInvalidRequestFormat,
			"Failed to parse request body: "+err.Error()))
		return
	}

	var payload *session.AuthenticationPayload
	if current, err := uh.cookieStore.Parse(r); err == nil && current != nil && !current.IsExpired(uh.now()) {
		payload = session.PayloadFromSession(current)
	}

	response, svcErr := uh.service.Run(r.Context(), OperationRequest{
		Operation: Operation(r.PathValue("operation")),
		Input:     body.Input,
		Auth:      contentapi.AuthFromRequest(r, payload, uh.refreshURL, uh.httpClient),
	})
	if svcErr != nil {
		sysutils.WriteServiceError(w, svcErr)
		return
	}
	sysutils.WriteJSON(w, http.StatusOK, response)
}
