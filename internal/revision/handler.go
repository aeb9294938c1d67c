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
	"net/http"
	"time"

	"github.com/serlo/frontend-gateway/internal/contentapi"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/constants"
	"github.com/serlo/frontend-gateway/internal/system/error/serviceerror"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/log"
	sysutils "github.com/serlo/frontend-gateway/internal/system/utils"
)

const handlerLoggerComponentName = "RevisionHandler"

// revisionHandler is the handler for revision operations.
type revisionHandler struct {
	revisionService RevisionServiceInterface
	cookieStore     session.CookieStoreInterface
	features        config.FeaturesConfig
	refreshURL      string
	httpClient      syshttp.HTTPClientInterface
	now             func() time.Time
}

// HandleSaveRequest saves the editor state of an entity of the given type.
func (rh *revisionHandler) HandleSaveRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, handlerLoggerComponentName))

	body, err := sysutils.DecodeJSONBody[saveRequestBody](r)
	if err != nil {
		sysutils.WriteServiceError(w, serviceerror.CustomServiceError(ErrorInvalidRequestFormat,
			"Failed to parse request body: "+err.Error()))
		return
	}

	if body.Document != nil && body.Document.CSRF == "" {
		body.Document.CSRF = rh.cookieStore.CSRFToken(r)
	}

	kind := Kind(r.PathValue("type"))
	req := SaveRequest{
		Type:         kind,
		Document:     body.Document,
		NeedsReview:  body.NeedsReview,
		InitialState: body.InitialState,
		EditorPath:   body.EditorPath,
		Auth:         contentapi.AuthFromRequest(r, rh.currentPayload(r), rh.refreshURL, rh.httpClient),
		Cookie:       r.Header.Get(constants.CookieHeaderName),
		Features:     config.ResolveFeatures(rh.features, r),
	}

	response, svcErr := rh.revisionService.Save(r.Context(), req)
	if svcErr != nil {
		sysutils.WriteServiceError(w, svcErr)
		return
	}

	sysutils.WriteJSON(w, http.StatusOK, response)
	logger.Debug("Revision save handled", log.String("type", string(kind)), log.Bool("success", response.Success))
}

func (rh *revisionHandler) currentPayload(r *http.Request) *session.AuthenticationPayload {
	current, err := rh.cookieStore.Parse(r)
	if err != nil || current == nil || current.IsExpired(rh.now()) {
		return nil
	}
	return session.PayloadFromSession(current)
}
