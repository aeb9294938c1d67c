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
	"net/http"

	"github.com/serlo/frontend-gateway/internal/system/constants"
	"github.com/serlo/frontend-gateway/internal/system/error/serviceerror"
	"github.com/serlo/frontend-gateway/internal/system/log"
	sysutils "github.com/serlo/frontend-gateway/internal/system/utils"
)

const proxyLoggerComponentName = "GraphQLProxy"

// proxyHandler forwards browser GraphQL requests with the browser's cookies.
type proxyHandler struct {
	client GraphQLClientInterface
}

func newProxyHandler(client GraphQLClientInterface) *proxyHandler {
	return &proxyHandler{client: client}
}

// HandleGraphQLRequest forwards the query to the content API. Requests without cookies are refused.
func (ph *proxyHandler) HandleGraphQLRequest(w http.ResponseWriter, r *http.Request) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, proxyLoggerComponentName))

	cookie := r.Header.Get(constants.CookieHeaderName)
	if cookie == "" {
		sysutils.WriteJSON(w, http.StatusForbidden, map[string]string{"message": "No auth cookie provided!"})
		return
	}

	req, err := sysutils.DecodeJSONBody[Request](r)
	if err != nil {
		sysutils.WriteServiceError(w, serviceerror.CustomServiceError(ErrorInvalidRequestFormat,
			"Failed to parse request body: "+err.Error()))
		return
	}
	if req.Query == "" {
		sysutils.WriteServiceError(w, &ErrorMissingQuery)
		return
	}

	resp, err := ph.client.Execute(r.Context(), *req, Credentials{Cookie: cookie})
	if err != nil {
		logger.Error("Failed to forward GraphQL request", log.Error(err))
		sysutils.WriteServiceError(w, &ErrorContentAPIUnavailable)
		return
	}

	sysutils.WriteJSON(w, http.StatusOK, resp)
	logger.Debug("GraphQL request forwarded", log.Int("errors", len(resp.Errors)))
}
