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
	"encoding/json"

	"github.com/serlo/frontend-gateway/internal/contentapi"
	"github.com/serlo/frontend-gateway/internal/ui"
)

// OperationRequest is a request to run an author tool mutation.
type OperationRequest struct {
	Operation Operation
	Input     json.RawMessage
	Auth      *contentapi.Auth
}

// OperationResponse is the outcome of an author tool mutation.
type OperationResponse struct {
	Success bool      `json:"success"`
	Effects ui.Result `json:"effects"`
}

// operationRequestBody is the JSON body of an operation request.
type operationRequestBody struct {
	Input json.RawMessage `json:"input"`
}
