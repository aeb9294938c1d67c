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
	"github.com/serlo/frontend-gateway/internal/contentapi"
	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/ui"
)

// SaveRequest is a request to save the editor state of an entity.
type SaveRequest struct {
	Type         Kind
	Document     *Document
	NeedsReview  bool
	InitialState *Document
	// EditorPath is the path of the legacy editor page the document was opened from.
	EditorPath string
	Auth       *contentapi.Auth
	Cookie     string
	Features   config.Features
}

// SaveResponse is the outcome of a save.
type SaveResponse struct {
	Success bool      `json:"success"`
	Effects ui.Result `json:"effects"`
}

// saveRequestBody is the JSON body of a save request.
type saveRequestBody struct {
	Document     *Document `json:"document"`
	NeedsReview  bool      `json:"needsReview"`
	InitialState *Document `json:"initialState,omitempty"`
	EditorPath   string    `json:"editorPath"`
}
