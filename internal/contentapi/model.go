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
	"encoding/json"
)

// ErrorCode classifies a failed content API call.
type ErrorCode string

const (
	// CodeUnauthenticated means the caller has no valid session.
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	// CodeForbidden means the caller lacks the permission.
	CodeForbidden ErrorCode = "FORBIDDEN"
	// CodeInvalidToken means the access token was rejected and may be refreshed.
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// CodeBadUserInput means the input was not accepted.
	CodeBadUserInput ErrorCode = "BAD_USER_INPUT"
	// CodeUnknown is every other failure.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// ErrorStrings maps error codes to the notice shown for them.
type ErrorStrings map[string]string

// Request is a GraphQL request.
type Request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLError is one entry of the errors array of a GraphQL response.
type GraphQLError struct {
	Message    string        `json:"message"`
	Path       []interface{} `json:"path,omitempty"`
	Extensions struct {
		Code string `json:"code,omitempty"`
	} `json:"extensions"`
}

// Response is a GraphQL response.
type Response struct {
	Data   json.RawMessage `json:"data,omitempty"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// Credentials authenticate a content API call.
type Credentials struct {
	// Token is the bearer access token.
	Token string
	// Cookie is the raw Cookie header of the browser.
	Cookie string
	// SessionToken is the identity provider session token of native clients.
	SessionToken string
}

// Classify returns the error code of a response, or an empty code on success.
func Classify(resp *Response, err error) ErrorCode {
	if err != nil || resp == nil {
		return CodeUnknown
	}
	if len(resp.Errors) == 0 {
		return ""
	}
	switch code := ErrorCode(resp.Errors[0].Extensions.Code); code {
	case CodeUnauthenticated, CodeForbidden, CodeInvalidToken, CodeBadUserInput:
		return code
	default:
		return CodeUnknown
	}
}

// Succeeded reports whether the response carries data and no mutation payload reports success false.
func (r *Response) Succeeded() bool {
	if r == nil || len(r.Data) == 0 {
		return false
	}
	var data interface{}
	if err := json.Unmarshal(r.Data, &data); err != nil || data == nil {
		return false
	}
	return !hasFailedPayload(data)
}

func hasFailedPayload(value interface{}) bool {
	switch v := value.(type) {
	case map[string]interface{}:
		if success, ok := v["success"].(bool); ok && !success {
			return true
		}
		for _, child := range v {
			if hasFailedPayload(child) {
				return true
			}
		}
	case []interface{}:
		for _, child := range v {
			if hasFailedPayload(child) {
				return true
			}
		}
	}
	return false
}
