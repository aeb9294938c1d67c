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

import "github.com/serlo/frontend-gateway/internal/system/error/serviceerror"

// Client errors for content API operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request body is malformed.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CAP-60001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorMissingQuery is the error returned when a GraphQL request has no query.
	ErrorMissingQuery = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "CAP-60002",
		Error:            "Missing query",
		ErrorDescription: "The GraphQL request must carry a query",
	}
)

// Server errors for content API operations.
var (
	// ErrorContentAPIUnavailable is the error returned when the content API can not be reached.
	ErrorContentAPIUnavailable = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "CAP-65001",
		Error:            "Content API unavailable",
		ErrorDescription: "The content API could not process the request",
	}
)
