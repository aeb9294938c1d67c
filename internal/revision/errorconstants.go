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

import "github.com/serlo/frontend-gateway/internal/system/error/serviceerror"

// Client errors for revision operations.
var (
	// ErrorInvalidRequestFormat is the error returned when the request body is malformed.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "RVS-60001",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorMissingDocument is the error returned when no revision document is sent.
	ErrorMissingDocument = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "RVS-60002",
		Error:            "Missing document",
		ErrorDescription: "The request must carry the revision document",
	}
	// ErrorInvalidEditorPath is the error returned when the legacy editor path is not a local path.
	ErrorInvalidEditorPath = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "RVS-60003",
		Error:            "Invalid editor path",
		ErrorDescription: "The editor path must be an absolute path on the legacy site",
	}
)

// Server errors for revision operations.
var (
	// ErrorLegacyEndpointUnavailable is the error returned when the legacy editor can not be reached.
	ErrorLegacyEndpointUnavailable = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "RVS-65001",
		Error:            "Legacy editor unavailable",
		ErrorDescription: "The legacy editor endpoint could not process the revision",
	}
	// ErrorSubmissionInterrupted is the error returned when a submission ends before all mutations finished.
	ErrorSubmissionInterrupted = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "RVS-65002",
		Error:            "Submission interrupted",
		ErrorDescription: "The revision submission ended before all mutations completed",
	}
)
