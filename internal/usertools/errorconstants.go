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

import "github.com/serlo/frontend-gateway/internal/system/error/serviceerror"

// Client errors for author tool operations.
var (
	// ErrorUnknownOperation is the error returned when the operation is not supported.
	ErrorUnknownOperation = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "UTL-60001",
		Error:            "Unknown operation",
		ErrorDescription: "The requested author tool operation is not supported",
	}
	// ErrorInvalidRequestFormat is the error returned when the request body is malformed.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "UTL-60002",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorInvalidInput is the error returned when the mutation input is incomplete.
	ErrorInvalidInput = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "UTL-60003",
		Error:            "Invalid input",
		ErrorDescription: "The mutation input is incomplete",
	}
)
