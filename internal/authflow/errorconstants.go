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

import "github.com/serlo/frontend-gateway/internal/system/error/serviceerror"

// Client errors for identity flow operations.
var (
	// ErrorInvalidFlowType is the error returned when the flow type is not supported.
	ErrorInvalidFlowType = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AFL-60001",
		Error:            "Invalid flow type",
		ErrorDescription: "The flow type must be one of login, registration, recovery, settings or verification",
	}
	// ErrorInvalidFlowID is the error returned when the flow id is missing or malformed.
	ErrorInvalidFlowID = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AFL-60002",
		Error:            "Invalid flow id",
		ErrorDescription: "The flow id must be a valid UUID",
	}
	// ErrorInvalidRequestFormat is the error returned when the request body is malformed.
	ErrorInvalidRequestFormat = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AFL-60003",
		Error:            "Invalid request format",
		ErrorDescription: "The request body is malformed or contains invalid data",
	}
	// ErrorFlowRejected is the error returned when the identity provider rejects a flow call
	// with an error that can not be handled.
	ErrorFlowRejected = serviceerror.ServiceError{
		Type:             serviceerror.ClientErrorType,
		Code:             "AFL-60004",
		Error:            "Flow rejected",
		ErrorDescription: "The identity provider rejected the request",
	}
)

// Server errors for identity flow operations.
var (
	// ErrorIdentityProviderUnavailable is the error returned when the identity provider can not be reached.
	ErrorIdentityProviderUnavailable = serviceerror.ServiceError{
		Type:             serviceerror.ServerErrorType,
		Code:             "AFL-65001",
		Error:            "Identity provider unavailable",
		ErrorDescription: "The identity provider could not process the request",
	}
)
