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

import (
	"net/http"

	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/system/log"
)

// ErrorKind is the closed set of flow error classes.
type ErrorKind int

const (
	// ErrorKindUnknown is an error the flow cannot recover from on its own.
	ErrorKindUnknown ErrorKind = iota
	// ErrorKindStepUpRequired asks for a second factor.
	ErrorKindStepUpRequired
	// ErrorKindSessionAlreadyAvailable means the user is logged in already.
	ErrorKindSessionAlreadyAvailable
	// ErrorKindReauthRequired asks the user to log in again.
	ErrorKindReauthRequired
	// ErrorKindFlowInvalid means the flow can not be continued and a fresh one is needed.
	ErrorKindFlowInvalid
	// ErrorKindFlowExpired means the flow timed out.
	ErrorKindFlowExpired
	// ErrorKindLocationChangeRequired sends the browser to another location.
	ErrorKindLocationChangeRequired
	// ErrorKindValidation carries a replacement flow with field messages.
	ErrorKindValidation
)

var errorKindNames = map[ErrorKind]string{
	ErrorKindUnknown:                 "unknown",
	ErrorKindStepUpRequired:          "step_up_required",
	ErrorKindSessionAlreadyAvailable: "session_already_available",
	ErrorKindReauthRequired:          "reauth_required",
	ErrorKindFlowInvalid:             "flow_invalid",
	ErrorKindFlowExpired:             "flow_expired",
	ErrorKindLocationChangeRequired:  "location_change_required",
	ErrorKindValidation:              "validation",
}

// errorKinds lists every kind. The error handler must have an action for each.
var errorKinds = []ErrorKind{
	ErrorKindUnknown,
	ErrorKindStepUpRequired,
	ErrorKindSessionAlreadyAvailable,
	ErrorKindReauthRequired,
	ErrorKindFlowInvalid,
	ErrorKindFlowExpired,
	ErrorKindLocationChangeRequired,
	ErrorKindValidation,
}

// String returns the name of the kind.
func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return errorKindNames[ErrorKindUnknown]
}

var errorIDKinds = map[string]ErrorKind{
	kratos.ErrorIDSessionAAL2Required:           ErrorKindStepUpRequired,
	kratos.ErrorIDSessionAlreadyAvailable:       ErrorKindSessionAlreadyAvailable,
	kratos.ErrorIDSessionRefreshRequired:        ErrorKindReauthRequired,
	kratos.ErrorIDReturnToForbidden:             ErrorKindFlowInvalid,
	kratos.ErrorIDFlowExpired:                   ErrorKindFlowExpired,
	kratos.ErrorIDCSRFViolation:                 ErrorKindFlowInvalid,
	kratos.ErrorIDIdentityMismatch:              ErrorKindFlowInvalid,
	kratos.ErrorIDBrowserLocationChangeRequired: ErrorKindLocationChangeRequired,
}

// ClassifyFlowError maps a flow error to its kind: by error id first, then by status.
// Ids that are not known are logged so that new provider errors show up.
func ClassifyFlowError(flowErr *kratos.FlowError) ErrorKind {
	if flowErr == nil {
		return ErrorKindUnknown
	}

	if flowErr.ErrorID != "" {
		if kind, ok := errorIDKinds[flowErr.ErrorID]; ok {
			return kind
		}
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, errorHandlerComponentName))
		logger.Warn("Unclassified identity provider error id", log.String("errorId", flowErr.ErrorID),
			log.Int("status", flowErr.Status))
	}

	switch flowErr.Status {
	case http.StatusGone:
		return ErrorKindFlowExpired
	case http.StatusBadRequest:
		if flowErr.Flow != nil {
			return ErrorKindValidation
		}
	}
	return ErrorKindUnknown
}
