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

package kratos

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidFlowID is returned when a flow id is not a UUID.
	ErrInvalidFlowID = errors.New("flow id is not a valid UUID")
	// ErrNoSession is returned by WhoAmI when the caller is not logged in.
	ErrNoSession = errors.New("no active session")
	// ErrResponseTooLarge is returned when the identity provider response exceeds the read limit.
	ErrResponseTooLarge = errors.New("identity provider response too large")
)

// Error ids sent by the identity provider.
const (
	ErrorIDSessionAAL2Required           = "session_aal2_required"
	ErrorIDSessionAlreadyAvailable       = "session_already_available"
	ErrorIDSessionRefreshRequired        = "session_refresh_required"
	ErrorIDReturnToForbidden             = "self_service_flow_return_to_forbidden"
	ErrorIDFlowExpired                   = "self_service_flow_expired"
	ErrorIDCSRFViolation                 = "security_csrf_violation"
	ErrorIDIdentityMismatch              = "security_identity_mismatch"
	ErrorIDBrowserLocationChangeRequired = "browser_location_change_required"
)

// GenericError is the error object of the identity provider error envelope.
type GenericError struct {
	ID      string                 `json:"id,omitempty"`
	Code    int                    `json:"code,omitempty"`
	Status  string                 `json:"status,omitempty"`
	Message string                 `json:"message,omitempty"`
	Reason  string                 `json:"reason,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// errorEnvelope is the body of a non-2xx response that is not a flow.
type errorEnvelope struct {
	Error             *GenericError `json:"error"`
	RedirectBrowserTo string        `json:"redirect_browser_to,omitempty"`
}

// FlowError is a structured failure of a flow call.
// A 400 response carries the replacement flow with validation messages in Flow.
type FlowError struct {
	Status            int
	ErrorID           string
	Code              int
	Message           string
	Reason            string
	RedirectBrowserTo string
	Flow              *Flow
	Cookies           []*http.Cookie
}

// Error implements the error interface.
func (e *FlowError) Error() string {
	if e.ErrorID != "" {
		return fmt.Sprintf("identity provider returned %d (%s): %s", e.Status, e.ErrorID, e.Message)
	}
	return fmt.Sprintf("identity provider returned %d", e.Status)
}

// AsFlowError unwraps a *FlowError from err.
func AsFlowError(err error) (*FlowError, bool) {
	var flowErr *FlowError
	if errors.As(err, &flowErr) {
		return flowErr, true
	}
	return nil, false
}
