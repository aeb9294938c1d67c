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
	"strings"

	"github.com/serlo/frontend-gateway/internal/kratos"
)

// Paths of the authentication pages.
const (
	PathHome         = "/"
	PathLogin        = "/auth/login"
	PathRegistration = "/auth/registration"
	PathVerification = "/auth/verification"
)

// authPaths are never used as the target after a login.
var authPaths = []string{PathVerification, PathLogin, PathRegistration}

// FlowPath returns the page that starts a fresh flow of the given type.
func FlowPath(flowType kratos.FlowType) string {
	return "/auth/" + string(flowType)
}

// FilterUnwantedRedirection returns the desired path unless it is not a local path or starts with
// one of the unwanted paths, in which case it returns the home path.
func FilterUnwantedRedirection(desiredPath string, unwantedPaths []string) string {
	if !isLocalPath(desiredPath) {
		return PathHome
	}
	for _, unwanted := range unwantedPaths {
		if strings.HasPrefix(desiredPath, unwanted) {
			return PathHome
		}
	}
	return desiredPath
}

// isLocalPath reports whether path stays on this site: it starts with a single slash and is not
// a scheme relative URL. Browsers treat a backslash after the first slash like a slash.
func isLocalPath(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	if len(path) > 1 && (path[1] == '/' || path[1] == '\\') {
		return false
	}
	return !strings.ContainsAny(path, "\r\n")
}
