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

package config

const (
	defaultServerPort        = 8090
	defaultOutboundTimeout   = 30
	defaultSessionCookieName = "auth-session"
	defaultCSRFCookieName    = "CSRF"
	defaultLocalStorePath    = "repository/data/sessions"
)

// defaultMutationErrors maps content API error codes to the notices shown when no override is configured.
var defaultMutationErrors = map[string]string{
	"UNAUTHENTICATED": "You have to log in to do that.",
	"FORBIDDEN":       "Sorry, you are not allowed to do that.",
	"INVALID_TOKEN":   "Your session expired, please log in again.",
	"BAD_USER_INPUT":  "Sorry, this input was not accepted.",
	"UNKNOWN":         "An unknown error occurred.",
}
