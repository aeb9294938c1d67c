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

import "net/http"

const (
	featureCookieEnabled  = "1"
	featureCookieDisabled = "0"
)

// Features is the set of feature toggles resolved for a single request.
type Features map[string]bool

// IsActive reports whether the named feature is active. Unknown features are inactive.
func (f Features) IsActive(name string) bool {
	return f[name]
}

// ResolveFeatures evaluates every configured toggle against the cookies of the request.
//
// In production a feature is active only when its cookie is "1" and it is not hidden in
// production. Elsewhere a feature is active when its cookie is "1", or when it is marked
// active in development and its cookie is not "0".
func ResolveFeatures(cfg FeaturesConfig, r *http.Request) Features {
	features := make(Features, len(cfg.Toggles))
	for _, toggle := range cfg.Toggles {
		cookieName := toggle.CookieName
		if cookieName == "" {
			cookieName = toggle.Name
		}

		value := ""
		if r != nil {
			if cookie, err := r.Cookie(cookieName); err == nil {
				value = cookie.Value
			}
		}
		yes := value == featureCookieEnabled
		no := value == featureCookieDisabled

		if cfg.Production {
			features[toggle.Name] = yes && !toggle.HideInProduction
		} else {
			features[toggle.Name] = yes || (toggle.ActiveInDev && !no)
		}
	}
	return features
}
