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

package sessionmock

import (
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/serlo/frontend-gateway/internal/session"
)

// CookieStoreInterfaceMock is a mock type for the CookieStoreInterface type.
type CookieStoreInterfaceMock struct {
	mock.Mock
}

// Set provides a mock function.
func (_m *CookieStoreInterfaceMock) Set(w http.ResponseWriter, s *session.Session) error {
	ret := _m.Called(w, s)
	return ret.Error(0)
}

// Parse provides a mock function.
func (_m *CookieStoreInterfaceMock) Parse(r *http.Request) (*session.Session, error) {
	ret := _m.Called(r)

	var r0 *session.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*session.Session)
	}
	return r0, ret.Error(1)
}

// Remove provides a mock function.
func (_m *CookieStoreInterfaceMock) Remove(w http.ResponseWriter) {
	_m.Called(w)
}

// CSRFToken provides a mock function.
func (_m *CookieStoreInterfaceMock) CSRFToken(r *http.Request) string {
	ret := _m.Called(r)
	return ret.String(0)
}
