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

package contentapimock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/serlo/frontend-gateway/internal/contentapi"
)

// MutatorInterfaceMock is a mock type for the MutatorInterface type.
type MutatorInterfaceMock struct {
	mock.Mock
}

// Mutate provides a mock function.
func (_m *MutatorInterfaceMock) Mutate(ctx context.Context, auth *contentapi.Auth, query string,
	input interface{}, errorStrings contentapi.ErrorStrings) bool {
	ret := _m.Called(ctx, auth, query, input, errorStrings)

	if rf, ok := ret.Get(0).(func(context.Context, *contentapi.Auth, string, interface{},
		contentapi.ErrorStrings) bool); ok {
		return rf(ctx, auth, query, input, errorStrings)
	}
	return ret.Bool(0)
}
