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

// GraphQLClientInterfaceMock is a mock type for the GraphQLClientInterface type.
type GraphQLClientInterfaceMock struct {
	mock.Mock
}

// Execute provides a mock function.
func (_m *GraphQLClientInterfaceMock) Execute(ctx context.Context, req contentapi.Request,
	creds contentapi.Credentials) (*contentapi.Response, error) {
	ret := _m.Called(ctx, req, creds)

	var r0 *contentapi.Response
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*contentapi.Response)
	}
	return r0, ret.Error(1)
}
