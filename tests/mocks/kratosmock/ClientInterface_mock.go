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

package kratosmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/session"
)

// ClientInterfaceMock is a mock type for the ClientInterface type.
type ClientInterfaceMock struct {
	mock.Mock
}

// GetFlow provides a mock function.
func (_m *ClientInterfaceMock) GetFlow(ctx context.Context, flowType kratos.FlowType, flowID string,
	creds kratos.Credentials) (*kratos.FlowResult, error) {
	ret := _m.Called(ctx, flowType, flowID, creds)

	var r0 *kratos.FlowResult
	if rf, ok := ret.Get(0).(func(context.Context, kratos.FlowType, string,
		kratos.Credentials) *kratos.FlowResult); ok {
		r0 = rf(ctx, flowType, flowID, creds)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*kratos.FlowResult)
	}
	return r0, ret.Error(1)
}

// InitializeFlow provides a mock function.
func (_m *ClientInterfaceMock) InitializeFlow(ctx context.Context, flowType kratos.FlowType, returnTo string,
	creds kratos.Credentials) (*kratos.FlowResult, error) {
	ret := _m.Called(ctx, flowType, returnTo, creds)

	var r0 *kratos.FlowResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*kratos.FlowResult)
	}
	return r0, ret.Error(1)
}

// SubmitFlow provides a mock function.
func (_m *ClientInterfaceMock) SubmitFlow(ctx context.Context, flowType kratos.FlowType, flowID string,
	body map[string]interface{}, creds kratos.Credentials) (*kratos.SubmitResult, error) {
	ret := _m.Called(ctx, flowType, flowID, body, creds)

	var r0 *kratos.SubmitResult
	if rf, ok := ret.Get(0).(func(context.Context, kratos.FlowType, string, map[string]interface{},
		kratos.Credentials) *kratos.SubmitResult); ok {
		r0 = rf(ctx, flowType, flowID, body, creds)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*kratos.SubmitResult)
	}
	return r0, ret.Error(1)
}

// WhoAmI provides a mock function.
func (_m *ClientInterfaceMock) WhoAmI(ctx context.Context, creds kratos.Credentials) (*session.Session, error) {
	ret := _m.Called(ctx, creds)

	var r0 *session.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*session.Session)
	}
	return r0, ret.Error(1)
}
