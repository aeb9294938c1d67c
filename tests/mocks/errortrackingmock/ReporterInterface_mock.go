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

package errortrackingmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/serlo/frontend-gateway/internal/errortracking"
)

// ReporterInterfaceMock is a mock type for the ReporterInterface type.
type ReporterInterfaceMock struct {
	mock.Mock
}

// Report provides a mock function.
func (_m *ReporterInterfaceMock) Report(ctx context.Context, event errortracking.Event) {
	_m.Called(ctx, event)
}

// Recent provides a mock function.
func (_m *ReporterInterfaceMock) Recent(ctx context.Context, limit int) ([]errortracking.Event, error) {
	ret := _m.Called(ctx, limit)

	var r0 []errortracking.Event
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]errortracking.Event)
	}
	return r0, ret.Error(1)
}
