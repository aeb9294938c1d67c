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

package clientmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/serlo/frontend-gateway/internal/system/database/model"
)

// DBClientInterfaceMock is a mock type for the DBClientInterface type.
type DBClientInterfaceMock struct {
	mock.Mock
}

// Query provides a mock function.
func (_m *DBClientInterfaceMock) Query(ctx context.Context, query model.DBQuery,
	args ...interface{}) ([]map[string]interface{}, error) {
	ret := _m.Called(append([]interface{}{ctx, query}, args...)...)

	var r0 []map[string]interface{}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]map[string]interface{})
	}
	return r0, ret.Error(1)
}

// Execute provides a mock function.
func (_m *DBClientInterfaceMock) Execute(ctx context.Context, query model.DBQuery,
	args ...interface{}) (int64, error) {
	ret := _m.Called(append([]interface{}{ctx, query}, args...)...)
	return ret.Get(0).(int64), ret.Error(1)
}

// WithTx provides a mock function.
func (_m *DBClientInterfaceMock) WithTx(ctx context.Context, fn func(tx model.TxInterface) error) error {
	ret := _m.Called(ctx, fn)
	return ret.Error(0)
}

// Ping provides a mock function.
func (_m *DBClientInterfaceMock) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Close provides a mock function.
func (_m *DBClientInterfaceMock) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}
