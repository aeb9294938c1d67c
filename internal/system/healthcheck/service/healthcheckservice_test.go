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

package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/serlo/frontend-gateway/internal/system/database/provider"
	"github.com/serlo/frontend-gateway/internal/system/healthcheck/model"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/tests/mocks/database/clientmock"
	"github.com/serlo/frontend-gateway/tests/mocks/database/providermock"
)

type HealthCheckServiceTestSuite struct {
	suite.Suite
	mockDBProvider *providermock.DBProviderInterfaceMock
	mockRuntimeDB  *clientmock.DBClientInterfaceMock
	idpStatus      int
	idpServer      *httptest.Server
	service        *HealthCheckService
}

func TestHealthCheckServiceSuite(t *testing.T) {
	suite.Run(t, new(HealthCheckServiceTestSuite))
}

func (suite *HealthCheckServiceTestSuite) SetupTest() {
	suite.idpStatus = http.StatusOK
	suite.idpServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(suite.T(), "/health/ready", r.URL.Path)
		w.WriteHeader(suite.idpStatus)
	}))

	suite.mockRuntimeDB = &clientmock.DBClientInterfaceMock{}
	suite.mockDBProvider = &providermock.DBProviderInterfaceMock{}
	suite.mockDBProvider.On("GetDBClient", provider.RuntimeDB).Return(suite.mockRuntimeDB, nil)

	suite.service = &HealthCheckService{
		DBProvider:          suite.mockDBProvider,
		HTTPClient:          syshttp.NewHTTPClient(),
		IdentityProviderURL: suite.idpServer.URL + "/",
	}
}

func (suite *HealthCheckServiceTestSuite) TearDownTest() {
	suite.idpServer.Close()
}

func (suite *HealthCheckServiceTestSuite) TestCheckReadiness() {
	testCases := []struct {
		name           string
		pingErr        error
		dbErr          error
		idpStatus      int
		expectedStatus model.Status
		expectedDB     model.Status
		expectedIdP    model.Status
	}{
		{"AllUp", nil, nil, http.StatusOK, model.StatusUp, model.StatusUp, model.StatusUp},
		{"RuntimeDBUnreachable", errors.New("connection refused"), nil, http.StatusOK, model.StatusDown,
			model.StatusDown, model.StatusUp},
		{"RuntimeDBDown", nil, errors.New("database error"), http.StatusOK, model.StatusDown, model.StatusDown,
			model.StatusUp},
		{"IdentityProviderDown", nil, nil, http.StatusServiceUnavailable, model.StatusDown, model.StatusUp,
			model.StatusDown},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.mockRuntimeDB.ExpectedCalls = nil
			suite.mockRuntimeDB.On("Ping", mock.Anything).Return(tc.pingErr)
			suite.mockRuntimeDB.On("Query", mock.Anything, queryRuntimeDBTable).
				Return([]map[string]interface{}{}, tc.dbErr)
			suite.idpStatus = tc.idpStatus

			status := suite.service.CheckReadiness(context.Background())

			assert.Equal(suite.T(), tc.expectedStatus, status.Status)
			assert.Len(suite.T(), status.ServiceStatus, 2)
			assert.Equal(suite.T(), tc.expectedDB, status.ServiceStatus[0].Status)
			assert.Equal(suite.T(), tc.expectedIdP, status.ServiceStatus[1].Status)
		})
	}
}

func (suite *HealthCheckServiceTestSuite) TestDBClientUnavailable() {
	dbProvider := &providermock.DBProviderInterfaceMock{}
	dbProvider.On("GetDBClient", provider.RuntimeDB).Return(nil, errors.New("no database"))
	suite.service.DBProvider = dbProvider

	status := suite.service.CheckReadiness(context.Background())

	assert.Equal(suite.T(), model.StatusDown, status.Status)
	assert.Equal(suite.T(), model.StatusDown, status.ServiceStatus[0].Status)
}

func (suite *HealthCheckServiceTestSuite) TestIdentityProviderUnreachable() {
	suite.mockRuntimeDB.On("Ping", mock.Anything).Return(nil)
	suite.mockRuntimeDB.On("Query", mock.Anything, queryRuntimeDBTable).Return([]map[string]interface{}{}, nil)
	suite.service.IdentityProviderURL = "http://127.0.0.1:1"

	status := suite.service.CheckReadiness(context.Background())

	assert.Equal(suite.T(), model.StatusDown, status.ServiceStatus[1].Status)
}
