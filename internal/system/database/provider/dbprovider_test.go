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

package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/serlo/frontend-gateway/internal/system/config"
)

type DBProviderTestSuite struct {
	suite.Suite
}

func TestDBProviderSuite(t *testing.T) {
	suite.Run(t, new(DBProviderTestSuite))
}

func (suite *DBProviderTestSuite) TearDownTest() {
	config.ResetServerRuntime()
}

func (suite *DBProviderTestSuite) TestGetDBConfigPostgres() {
	cfg, err := getDBConfig(config.DataSource{
		Type: "postgres", Hostname: "db", Port: 5432, Username: "u", Password: "p", Name: "runtime",
		SSLMode: "disable",
	}, "/srv")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "postgres", cfg.driverName)
	assert.Equal(suite.T(), "host=db port=5432 user=u password=p dbname=runtime sslmode=disable", cfg.dsn)
}

func (suite *DBProviderTestSuite) TestGetDBConfigSQLite() {
	cfg, err := getDBConfig(config.DataSource{Type: "sqlite", Path: "data/runtime.db", Options: "_busy_timeout=5000"},
		"/srv")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "sqlite", cfg.driverName)
	assert.Equal(suite.T(), "/srv/data/runtime.db?_busy_timeout=5000", cfg.dsn)

	cfg, err = getDBConfig(config.DataSource{Type: "sqlite", Path: "/abs/runtime.db"}, "/srv")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/abs/runtime.db", cfg.dsn)
}

func (suite *DBProviderTestSuite) TestGetDBConfigUnsupported() {
	_, err := getDBConfig(config.DataSource{Type: "mysql"}, "")
	assert.ErrorContains(suite.T(), err, "unsupported data source type")
}

func (suite *DBProviderTestSuite) TestGetDBClientUnknownName() {
	provider := &DBProvider{}
	_, err := provider.GetDBClient("identity")
	assert.EqualError(suite.T(), err, "unsupported database name: identity")
}

func (suite *DBProviderTestSuite) TestGetDBClientSQLite() {
	home := suite.T().TempDir()
	_ = config.InitializeServerRuntime(home, &config.Config{
		Database: config.DatabaseConfig{Runtime: config.DataSource{Type: "sqlite", Path: "runtime.db"}},
	})

	provider := &DBProvider{}
	first, err := provider.GetDBClient(RuntimeDB)
	assert.NoError(suite.T(), err)
	second, err := provider.GetDBClient(RuntimeDB)
	assert.NoError(suite.T(), err)
	assert.Same(suite.T(), first, second)

	assert.NoError(suite.T(), provider.Close())
	assert.NoError(suite.T(), provider.Close())
}
