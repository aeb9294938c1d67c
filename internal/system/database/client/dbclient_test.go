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

package client

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/serlo/frontend-gateway/internal/system/database/model"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient DBClientInterface
	ctx      context.Context
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
		sqlmock.MonitorPingsOption(true))
	require.NoError(suite.T(), err)
	suite.dbClient = NewDBClient(model.NewDB(suite.mockDB), "postgres")
	suite.ctx = context.Background()
}

func (suite *DBClientTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBClientTestSuite) TestQueryNormalizesColumns() {
	query := model.DBQuery{ID: "ERT-TEST-1", Query: "SELECT ID, CODE FROM ERROR_EVENT WHERE COMPONENT = $1"}
	rows := sqlmock.NewRows([]string{"ID", "CODE"}).
		AddRow("e1", "UNKNOWN").
		AddRow("e2", "BAD_USER_INPUT")
	suite.mock.ExpectQuery(query.Query).WithArgs(driver.Value("Mutator")).WillReturnRows(rows)

	results, err := suite.dbClient.Query(suite.ctx, query, "Mutator")

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 2)
	assert.Equal(suite.T(), "e1", results[0]["id"])
	assert.Equal(suite.T(), "BAD_USER_INPUT", results[1]["code"])
}

func (suite *DBClientTestSuite) TestQueryUsesDriverVariant() {
	query := model.DBQuery{
		ID:            "ERT-TEST-2",
		Query:         "SELECT 1",
		PostgresQuery: "SELECT 2",
	}
	suite.mock.ExpectQuery("SELECT 2").WillReturnRows(sqlmock.NewRows([]string{"v"}).AddRow(2))

	results, err := suite.dbClient.Query(suite.ctx, query)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
}

func (suite *DBClientTestSuite) TestQueryError() {
	query := model.DBQuery{ID: "ERT-TEST-3", Query: "SELECT X FROM MISSING"}
	expectedErr := errors.New("table not found")
	suite.mock.ExpectQuery(query.Query).WillReturnError(expectedErr)

	results, err := suite.dbClient.Query(suite.ctx, query)
	assert.ErrorIs(suite.T(), err, expectedErr)
	assert.ErrorContains(suite.T(), err, "ERT-TEST-3")
	assert.Nil(suite.T(), results)
}

func (suite *DBClientTestSuite) TestQueryRowError() {
	query := model.DBQuery{ID: "ERT-TEST-6", Query: "SELECT ID FROM ERROR_EVENT"}
	rows := sqlmock.NewRows([]string{"ID"}).AddRow("e1").RowError(0, errors.New("broken row"))
	suite.mock.ExpectQuery(query.Query).WillReturnRows(rows)

	_, err := suite.dbClient.Query(suite.ctx, query)
	assert.ErrorContains(suite.T(), err, "broken row")
}

func (suite *DBClientTestSuite) TestExecute() {
	query := model.DBQuery{ID: "ERT-TEST-4", Query: "DELETE FROM ERROR_EVENT WHERE ID = $1"}
	suite.mock.ExpectExec(query.Query).WithArgs("e1").WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := suite.dbClient.Execute(suite.ctx, query, "e1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), affected)
}

func (suite *DBClientTestSuite) TestExecuteError() {
	query := model.DBQuery{ID: "ERT-TEST-5", Query: "DELETE FROM ERROR_EVENT"}
	suite.mock.ExpectExec(query.Query).WillReturnError(errors.New("locked"))

	_, err := suite.dbClient.Execute(suite.ctx, query)
	assert.EqualError(suite.T(), err, "statement ERT-TEST-5 failed: locked")
}

func (suite *DBClientTestSuite) TestWithTxCommits() {
	query := model.DBQuery{ID: "ERT-TEST-7", Query: "DELETE FROM ERROR_EVENT"}
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(query.Query).WillReturnResult(sqlmock.NewResult(0, 3))
	suite.mock.ExpectCommit()

	var affected int64
	err := suite.dbClient.WithTx(suite.ctx, func(tx model.TxInterface) error {
		var execErr error
		affected, execErr = tx.Execute(query)
		return execErr
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), affected)
}

func (suite *DBClientTestSuite) TestWithTxRollsBackOnError() {
	query := model.DBQuery{ID: "ERT-TEST-8", Query: "DELETE FROM ERROR_EVENT"}
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(query.Query).WillReturnError(errors.New("locked"))
	suite.mock.ExpectRollback()

	err := suite.dbClient.WithTx(suite.ctx, func(tx model.TxInterface) error {
		_, execErr := tx.Execute(query)
		return execErr
	})

	assert.ErrorContains(suite.T(), err, "ERT-TEST-8")
}

func (suite *DBClientTestSuite) TestWithTxBeginError() {
	suite.mock.ExpectBegin().WillReturnError(errors.New("closed"))

	called := false
	err := suite.dbClient.WithTx(suite.ctx, func(tx model.TxInterface) error {
		called = true
		return nil
	})

	assert.ErrorContains(suite.T(), err, "failed to begin transaction")
	assert.False(suite.T(), called)
}

func (suite *DBClientTestSuite) TestWithTxCommitError() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectCommit().WillReturnError(errors.New("conflict"))

	err := suite.dbClient.WithTx(suite.ctx, func(tx model.TxInterface) error { return nil })
	assert.ErrorContains(suite.T(), err, "failed to commit transaction")
}

func (suite *DBClientTestSuite) TestPing() {
	suite.mock.ExpectPing()
	assert.NoError(suite.T(), suite.dbClient.Ping(suite.ctx))
}

func (suite *DBClientTestSuite) TestClose() {
	suite.mock.ExpectClose()
	assert.NoError(suite.T(), suite.dbClient.Close())
}
