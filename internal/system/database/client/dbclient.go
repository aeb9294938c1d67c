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

// Package client provides the database client used to run identified queries.
package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/serlo/frontend-gateway/internal/system/database/model"
	"github.com/serlo/frontend-gateway/internal/system/log"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const loggerComponentName = "DBClient"

// DBClientInterface defines the interface for database operations.
type DBClientInterface interface {
	// Query runs a query that returns rows. Each row is a map keyed by the lower cased column name.
	Query(ctx context.Context, query model.DBQuery, args ...interface{}) ([]map[string]interface{}, error)
	// Execute runs a query without returning rows and returns the number of rows affected.
	Execute(ctx context.Context, query model.DBQuery, args ...interface{}) (int64, error)
	// WithTx runs fn in a transaction. The transaction is committed when fn returns nil and
	// rolled back otherwise.
	WithTx(ctx context.Context, fn func(tx model.TxInterface) error) error
	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
	// Close closes the database connection.
	Close() error
}

// DBClient is the implementation of DBClientInterface.
type DBClient struct {
	db     model.DBInterface
	dbType string
}

// NewDBClient creates a new instance of DBClient with the provided database connection.
func NewDBClient(db model.DBInterface, dbType string) DBClientInterface {
	return &DBClient{
		db:     db,
		dbType: dbType,
	}
}

// Query runs a query that returns rows.
func (client *DBClient) Query(ctx context.Context, query model.DBQuery,
	args ...interface{}) ([]map[string]interface{}, error) {
	logger := client.logger()
	logger.Debug("Running query", log.String("queryID", query.GetID()))

	rows, err := client.db.QueryContext(ctx, query.GetQuery(client.dbType), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", query.GetID(), err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logger.Error("Error closing rows", log.Error(closeErr))
		}
	}()

	results, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", query.GetID(), err)
	}
	return results, nil
}

// Execute runs a query without returning rows.
func (client *DBClient) Execute(ctx context.Context, query model.DBQuery, args ...interface{}) (int64, error) {
	client.logger().Debug("Running statement", log.String("queryID", query.GetID()))

	res, err := client.db.ExecContext(ctx, query.GetQuery(client.dbType), args...)
	if err != nil {
		return 0, fmt.Errorf("statement %s failed: %w", query.GetID(), err)
	}
	return res.RowsAffected()
}

// WithTx runs fn in a transaction.
func (client *DBClient) WithTx(ctx context.Context, fn func(tx model.TxInterface) error) error {
	sqlTx, err := client.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&transaction{ctx: ctx, tx: sqlTx, dbType: client.dbType}); err != nil {
		if rollbackErr := sqlTx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			client.logger().Error("Failed to roll back transaction", log.Error(rollbackErr))
		}
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (client *DBClient) Ping(ctx context.Context) error {
	return client.db.PingContext(ctx)
}

// Close closes the database connection.
func (client *DBClient) Close() error {
	return client.db.Close()
}

func (client *DBClient) logger() *log.Logger {
	return log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
}

// transaction runs identified queries inside a *sql.Tx.
type transaction struct {
	ctx    context.Context
	tx     *sql.Tx
	dbType string
}

// Execute runs a query without returning rows inside the transaction.
func (t *transaction) Execute(query model.DBQuery, args ...interface{}) (int64, error) {
	res, err := t.tx.ExecContext(t.ctx, query.GetQuery(t.dbType), args...)
	if err != nil {
		return 0, fmt.Errorf("statement %s failed: %w", query.GetID(), err)
	}
	return res.RowsAffected()
}

// scanRows reads every row into a map keyed by the lower cased column name.
func scanRows(rows *sql.Rows) ([]map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[strings.ToLower(col)] = values[i]
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
