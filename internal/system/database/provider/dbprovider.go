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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/database/client"
	"github.com/serlo/frontend-gateway/internal/system/database/model"
)

const (
	// RuntimeDB is the name of the runtime data source.
	RuntimeDB = "runtime"

	dataSourceTypePostgres = "postgres"
	dataSourceTypeSQLite   = "sqlite"
)

// dbConfig represents the local database configuration.
type dbConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
	Close() error
}

// DBProvider is the implementation of DBProviderInterface.
// Clients are opened lazily and shared; callers must not close them.
type DBProvider struct {
	runtimeClient client.DBClientInterface
	runtimeMutex  sync.Mutex
}

var (
	instance *DBProvider
	once     sync.Once
)

// GetDBProvider returns the instance of DBProvider.
func GetDBProvider() DBProviderInterface {
	once.Do(func() {
		instance = &DBProvider{}
	})
	return instance
}

// GetDBClient returns a database client based on the provided database name.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	if dbName != RuntimeDB {
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}

	d.runtimeMutex.Lock()
	defer d.runtimeMutex.Unlock()

	if d.runtimeClient != nil {
		return d.runtimeClient, nil
	}

	runtime := config.GetServerRuntime()
	dbClient, err := openClient(runtime.Config.Database.Runtime, runtime.ServerHome)
	if err != nil {
		return nil, err
	}
	d.runtimeClient = dbClient
	return dbClient, nil
}

// Close closes the open database clients.
func (d *DBProvider) Close() error {
	d.runtimeMutex.Lock()
	defer d.runtimeMutex.Unlock()

	if d.runtimeClient == nil {
		return nil
	}
	err := d.runtimeClient.Close()
	d.runtimeClient = nil
	if err != nil {
		return fmt.Errorf("failed to close %s client: %w", RuntimeDB, err)
	}
	return nil
}

// openClient opens and pings a connection for the given data source.
func openClient(dataSource config.DataSource, serverHome string) (client.DBClientInterface, error) {
	dbConfig, err := getDBConfig(dataSource, serverHome)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dataSource.Name, err)
	}

	if dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dataSource.MaxOpenConns)
	}
	if dataSource.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dataSource.MaxIdleConns)
	}
	if dataSource.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(dataSource.ConnMaxLifetime) * time.Second)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database %s: %w (close error: %w)", dataSource.Name, err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database %s: %w", dataSource.Name, err)
	}

	return client.NewDBClient(model.NewDB(db), dbConfig.driverName), nil
}

// getDBConfig returns the driver name and DSN for the provided data source.
func getDBConfig(dataSource config.DataSource, serverHome string) (dbConfig, error) {
	switch dataSource.Type {
	case dataSourceTypePostgres:
		return dbConfig{
			driverName: dataSourceTypePostgres,
			dsn: fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
				dataSource.Name, dataSource.SSLMode),
		}, nil
	case dataSourceTypeSQLite:
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		dbPath := dataSource.Path
		if !path.IsAbs(dbPath) {
			dbPath = path.Join(serverHome, dbPath)
		}
		return dbConfig{
			driverName: dataSourceTypeSQLite,
			dsn:        dbPath + options,
		}, nil
	default:
		return dbConfig{}, fmt.Errorf("unsupported data source type: %q", dataSource.Type)
	}
}
