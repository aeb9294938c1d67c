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
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/database/provider"
	"github.com/serlo/frontend-gateway/internal/system/healthcheck/model"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/log"
)

const (
	loggerComponentName = "HealthCheckService"
	// identityProviderReadyPath is the readiness endpoint of the identity provider.
	identityProviderReadyPath = "/health/ready"
	probeTimeout              = 5 * time.Second
)

var (
	instance *HealthCheckService
	once     sync.Once
)

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) model.ServerStatus
}

// HealthCheckService checks the runtime database and the identity provider.
type HealthCheckService struct {
	DBProvider          provider.DBProviderInterface
	HTTPClient          syshttp.HTTPClientInterface
	IdentityProviderURL string
}

// GetHealthCheckService returns a singleton instance of HealthCheckService.
func GetHealthCheckService() HealthCheckServiceInterface {
	once.Do(func() {
		instance = &HealthCheckService{
			DBProvider:          provider.GetDBProvider(),
			HTTPClient:          syshttp.NewHTTPClientWithTimeout(probeTimeout),
			IdentityProviderURL: config.GetServerRuntime().Config.IdentityProvider.BaseURL,
		}
	})
	return instance
}

// CheckReadiness checks the readiness of the server and its dependencies.
func (hcs *HealthCheckService) CheckReadiness(ctx context.Context) model.ServerStatus {
	runtimeDBStatus := model.ServiceStatus{
		ServiceName: "RuntimeDB",
		Status:      hcs.checkDatabaseStatus(ctx),
	}
	identityProviderStatus := model.ServiceStatus{
		ServiceName: "IdentityProvider",
		Status:      hcs.checkIdentityProviderStatus(ctx),
	}

	status := model.StatusUp
	if runtimeDBStatus.Status == model.StatusDown || identityProviderStatus.Status == model.StatusDown {
		status = model.StatusDown
	}
	return model.ServerStatus{
		Status:        status,
		ServiceStatus: []model.ServiceStatus{runtimeDBStatus, identityProviderStatus},
	}
}

// checkDatabaseStatus pings the runtime database and runs a probe query against the error event table.
func (hcs *HealthCheckService) checkDatabaseStatus(ctx context.Context) model.Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := hcs.DBProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return model.StatusDown
	}
	if err := dbClient.Ping(ctx); err != nil {
		logger.Error("Runtime database is unreachable", log.Error(err))
		return model.StatusDown
	}
	if _, err := dbClient.Query(ctx, queryRuntimeDBTable); err != nil {
		logger.Error("Failed to execute query", log.Error(err))
		return model.StatusDown
	}
	return model.StatusUp
}

// checkIdentityProviderStatus calls the readiness endpoint of the identity provider.
func (hcs *HealthCheckService) checkIdentityProviderStatus(ctx context.Context) model.Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	url := strings.TrimRight(hcs.IdentityProviderURL, "/") + identityProviderReadyPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Error("Failed to create identity provider probe", log.Error(err))
		return model.StatusDown
	}
	resp, err := hcs.HTTPClient.Do(req)
	if err != nil {
		logger.Error("Identity provider is unreachable", log.Error(err))
		return model.StatusDown
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("Failed to close response body", log.Error(closeErr))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		logger.Error("Identity provider is not ready", log.Int("status", resp.StatusCode))
		return model.StatusDown
	}
	return model.StatusUp
}
