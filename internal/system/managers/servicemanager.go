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

// Package managers provides functionality for managing and registering system services.
package managers

import (
	"fmt"
	"net/http"

	"github.com/serlo/frontend-gateway/internal/authflow"
	"github.com/serlo/frontend-gateway/internal/contentapi"
	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/revision"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/cache"
	"github.com/serlo/frontend-gateway/internal/system/config"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/log"
	"github.com/serlo/frontend-gateway/internal/system/services"
	sysutils "github.com/serlo/frontend-gateway/internal/system/utils"
	"github.com/serlo/frontend-gateway/internal/usertools"
)

// ServiceManagerInterface defines the interface for managing services.
type ServiceManagerInterface interface {
	RegisterServices() error
}

// ServiceManager implements the ServiceManagerInterface and is responsible for registering services.
type ServiceManager struct {
	mux      *http.ServeMux
	config   *config.Config
	reporter errortracking.ReporterInterface
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {
	return &ServiceManager{
		mux:    mux,
		config: &config.GetServerRuntime().Config,
	}
}

// RegisterServices registers all the services with the provided HTTP multiplexer.
func (sm *ServiceManager) RegisterServices() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ServiceManager"))

	if _, err := sysutils.ParseAbsoluteURL(sm.config.IdentityProvider.BaseURL); err != nil {
		return fmt.Errorf("invalid identity provider base url: %w", err)
	}
	if _, err := sysutils.ParseAbsoluteURL(sm.config.ContentAPI.Endpoint); err != nil {
		return fmt.Errorf("invalid content api endpoint: %w", err)
	}
	if sm.reporter == nil {
		sm.reporter = errortracking.GetReporter()
	}

	// Register the health service.
	services.NewHealthCheckService(sm.mux)

	cookieStore := session.NewCookieStore(sm.config.Session)

	// Register the identity flow service.
	idpClient := kratos.NewClient(sm.config.IdentityProvider.BaseURL, kratos.ModeBrowser,
		syshttp.NewHTTPClientWithTimeout(sm.config.IdentityProviderTimeout()))
	flowCache := cache.GetCache[*kratos.Flow](authflow.FlowCacheName)
	authflow.Initialize(sm.mux,
		authflow.NewFlowService(idpClient, flowCache, sm.config.Notices, sm.reporter), cookieStore)

	// Register the content API proxy.
	apiHTTPClient := syshttp.NewHTTPClientWithTimeout(sm.config.ContentAPITimeout())
	graphQLClient := contentapi.NewGraphQLClient(sm.config.ContentAPI.Endpoint, apiHTTPClient)
	contentapi.Initialize(sm.mux, graphQLClient)

	// Register the revision service.
	mutator := contentapi.NewMutator(graphQLClient, sm.reporter)
	revisionService := revision.NewRevisionService(
		revision.NewOrchestrator(mutator, sm.config.Notices),
		revision.NewLegacySubmitter(sm.config.ContentAPI.LegacyBaseURL, apiHTTPClient))
	revision.Initialize(sm.mux, revisionService, cookieStore, sm.config, apiHTTPClient)

	// Register the user tools service.
	usertools.Initialize(sm.mux, usertools.NewUserToolsService(mutator, sm.config.Notices), cookieStore,
		sm.config.ContentAPI.TokenRefreshURL, apiHTTPClient)

	logger.Debug("Registered gateway services")
	return nil
}
