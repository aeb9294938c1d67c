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

// Package main is the entry point for starting the frontend gateway server.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/serlo/frontend-gateway/internal/system/cache"
	"github.com/serlo/frontend-gateway/internal/system/cert"
	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/database/provider"
	"github.com/serlo/frontend-gateway/internal/system/log"
	"github.com/serlo/frontend-gateway/internal/system/managers"
)

const (
	shutdownTimeout      = 15 * time.Second
	cacheCleanupInterval = 5 * time.Minute
)

func main() {
	logger := log.GetLogger()
	defer log.Sync()

	serverHome := getServerHome(logger)

	cfg := initConfigurations(logger, serverHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	mux := initMultiplexer(logger)
	if mux == nil {
		logger.Fatal("Failed to initialize multiplexer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache.StartCleanup(ctx, cacheCleanupInterval)

	server, serverAddr := createHTTPServer(logger, cfg, mux)
	listener := createListener(logger, cfg, serverAddr, serverHome)

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve requests", log.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down the frontend gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down the server gracefully", log.Error(err))
	}
	if err := provider.GetDBProvider().Close(); err != nil {
		logger.Error("Failed to close database connections", log.Error(err))
	}
}

// getServerHome retrieves and returns the server home directory.
func getServerHome(logger *log.Logger) string {
	serverHomeFlag := flag.String("serverHome", "", "Path to the gateway home directory")
	flag.Parse()

	if *serverHomeFlag != "" {
		logger.Info("Using serverHome from command line argument", log.String("serverHome", *serverHomeFlag))
		return *serverHomeFlag
	}

	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initConfigurations loads the deployment configuration and initializes the server runtime.
func initConfigurations(logger *log.Logger, serverHome string) *config.Config {
	configFilePath := filepath.Join(serverHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeServerRuntime(serverHome, cfg); err != nil {
		logger.Fatal("Failed to initialize server runtime", log.Error(err))
	}

	return cfg
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer(logger *log.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(); err != nil {
		logger.Fatal("Failed to register the services", log.Error(err))
	}

	return mux
}

// createListener opens the plain or TLS listener depending on the configuration.
func createListener(logger *log.Logger, cfg *config.Config, serverAddr, serverHome string) net.Listener {
	if cfg.Server.HTTPOnly {
		ln, err := net.Listen("tcp", serverAddr)
		if err != nil {
			logger.Fatal("Failed to start listener", log.Error(err))
		}
		logger.Info("Frontend gateway started (HTTP)...", log.String("address", serverAddr))
		return ln
	}

	tlsConfig, err := cert.GetTLSConfig(cfg, serverHome)
	if err != nil {
		logger.Fatal("Failed to load TLS configuration", log.Error(err))
	}
	ln, err := tls.Listen("tcp", serverAddr, tlsConfig)
	if err != nil {
		logger.Fatal("Failed to start TLS listener", log.Error(err))
	}
	logger.Info("Frontend gateway started (HTTPS)...", log.String("address", serverAddr))
	return ln
}

// createHTTPServer creates and configures an HTTP server with common settings.
func createHTTPServer(logger *log.Logger, cfg *config.Config, mux *http.ServeMux) (*http.Server, string) {
	wrappedMux := log.AccessLogHandler(logger, mux)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)

	server := &http.Server{
		Addr:              serverAddr,
		Handler:           wrappedMux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return server, serverAddr
}
