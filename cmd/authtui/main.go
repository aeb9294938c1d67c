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

// Package main is the entry point of authtui, a terminal client for the self-service identity flows.
// A successful login stores the session for the other command line tools.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/config"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/log"
)

const defaultConfigFile = "repository/conf/deployment.yaml"

type cli struct {
	Type        string `kong:"name='type',default='login',enum='login,registration,recovery,settings,verification',help='Flow to run.'"`
	Only        string `kong:"name='only',help='Only show the nodes of this group next to the default group.'"`
	SessionName string `kong:"name='session-name',default='default',help='Name the session is stored under.'"`
	Home        string `kong:"name='home',default='.',help='Path to the gateway home directory.'"`
	Config      string `kong:"name='config',help='Path to the deployment file. Defaults to the one in the home directory.'"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer log.Sync()

	var args cli
	kctx := kong.Parse(&args,
		kong.Name("authtui"),
		kong.Description("Runs identity flows in the terminal."),
		kong.UsageOnError())
	kctx.FatalIfErrorf(run(ctx, args))
}

func run(ctx context.Context, args cli) error {
	configPath := args.Config
	if configPath == "" {
		configPath = filepath.Join(args.Home, defaultConfigFile)
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	storePath := cfg.LocalStore.Path
	if !filepath.IsAbs(storePath) {
		storePath = filepath.Join(args.Home, storePath)
	}
	store, err := session.OpenLocalStore(storePath)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	flowType, _ := kratos.ParseFlowType(args.Type)
	client := kratos.NewClient(cfg.IdentityProvider.BaseURL, kratos.ModeAPI,
		syshttp.NewHTTPClientWithTimeout(cfg.IdentityProviderTimeout()))

	m := newModel(ctx, modelOptions{
		client:      client,
		store:       store,
		sessionName: args.SessionName,
		flowType:    flowType,
		only:        args.Only,
		notices:     cfg.Notices,
		reporter:    errortracking.NewReporter(nil),
	})
	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}
