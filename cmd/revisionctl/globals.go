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

package main

import (
	"path/filepath"

	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/config"
)

const defaultConfigFile = "repository/conf/deployment.yaml"

// Globals holds the flags shared by every command.
type Globals struct {
	Home   string `kong:"name='home',default='.',help='Path to the gateway home directory.'"`
	Config string `kong:"name='config',help='Path to the deployment file. Defaults to the one in the home directory.'"`
}

// loadConfig reads the deployment file.
func (g *Globals) loadConfig() (*config.Config, error) {
	path := g.Config
	if path == "" {
		path = filepath.Join(g.Home, defaultConfigFile)
	}
	return config.LoadConfig(path)
}

// openStore opens the local session store configured in cfg.
func (g *Globals) openStore(cfg *config.Config) (*session.LocalStore, error) {
	path := cfg.LocalStore.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.Home, path)
	}
	return session.OpenLocalStore(path)
}
