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

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// CORSConfig holds the configuration details for the CORS.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// IdentityProviderConfig holds the connection details of the self-service identity provider.
type IdentityProviderConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout is the outbound request timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// ContentAPIConfig holds the connection details of the GraphQL content API.
type ContentAPIConfig struct {
	Endpoint        string `yaml:"endpoint"`
	LegacyBaseURL   string `yaml:"legacy_base_url"`
	TokenRefreshURL string `yaml:"token_refresh_url"`
	// Timeout is the outbound request timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// SessionConfig holds the browser session cookie details.
type SessionConfig struct {
	CookieName     string `yaml:"cookie_name"`
	Domain         string `yaml:"domain"`
	CSRFCookieName string `yaml:"csrf_cookie_name"`
	Secure         bool   `yaml:"secure"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type            string `yaml:"type"`
	Hostname        string `yaml:"hostname"`
	Port            int    `yaml:"port"`
	Name            string `yaml:"name"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	SSLMode         string `yaml:"sslmode"`
	Path            string `yaml:"path"`
	Options         string `yaml:"options"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Runtime DataSource `yaml:"runtime"`
}

// CacheProperty defines the properties for individual caches.
type CacheProperty struct {
	Name     string `yaml:"name"`
	Disabled bool   `yaml:"disabled"`
	Size     int    `yaml:"size"`
	TTL      int    `yaml:"ttl"`
}

// RedisConfig holds the redis connection details used by the redis cache type.
type RedisConfig struct {
	Address   string `yaml:"address"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	Disabled   bool            `yaml:"disabled"`
	Type       string          `yaml:"type"`
	Size       int             `yaml:"size"`
	TTL        int             `yaml:"ttl"`
	Redis      RedisConfig     `yaml:"redis"`
	Properties []CacheProperty `yaml:"properties"`
}

// FeatureToggle describes a cookie gated feature.
type FeatureToggle struct {
	Name             string `yaml:"name"`
	CookieName       string `yaml:"cookie_name"`
	ActiveInDev      bool   `yaml:"active_in_dev"`
	HideInProduction bool   `yaml:"hide_in_production"`
}

// FeaturesConfig holds the feature toggle definitions.
type FeaturesConfig struct {
	Production bool            `yaml:"production"`
	Toggles    []FeatureToggle `yaml:"toggles"`
}

// LocalStoreConfig holds the on-disk session store used by the command line tools.
type LocalStoreConfig struct {
	Path string `yaml:"path"`
}

// NoticesConfig holds the user facing notice strings.
type NoticesConfig struct {
	NotLoggedIn      string            `yaml:"not_logged_in"`
	ValueMissing     string            `yaml:"value_missing"`
	RevisionSaved    string            `yaml:"revision_saved"`
	AlreadyLoggedIn  string            `yaml:"already_logged_in"`
	RegistrationHint string            `yaml:"registration_hint"`
	MutationErrors   map[string]string `yaml:"mutation_errors"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server           ServerConfig           `yaml:"server"`
	Security         SecurityConfig         `yaml:"security"`
	CORS             CORSConfig             `yaml:"cors"`
	IdentityProvider IdentityProviderConfig `yaml:"identity_provider"`
	ContentAPI       ContentAPIConfig       `yaml:"content_api"`
	Session          SessionConfig          `yaml:"session"`
	Database         DatabaseConfig         `yaml:"database"`
	Cache            CacheConfig            `yaml:"cache"`
	Features         FeaturesConfig         `yaml:"features"`
	LocalStore       LocalStoreConfig       `yaml:"local_store"`
	Notices          NoticesConfig          `yaml:"notices"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills the values that the deployment file may leave out.
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.IdentityProvider.Timeout <= 0 {
		cfg.IdentityProvider.Timeout = defaultOutboundTimeout
	}
	if cfg.ContentAPI.Timeout <= 0 {
		cfg.ContentAPI.Timeout = defaultOutboundTimeout
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = defaultSessionCookieName
	}
	if cfg.Session.CSRFCookieName == "" {
		cfg.Session.CSRFCookieName = defaultCSRFCookieName
	}
	if cfg.LocalStore.Path == "" {
		cfg.LocalStore.Path = defaultLocalStorePath
	}

	notices := &cfg.Notices
	if notices.NotLoggedIn == "" {
		notices.NotLoggedIn = "Please make sure you are logged in!"
	}
	if notices.ValueMissing == "" {
		notices.ValueMissing = "Please fill out this field"
	}
	if notices.RevisionSaved == "" {
		notices.RevisionSaved = "Revision saved successfully!"
	}
	if notices.AlreadyLoggedIn == "" {
		notices.AlreadyLoggedIn = "You are already logged in."
	}
	if notices.RegistrationHint == "" {
		notices.RegistrationHint = "An account with the same identifier exists already. " +
			"Please try a different username or email address."
	}
	if notices.MutationErrors == nil {
		notices.MutationErrors = map[string]string{}
	}
	for code, text := range defaultMutationErrors {
		if _, ok := notices.MutationErrors[code]; !ok {
			notices.MutationErrors[code] = text
		}
	}
}

// IdentityProviderTimeout returns the identity provider timeout as a duration.
func (c *Config) IdentityProviderTimeout() time.Duration {
	return time.Duration(c.IdentityProvider.Timeout) * time.Second
}

// ContentAPITimeout returns the content API timeout as a duration.
func (c *Config) ContentAPITimeout() time.Duration {
	return time.Duration(c.ContentAPI.Timeout) * time.Second
}
