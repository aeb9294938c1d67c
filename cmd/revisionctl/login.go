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
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/session"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
)

// LoginCmd validates a session token with the identity provider and stores it.
type LoginCmd struct {
	SessionName  string `kong:"name='session-name',default='default',help='Name the session is stored under.'"`
	SessionToken string `kong:"required,name='session-token',env='GATEWAY_SESSION_TOKEN',help='Session token of a native login.'"`
	AccessToken  string `kong:"name='access-token',env='GATEWAY_ACCESS_TOKEN',help='Access token for the content API.'"`
}

// Run executes the login command.
func (cmd LoginCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	store, err := g.openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	client := kratos.NewClient(cfg.IdentityProvider.BaseURL, kratos.ModeAPI,
		syshttp.NewHTTPClientWithTimeout(cfg.IdentityProviderTimeout()))
	return cmd.login(ctx, os.Stdout, client, store)
}

func (cmd LoginCmd) login(ctx context.Context, out io.Writer, client kratos.ClientInterface,
	store session.LocalStoreInterface) error {
	s, err := client.WhoAmI(ctx, kratos.Credentials{SessionToken: cmd.SessionToken})
	if err != nil {
		return fmt.Errorf("failed to verify the session token: %w", err)
	}
	if s == nil || !s.Active {
		return errors.New("the session token does not belong to an active session")
	}

	credentials := session.Credentials{
		Session:      s,
		SessionToken: cmd.SessionToken,
		AccessToken:  cmd.AccessToken,
	}
	if err := store.Save(cmd.SessionName, credentials); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "Logged in as %s (session %q)\n", s.Identity.Traits.Username, cmd.SessionName)
	return err
}

// LogoutCmd removes a stored session.
type LogoutCmd struct {
	SessionName string `kong:"name='session-name',default='default',help='Name the session is stored under.'"`
}

// Run executes the logout command.
func (cmd LogoutCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	store, err := g.openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	return store.Delete(cmd.SessionName)
}
