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
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/serlo/frontend-gateway/internal/session"
)

// WhoAmICmd prints the user behind a stored session.
type WhoAmICmd struct {
	SessionName string `kong:"name='session-name',default='default',help='Name the session is stored under.'"`
}

// Run executes the whoami command.
func (cmd WhoAmICmd) Run(g *Globals) error {
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

	return cmd.print(os.Stdout, store, time.Now())
}

func (cmd WhoAmICmd) print(out io.Writer, store session.LocalStoreInterface, now time.Time) error {
	credentials, err := store.Load(cmd.SessionName)
	if errors.Is(err, session.ErrSessionNotFound) {
		_, err = fmt.Fprintf(out, "No session stored as %q\n", cmd.SessionName)
		return err
	}
	if err != nil {
		return err
	}

	payload := session.PayloadFromSession(credentials.Session)
	if payload == nil {
		_, err = fmt.Fprintf(out, "Session %q has no identity\n", cmd.SessionName)
		return err
	}

	status := "active"
	if credentials.Session.IsExpired(now) {
		status = "expired"
	}
	_, err = fmt.Fprintf(out, "%s (id %d), session %s\n", payload.Username, payload.ID, status)
	return err
}
