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
	"time"

	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/session"
)

// storePersister keeps the session of the terminal user in the local store.
type storePersister struct {
	client kratos.ClientInterface
	store  session.LocalStoreInterface
	name   string
	now    func() time.Time
}

// stored returns the stored credentials, or nil when there are none.
func (p *storePersister) stored() *session.Credentials {
	credentials, err := p.store.Load(p.name)
	if err != nil {
		return nil
	}
	return credentials
}

// sessionToken returns the stored session token, if any.
func (p *storePersister) sessionToken() string {
	if credentials := p.stored(); credentials != nil {
		return credentials.SessionToken
	}
	return ""
}

// IsLoggedIn reports whether an unexpired session is stored.
func (p *storePersister) IsLoggedIn(_ context.Context) bool {
	credentials := p.stored()
	return credentials != nil && credentials.Session != nil && !credentials.Session.IsExpired(p.now())
}

// PersistSession fetches the session behind the stored token and stores it.
func (p *storePersister) PersistSession(ctx context.Context) error {
	token := p.sessionToken()
	if token == "" {
		return errors.New("no session token to look up")
	}
	s, err := p.client.WhoAmI(ctx, kratos.Credentials{SessionToken: token})
	if err != nil {
		return err
	}
	return p.save(s, token)
}

// save stores a session, keeping the access token of earlier logins.
func (p *storePersister) save(s *session.Session, token string) error {
	credentials := session.Credentials{Session: s, SessionToken: token}
	if previous := p.stored(); previous != nil {
		credentials.AccessToken = previous.AccessToken
		if token == "" {
			credentials.SessionToken = previous.SessionToken
		}
	}
	return p.store.Save(p.name, credentials)
}
