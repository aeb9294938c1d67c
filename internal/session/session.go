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

// Package session models the identity provider session and keeps it in the browser cookie
// or, for the command line tools, in a local on-disk store.
package session

import (
	"encoding/json"
	"reflect"
	"time"
)

// Traits holds the identity traits the gateway relies on.
type Traits struct {
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Extra       Extra  `json:"-"`
}

// MetadataPublic holds the public identity metadata.
type MetadataPublic struct {
	LegacyID int   `json:"legacy_id"`
	Extra    Extra `json:"-"`
}

// Identity is the identity behind a session.
type Identity struct {
	ID             string          `json:"id"`
	SchemaID       string          `json:"schema_id,omitempty"`
	State          string          `json:"state,omitempty"`
	Traits         Traits          `json:"traits"`
	MetadataPublic *MetadataPublic `json:"metadata_public,omitempty"`
	Extra          Extra           `json:"-"`
}

// Session is an authenticated identity provider session.
type Session struct {
	ID                          string     `json:"id"`
	Active                      bool       `json:"active"`
	ExpiresAt                   *time.Time `json:"expires_at,omitempty"`
	AuthenticatedAt             *time.Time `json:"authenticated_at,omitempty"`
	IssuedAt                    *time.Time `json:"issued_at,omitempty"`
	AuthenticatorAssuranceLevel string     `json:"authenticator_assurance_level,omitempty"`
	Identity                    Identity   `json:"identity"`
	Extra                       Extra      `json:"-"`
}

// AuthenticationPayload is the projection of a session used by the content API.
type AuthenticationPayload struct {
	Username string `json:"username"`
	ID       int    `json:"id"`
}

// PayloadFromSession projects the session into an authentication payload.
// It returns nil when there is no session.
func PayloadFromSession(s *Session) *AuthenticationPayload {
	if s == nil {
		return nil
	}
	payload := &AuthenticationPayload{Username: s.Identity.Traits.Username}
	if s.Identity.MetadataPublic != nil {
		payload.ID = s.Identity.MetadataPublic.LegacyID
	}
	return payload
}

// IsExpired reports whether the session has an expiry in the past.
func (s *Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

type (
	plainTraits         Traits
	plainMetadataPublic MetadataPublic
	plainIdentity       Identity
	plainSession        Session
)

// UnmarshalJSON decodes the traits and keeps the traits that are not modelled.
func (t *Traits) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*plainTraits)(t)); err != nil {
		return err
	}
	extra, err := unknownFields(data, reflect.TypeOf(Traits{}))
	t.Extra = extra
	return err
}

// MarshalJSON encodes the traits including the ones that are not modelled.
func (t Traits) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(plainTraits(t))
	if err != nil {
		return nil, err
	}
	return withFields(encoded, t.Extra)
}

// UnmarshalJSON decodes the metadata and keeps the members that are not modelled.
func (m *MetadataPublic) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*plainMetadataPublic)(m)); err != nil {
		return err
	}
	extra, err := unknownFields(data, reflect.TypeOf(MetadataPublic{}))
	m.Extra = extra
	return err
}

// MarshalJSON encodes the metadata including the members that are not modelled.
func (m MetadataPublic) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(plainMetadataPublic(m))
	if err != nil {
		return nil, err
	}
	return withFields(encoded, m.Extra)
}

// UnmarshalJSON decodes the identity and keeps the members that are not modelled.
func (i *Identity) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*plainIdentity)(i)); err != nil {
		return err
	}
	extra, err := unknownFields(data, reflect.TypeOf(Identity{}))
	i.Extra = extra
	return err
}

// MarshalJSON encodes the identity including the members that are not modelled.
func (i Identity) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(plainIdentity(i))
	if err != nil {
		return nil, err
	}
	return withFields(encoded, i.Extra)
}

// UnmarshalJSON decodes the session and keeps the members that are not modelled.
func (s *Session) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, (*plainSession)(s)); err != nil {
		return err
	}
	extra, err := unknownFields(data, reflect.TypeOf(Session{}))
	s.Extra = extra
	return err
}

// MarshalJSON encodes the session including the members that are not modelled.
func (s Session) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(plainSession(s))
	if err != nil {
		return nil, err
	}
	return withFields(encoded, s.Extra)
}
