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

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/serlo/frontend-gateway/internal/system/config"
)

// CookieStoreInterface reads and writes the session cookie.
type CookieStoreInterface interface {
	Set(w http.ResponseWriter, s *Session) error
	Parse(r *http.Request) (*Session, error)
	Remove(w http.ResponseWriter)
	CSRFToken(r *http.Request) string
}

// CookieStore keeps the JSON encoded session in a SameSite=Strict cookie.
type CookieStore struct {
	cookieName     string
	csrfCookieName string
	domain         string
	secure         bool
}

// NewCookieStore creates a cookie store from the session configuration.
func NewCookieStore(cfg config.SessionConfig) *CookieStore {
	return &CookieStore{
		cookieName:     cfg.CookieName,
		csrfCookieName: cfg.CSRFCookieName,
		domain:         cfg.Domain,
		secure:         cfg.Secure,
	}
}

// Set writes the session cookie. The cookie expires with the session.
func (c *CookieStore) Set(w http.ResponseWriter, s *Session) error {
	if s == nil {
		return errors.New("session is nil")
	}
	encoded, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	cookie := &http.Cookie{
		Name:     c.cookieName,
		Value:    url.PathEscape(string(encoded)),
		Path:     "/",
		Domain:   c.domain,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	}
	if s.ExpiresAt != nil {
		cookie.Expires = s.ExpiresAt.UTC()
	}
	http.SetCookie(w, cookie)
	return nil
}

// Parse reads the session cookie. It returns nil without error when the cookie is absent.
func (c *CookieStore) Parse(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(c.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	raw, err := url.PathUnescape(cookie.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape session cookie: %w", err)
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to decode session cookie: %w", err)
	}
	return &s, nil
}

// Remove expires the session cookie.
func (c *CookieStore) Remove(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    "",
		Path:     "/",
		Domain:   c.domain,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// CSRFToken returns the value of the CSRF cookie, or an empty string.
func (c *CookieStore) CSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(c.csrfCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
