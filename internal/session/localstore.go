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

	"github.com/dgraph-io/badger/v4"
)

const localStoreKeyPrefix = "session/"

// ErrSessionNotFound is returned when no credentials are stored under a name.
var ErrSessionNotFound = errors.New("session not found")

// Credentials is what the command line tools persist between runs.
type Credentials struct {
	Session      *Session `json:"session"`
	SessionToken string   `json:"session_token,omitempty"`
	AccessToken  string   `json:"access_token,omitempty"`
}

// LocalStoreInterface persists named credentials.
type LocalStoreInterface interface {
	Save(name string, credentials Credentials) error
	Load(name string) (*Credentials, error)
	Delete(name string) error
	Close() error
}

// LocalStore keeps credentials in a badger database.
type LocalStore struct {
	db *badger.DB
}

// OpenLocalStore opens or creates the store at the given directory.
func OpenLocalStore(path string) (*LocalStore, error) {
	return openLocalStore(badger.DefaultOptions(path).WithLogger(nil))
}

// OpenInMemoryLocalStore opens a store that lives only as long as the process.
func OpenInMemoryLocalStore() (*LocalStore, error) {
	return openLocalStore(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

func openLocalStore(opts badger.Options) (*LocalStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open local session store: %w", err)
	}
	return &LocalStore{db: db}, nil
}

// Save stores the credentials under the given name, replacing earlier ones.
func (s *LocalStore) Save(name string, credentials Credentials) error {
	encoded, err := json.Marshal(credentials)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(localStoreKeyPrefix+name), encoded)
	})
}

// Load returns the credentials stored under the given name.
func (s *LocalStore) Load(name string) (*Credentials, error) {
	var credentials Credentials
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(localStoreKeyPrefix + name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &credentials)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials %q: %w", name, err)
	}
	return &credentials, nil
}

// Delete removes the credentials stored under the given name.
func (s *LocalStore) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(localStoreKeyPrefix + name))
	})
}

// Close releases the underlying database.
func (s *LocalStore) Close() error {
	return s.db.Close()
}
