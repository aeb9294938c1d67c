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

package errortracking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/serlo/frontend-gateway/internal/system/database/client"
	"github.com/serlo/frontend-gateway/internal/system/database/model"
)

var queryInsertErrorEvent = model.DBQuery{
	ID: "ERT-00001",
	Query: "INSERT INTO ERROR_EVENT (ID, COMPONENT, CODE, MESSAGE, CONTEXT, CREATED_AT) " +
		"VALUES ($1, $2, $3, $4, $5, $6)",
}

var queryDeleteExpiredErrorEvents = model.DBQuery{
	ID:    "ERT-00003",
	Query: "DELETE FROM ERROR_EVENT WHERE CREATED_AT < $1",
}

var queryGetRecentErrorEvents = model.DBQuery{
	ID: "ERT-00002",
	Query: "SELECT ID, COMPONENT, CODE, MESSAGE, CONTEXT, CREATED_AT FROM ERROR_EVENT " +
		"ORDER BY CREATED_AT DESC LIMIT $1",
}

// eventRetention is how long error events are kept.
const eventRetention = 30 * 24 * time.Hour

// storedEvent is a persisted error event.
type storedEvent struct {
	ID        string
	Component string
	Code      string
	Message   string
	Context   map[string]string
}

// eventStore persists error events in the runtime database.
type eventStore struct {
	dbClient client.DBClientInterface
	newID    func() string
	now      func() time.Time
}

func newEventStore(dbClient client.DBClientInterface) *eventStore {
	return &eventStore{
		dbClient: dbClient,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// insert stores the event and drops events older than the retention period in the same transaction.
// It returns the id of the stored event.
func (s *eventStore) insert(ctx context.Context, event Event, details map[string]string) (string, error) {
	encoded, err := json.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("failed to encode event context: %w", err)
	}

	id := s.newID()
	now := s.now().UTC()
	err = s.dbClient.WithTx(ctx, func(tx model.TxInterface) error {
		if _, err := tx.Execute(queryInsertErrorEvent, id, event.Component, event.Code, event.Message,
			string(encoded), now); err != nil {
			return fmt.Errorf("failed to insert error event: %w", err)
		}
		if _, err := tx.Execute(queryDeleteExpiredErrorEvents, now.Add(-eventRetention)); err != nil {
			return fmt.Errorf("failed to delete expired error events: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// recent returns the latest events, newest first.
func (s *eventStore) recent(ctx context.Context, limit int) ([]storedEvent, error) {
	rows, err := s.dbClient.Query(ctx, queryGetRecentErrorEvents, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query error events: %w", err)
	}

	events := make([]storedEvent, 0, len(rows))
	for _, row := range rows {
		event := storedEvent{
			ID:        toString(row["id"]),
			Component: toString(row["component"]),
			Code:      toString(row["code"]),
			Message:   toString(row["message"]),
		}
		if raw := toString(row["context"]); raw != "" {
			_ = json.Unmarshal([]byte(raw), &event.Context)
		}
		events = append(events, event)
	}
	return events, nil
}

// toString converts driver values, which may be strings or byte slices, to strings.
func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
