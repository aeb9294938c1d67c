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

// Package errortracking records unexpected failures so they can be inspected later.
package errortracking

import (
	"context"
	"sync"

	"github.com/serlo/frontend-gateway/internal/system/database/client"
	"github.com/serlo/frontend-gateway/internal/system/database/provider"
	"github.com/serlo/frontend-gateway/internal/system/log"
)

const loggerComponentName = "ErrorReporter"

// Event describes a reported failure.
type Event struct {
	Message   string
	Code      string
	Component string
	Details   map[string]string
}

// ReporterInterface reports failures.
type ReporterInterface interface {
	Report(ctx context.Context, event Event)
	Recent(ctx context.Context, limit int) ([]Event, error)
}

// Reporter logs every event and stores it in the runtime database when one is available.
type Reporter struct {
	store *eventStore
}

var (
	instance ReporterInterface
	once     sync.Once
)

// NewReporter creates a reporter. A nil client gives a reporter that only logs.
func NewReporter(dbClient client.DBClientInterface) *Reporter {
	reporter := &Reporter{}
	if dbClient != nil {
		reporter.store = newEventStore(dbClient)
	}
	return reporter
}

// GetReporter returns the process wide reporter backed by the runtime database.
func GetReporter() ReporterInterface {
	once.Do(func() {
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
		dbClient, err := provider.GetDBProvider().GetDBClient(provider.RuntimeDB)
		if err != nil {
			logger.Warn("Runtime database unavailable, error events are only logged", log.Error(err))
			instance = NewReporter(nil)
			return
		}
		instance = NewReporter(dbClient)
	})
	return instance
}

// Report logs the event and persists it. Persistence failures are logged and dropped.
func (r *Reporter) Report(ctx context.Context, event Event) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	details := make(map[string]string, len(event.Details)+1)
	for key, value := range event.Details {
		details[key] = value
	}
	if requestID := log.RequestIDFromContext(ctx); requestID != "" {
		details[log.LoggerKeyRequestID] = requestID
	}

	logger.Warn(event.Message, log.String("code", event.Code), log.String("source", event.Component),
		log.Any("details", details))

	if r.store == nil {
		return
	}
	if _, err := r.store.insert(context.WithoutCancel(ctx), event, details); err != nil {
		logger.Error("Failed to persist error event", log.Error(err))
	}
}

// Recent returns the latest persisted events, newest first.
func (r *Reporter) Recent(ctx context.Context, limit int) ([]Event, error) {
	if r.store == nil {
		return []Event{}, nil
	}
	stored, err := r.store.recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(stored))
	for _, s := range stored {
		events = append(events, Event{
			Message:   s.Message,
			Code:      s.Code,
			Component: s.Component,
			Details:   s.Context,
		})
	}
	return events, nil
}
