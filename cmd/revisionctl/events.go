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
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/system/config"
)

// EventsCmd lists the latest error events recorded by the gateway.
type EventsCmd struct {
	Limit int `kong:"name='limit',short='n',default='20',help='Number of events to show.'"`
}

// Run executes the events command.
func (cmd EventsCmd) Run(ctx context.Context, g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if err := config.InitializeServerRuntime(g.Home, cfg); err != nil {
		return err
	}

	return cmd.list(ctx, os.Stdout, errortracking.GetReporter())
}

func (cmd EventsCmd) list(ctx context.Context, out io.Writer, reporter errortracking.ReporterInterface) error {
	if cmd.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", cmd.Limit)
	}

	events, err := reporter.Recent(ctx, cmd.Limit)
	if err != nil {
		return fmt.Errorf("failed to read error events: %w", err)
	}
	if len(events) == 0 {
		_, err = fmt.Fprintln(out, "No error events recorded")
		return err
	}

	for _, event := range events {
		line := fmt.Sprintf("%s [%s] %s", event.Component, event.Code, event.Message)
		if details := formatDetails(event.Details); details != "" {
			line += " " + details
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// formatDetails renders details as sorted key=value pairs.
func formatDetails(details map[string]string) string {
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+details[key])
	}
	return strings.Join(pairs, " ")
}
