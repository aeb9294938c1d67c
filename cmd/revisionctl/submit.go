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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/serlo/frontend-gateway/internal/contentapi"
	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/revision"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/config"
	syshttp "github.com/serlo/frontend-gateway/internal/system/http"
	"github.com/serlo/frontend-gateway/internal/system/log"
)

// SubmitCmd submits a revision document read from a file.
type SubmitCmd struct {
	File        string `kong:"required,name='file',type='existingfile',help='Path to the JSON revision document.'"`
	Type        string `kong:"required,name='type',help='Entity type of the document, for example Article.'"`
	NeedsReview bool   `kong:"name='needs-review',help='Marks the revision for review.'"`
	SessionName string `kong:"name='session-name',default='default',help='Name of the stored session to submit with.'"`
}

// Run executes the submit command.
func (cmd SubmitCmd) Run(ctx context.Context, g *Globals) error {
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

	httpClient := syshttp.NewHTTPClientWithTimeout(cfg.ContentAPITimeout())
	mutator := contentapi.NewMutator(contentapi.NewGraphQLClient(cfg.ContentAPI.Endpoint, httpClient),
		errortracking.NewReporter(nil))
	service := revision.NewRevisionService(revision.NewOrchestrator(mutator, cfg.Notices),
		revision.NewLegacySubmitter(cfg.ContentAPI.LegacyBaseURL, httpClient))

	return cmd.submit(ctx, os.Stdout, service, store, cfg, httpClient)
}

func (cmd SubmitCmd) submit(ctx context.Context, out io.Writer, service revision.RevisionServiceInterface,
	store session.LocalStoreInterface, cfg *config.Config, httpClient syshttp.HTTPClientInterface) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RevisionCtl"))

	kind := revision.Kind(cmd.Type)
	if !revision.IsSupported(kind) {
		return fmt.Errorf("entity type %q can not be submitted through the content API", cmd.Type)
	}

	doc, err := readDocument(cmd.File)
	if err != nil {
		return err
	}

	auth, err := cmd.auth(store, cfg, httpClient)
	if err != nil {
		return err
	}

	resp, svcErr := service.Save(ctx, revision.SaveRequest{
		Type:        kind,
		Document:    doc,
		NeedsReview: cmd.NeedsReview,
		Auth:        auth,
		Features:    config.Features{revision.FeatureAddRevisionMutation: true},
	})
	if svcErr != nil {
		return fmt.Errorf("%s: %s", svcErr.Error, svcErr.ErrorDescription)
	}
	logger.Debug("Submitted revision document", log.String("type", cmd.Type), log.Bool("success", resp.Success))

	for _, notice := range resp.Effects.Notices {
		if _, err := fmt.Fprintf(out, "[%s] %s\n", notice.Kind, notice.Text); err != nil {
			return err
		}
	}
	for _, navigation := range resp.Effects.Navigations {
		if _, err := fmt.Fprintf(out, "-> %s\n", navigation.URL); err != nil {
			return err
		}
	}
	if !resp.Success {
		return errors.New("the revision was not saved")
	}
	return nil
}

// auth builds the caller from the stored credentials. A missing session yields a nil caller
// so that the submission reports the not logged in notice.
func (cmd SubmitCmd) auth(store session.LocalStoreInterface, cfg *config.Config,
	httpClient syshttp.HTTPClientInterface) (*contentapi.Auth, error) {
	credentials, err := store.Load(cmd.SessionName)
	if errors.Is(err, session.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if credentials.Session != nil && credentials.Session.IsExpired(time.Now()) {
		return nil, nil
	}

	payload := session.PayloadFromSession(credentials.Session)
	if payload == nil {
		return nil, nil
	}

	tokens := contentapi.NewTokenSource(credentials.AccessToken, cfg.ContentAPI.TokenRefreshURL,
		contentapi.Credentials{SessionToken: credentials.SessionToken}, httpClient)
	tokens.OnRefresh(func(token string) {
		refreshed := *credentials
		refreshed.AccessToken = token
		if err := store.Save(cmd.SessionName, refreshed); err != nil {
			logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RevisionCtl"))
			logger.Warn("Failed to store the refreshed access token", log.Error(err))
		}
	})

	return &contentapi.Auth{
		Payload:      payload,
		Tokens:       tokens,
		SessionToken: credentials.SessionToken,
	}, nil
}

func readDocument(path string) (*revision.Document, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var doc revision.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse revision document %s: %w", path, err)
	}
	return &doc, nil
}
