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

package revision

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/serlo/frontend-gateway/internal/contentapi"
	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/log"
	"github.com/serlo/frontend-gateway/internal/ui"
)

const (
	orchestratorLoggerComponentName = "RevisionOrchestrator"
	historyPathFormat               = "/entity/repository/history/%d"
)

// OrchestratorInterface submits revision documents through the content API.
type OrchestratorInterface interface {
	SubmitRevision(ctx context.Context, auth *contentapi.Auth, doc *Document, needsReview bool,
		initial *Document) (bool, error)
}

// Orchestrator submits a document and its nested children as independent mutations.
type Orchestrator struct {
	mutator contentapi.MutatorInterface
	notices config.NoticesConfig
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(mutator contentapi.MutatorInterface, notices config.NoticesConfig) *Orchestrator {
	return &Orchestrator{
		mutator: mutator,
		notices: notices,
	}
}

// SubmitRevision submits doc and all its children. Children are submitted concurrently and the
// document succeeds only when its own mutation and every child succeed. A successful top level
// submission shows the saved notice and navigates to the revision history of the entity.
// The returned error is set only when the context ends before all submissions completed.
func (o *Orchestrator) SubmitRevision(ctx context.Context, auth *contentapi.Auth, doc *Document,
	needsReview bool, initial *Document) (bool, error) {
	if auth == nil || auth.Payload == nil {
		ui.EffectsFromContext(ctx).ShowNotice(ui.Notice{Text: o.notices.NotLoggedIn, Kind: ui.NoticeWarning})
		return false, nil
	}
	if doc == nil {
		return false, nil
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, orchestratorLoggerComponentName))
	logger.Debug("Submitting revision", log.String("kind", string(doc.Kind)), log.Int("entityId", doc.ID),
		log.Bool("hasInitialState", initial != nil))
	return o.submit(ctx, auth, doc, needsReview, false)
}

func (o *Orchestrator) submit(ctx context.Context, auth *contentapi.Auth, doc *Document, needsReview bool,
	nested bool) (bool, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, orchestratorLoggerComponentName))

	def, ok := lookupKind(doc.Kind)
	if !ok {
		logger.Debug("Ignoring document of unknown kind", log.String("kind", string(doc.Kind)))
		return false, nil
	}

	childrenOK, err := o.submitChildren(ctx, auth, doc, def, needsReview)
	if err != nil {
		return false, err
	}

	effects := ui.EffectsFromContext(ctx)
	input, missing := buildInput(doc, def, needsReview)
	if missing != "" {
		effects.ShowNotice(ui.Notice{
			Text: fmt.Sprintf("%s (\"%s\")", o.notices.ValueMissing, missing),
			Kind: ui.NoticeWarning,
		})
		return false, nil
	}

	success := o.mutator.Mutate(ctx, auth, def.query(), input, o.notices.MutationErrors)
	logger.Debug("Revision mutation finished", log.String("kind", string(doc.Kind)), log.Int("entityId", doc.ID),
		log.Bool("success", success), log.Bool("childrenSuccess", childrenOK))
	if !success || !childrenOK {
		return false, nil
	}

	if !nested {
		effects.ShowNotice(ui.Notice{Text: o.notices.RevisionSaved, Kind: ui.NoticeSuccess})
		effects.Navigate(ui.Navigation{URL: fmt.Sprintf(historyPathFormat, doc.ID), Hard: true})
	}
	return true, nil
}

// submitChildren submits every child of every child field concurrently and waits for all of them.
func (o *Orchestrator) submitChildren(ctx context.Context, auth *contentapi.Auth, doc *Document, def kindDef,
	needsReview bool) (bool, error) {
	var pending []*Document
	for _, field := range def.children {
		for _, child := range doc.childrenOf(field.name) {
			if child != nil {
				pending = append(pending, doc.asChild(child, field.kind))
			}
		}
	}
	if len(pending) == 0 {
		return true, nil
	}

	results := make([]bool, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	for i, child := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := o.submit(gctx, auth, child, needsReview, true)
			results[i] = ok
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	for _, ok := range results {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
