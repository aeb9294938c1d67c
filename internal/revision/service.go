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
	"strings"

	"github.com/serlo/frontend-gateway/internal/system/error/serviceerror"
	"github.com/serlo/frontend-gateway/internal/system/log"
	"github.com/serlo/frontend-gateway/internal/ui"
)

const (
	serviceLoggerComponentName = "RevisionService"
	// FeatureAddRevisionMutation switches saving from the legacy editor endpoint to the content API.
	FeatureAddRevisionMutation = "addRevisionMutation"
)

// RevisionServiceInterface defines the revision operations of the gateway.
type RevisionServiceInterface interface {
	Save(ctx context.Context, req SaveRequest) (*SaveResponse, *serviceerror.ServiceError)
}

// RevisionService saves editor states through the content API or the legacy editor endpoint.
type RevisionService struct {
	orchestrator OrchestratorInterface
	legacy       LegacySubmitterInterface
}

// NewRevisionService creates a revision service.
func NewRevisionService(orchestrator OrchestratorInterface, legacy LegacySubmitterInterface) *RevisionService {
	return &RevisionService{
		orchestrator: orchestrator,
		legacy:       legacy,
	}
}

// Save submits the document. The content API is used when the addRevisionMutation feature is active
// and the type is supported, the legacy editor endpoint otherwise.
func (s *RevisionService) Save(ctx context.Context, req SaveRequest) (*SaveResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName))

	if req.Document == nil {
		return nil, &ErrorMissingDocument
	}

	recorder := ui.NewRecorder()
	ctx = ui.WithEffects(ctx, recorder)

	if req.Features.IsActive(FeatureAddRevisionMutation) && IsSupported(req.Type) {
		doc := *req.Document
		doc.Kind = req.Type
		if doc.Kind == KindGroupedExercise {
			doc.Kind = KindExercise
		}
		needsReview := req.NeedsReview && !doc.Controls.Checkout

		success, err := s.orchestrator.SubmitRevision(ctx, req.Auth, &doc, needsReview, req.InitialState)
		if err != nil {
			logger.Error("Revision submission interrupted", log.Error(err))
			return nil, &ErrorSubmissionInterrupted
		}
		return &SaveResponse{Success: success, Effects: recorder.Result()}, nil
	}

	if !strings.HasPrefix(req.EditorPath, "/") || strings.HasPrefix(req.EditorPath, "//") {
		return nil, &ErrorInvalidEditorPath
	}
	result, err := s.legacy.Submit(ctx, req.EditorPath, req.Document, req.Cookie)
	if err != nil {
		logger.Error("Failed to save revision through the legacy editor", log.Error(err))
		return nil, &ErrorLegacyEndpointUnavailable
	}
	if result.Success {
		effects := ui.EffectsFromContext(ctx)
		if result.FollowRedirect() {
			effects.Navigate(ui.Navigation{URL: result.Redirect, Hard: true})
		} else {
			effects.Reload()
		}
	}
	return &SaveResponse{Success: result.Success, Effects: recorder.Result()}, nil
}
