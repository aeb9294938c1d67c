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

package authflow

import (
	"context"
	"strconv"
	"time"

	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/log"
	"github.com/serlo/frontend-gateway/internal/ui"
)

const errorHandlerComponentName = "FlowErrorHandler"

const (
	// duplicateIdentifierMessageID is the registration message for an identifier that is taken already.
	duplicateIdentifierMessageID = 4000007
	alreadyLoggedInDelay         = 3 * time.Second
	registrationHintDuration     = 6 * time.Second
)

// SessionPersister stores the identity provider session of the current user.
type SessionPersister interface {
	IsLoggedIn(ctx context.Context) bool
	PersistSession(ctx context.Context) error
}

type kindHandler func(ctx context.Context, flowErr *kratos.FlowError, err error) error

// ErrorHandler turns flow errors into effects and flow replacements.
type ErrorHandler struct {
	state        FlowState
	persister    SessionPersister
	previousPath string
	notices      config.NoticesConfig
	reporter     errortracking.ReporterInterface
	handlers     map[ErrorKind]kindHandler
}

// NewErrorHandler creates an error handler acting on the given flow state.
// previousPath is the page the user came from and is used after a login that was not needed.
func NewErrorHandler(state FlowState, persister SessionPersister, previousPath string,
	notices config.NoticesConfig, reporter errortracking.ReporterInterface) *ErrorHandler {
	h := &ErrorHandler{
		state:        state,
		persister:    persister,
		previousPath: previousPath,
		notices:      notices,
		reporter:     reporter,
	}
	h.handlers = map[ErrorKind]kindHandler{
		ErrorKindUnknown:                 h.handleUnknown,
		ErrorKindStepUpRequired:          h.handleRedirect,
		ErrorKindSessionAlreadyAvailable: h.handleSessionAlreadyAvailable,
		ErrorKindReauthRequired:          h.handleRedirect,
		ErrorKindFlowInvalid:             h.handleReset,
		ErrorKindFlowExpired:             h.handleReset,
		ErrorKindLocationChangeRequired:  h.handleRedirect,
		ErrorKindValidation:              h.handleValidation,
	}
	return h
}

// HandleFlowError reports the error and applies the action of its kind.
// It returns nil when the error was handled and the original error otherwise.
func (h *ErrorHandler) HandleFlowError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, errorHandlerComponentName),
		log.String(log.LoggerKeyFlowType, string(h.state.FlowType())))

	flowErr, ok := kratos.AsFlowError(err)
	if !ok {
		h.report(ctx, "", "")
		logger.Debug("Error is not a flow error", log.Error(err))
		return err
	}
	h.report(ctx, strconv.Itoa(flowErr.Status), flowErr.ErrorID)

	kind := ClassifyFlowError(flowErr)
	logger.Debug("Handling flow error", log.String("kind", kind.String()), log.Int("status", flowErr.Status))

	handler, ok := h.handlers[kind]
	if !ok {
		return err
	}
	return handler(ctx, flowErr, err)
}

func (h *ErrorHandler) report(ctx context.Context, code, errorID string) {
	if h.reporter == nil {
		return
	}
	details := map[string]string{log.LoggerKeyFlowType: string(h.state.FlowType())}
	if errorID != "" {
		details["errorId"] = errorID
	}
	h.reporter.Report(ctx, errortracking.Event{
		Message:   "Auth error",
		Code:      code,
		Component: errorHandlerComponentName,
		Details:   details,
	})
}

func (h *ErrorHandler) handleUnknown(_ context.Context, _ *kratos.FlowError, err error) error {
	return err
}

func (h *ErrorHandler) handleRedirect(ctx context.Context, flowErr *kratos.FlowError, _ error) error {
	ui.EffectsFromContext(ctx).Navigate(ui.Navigation{URL: flowErr.RedirectBrowserTo, Hard: true})
	return nil
}

func (h *ErrorHandler) handleReset(ctx context.Context, _ *kratos.FlowError, _ error) error {
	h.state.SetFlow(nil)
	ui.EffectsFromContext(ctx).Navigate(ui.Navigation{URL: FlowPath(h.state.FlowType())})
	return nil
}

func (h *ErrorHandler) handleSessionAlreadyAvailable(ctx context.Context, _ *kratos.FlowError, _ error) error {
	if h.persister != nil && !h.persister.IsLoggedIn(ctx) {
		if err := h.persister.PersistSession(ctx); err != nil {
			logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, errorHandlerComponentName))
			logger.Warn("Failed to persist the available session", log.Error(err))
		}
	}

	effects := ui.EffectsFromContext(ctx)
	effects.ShowNotice(ui.Notice{
		Text:     h.notices.AlreadyLoggedIn,
		Kind:     ui.NoticeDefault,
		Duration: alreadyLoggedInDelay,
	})
	effects.Navigate(ui.Navigation{
		URL:   FilterUnwantedRedirection(h.previousPath, authPaths),
		Hard:  true,
		Delay: alreadyLoggedInDelay,
	})
	return nil
}

func (h *ErrorHandler) handleValidation(ctx context.Context, flowErr *kratos.FlowError, _ error) error {
	flow := flowErr.Flow
	messages := flow.UI.Messages
	if h.state.FlowType() == kratos.FlowTypeRegistration && len(messages) == 1 &&
		messages[0].ID == duplicateIdentifierMessageID {
		replaced := *flow
		replaced.UI.Messages = []kratos.Message{}
		h.state.SetFlow(&replaced)
		ui.EffectsFromContext(ctx).ShowNotice(ui.Notice{
			Text:     h.notices.RegistrationHint,
			Kind:     ui.NoticeWarning,
			Duration: registrationHintDuration,
		})
		return nil
	}

	h.state.SetFlow(flow)
	return nil
}
