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
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/cache"
	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/error/serviceerror"
	"github.com/serlo/frontend-gateway/internal/system/log"
	"github.com/serlo/frontend-gateway/internal/ui"
)

const (
	serviceLoggerComponentName = "FlowService"
	// FlowCacheName is the name of the cache holding flows by id.
	FlowCacheName = "IdentityFlowCache"
	// continueWithShowVerification is announced after a registration that needs an email verification.
	continueWithShowVerification = "show_verification_ui"
)

// FlowServiceInterface defines the identity flow operations of the gateway.
type FlowServiceInterface interface {
	Fetch(ctx context.Context, req FlowRequest) (*FlowResponse, *serviceerror.ServiceError)
	Submit(ctx context.Context, req FlowRequest) (*FlowResponse, *serviceerror.ServiceError)
	WhoAmI(ctx context.Context, creds kratos.Credentials) (*session.Session, *serviceerror.ServiceError)
}

// FlowService fetches and submits identity provider flows on behalf of the browser.
type FlowService struct {
	client      kratos.ClientInterface
	flowCache   cache.CacheInterface[*kratos.Flow]
	notices     config.NoticesConfig
	reporter    errortracking.ReporterInterface
	controllers sync.Map
	now         func() time.Time
}

// NewFlowService creates a flow service.
func NewFlowService(client kratos.ClientInterface, flowCache cache.CacheInterface[*kratos.Flow],
	notices config.NoticesConfig, reporter errortracking.ReporterInterface) *FlowService {
	return &FlowService{
		client:    client,
		flowCache: flowCache,
		notices:   notices,
		reporter:  reporter,
		now:       time.Now,
	}
}

// Fetch returns the requested flow, or a new one when no flow id is given.
func (s *FlowService) Fetch(ctx context.Context, req FlowRequest) (*FlowResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName),
		log.String(log.LoggerKeyFlowType, string(req.FlowType)), log.String(log.LoggerKeyFlowID, req.FlowID))

	recorder := ui.NewRecorder()
	ctx = ui.WithEffects(ctx, recorder)
	response := &FlowResponse{}

	controller := NewController(req.FlowType, req.Only, nil)
	flow, cookies, err := s.loadFlow(ctx, req)
	if err == nil {
		controller.SetFlow(flow)
		s.cacheFlow(req.FlowType, flow)
		response.Cookies = cookies
		logger.Debug("Fetched flow")
		return s.respond(response, controller, recorder), nil
	}

	if errors.Is(err, kratos.ErrInvalidFlowID) {
		return nil, &ErrorInvalidFlowID
	}

	persister := s.newPersister(req, response)
	handler := NewErrorHandler(controller, persister, req.PreviousPath, s.notices, s.reporter)
	if unhandled := handler.HandleFlowError(ctx, err); unhandled != nil {
		logger.Error("Failed to fetch flow", log.Error(unhandled))
		return nil, unhandledError(unhandled)
	}
	if req.FlowID != "" && controller.Flow() == nil {
		s.forgetFlow(req.FlowType, req.FlowID)
	}
	appendFlowErrorCookies(response, err)
	return s.respond(response, controller, recorder), nil
}

// Submit sends the values of a flow. While a submission of the same flow is in flight further
// submissions return a pending response without contacting the identity provider.
func (s *FlowService) Submit(ctx context.Context, req FlowRequest) (*FlowResponse, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName),
		log.String(log.LoggerKeyFlowType, string(req.FlowType)), log.String(log.LoggerKeyFlowID, req.FlowID))

	if err := kratos.ValidateFlowID(req.FlowID); err != nil {
		return nil, &ErrorInvalidFlowID
	}

	recorder := ui.NewRecorder()
	ctx = ui.WithEffects(ctx, recorder)
	response := &FlowResponse{}

	var result *kratos.SubmitResult
	controller := NewController(req.FlowType, req.Only, func(ctx context.Context,
		body map[string]interface{}) error {
		var err error
		result, err = s.client.SubmitFlow(ctx, req.FlowType, req.FlowID, body, req.Credentials)
		return err
	})

	existing, loaded := s.controllers.LoadOrStore(req.FlowID, controller)
	if loaded {
		logger.Debug("Submission already in flight")
		inFlight := existing.(*Controller)
		return &FlowResponse{Form: inFlight.Render(), Flow: inFlight.Flow(), Effects: recorder.Result(),
			Pending: true}, nil
	}
	defer s.controllers.Delete(req.FlowID)

	if cached, ok := s.cachedFlow(req.FlowType, req.FlowID); ok {
		controller.SetFlow(cached)
	}

	err := controller.Submit(ctx, req.Values, req.Method)
	if err != nil {
		persister := s.newPersister(req, response)
		handler := NewErrorHandler(controller, persister, req.PreviousPath, s.notices, s.reporter)
		if unhandled := handler.HandleFlowError(ctx, err); unhandled != nil {
			logger.Error("Failed to submit flow", log.Error(unhandled))
			return nil, unhandledError(unhandled)
		}
		if flow := controller.Flow(); flow != nil {
			s.cacheFlow(req.FlowType, flow)
		} else {
			s.forgetFlow(req.FlowType, req.FlowID)
		}
		appendFlowErrorCookies(response, err)
		return s.respond(response, controller, recorder), nil
	}

	logger.Debug("Submitted flow")
	s.applySubmitResult(ctx, req, controller, response, result)
	return s.respond(response, controller, recorder), nil
}

// WhoAmI returns the session of the caller, or nil when the caller is not logged in.
func (s *FlowService) WhoAmI(ctx context.Context, creds kratos.Credentials) (*session.Session,
	*serviceerror.ServiceError) {
	current, err := s.client.WhoAmI(ctx, creds)
	if err != nil {
		if errors.Is(err, kratos.ErrNoSession) {
			return nil, nil
		}
		logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName))
		logger.Error("Failed to look up the session", log.Error(err))
		return nil, &ErrorIdentityProviderUnavailable
	}
	return current, nil
}

// applySubmitResult turns a successful submission into the next step of the user.
func (s *FlowService) applySubmitResult(ctx context.Context, req FlowRequest, controller *Controller,
	response *FlowResponse, result *kratos.SubmitResult) {
	effects := ui.EffectsFromContext(ctx)
	if result == nil {
		return
	}
	response.Cookies = append(response.Cookies, result.Cookies...)
	if result.Session != nil {
		response.Session = result.Session
	}

	for _, next := range result.ContinueWith {
		if next.Action == continueWithShowVerification && next.Flow != nil {
			s.forgetFlow(req.FlowType, req.FlowID)
			controller.SetFlow(nil)
			effects.Navigate(ui.Navigation{URL: fmt.Sprintf("%s?flow=%s", PathVerification, next.Flow.ID)})
			return
		}
	}

	switch req.FlowType {
	case kratos.FlowTypeLogin, kratos.FlowTypeRegistration:
		s.forgetFlow(req.FlowType, req.FlowID)
		target := FilterUnwantedRedirection(req.PreviousPath, authPaths)
		if current := controller.Flow(); current != nil && current.ReturnTo != "" {
			target = current.ReturnTo
		}
		controller.SetFlow(nil)
		effects.Navigate(ui.Navigation{URL: target, Hard: true})
	default:
		if result.Flow != nil {
			controller.SetFlow(result.Flow)
			s.cacheFlow(req.FlowType, result.Flow)
		}
	}
}

// loadFlow returns a cached flow, fetches it, or starts a new one.
func (s *FlowService) loadFlow(ctx context.Context, req FlowRequest) (*kratos.Flow, []*http.Cookie, error) {
	if req.FlowID == "" {
		result, err := s.client.InitializeFlow(ctx, req.FlowType, req.ReturnTo, req.Credentials)
		if err != nil {
			return nil, nil, err
		}
		return result.Flow, result.Cookies, nil
	}

	if flow, ok := s.cachedFlow(req.FlowType, req.FlowID); ok {
		return flow, nil, nil
	}
	result, err := s.client.GetFlow(ctx, req.FlowType, req.FlowID, req.Credentials)
	if err != nil {
		return nil, nil, err
	}
	return result.Flow, result.Cookies, nil
}

// flowCacheKey scopes a flow id to its flow type.
func flowCacheKey(flowType kratos.FlowType, flowID string) cache.CacheKey {
	return cache.CacheKey{Namespace: string(flowType), Key: flowID}
}

func (s *FlowService) cachedFlow(flowType kratos.FlowType, flowID string) (*kratos.Flow, bool) {
	if s.flowCache == nil || !s.flowCache.IsEnabled() {
		return nil, false
	}
	flow, ok := s.flowCache.Get(flowCacheKey(flowType, flowID))
	if !ok || flow == nil {
		return nil, false
	}
	if !flow.ExpiresAt.IsZero() && !s.now().Before(flow.ExpiresAt) {
		s.forgetFlow(flowType, flowID)
		return nil, false
	}
	return flow, true
}

func (s *FlowService) cacheFlow(flowType kratos.FlowType, flow *kratos.Flow) {
	if s.flowCache == nil || !s.flowCache.IsEnabled() || flow == nil || flow.ID == "" {
		return
	}
	_ = s.flowCache.Set(flowCacheKey(flowType, flow.ID), flow)
}

func (s *FlowService) forgetFlow(flowType kratos.FlowType, flowID string) {
	if s.flowCache == nil || !s.flowCache.IsEnabled() || flowID == "" {
		return
	}
	_ = s.flowCache.Delete(flowCacheKey(flowType, flowID))
}

func (s *FlowService) respond(response *FlowResponse, controller *Controller, recorder *ui.Recorder) *FlowResponse {
	response.Flow = controller.Flow()
	response.Form = controller.Render()
	response.Effects = recorder.Result()
	return response
}

func (s *FlowService) newPersister(req FlowRequest, response *FlowResponse) SessionPersister {
	return &responsePersister{
		client:   s.client,
		creds:    req.Credentials,
		loggedIn: req.LoggedIn,
		response: response,
	}
}

// responsePersister persists a session by handing it to the response, which writes the session cookie.
type responsePersister struct {
	client   kratos.ClientInterface
	creds    kratos.Credentials
	loggedIn bool
	response *FlowResponse
}

func (p *responsePersister) IsLoggedIn(_ context.Context) bool {
	return p.loggedIn
}

func (p *responsePersister) PersistSession(ctx context.Context) error {
	current, err := p.client.WhoAmI(ctx, p.creds)
	if err != nil {
		return err
	}
	p.response.Session = current
	return nil
}

// unhandledError maps an error the error handler could not resolve to a service error.
func unhandledError(err error) *serviceerror.ServiceError {
	if flowErr, ok := kratos.AsFlowError(err); ok && flowErr.Status >= 400 && flowErr.Status < 500 {
		return serviceerror.CustomServiceErrorf(ErrorFlowRejected,
			"The identity provider rejected the request with status %d", flowErr.Status)
	}
	return &ErrorIdentityProviderUnavailable
}

func appendFlowErrorCookies(response *FlowResponse, err error) {
	if flowErr, ok := kratos.AsFlowError(err); ok {
		response.Cookies = append(response.Cookies, flowErr.Cookies...)
	}
}
