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

package usertools

import (
	"context"

	"github.com/serlo/frontend-gateway/internal/contentapi"
	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/system/error/serviceerror"
	"github.com/serlo/frontend-gateway/internal/system/log"
	"github.com/serlo/frontend-gateway/internal/ui"
)

const serviceLoggerComponentName = "UserToolsService"

// UserToolsServiceInterface defines the author tool operations of the gateway.
type UserToolsServiceInterface interface {
	Run(ctx context.Context, req OperationRequest) (*OperationResponse, *serviceerror.ServiceError)
}

// UserToolsService runs author tool mutations through the shared mutator.
type UserToolsService struct {
	mutator contentapi.MutatorInterface
	notices config.NoticesConfig
}

// NewUserToolsService creates an author tools service.
func NewUserToolsService(mutator contentapi.MutatorInterface, notices config.NoticesConfig) *UserToolsService {
	return &UserToolsService{
		mutator: mutator,
		notices: notices,
	}
}

// Run validates the input of the operation and runs its mutation. Failed mutations are answered with
// success false and the notices describing the failure.
func (s *UserToolsService) Run(ctx context.Context, req OperationRequest) (*OperationResponse,
	*serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, serviceLoggerComponentName))

	def, ok := operations[req.Operation]
	if !ok {
		return nil, &ErrorUnknownOperation
	}
	input, err := def.decode(req.Input)
	if err != nil {
		return nil, serviceerror.CustomServiceError(ErrorInvalidInput, err.Error())
	}

	recorder := ui.NewRecorder()
	ctx = ui.WithEffects(ctx, recorder)

	success := s.mutator.Mutate(ctx, req.Auth, def.query, input, s.notices.MutationErrors)
	logger.Debug("Author tool operation finished", log.String("operation", string(req.Operation)),
		log.Bool("success", success))
	return &OperationResponse{Success: success, Effects: recorder.Result()}, nil
}
