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
	"sync"

	"github.com/serlo/frontend-gateway/internal/kratos"
)

// SubmitFunc sends the submitted body of a flow.
type SubmitFunc func(ctx context.Context, body map[string]interface{}) error

// FlowState is the part of a controller the error handler acts on.
type FlowState interface {
	FlowType() kratos.FlowType
	SetFlow(flow *kratos.Flow)
}

// Controller owns one flow, the values entered for it and the submission state.
type Controller struct {
	mu         sync.Mutex
	flowType   kratos.FlowType
	only       string
	flow       *kratos.Flow
	values     map[string]interface{}
	submitting bool
	onSubmit   SubmitFunc
}

// NewController creates a controller for the given flow type.
// only restricts the rendered nodes to the default group and the named group.
func NewController(flowType kratos.FlowType, only string, onSubmit SubmitFunc) *Controller {
	return &Controller{
		flowType: flowType,
		only:     only,
		values:   map[string]interface{}{},
		onSubmit: onSubmit,
	}
}

// FlowType returns the flow type of the controller.
func (c *Controller) FlowType() kratos.FlowType {
	return c.flowType
}

// Flow returns the current flow, or nil after a reset.
func (c *Controller) Flow() *kratos.Flow {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flow
}

// SetFlow replaces the flow. A nil flow resets the controller.
// Values entered for the same flow survive the replacement; a different flow starts over.
func (c *Controller) SetFlow(flow *kratos.Flow) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if flow == nil {
		c.flow = nil
		c.values = map[string]interface{}{}
		return
	}

	seeded := SeedValues(flow, c.only)
	if c.flow == nil || c.flow.ID != flow.ID {
		c.values = seeded
	} else {
		for id, value := range seeded {
			if _, ok := c.values[id]; !ok {
				c.values[id] = value
			}
		}
	}
	c.flow = flow
}

// SetValue stores user input for a node.
func (c *Controller) SetValue(id string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[id] = value
}

// Values returns a copy of the current values.
func (c *Controller) Values() map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyValues(c.values)
}

// IsSubmitting reports whether a submission is in flight.
func (c *Controller) IsSubmitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Submit merges the given values into the current ones and sends them with an optional method.
// A call made while another submission is in flight returns nil without sending anything.
func (c *Controller) Submit(ctx context.Context, values map[string]interface{}, method string) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil
	}
	for id, value := range values {
		c.values[id] = value
	}
	body := copyValues(c.values)
	if method != "" {
		body["method"] = method
	}
	c.submitting = true
	onSubmit := c.onSubmit
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	if onSubmit == nil {
		return nil
	}
	return onSubmit(ctx, body)
}

// Render prepares the current flow for display.
// While a submission is in flight every node is disabled and loading.
func (c *Controller) Render() RenderedForm {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.flow == nil {
		return Render(nil, c.flowType, c.only)
	}
	return render(c.flow, c.flowType, FilterNodes(c.flow.UI.Nodes, c.only), c.values, c.submitting)
}

func copyValues(values map[string]interface{}) map[string]interface{} {
	copied := make(map[string]interface{}, len(values))
	for id, value := range values {
		copied[id] = value
	}
	return copied
}
