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
	"strings"

	"github.com/serlo/frontend-gateway/internal/kratos"
)

// defaultGroup is the node group that is always rendered.
const defaultGroup = "default"

// traitsPrefix is stripped from input names to build field labels.
const traitsPrefix = "traits."

// RenderedNode is a flow node prepared for display.
type RenderedNode struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	Group     string           `json:"group"`
	Name      string           `json:"name,omitempty"`
	InputType string           `json:"inputType,omitempty"`
	Label     string           `json:"label"`
	Value     interface{}      `json:"value,omitempty"`
	Required  bool             `json:"required"`
	Disabled  bool             `json:"disabled"`
	Loading   bool             `json:"loading"`
	Visible   bool             `json:"visible"`
	Messages  []kratos.Message `json:"messages"`
}

// RenderedForm is a flow prepared for display.
type RenderedForm struct {
	FlowID   string           `json:"flowId"`
	FlowType kratos.FlowType  `json:"flowType"`
	Action   string           `json:"action"`
	Method   string           `json:"method"`
	Messages []kratos.Message `json:"messages"`
	Nodes    []RenderedNode   `json:"nodes"`
}

// Render prepares a flow for display with its seeded values.
// When filterGroup is set only nodes of the default group and of filterGroup are kept.
func Render(flow *kratos.Flow, flowType kratos.FlowType, filterGroup string) RenderedForm {
	if flow == nil {
		return RenderedForm{FlowType: flowType, Messages: []kratos.Message{}, Nodes: []RenderedNode{}}
	}
	return render(flow, flowType, FilterNodes(flow.UI.Nodes, filterGroup), SeedValues(flow, filterGroup), false)
}

// FilterNodes keeps the nodes of the default group and of the given group.
// An empty group keeps every node.
func FilterNodes(nodes []kratos.Node, group string) []kratos.Node {
	if group == "" {
		return nodes
	}
	filtered := make([]kratos.Node, 0, len(nodes))
	for _, node := range nodes {
		if node.Group == defaultGroup || node.Group == group {
			filtered = append(filtered, node)
		}
	}
	return filtered
}

// SeedValues returns the initial values of a flow: the values of its hidden, submit and button inputs.
// Visible fields start empty.
func SeedValues(flow *kratos.Flow, filterGroup string) map[string]interface{} {
	values := map[string]interface{}{}
	if flow == nil {
		return values
	}
	for _, node := range FilterNodes(flow.UI.Nodes, filterGroup) {
		if !node.IsInput() {
			continue
		}
		switch node.Attributes.Type {
		case kratos.InputTypeHidden, kratos.InputTypeSubmit, kratos.InputTypeButton:
			values[node.ID()] = node.Attributes.Value
		}
	}
	return values
}

func render(flow *kratos.Flow, flowType kratos.FlowType, nodes []kratos.Node, values map[string]interface{},
	loading bool) RenderedForm {
	form := RenderedForm{
		FlowID:   flow.ID,
		FlowType: flowType,
		Action:   flow.UI.Action,
		Method:   flow.UI.Method,
		Messages: flow.UI.Messages,
		Nodes:    make([]RenderedNode, 0, len(nodes)),
	}
	if form.Messages == nil {
		form.Messages = []kratos.Message{}
	}

	for _, node := range nodes {
		id := node.ID()
		rendered := RenderedNode{
			ID:        id,
			Type:      node.Type,
			Group:     node.Group,
			Name:      node.Attributes.Name,
			InputType: node.Attributes.Type,
			Label:     nodeLabel(node),
			Value:     values[id],
			Required:  node.Attributes.Required,
			Disabled:  node.Attributes.Disabled || loading,
			Loading:   loading,
			Visible:   isVisible(node),
			Messages:  node.Messages,
		}
		if rendered.Messages == nil {
			rendered.Messages = []kratos.Message{}
		}
		if node.IsInput() && node.Attributes.Type == kratos.InputTypeHidden && rendered.Value == nil {
			rendered.Value = "true"
		}
		form.Nodes = append(form.Nodes, rendered)
	}
	return form
}

// nodeLabel prefers the label sent by the identity provider and falls back to the short input name.
func nodeLabel(node kratos.Node) string {
	if label := node.Label(); label != "" {
		return label
	}
	return strings.TrimPrefix(node.Attributes.Name, traitsPrefix)
}

// isVisible reports whether the node is shown to the user.
// Hidden inputs and inputs disabled by the identity provider are submitted but not shown.
func isVisible(node kratos.Node) bool {
	if !node.IsInput() {
		return true
	}
	if node.Attributes.Type == kratos.InputTypeHidden {
		return false
	}
	if node.Attributes.Type == kratos.InputTypeSubmit {
		return true
	}
	return !node.Attributes.Disabled
}
