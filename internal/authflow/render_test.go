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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serlo/frontend-gateway/internal/kratos"
)

func TestFilterNodes(t *testing.T) {
	flow := newTestFlow(testFlowID)

	t.Run("NoFilterKeepsEverything", func(t *testing.T) {
		assert.Len(t, FilterNodes(flow.UI.Nodes, ""), len(flow.UI.Nodes))
	})

	t.Run("KeepsDefaultAndRequestedGroup", func(t *testing.T) {
		nodes := FilterNodes(flow.UI.Nodes, "password")
		ids := make([]string, 0, len(nodes))
		for _, node := range nodes {
			ids = append(ids, node.ID())
		}
		assert.Equal(t, []string{"csrf_token", "identifier", "password", "method"}, ids)
	})
}

func TestSeedValues(t *testing.T) {
	flow := newTestFlow(testFlowID)

	values := SeedValues(flow, "password")
	assert.Equal(t, map[string]interface{}{
		"csrf_token": "csrf-123",
		"method":     "password",
	}, values)

	values = SeedValues(flow, "")
	assert.Equal(t, "github", values["provider"])
	assert.NotContains(t, values, "identifier")
	assert.NotContains(t, values, "lookup_secret_codes")

	assert.Empty(t, SeedValues(nil, ""))
}

func TestRender(t *testing.T) {
	flow := newTestFlow(testFlowID)
	flow.UI.Nodes[0].Attributes.Value = nil

	form := Render(flow, kratos.FlowTypeLogin, "password")

	assert.Equal(t, testFlowID, form.FlowID)
	assert.Equal(t, kratos.FlowTypeLogin, form.FlowType)
	assert.Equal(t, "POST", form.Method)
	assert.NotNil(t, form.Messages)
	require.Len(t, form.Nodes, 4)

	csrf := form.Nodes[0]
	assert.False(t, csrf.Visible)
	assert.Equal(t, "true", csrf.Value)

	identifier := form.Nodes[1]
	assert.True(t, identifier.Visible)
	assert.Nil(t, identifier.Value)
	assert.Equal(t, "identifier", identifier.Label)

	password := form.Nodes[2]
	assert.Equal(t, "Password", password.Label)
	assert.True(t, password.Required)

	for _, node := range form.Nodes {
		assert.False(t, node.Loading)
		assert.False(t, node.Disabled)
	}
}

func TestRenderStripsTraitsPrefixAndHidesDisabledInputs(t *testing.T) {
	flow := newTestFlow(testFlowID)
	username := inputNode("default", "traits.username", "text", nil)
	username.Attributes.Disabled = true
	flow.UI.Nodes = append(flow.UI.Nodes, username)

	form := Render(flow, kratos.FlowTypeRegistration, "")
	last := form.Nodes[len(form.Nodes)-1]

	assert.Equal(t, "username", last.Label)
	assert.False(t, last.Visible)
	assert.True(t, last.Disabled)
}

func TestRenderNilFlow(t *testing.T) {
	form := Render(nil, kratos.FlowTypeRecovery, "")

	assert.Equal(t, kratos.FlowTypeRecovery, form.FlowType)
	assert.Empty(t, form.Nodes)
	assert.NotNil(t, form.Nodes)
}
