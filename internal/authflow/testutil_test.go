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
	"time"

	"github.com/serlo/frontend-gateway/internal/kratos"
)

const testFlowID = "6a1a9a6e-2b36-4f4c-9d8e-0d6c51f7a0b1"

func inputNode(group, name, inputType string, value interface{}) kratos.Node {
	return kratos.Node{
		Type:  kratos.NodeTypeInput,
		Group: group,
		Attributes: kratos.NodeAttributes{
			NodeType: kratos.NodeTypeInput,
			Name:     name,
			Type:     inputType,
			Value:    value,
		},
	}
}

func newTestFlow(id string) *kratos.Flow {
	password := inputNode("password", "password", "password", nil)
	password.Attributes.Required = true
	password.Meta.Label = &kratos.Message{ID: 1070001, Text: "Password", Type: "info"}

	return &kratos.Flow{
		ID:        id,
		Type:      "browser",
		ExpiresAt: time.Now().Add(time.Hour),
		UI: kratos.UIContainer{
			Action: "https://kratos.example.org/self-service/login?flow=" + id,
			Method: "POST",
			Nodes: []kratos.Node{
				inputNode("default", "csrf_token", kratos.InputTypeHidden, "csrf-123"),
				inputNode("default", "identifier", "text", nil),
				password,
				inputNode("password", "method", kratos.InputTypeSubmit, "password"),
				inputNode("oidc", "provider", kratos.InputTypeSubmit, "github"),
				{
					Type:       kratos.NodeTypeText,
					Group:      "lookup_secret",
					Attributes: kratos.NodeAttributes{NodeType: kratos.NodeTypeText, ID: "lookup_secret_codes"},
				},
			},
		},
	}
}
