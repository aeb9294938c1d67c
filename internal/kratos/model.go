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

package kratos

import (
	"net/http"
	"time"

	"github.com/serlo/frontend-gateway/internal/session"
)

// FlowType names a self-service flow.
type FlowType string

const (
	// FlowTypeLogin is the login flow.
	FlowTypeLogin FlowType = "login"
	// FlowTypeRegistration is the registration flow.
	FlowTypeRegistration FlowType = "registration"
	// FlowTypeRecovery is the account recovery flow.
	FlowTypeRecovery FlowType = "recovery"
	// FlowTypeSettings is the settings flow.
	FlowTypeSettings FlowType = "settings"
	// FlowTypeVerification is the email verification flow.
	FlowTypeVerification FlowType = "verification"
)

// ParseFlowType validates a flow type name.
func ParseFlowType(name string) (FlowType, bool) {
	switch FlowType(name) {
	case FlowTypeLogin, FlowTypeRegistration, FlowTypeRecovery, FlowTypeSettings, FlowTypeVerification:
		return FlowType(name), true
	default:
		return "", false
	}
}

// Node types of the flow UI.
const (
	NodeTypeInput  = "input"
	NodeTypeText   = "text"
	NodeTypeImage  = "img"
	NodeTypeAnchor = "a"
	NodeTypeScript = "script"
)

// Input types that are seeded into the submitted values.
const (
	InputTypeHidden = "hidden"
	InputTypeSubmit = "submit"
	InputTypeButton = "button"
)

// Message is a UI message attached to a flow or a node.
type Message struct {
	ID      int                    `json:"id"`
	Text    string                 `json:"text"`
	Type    string                 `json:"type"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// NodeAttributes is the union of the attributes of every node type.
type NodeAttributes struct {
	NodeType     string      `json:"node_type"`
	Name         string      `json:"name,omitempty"`
	Type         string      `json:"type,omitempty"`
	Value        interface{} `json:"value,omitempty"`
	Required     bool        `json:"required,omitempty"`
	Disabled     bool        `json:"disabled"`
	Pattern      string      `json:"pattern,omitempty"`
	Autocomplete string      `json:"autocomplete,omitempty"`
	ID           string      `json:"id,omitempty"`
	Href         string      `json:"href,omitempty"`
	Src          string      `json:"src,omitempty"`
	Text         *Message    `json:"text,omitempty"`
}

// NodeMeta holds presentation hints of a node.
type NodeMeta struct {
	Label *Message `json:"label,omitempty"`
}

// Node is one element of the flow form.
type Node struct {
	Type       string         `json:"type"`
	Group      string         `json:"group"`
	Attributes NodeAttributes `json:"attributes"`
	Messages   []Message      `json:"messages"`
	Meta       NodeMeta       `json:"meta"`
}

// ID returns the stable identifier of the node: the name of input nodes, the id otherwise.
func (n Node) ID() string {
	if n.IsInput() {
		return n.Attributes.Name
	}
	return n.Attributes.ID
}

// IsInput reports whether the node is an input node.
func (n Node) IsInput() bool {
	return n.Type == NodeTypeInput || n.Attributes.NodeType == NodeTypeInput
}

// Label returns the label text of the node, if any.
func (n Node) Label() string {
	if n.Meta.Label != nil {
		return n.Meta.Label.Text
	}
	return ""
}

// UIContainer describes the flow form.
type UIContainer struct {
	Action   string    `json:"action"`
	Method   string    `json:"method"`
	Nodes    []Node    `json:"nodes"`
	Messages []Message `json:"messages,omitempty"`
}

// Flow is a self-service flow as returned by the identity provider.
type Flow struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	ExpiresAt  time.Time   `json:"expires_at"`
	IssuedAt   *time.Time  `json:"issued_at,omitempty"`
	RequestURL string      `json:"request_url,omitempty"`
	ReturnTo   string      `json:"return_to,omitempty"`
	State      string      `json:"state,omitempty"`
	UI         UIContainer `json:"ui"`
}

// FlowResult is a fetched or initialized flow plus the cookies the identity provider set.
type FlowResult struct {
	Flow    *Flow
	Cookies []*http.Cookie
}

// Credentials authenticate a call: browser cookies, or a session token for native clients.
type Credentials struct {
	Cookies      []*http.Cookie
	SessionToken string
}

// ContinueWith is a follow up action announced after a successful submission.
type ContinueWith struct {
	Action string `json:"action"`
	Flow   *struct {
		ID  string `json:"id"`
		URL string `json:"url,omitempty"`
	} `json:"flow,omitempty"`
}

// SubmitResult is the outcome of a successful submission.
type SubmitResult struct {
	// Flow is set by flows that stay on the page after success, like settings.
	Flow         *Flow            `json:"-"`
	Session      *session.Session `json:"session,omitempty"`
	SessionToken string           `json:"session_token,omitempty"`
	ContinueWith []ContinueWith   `json:"continue_with,omitempty"`
	Cookies      []*http.Cookie   `json:"-"`
}
