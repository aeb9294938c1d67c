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

package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/tests/mocks/kratosmock"
)

const (
	testFlowID  = "3c5ab26a-5d4e-4f51-8d3b-7a7f4b7f6a11"
	otherFlowID = "9f0e1a2b-3c4d-4e5f-8a9b-0c1d2e3f4a5b"
)

type ModelTestSuite struct {
	suite.Suite
	client *kratosmock.ClientInterfaceMock
	store  *session.LocalStore
}

func TestModelTestSuite(t *testing.T) {
	suite.Run(t, new(ModelTestSuite))
}

func (suite *ModelTestSuite) SetupTest() {
	store, err := session.OpenInMemoryLocalStore()
	suite.Require().NoError(err)
	suite.store = store
	suite.client = &kratosmock.ClientInterfaceMock{}
}

func (suite *ModelTestSuite) TearDownTest() {
	suite.NoError(suite.store.Close())
}

func (suite *ModelTestSuite) newModel() *model {
	return newModel(context.Background(), modelOptions{
		client:      suite.client,
		store:       suite.store,
		sessionName: "default",
		flowType:    kratos.FlowTypeLogin,
		notices:     config.NoticesConfig{AlreadyLoggedIn: "You are already logged in."},
		reporter:    errortracking.NewReporter(nil),
	})
}

func inputNode(name, inputType string, value interface{}) kratos.Node {
	return kratos.Node{
		Type:  kratos.NodeTypeInput,
		Group: "default",
		Attributes: kratos.NodeAttributes{
			NodeType: kratos.NodeTypeInput,
			Name:     name,
			Type:     inputType,
			Value:    value,
		},
	}
}

func loginFlow(id string) *kratos.Flow {
	return &kratos.Flow{
		ID:        id,
		Type:      "api",
		ExpiresAt: time.Now().Add(time.Hour),
		UI: kratos.UIContainer{
			Method: http.MethodPost,
			Nodes: []kratos.Node{
				inputNode("csrf_token", kratos.InputTypeHidden, ""),
				inputNode("identifier", "text", nil),
				inputNode("password", "password", nil),
				inputNode("method", kratos.InputTypeSubmit, "password"),
			},
		},
	}
}

// start runs the initial flow fetch and feeds its message back into the model.
func (suite *ModelTestSuite) start(m *model) {
	suite.client.On("InitializeFlow", mock.Anything, kratos.FlowTypeLogin, "", mock.Anything).
		Return(&kratos.FlowResult{Flow: loginFlow(testFlowID)}, nil).Once()
	m.Update(m.Init()())
}

func (suite *ModelTestSuite) TestInitBuildsVisibleFields() {
	m := suite.newModel()
	suite.start(m)

	suite.False(m.loading)
	suite.Require().Len(m.fields, 2)
	suite.Equal("identifier", m.fields[0].id)
	suite.Equal("password", m.fields[1].id)
	suite.Equal([]string{"password"}, m.methods)
	suite.Contains(m.View(), "identifier")
}

func (suite *ModelTestSuite) TestSubmitStoresSession() {
	m := suite.newModel()
	suite.start(m)
	m.fields[0].input.SetValue("alice")
	m.fields[1].input.SetValue("secret")

	s := &session.Session{ID: "s1", Active: true, Identity: session.Identity{Traits: session.Traits{Username: "alice"}}}
	suite.client.On("SubmitFlow", mock.Anything, kratos.FlowTypeLogin, testFlowID,
		mock.MatchedBy(func(body map[string]interface{}) bool {
			return body["identifier"] == "alice" && body["password"] == "secret" && body["method"] == "password"
		}), mock.Anything).
		Return(&kratos.SubmitResult{Session: s, SessionToken: "st"}, nil).Once()

	m.Update(m.submit()())

	suite.True(m.done)
	stored, err := suite.store.Load("default")
	suite.Require().NoError(err)
	suite.Equal("st", stored.SessionToken)
	suite.Equal("alice", stored.Session.Identity.Traits.Username)
	suite.client.AssertExpectations(suite.T())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	suite.NotNil(cmd)
}

func (suite *ModelTestSuite) TestValidationErrorShowsMessages() {
	m := suite.newModel()
	suite.start(m)
	m.fields[0].input.SetValue("alice")

	invalid := loginFlow(testFlowID)
	invalid.UI.Messages = []kratos.Message{{ID: 4000006, Text: "The provided credentials are invalid.", Type: "error"}}
	suite.client.On("SubmitFlow", mock.Anything, kratos.FlowTypeLogin, testFlowID, mock.Anything, mock.Anything).
		Return(nil, &kratos.FlowError{Status: http.StatusBadRequest, Flow: invalid}).Once()

	m.Update(m.submit()())

	suite.False(m.done)
	suite.Empty(m.status)
	suite.Contains(m.View(), "The provided credentials are invalid.")
	suite.Equal("alice", m.fields[0].input.Value())
}

func (suite *ModelTestSuite) TestExpiredFlowStartsOver() {
	m := suite.newModel()
	suite.start(m)

	suite.client.On("SubmitFlow", mock.Anything, kratos.FlowTypeLogin, testFlowID, mock.Anything, mock.Anything).
		Return(nil, &kratos.FlowError{Status: http.StatusGone}).Once()

	_, cmd := m.Update(m.submit()())
	suite.Require().NotNil(cmd)

	suite.client.On("InitializeFlow", mock.Anything, kratos.FlowTypeLogin, "", mock.Anything).
		Return(&kratos.FlowResult{Flow: loginFlow(otherFlowID)}, nil).Once()
	m.Update(cmd())

	suite.Equal(otherFlowID, m.controller.Flow().ID)
	suite.Empty(m.links)
}

func (suite *ModelTestSuite) TestRedirectIsShownAsLink() {
	m := suite.newModel()
	suite.start(m)

	suite.client.On("SubmitFlow", mock.Anything, kratos.FlowTypeLogin, testFlowID, mock.Anything, mock.Anything).
		Return(nil, &kratos.FlowError{
			Status:            http.StatusUnprocessableEntity,
			ErrorID:           kratos.ErrorIDBrowserLocationChangeRequired,
			RedirectBrowserTo: "https://accounts.test/oidc",
		}).Once()

	m.Update(m.submit()())

	suite.Equal([]string{"https://accounts.test/oidc"}, m.links)
	suite.Contains(m.View(), "https://accounts.test/oidc")
}

func (suite *ModelTestSuite) TestEscQuits() {
	m := suite.newModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	suite.NotNil(cmd)
}
