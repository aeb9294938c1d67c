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
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/serlo/frontend-gateway/internal/authflow"
	"github.com/serlo/frontend-gateway/internal/errortracking"
	"github.com/serlo/frontend-gateway/internal/kratos"
	"github.com/serlo/frontend-gateway/internal/session"
	"github.com/serlo/frontend-gateway/internal/system/config"
	"github.com/serlo/frontend-gateway/internal/ui"
)

const (
	methodFieldName = "method"
	// maxRestarts bounds how often a failed flow is started again without user input.
	maxRestarts = 3
)

type modelOptions struct {
	client      kratos.ClientInterface
	store       session.LocalStoreInterface
	sessionName string
	flowType    kratos.FlowType
	only        string
	notices     config.NoticesConfig
	reporter    errortracking.ReporterInterface
}

// field is a visible input of the flow.
type field struct {
	id       string
	label    string
	messages []kratos.Message
	input    textinput.Model
}

// flowLoadedMsg carries a freshly initialized flow.
type flowLoadedMsg struct {
	flow *kratos.Flow
	err  error
}

// submittedMsg carries the outcome of a submission.
type submittedMsg struct {
	result  *kratos.SubmitResult
	err     error
	effects ui.Result
}

// model runs one identity flow in the terminal.
type model struct {
	ctx          context.Context
	client       kratos.ClientInterface
	flowType     kratos.FlowType
	controller   *authflow.Controller
	errorHandler *authflow.ErrorHandler
	persister    *storePersister
	results      chan *kratos.SubmitResult

	fields   []field
	focus    int
	methods  []string
	method   int
	messages []kratos.Message
	notices  []ui.Notice
	links    []string
	status   string
	loading  bool
	done     bool
	restarts int
}

func newModel(ctx context.Context, opts modelOptions) *model {
	m := &model{
		ctx:      ctx,
		client:   opts.client,
		flowType: opts.flowType,
		persister: &storePersister{
			client: opts.client,
			store:  opts.store,
			name:   opts.sessionName,
			now:    time.Now,
		},
		results: make(chan *kratos.SubmitResult, 1),
		loading: true,
	}
	m.controller = authflow.NewController(opts.flowType, opts.only, m.send)
	m.errorHandler = authflow.NewErrorHandler(m.controller, m.persister, "", opts.notices, opts.reporter)
	return m
}

// send submits the body of the current flow. It is called by the controller.
func (m *model) send(ctx context.Context, body map[string]interface{}) error {
	flow := m.controller.Flow()
	if flow == nil {
		return fmt.Errorf("no %s flow to submit", m.flowType)
	}
	result, err := m.client.SubmitFlow(ctx, m.flowType, flow.ID, body, m.credentials())
	if err != nil {
		return err
	}
	m.results <- result
	return nil
}

func (m *model) credentials() kratos.Credentials {
	return kratos.Credentials{SessionToken: m.persister.sessionToken()}
}

// Init starts the flow.
func (m *model) Init() tea.Cmd {
	return m.fetchFlow()
}

func (m *model) fetchFlow() tea.Cmd {
	return func() tea.Msg {
		result, err := m.client.InitializeFlow(m.ctx, m.flowType, "", m.credentials())
		if err != nil {
			return flowLoadedMsg{err: err}
		}
		return flowLoadedMsg{flow: result.Flow}
	}
}

func (m *model) submit() tea.Cmd {
	values := make(map[string]interface{}, len(m.fields))
	for _, f := range m.fields {
		values[f.id] = f.input.Value()
	}
	method := ""
	if len(m.methods) > 0 {
		method = m.methods[m.method]
	}
	m.loading = true

	return func() tea.Msg {
		recorder := ui.NewRecorder()
		ctx := ui.WithEffects(m.ctx, recorder)

		err := m.controller.Submit(ctx, values, method)
		var result *kratos.SubmitResult
		select {
		case result = <-m.results:
		default:
		}
		if err != nil {
			err = m.errorHandler.HandleFlowError(ctx, err)
		}
		return submittedMsg{result: result, err: err, effects: recorder.Result()}
	}
}

// Update handles key presses and the results of flow calls.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case flowLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.applyError(msg.err)
		}
		m.restarts = 0
		m.controller.SetFlow(msg.flow)
		m.rebuild()
		return m, nil

	case submittedMsg:
		m.loading = false
		return m, m.applySubmission(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
		if m.done {
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "ctrl+t":
			if len(m.methods) > 0 {
				m.method = (m.method + 1) % len(m.methods)
			}
			return m, nil
		case "enter":
			if m.focus < len(m.fields)-1 {
				m.moveFocus(1)
				return m, nil
			}
			return m, m.submit()
		}
	}

	if m.focus < len(m.fields) {
		var cmd tea.Cmd
		m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) applyError(err error) tea.Cmd {
	handled := m.errorHandler.HandleFlowError(ui.WithEffects(m.ctx, m), err)
	if handled != nil {
		m.status = handled.Error()
	}
	m.rebuild()
	return m.followNavigations()
}

func (m *model) applySubmission(msg submittedMsg) tea.Cmd {
	m.notices = append(m.notices, msg.effects.Notices...)
	for _, navigation := range msg.effects.Navigations {
		m.Navigate(navigation)
	}
	if msg.err != nil {
		m.status = msg.err.Error()
	}

	if result := msg.result; result != nil {
		if result.Session != nil || result.SessionToken != "" {
			if err := m.persister.save(result.Session, result.SessionToken); err != nil {
				m.status = fmt.Sprintf("failed to store the session: %s", err)
			} else {
				m.done = true
				m.status = "Session stored. Press any key to exit."
			}
		}
		if result.Flow != nil {
			m.controller.SetFlow(result.Flow)
		} else if result.Session == nil && result.SessionToken == "" {
			m.done = true
			m.status = "Done. Press any key to exit."
		}
	}
	m.rebuild()
	return m.followNavigations()
}

// followNavigations starts a fresh flow when a navigation points at the flow page.
func (m *model) followNavigations() tea.Cmd {
	if m.controller.Flow() != nil || m.done || m.restarts >= maxRestarts {
		return nil
	}
	m.restarts++
	m.loading = true
	return m.fetchFlow()
}

// ShowNotice records a notice raised while handling an error outside of a submission.
func (m *model) ShowNotice(notice ui.Notice) {
	m.notices = append(m.notices, notice)
}

// Navigate records navigations that leave the flow so the user can open them in a browser.
func (m *model) Navigate(navigation ui.Navigation) {
	if navigation.URL == authflow.FlowPath(m.flowType) {
		return
	}
	m.links = append(m.links, navigation.URL)
}

// Reload is a no-op in the terminal.
func (m *model) Reload() {}

// rebuild recreates the inputs from the rendered flow, keeping the entered values.
func (m *model) rebuild() {
	form := m.controller.Render()
	m.messages = form.Messages

	m.fields = m.fields[:0]
	m.methods = m.methods[:0]
	for _, node := range form.Nodes {
		if !node.Visible || node.Type != kratos.NodeTypeInput {
			continue
		}
		switch node.InputType {
		case kratos.InputTypeSubmit, kratos.InputTypeButton:
			if node.Name == methodFieldName {
				if method, ok := node.Value.(string); ok && method != "" {
					m.methods = append(m.methods, method)
				}
			}
			continue
		}

		input := textinput.New()
		input.Prompt = "> "
		if node.InputType == "password" {
			input.EchoMode = textinput.EchoPassword
		}
		if value, ok := node.Value.(string); ok {
			input.SetValue(value)
		}
		m.fields = append(m.fields, field{
			id:       node.ID,
			label:    node.Label,
			messages: node.Messages,
			input:    input,
		})
	}
	if m.method >= len(m.methods) {
		m.method = 0
	}
	if m.focus >= len(m.fields) {
		m.focus = 0
	}
	m.moveFocus(0)
}

func (m *model) moveFocus(delta int) {
	if len(m.fields) == 0 {
		return
	}
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	for i := range m.fields {
		if i == m.focus {
			m.fields[i].input.Focus()
		} else {
			m.fields[i].input.Blur()
		}
	}
}

// View renders the flow.
func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Serlo · %s", m.flowType)))
	b.WriteString("\n")

	for _, message := range m.messages {
		b.WriteString(messageStyle(message).Render(message.Text))
		b.WriteString("\n")
	}

	var form strings.Builder
	for i, f := range m.fields {
		style := labelStyle
		if i == m.focus {
			style = focusedLabelStyle
		}
		form.WriteString(style.Render(f.label))
		form.WriteString("\n")
		form.WriteString(f.input.View())
		form.WriteString("\n")
		for _, message := range f.messages {
			form.WriteString(messageStyle(message).Render(message.Text))
			form.WriteString("\n")
		}
	}
	if len(m.methods) > 0 {
		form.WriteString(labelStyle.Render("method: " + m.methods[m.method]))
	}
	if form.Len() > 0 {
		b.WriteString(boxStyle.Render(strings.TrimRight(form.String(), "\n")))
		b.WriteString("\n")
	}

	for _, notice := range m.notices {
		style := infoStyle
		switch notice.Kind {
		case ui.NoticeWarning:
			style = errorStyle
		case ui.NoticeSuccess:
			style = successStyle
		}
		b.WriteString(style.Render(notice.Text))
		b.WriteString("\n")
	}
	for _, link := range m.links {
		b.WriteString(infoStyle.Render("Continue in the browser: " + link))
		b.WriteString("\n")
	}
	if m.controller.IsSubmitting() {
		b.WriteString(labelStyle.Render("Submitting..."))
		b.WriteString("\n")
	} else if m.loading {
		b.WriteString(labelStyle.Render("Loading..."))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	b.WriteString(footerStyle.Render("tab: next field · enter: submit · ctrl+t: switch method · esc: quit"))
	return b.String()
}

func messageStyle(message kratos.Message) lipgloss.Style {
	switch message.Type {
	case "error":
		return errorStyle
	case "success":
		return successStyle
	default:
		return infoStyle
	}
}
