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

// Package ui carries the user facing side effects produced while serving a request:
// toast notices, navigations and page reloads. The browser replays them after the call returns.
package ui

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// NoticeKind is the visual style of a notice.
type NoticeKind string

const (
	// NoticeDefault is a neutral notice.
	NoticeDefault NoticeKind = "default"
	// NoticeSuccess confirms a completed action.
	NoticeSuccess NoticeKind = "success"
	// NoticeWarning reports a problem the user can act on.
	NoticeWarning NoticeKind = "warning"
)

// Notice is a toast message.
type Notice struct {
	Text     string
	Kind     NoticeKind
	Duration time.Duration
}

// Navigation moves the browser to another location, optionally after a delay.
// A hard navigation reloads the document instead of using client side routing.
type Navigation struct {
	URL   string
	Hard  bool
	Delay time.Duration
}

// Effects receives side effects.
type Effects interface {
	ShowNotice(notice Notice)
	Navigate(navigation Navigation)
	Reload()
}

type noticeJSON struct {
	Text       string     `json:"text"`
	Kind       NoticeKind `json:"kind"`
	DurationMs int64      `json:"durationMs,omitempty"`
}

// MarshalJSON encodes the duration in milliseconds.
func (n Notice) MarshalJSON() ([]byte, error) {
	return json.Marshal(noticeJSON{Text: n.Text, Kind: n.Kind, DurationMs: n.Duration.Milliseconds()})
}

type navigationJSON struct {
	URL     string `json:"url"`
	Hard    bool   `json:"hard"`
	DelayMs int64  `json:"delayMs,omitempty"`
}

// MarshalJSON encodes the delay in milliseconds.
func (n Navigation) MarshalJSON() ([]byte, error) {
	return json.Marshal(navigationJSON{URL: n.URL, Hard: n.Hard, DelayMs: n.Delay.Milliseconds()})
}

// Result is the JSON view of recorded effects.
type Result struct {
	Notices     []Notice     `json:"notices"`
	Navigations []Navigation `json:"navigations"`
	Reload      bool         `json:"reload"`
}

// Recorder collects effects. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	result Result
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{result: Result{Notices: []Notice{}, Navigations: []Navigation{}}}
}

// ShowNotice records a notice. Notices without a kind get the default kind.
func (r *Recorder) ShowNotice(notice Notice) {
	if notice.Kind == "" {
		notice.Kind = NoticeDefault
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Notices = append(r.result.Notices, notice)
}

// Navigate records a navigation.
func (r *Recorder) Navigate(navigation Navigation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Navigations = append(r.result.Navigations, navigation)
}

// Reload records a reload request.
func (r *Recorder) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result.Reload = true
}

// Result returns a copy of the recorded effects.
func (r *Recorder) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Result{
		Notices:     append([]Notice{}, r.result.Notices...),
		Navigations: append([]Navigation{}, r.result.Navigations...),
		Reload:      r.result.Reload,
	}
}

type discard struct{}

func (discard) ShowNotice(Notice) {}
func (discard) Navigate(Navigation) {}
func (discard) Reload() {}

type effectsKey struct{}

// WithEffects returns a context that carries the given effects sink.
func WithEffects(ctx context.Context, effects Effects) context.Context {
	return context.WithValue(ctx, effectsKey{}, effects)
}

// EffectsFromContext returns the sink carried by the context, or one that drops everything.
func EffectsFromContext(ctx context.Context) Effects {
	if effects, ok := ctx.Value(effectsKey{}).(Effects); ok && effects != nil {
		return effects
	}
	return discard{}
}
