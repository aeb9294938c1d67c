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

// Package revision submits nested entity revisions to the content API, or to the legacy editor
// endpoint when the API path is switched off.
package revision

import (
	"bytes"
	"encoding/json"
)

// Subscription holds the subscription choices of the author. A value of 1 means yes.
type Subscription struct {
	Subscribe int `json:"subscribe"`
	Mailman   int `json:"mailman"`
}

// Controls holds the save options chosen in the editor.
type Controls struct {
	Subscription *Subscription `json:"subscription,omitempty"`
	Checkout     bool          `json:"checkout,omitempty"`
}

// Document is the serialized editor state of one entity revision.
type Document struct {
	Kind            Kind     `json:"__typename,omitempty"`
	ID              int      `json:"id"`
	Changes         string   `json:"changes,omitempty"`
	Content         string   `json:"content,omitempty"`
	CSRF            string   `json:"csrf,omitempty"`
	Controls        Controls `json:"controls"`
	Title           string   `json:"title,omitempty"`
	URL             string   `json:"url,omitempty"`
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Description     string   `json:"description,omitempty"`
	Cohesive        string   `json:"cohesive,omitempty"`

	CoursePages          Children `json:"course-page,omitempty"`
	GroupedTextExercises Children `json:"grouped-text-exercise,omitempty"`
	TextSolutions        Children `json:"text-solution,omitempty"`
}

// Children is a child field. The editor sends a single child as an object and several as an array.
type Children []*Document

// UnmarshalJSON accepts a single object, an array of objects or null.
func (c *Children) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}
	if trimmed[0] == '[' {
		var children []*Document
		if err := json.Unmarshal(trimmed, &children); err != nil {
			return err
		}
		*c = children
		return nil
	}
	var child Document
	if err := json.Unmarshal(trimmed, &child); err != nil {
		return err
	}
	*c = Children{&child}
	return nil
}

// childrenOf returns the children stored under the given field name.
func (d *Document) childrenOf(field string) Children {
	switch field {
	case fieldCoursePage:
		return d.CoursePages
	case fieldGroupedTextExercise:
		return d.GroupedTextExercises
	case fieldTextSolution:
		return d.TextSolutions
	}
	return nil
}

// asChild returns a copy of child typed as kind that inherits the save options of d.
func (d *Document) asChild(child *Document, kind Kind) *Document {
	c := *child
	c.Kind = kind
	c.Changes = d.Changes
	c.CSRF = d.CSRF
	c.Controls = d.Controls
	return &c
}
