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

package revision

import (
	"fmt"
)

// Kind is the entity type of a revision document.
type Kind string

// Supported entity kinds.
const (
	KindApplet          Kind = "Applet"
	KindArticle         Kind = "Article"
	KindCourse          Kind = "Course"
	KindCoursePage      Kind = "CoursePage"
	KindEvent           Kind = "Event"
	KindExercise        Kind = "Exercise"
	KindExerciseGroup   Kind = "ExerciseGroup"
	KindGroupedExercise Kind = "GroupedExercise"
	KindSolution        Kind = "Solution"
	KindVideo           Kind = "Video"
)

const (
	fieldCoursePage          = "course-page"
	fieldGroupedTextExercise = "grouped-text-exercise"
	fieldTextSolution        = "text-solution"
)

const mutationTemplate = `mutation %[1]s($input: %[2]s!) {
  entity {
    %[1]s(input: $input) {
      success
    }
  }
}`

// childField names a field of a document holding nested documents of one kind.
type childField struct {
	name string
	kind Kind
}

// kindDef describes how a kind is submitted.
type kindDef struct {
	mutation  string
	inputType string
	children  []childField
	// fields adds the kind specific input fields.
	fields func(d *Document, in *inputBuilder)
}

// query returns the GraphQL mutation of the kind.
func (s kindDef) query() string {
	return fmt.Sprintf(mutationTemplate, s.mutation, s.inputType)
}

var kinds = map[Kind]kindDef{
	KindApplet: {
		mutation:  "addAppletRevision",
		inputType: "AddAppletRevisionInput",
		fields: func(d *Document, in *inputBuilder) {
			in.required("title", "title", d.Title)
			in.required("url", "url", d.URL)
			in.optional("metaTitle", d.MetaTitle)
			in.optional("metaDescription", d.MetaDescription)
		},
	},
	KindArticle: {
		mutation:  "addArticleRevision",
		inputType: "AddArticleRevisionInput",
		fields: func(d *Document, in *inputBuilder) {
			in.required("title", "title", d.Title)
			in.optional("metaTitle", d.MetaTitle)
			in.optional("metaDescription", d.MetaDescription)
		},
	},
	KindCourse: {
		mutation:  "addCourseRevision",
		inputType: "AddCourseRevisionInput",
		children:  []childField{{name: fieldCoursePage, kind: KindCoursePage}},
		fields: func(d *Document, in *inputBuilder) {
			in.required("title", "title", d.Title)
			in.optional("metaDescription", d.MetaDescription)
		},
	},
	KindCoursePage: {
		mutation:  "addCoursePageRevision",
		inputType: "AddCoursePageRevisionInput",
		fields: func(d *Document, in *inputBuilder) {
			in.required("title", "title", d.Title)
		},
	},
	KindEvent: {
		mutation:  "addEventRevision",
		inputType: "AddEventRevisionInput",
		fields: func(d *Document, in *inputBuilder) {
			in.required("title", "title", d.Title)
			in.optional("metaTitle", d.MetaTitle)
			in.optional("metaDescription", d.MetaDescription)
		},
	},
	KindExercise: {
		mutation:  "addExerciseRevision",
		inputType: "AddGenericRevisionInput",
		children:  []childField{{name: fieldTextSolution, kind: KindSolution}},
		fields:    func(*Document, *inputBuilder) {},
	},
	KindExerciseGroup: {
		mutation:  "addExerciseGroupRevision",
		inputType: "AddExerciseGroupRevisionInput",
		children:  []childField{{name: fieldGroupedTextExercise, kind: KindExercise}},
		fields: func(d *Document, in *inputBuilder) {
			in.set("cohesive", d.Cohesive == "true")
		},
	},
	KindGroupedExercise: {
		mutation:  "addGroupedExerciseRevision",
		inputType: "AddGenericRevisionInput",
		fields:    func(*Document, *inputBuilder) {},
	},
	KindSolution: {
		mutation:  "addSolutionRevision",
		inputType: "AddGenericRevisionInput",
		fields:    func(*Document, *inputBuilder) {},
	},
	KindVideo: {
		mutation:  "addVideoRevision",
		inputType: "AddVideoRevisionInput",
		fields: func(d *Document, in *inputBuilder) {
			in.required("title", "title", d.Title)
			// the editor stores the video url in content and the text in description
			in.required("url", "url", d.Content)
			in.required("content", "content", d.Description)
		},
	},
}

// lookupKind returns the submission definition of a kind.
func lookupKind(kind Kind) (kindDef, bool) {
	def, ok := kinds[kind]
	return def, ok
}

// IsSupported reports whether revisions of the kind can be submitted through the content API.
func IsSupported(kind Kind) bool {
	_, ok := kinds[kind]
	return ok
}

// inputBuilder collects mutation input fields and remembers the first missing required value.
type inputBuilder struct {
	input   map[string]interface{}
	missing string
}

func newInputBuilder() *inputBuilder {
	return &inputBuilder{input: map[string]interface{}{}}
}

func (b *inputBuilder) required(name, key, value string) {
	if value == "" && b.missing == "" {
		b.missing = name
	}
	b.input[key] = value
}

func (b *inputBuilder) optional(key, value string) {
	if value != "" {
		b.input[key] = value
	}
}

func (b *inputBuilder) set(key string, value interface{}) {
	b.input[key] = value
}

// buildInput builds the mutation input of d. It returns the name of the first missing required
// value, if any.
func buildInput(d *Document, def kindDef, needsReview bool) (map[string]interface{}, string) {
	in := newInputBuilder()

	content := d.Content
	if d.Kind == KindCourse {
		content = d.Description
	}
	in.required("changes", "changes", d.Changes)
	in.required("content", "content", content)
	in.set("entityId", d.ID)
	in.set("needsReview", needsReview)

	subscribe, mailman := false, false
	if s := d.Controls.Subscription; s != nil {
		subscribe = s.Subscribe == 1
		mailman = s.Mailman == 1
	}
	in.set("subscribeThis", subscribe)
	in.set("subscribeThisByEmail", mailman)

	def.fields(d, in)
	return in.input, in.missing
}
