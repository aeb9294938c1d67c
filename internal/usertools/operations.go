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

// Package usertools runs the author tool mutations of the content API: revision review, threads,
// comments, notifications, subscriptions and trash state.
package usertools

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Operation names an author tool mutation.
type Operation string

// Supported operations.
const (
	OperationCheckoutRevision     Operation = "checkout-revision"
	OperationRejectRevision       Operation = "reject-revision"
	OperationSetNotificationState Operation = "set-notification-state"
	OperationCreateThread         Operation = "create-thread"
	OperationCreateComment        Operation = "create-comment"
	OperationSetThreadArchived    Operation = "set-thread-archived"
	OperationSetCommentState      Operation = "set-comment-state"
	OperationSetUuidState         Operation = "set-uuid-state"
	OperationSetSubscription      Operation = "set-subscription"
)

// RevisionDecisionInput accepts or rejects a revision.
type RevisionDecisionInput struct {
	RevisionID int    `json:"revisionId"`
	Reason     string `json:"reason"`
}

// NotificationStateInput marks a notification as read or unread.
type NotificationStateInput struct {
	ID     int  `json:"id"`
	Unread bool `json:"unread"`
}

// CreateThreadInput opens a comment thread on an object.
type CreateThreadInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	ObjectID  int    `json:"objectId"`
	Subscribe bool   `json:"subscribe"`
	SendEmail bool   `json:"sendEmail"`
}

// CreateCommentInput answers a thread.
type CreateCommentInput struct {
	ThreadID  string `json:"threadId"`
	Content   string `json:"content"`
	Subscribe bool   `json:"subscribe"`
	SendEmail bool   `json:"sendEmail"`
}

// ThreadArchivedInput archives or restores a thread.
type ThreadArchivedInput struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
}

// CommentStateInput trashes or restores a comment.
type CommentStateInput struct {
	ID      int  `json:"id"`
	Trashed bool `json:"trashed"`
}

// UuidStateInput trashes or restores objects.
type UuidStateInput struct {
	ID      []int `json:"id"`
	Trashed bool  `json:"trashed"`
}

// SubscriptionInput subscribes to or unsubscribes from objects.
type SubscriptionInput struct {
	ID        []int `json:"id"`
	Subscribe bool  `json:"subscribe"`
	SendEmail bool  `json:"sendEmail"`
}

type operationDef struct {
	query  string
	decode func(raw json.RawMessage) (interface{}, error)
}

const mutationTemplate = `mutation %[2]s($input: %[3]s!) {
  %[1]s {
    %[2]s(input: $input) {
      success
    }
  }
}`

func mutation(namespace, name, inputType string) string {
	return fmt.Sprintf(mutationTemplate, namespace, name, inputType)
}

var operations = map[Operation]operationDef{
	OperationCheckoutRevision: {
		query:  mutation("entity", "checkoutRevision", "CheckoutRevisionInput"),
		decode: decoder(validateRevisionDecision),
	},
	OperationRejectRevision: {
		query:  mutation("entity", "rejectRevision", "RejectRevisionInput"),
		decode: decoder(validateRevisionDecision),
	},
	OperationSetNotificationState: {
		query: mutation("notification", "setState", "NotificationSetStateInput"),
		decode: decoder(func(in *NotificationStateInput) error {
			return positive("id", in.ID)
		}),
	},
	OperationCreateThread: {
		query: mutation("thread", "createThread", "ThreadCreateThreadInput"),
		decode: decoder(func(in *CreateThreadInput) error {
			if err := positive("objectId", in.ObjectID); err != nil {
				return err
			}
			return notEmpty("content", in.Content)
		}),
	},
	OperationCreateComment: {
		query: mutation("thread", "createComment", "ThreadCreateCommentInput"),
		decode: decoder(func(in *CreateCommentInput) error {
			if err := notEmpty("threadId", in.ThreadID); err != nil {
				return err
			}
			return notEmpty("content", in.Content)
		}),
	},
	OperationSetThreadArchived: {
		query: mutation("thread", "setThreadArchived", "ThreadSetThreadArchivedInput"),
		decode: decoder(func(in *ThreadArchivedInput) error {
			return notEmpty("id", in.ID)
		}),
	},
	OperationSetCommentState: {
		query: mutation("thread", "setCommentState", "ThreadSetCommentStateInput"),
		decode: decoder(func(in *CommentStateInput) error {
			return positive("id", in.ID)
		}),
	},
	OperationSetUuidState: {
		query: mutation("uuid", "setState", "UuidSetStateInput"),
		decode: decoder(func(in *UuidStateInput) error {
			return nonEmptyIDs(in.ID)
		}),
	},
	OperationSetSubscription: {
		query: mutation("subscription", "set", "SubscriptionSetInput"),
		decode: decoder(func(in *SubscriptionInput) error {
			return nonEmptyIDs(in.ID)
		}),
	},
}

// decoder decodes the raw input into T and validates it.
func decoder[T any](validate func(*T) error) func(json.RawMessage) (interface{}, error) {
	return func(raw json.RawMessage) (interface{}, error) {
		if len(raw) == 0 {
			return nil, errors.New("input is missing")
		}
		var in T
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("input is malformed: %w", err)
		}
		if err := validate(&in); err != nil {
			return nil, err
		}
		return &in, nil
	}
}

func validateRevisionDecision(in *RevisionDecisionInput) error {
	return positive("revisionId", in.RevisionID)
}

func positive(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be a positive number", name)
	}
	return nil
}

func notEmpty(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", name)
	}
	return nil
}

func nonEmptyIDs(ids []int) error {
	if len(ids) == 0 {
		return errors.New("id must list at least one object")
	}
	for _, id := range ids {
		if err := positive("id", id); err != nil {
			return err
		}
	}
	return nil
}
