// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
)

// Role represents the role of a participant in a conversation.
type Role = string

const (
	// RoleUser is the role of the user. Tool results are sent with this role.
	RoleUser Role = "user"

	// RoleModel is the role of the model.
	RoleModel Role = "model"
)

// Model represents a generative AI model.
//
// Implementations must be safe for concurrent use.
type Model interface {
	// Name returns the name of the model.
	Name() string

	// GenerateContent generates content from the model.
	GenerateContent(ctx context.Context, request *LLMRequest) (*LLMResponse, error)
}
