// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTemplate indicates that a prompt template is invalid.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrMissingVariables indicates that required template variables are missing.
	ErrMissingVariables = errors.New("missing required variables")

	// ErrMissingPlaceholder indicates that a required message placeholder has no value.
	ErrMissingPlaceholder = errors.New("missing message placeholder")
)

// TemplateError reports a syntax error in the text of a template message.
type TemplateError struct {
	// Text is the message text that failed to parse.
	Text string

	// Pos is the byte offset of the error in Text.
	Pos int

	// Reason describes the problem.
	Reason string
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Reason, e.Pos, e.Text)
}

// Unwrap returns [ErrInvalidTemplate].
func (e *TemplateError) Unwrap() error {
	return ErrInvalidTemplate
}

// MissingVariablesError lists the variables a template references but Format was not given.
type MissingVariablesError struct {
	Variables []string
}

// Error implements the error interface.
func (e *MissingVariablesError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingVariables, strings.Join(e.Variables, ", "))
}

// Unwrap returns [ErrMissingVariables].
func (e *MissingVariablesError) Unwrap() error {
	return ErrMissingVariables
}
