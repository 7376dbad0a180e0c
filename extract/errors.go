// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"errors"
	"fmt"
)

// ErrNoToolCall is returned when a function-calling response does not call the extraction tool.
var ErrNoToolCall = errors.New("model did not call the extraction tool")

// ParseError reports model output that could not be turned into the target type.
//
// Err is [ErrNoToolCall], a [*schema.ValidationError] or a decoding error.
type ParseError struct {
	Method Method

	// Raw is the offending output: the tool call arguments or the response text.
	Raw string

	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("parse %s output: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("parse %s output %s: %v", e.Method, truncate(e.Raw, 200), e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ResponseError is returned when the model answers with an error instead of content,
// e.g. because the prompt was blocked.
type ResponseError struct {
	Model   string
	Code    string
	Message string
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("model %s returned %s: %s", e.Model, e.Code, e.Message)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
