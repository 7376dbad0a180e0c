// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// ValidationError reports an extracted value that does not conform to its [Schema].
type ValidationError struct {
	Schema string
	Err    error
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("value does not match schema %s: %v", e.Schema, e.Err)
}

// Unwrap returns the underlying validator error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
