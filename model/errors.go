// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"errors"
)

// ErrModelNotFound is returned when no registered pattern matches a model name.
var ErrModelNotFound = errors.New("model not found")

// NotImplementedError is the error type for unimplemented behaviour.
type NotImplementedError string

// Error returns a string representation of the [NotImplementedError].
func (e NotImplementedError) Error() string {
	return string(e)
}
