// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"fmt"
	"strings"
)

// Method is the way structured output is obtained from the model.
type Method string

const (
	// FunctionCalling binds the schema as the only tool and forces the model to call it.
	// Few-shot examples are replayed as earlier tool calls.
	FunctionCalling Method = "function_calling"

	// JSONMode asks for a JSON response that conforms to the schema. Few-shot examples
	// are rendered as text in the system instruction.
	JSONMode Method = "json_mode"
)

// ParseMethod parses a method name. "json" is accepted for [JSONMode].
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FunctionCalling), "function-calling", "tool", "tools":
		return FunctionCalling, nil
	case string(JSONMode), "json", "json-mode":
		return JSONMode, nil
	default:
		return "", fmt.Errorf("unknown extraction method %q (want %s or %s)", s, FunctionCalling, JSONMode)
	}
}

// String implements [fmt.Stringer].
func (m Method) String() string { return string(m) }
