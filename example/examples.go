// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"fmt"

	deepcopy "github.com/tiendc/go-deepcopy"
)

// DefaultToolOutput is the tool result replayed after each example tool call when the
// example does not provide its own outputs.
const DefaultToolOutput = "You have correctly called this tool."

// Example represents a few-shot example: an input text and the tool calls a model should
// make for it.
type Example struct {
	// Input is the text the user sent.
	Input string `json:"input" yaml:"input"`

	// ToolCalls are the arguments of each expected call of the extraction tool.
	// Every value must marshal to a JSON object, e.g. a struct of the target type or a
	// map[string]any.
	ToolCalls []any `json:"tool_calls" yaml:"tool_calls"`

	// ToolOutputs are the tool results replayed after the calls. When non-empty it must
	// have one entry per tool call; when empty every call gets [DefaultToolOutput].
	ToolOutputs []string `json:"tool_outputs,omitempty" yaml:"tool_outputs,omitempty"`

	// AIResponse is an optional closing assistant message after the tool results.
	AIResponse string `json:"ai_response,omitempty" yaml:"ai_response,omitempty"`
}

// Validate reports structural problems with the example.
func (e *Example) Validate() error {
	if e == nil {
		return fmt.Errorf("nil example")
	}
	if len(e.ToolOutputs) > 0 && len(e.ToolOutputs) != len(e.ToolCalls) {
		return fmt.Errorf("example %q: %d tool outputs for %d tool calls", truncate(e.Input, 32), len(e.ToolOutputs), len(e.ToolCalls))
	}
	return nil
}

// toolOutput returns the tool result replayed after the i-th tool call.
func (e *Example) toolOutput(i int) string {
	if len(e.ToolOutputs) == 0 {
		return DefaultToolOutput
	}
	return e.ToolOutputs[i]
}

// Clone returns a deep copy of examples.
func Clone(examples []*Example) ([]*Example, error) {
	if examples == nil {
		return nil, nil
	}
	out := make([]*Example, 0, len(examples))
	if err := deepcopy.Copy(&out, examples); err != nil {
		return nil, fmt.Errorf("copy examples: %w", err)
	}
	return out, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
