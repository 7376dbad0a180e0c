// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

// Conversation roles, as used by [genai.Content].
const (
	roleUser  = "user"
	roleModel = "model"
)

// ToolCallIDPrefix prefixes the generated IDs of example tool calls.
const ToolCallIDPrefix = "call_"

// newToolCallID returns a fresh tool call ID. Tests replace it for stable output.
var newToolCallID = func() string {
	return ToolCallIDPrefix + uuid.NewString()
}

// ToMessages converts an example into the conversation a model would have had if it had
// handled the example input correctly:
//
//  1. a user turn with the input text
//  2. a model turn calling toolName once per tool call
//  3. a user turn with one function response per call, paired by call ID
//  4. a closing model turn with AIResponse, if set
//
// An example without tool calls yields only the user turn (and the closing model turn, if any).
func ToMessages(ex *Example, toolName string) ([]*genai.Content, error) {
	if err := ex.Validate(); err != nil {
		return nil, err
	}

	contents := []*genai.Content{{
		Role:  roleUser,
		Parts: []*genai.Part{{Text: ex.Input}},
	}}

	if len(ex.ToolCalls) > 0 {
		calls := &genai.Content{Role: roleModel, Parts: make([]*genai.Part, 0, len(ex.ToolCalls))}
		results := &genai.Content{Role: roleUser, Parts: make([]*genai.Part, 0, len(ex.ToolCalls))}

		for i, tc := range ex.ToolCalls {
			args, err := toArgs(tc)
			if err != nil {
				return nil, fmt.Errorf("example %q tool call %d: %w", truncate(ex.Input, 32), i, err)
			}

			id := newToolCallID()
			calls.Parts = append(calls.Parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					ID:   id,
					Name: toolName,
					Args: args,
				},
			})
			results.Parts = append(results.Parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       id,
					Name:     toolName,
					Response: map[string]any{"output": ex.toolOutput(i)},
				},
			})
		}
		contents = append(contents, calls, results)
	}

	if ex.AIResponse != "" {
		contents = append(contents, &genai.Content{
			Role:  roleModel,
			Parts: []*genai.Part{{Text: ex.AIResponse}},
		})
	}

	return contents, nil
}

// ToConversation converts every example with [ToMessages] and concatenates the results in order.
func ToConversation(examples []*Example, toolName string) ([]*genai.Content, error) {
	var history []*genai.Content
	for _, ex := range examples {
		contents, err := ToMessages(ex, toolName)
		if err != nil {
			return nil, err
		}
		history = append(history, contents...)
	}
	return history, nil
}

// toArgs converts a tool call value to the JSON object a model would have produced.
func toArgs(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool call: %w", err)
	}
	var args map[string]any
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, fmt.Errorf("tool call must be a JSON object, got %s", data)
	}
	if args == nil {
		return nil, fmt.Errorf("tool call must be a JSON object, got %s", data)
	}
	return args, nil
}
