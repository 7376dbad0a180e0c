// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"strings"

	"google.golang.org/genai"
)

// LLMResponse represents a response from a language model.
// It provides structured access to content, errors, and metadata
// from the model's response.
type LLMResponse struct {
	// Content is the content of the response.
	Content *genai.Content `json:"content,omitempty"`

	// FinishReason is the reason the model stopped generating.
	FinishReason genai.FinishReason `json:"finish_reason,omitempty"`

	// UsageMetadata is the token usage of the call, when the provider reports it.
	UsageMetadata *genai.GenerateContentResponseUsageMetadata `json:"usage_metadata,omitempty"`

	// ErrorCode is the error code if the response is an error. Code varies by model.
	ErrorCode string `json:"error_code,omitempty"`

	// ErrorMessage is the error message if the response is an error.
	ErrorMessage string `json:"error_message,omitempty"`
}

// CreateLLMResponse creates an [LLMResponse] from a [*genai.GenerateContentResponse].
func CreateLLMResponse(resp *genai.GenerateContentResponse) *LLMResponse {
	response := &LLMResponse{}

	if resp == nil {
		response.ErrorCode = "UNKNOWN_ERROR"
		response.ErrorMessage = "Generate content response is nil."
		return response
	}
	response.UsageMetadata = resp.UsageMetadata

	switch {
	case len(resp.Candidates) > 0:
		candidate := resp.Candidates[0]
		response.FinishReason = candidate.FinishReason
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			response.Content = candidate.Content
		} else {
			response.ErrorCode = string(candidate.FinishReason)
			response.ErrorMessage = candidate.FinishMessage
		}

	case resp.PromptFeedback != nil:
		response.ErrorCode = string(resp.PromptFeedback.BlockReason)
		response.ErrorMessage = resp.PromptFeedback.BlockReasonMessage
		if response.ErrorCode == "" {
			response.ErrorCode = "UNKNOWN_BLOCK"
		}
		if response.ErrorMessage == "" {
			response.ErrorMessage = "Content was blocked. Check prompt feedback for details."
		}

	default:
		response.ErrorCode = "UNKNOWN_ERROR"
		response.ErrorMessage = "Unknown error in generate content response."
	}

	return response
}

// IsError returns true if the response contains an error.
func (r *LLMResponse) IsError() bool {
	return r.ErrorCode != "" || r.ErrorMessage != ""
}

// Text returns the concatenated text parts of the response.
func (r *LLMResponse) Text() string {
	if r.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range r.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// FunctionCalls returns the function calls of the response, in order.
func (r *LLMResponse) FunctionCalls() []*genai.FunctionCall {
	if r.Content == nil {
		return nil
	}

	var calls []*genai.FunctionCall
	for _, part := range r.Content.Parts {
		if part != nil && part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}
