// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"google.golang.org/genai"
)

// LLMRequest represents a request to a language model.
type LLMRequest struct {
	// Model overrides the model name of the backend when set.
	Model string `json:"model,omitempty"`

	// Contents is the conversation, oldest first.
	Contents []*genai.Content `json:"contents"`

	// Config holds the system instruction, tools, tool config, response schema and
	// sampling parameters.
	Config *genai.GenerateContentConfig `json:"config,omitempty"`
}

// NewLLMRequest creates a new LLMRequest.
func NewLLMRequest(contents []*genai.Content) *LLMRequest {
	return &LLMRequest{
		Contents: contents,
		Config:   &genai.GenerateContentConfig{},
	}
}

func (r *LLMRequest) config() *genai.GenerateContentConfig {
	if r.Config == nil {
		r.Config = &genai.GenerateContentConfig{}
	}
	return r.Config
}

// AppendInstructions adds system instructions to the request.
func (r *LLMRequest) AppendInstructions(instructions ...string) *LLMRequest {
	if len(instructions) == 0 {
		return r
	}

	cfg := r.config()
	part := &genai.Part{Text: strings.Join(instructions, "\n\n")}
	if cfg.SystemInstruction == nil {
		cfg.SystemInstruction = &genai.Content{
			Role:  RoleUser,
			Parts: []*genai.Part{part},
		}
		return r
	}

	cfg.SystemInstruction.Parts = append(cfg.SystemInstruction.Parts, part)
	return r
}

// SystemInstructionText returns the text parts of the system instruction, separated by blank lines.
func (r *LLMRequest) SystemInstructionText() string {
	if r.Config == nil || r.Config.SystemInstruction == nil {
		return ""
	}
	var texts []string
	for _, part := range r.Config.SystemInstruction.Parts {
		if part != nil && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "\n\n")
}

// AppendTools adds function declarations to the request. They share a single [genai.Tool].
func (r *LLMRequest) AppendTools(decls ...*genai.FunctionDeclaration) *LLMRequest {
	if len(decls) == 0 {
		return r
	}

	cfg := r.config()
	for _, tool := range cfg.Tools {
		if tool != nil && tool.FunctionDeclarations != nil {
			tool.FunctionDeclarations = append(tool.FunctionDeclarations, decls...)
			return r
		}
	}
	cfg.Tools = append(cfg.Tools, &genai.Tool{FunctionDeclarations: decls})
	return r
}

// FunctionDeclarations returns every function declaration of the request.
func (r *LLMRequest) FunctionDeclarations() []*genai.FunctionDeclaration {
	if r.Config == nil {
		return nil
	}
	var decls []*genai.FunctionDeclaration
	for _, tool := range r.Config.Tools {
		if tool != nil {
			decls = append(decls, tool.FunctionDeclarations...)
		}
	}
	return decls
}

// ForceFunctionCall makes the model call one of names instead of answering with text.
func (r *LLMRequest) ForceFunctionCall(names ...string) *LLMRequest {
	r.config().ToolConfig = &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{
			Mode:                 genai.FunctionCallingConfigModeAny,
			AllowedFunctionNames: names,
		},
	}
	return r
}

// ForcedFunctionNames reports whether [LLMRequest.ForceFunctionCall] was used, and with
// which names. An empty list means any declared function.
func (r *LLMRequest) ForcedFunctionNames() (names []string, forced bool) {
	if r.Config == nil || r.Config.ToolConfig == nil || r.Config.ToolConfig.FunctionCallingConfig == nil {
		return nil, false
	}
	fc := r.Config.ToolConfig.FunctionCallingConfig
	if fc.Mode != genai.FunctionCallingConfigModeAny {
		return nil, false
	}
	return fc.AllowedFunctionNames, true
}

// SetOutputSchema configures the expected response format.
func (r *LLMRequest) SetOutputSchema(schema *genai.Schema) *LLMRequest {
	cfg := r.config()
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = schema
	return r
}

// SetTemperature sets the sampling temperature.
func (r *LLMRequest) SetTemperature(t float32) *LLMRequest {
	r.config().Temperature = genai.Ptr(t)
	return r
}

// ToJSON converts the request to an indented JSON string.
func (r *LLMRequest) ToJSON() (string, error) {
	data, err := json.Marshal(r, jsontext.WithIndent("  "), json.Deterministic(true))
	if err != nil {
		return "", fmt.Errorf("failed to marshal LLMRequest to JSON: %w", err)
	}
	return string(data), nil
}
