// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/bytedance/sonic"
	"google.golang.org/genai"
)

const (
	// ClaudeDefaultModel is the default model name for [Claude].
	ClaudeDefaultModel = "claude-3-5-sonnet-latest"

	// EnvAnthropicAPIKey is the environment variable name for the Anthropic API key.
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// Claude represents a Claude Large Language Model served by the Anthropic API.
type Claude struct {
	*BaseLLM

	anthropicClient anthropic.Client
}

var _ Model = (*Claude)(nil)

// NewClaude creates a new Claude LLM instance.
func NewClaude(_ context.Context, modelName string, opts ...Option) (*Claude, error) {
	if modelName == "" {
		modelName = ClaudeDefaultModel
	}
	base := NewBaseLLM(modelName, opts...)

	// Check API key and use [EnvAnthropicAPIKey] environment variable if not provided
	apiKey := cmp.Or(base.apiKey, os.Getenv(EnvAnthropicAPIKey))
	if apiKey == "" {
		return nil, fmt.Errorf("either WithAPIKey or %q environment variable must be set", EnvAnthropicAPIKey)
	}

	reqOpts := []anthropicopt.RequestOption{anthropicopt.WithAPIKey(apiKey)}
	if base.baseURL != "" {
		reqOpts = append(reqOpts, anthropicopt.WithBaseURL(base.baseURL))
	}
	if base.httpClient != nil {
		reqOpts = append(reqOpts, anthropicopt.WithHTTPClient(base.httpClient))
	}

	return &Claude{
		BaseLLM:         base,
		anthropicClient: anthropic.NewClient(reqOpts...),
	}, nil
}

// GenerateContent implements [Model].
func (m *Claude) GenerateContent(ctx context.Context, request *LLMRequest) (*LLMResponse, error) {
	modelName := cmp.Or(request.Model, m.modelName)

	messages, err := contentsToClaudeMessages(m.appendUserContent(request.Contents))
	if err != nil {
		return nil, err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(modelName),
		Messages:  messages,
		MaxTokens: int64(m.maxTokens),
	}

	if system := request.SystemInstructionText(); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	if config := request.Config; config != nil {
		if config.MaxOutputTokens > 0 {
			params.MaxTokens = int64(config.MaxOutputTokens)
		}
		if config.Temperature != nil {
			params.Temperature = anthropic.Float(float64(*config.Temperature))
		}
		if config.TopK != nil {
			params.TopK = anthropic.Int(int64(*config.TopK))
		}
		if config.TopP != nil {
			params.TopP = anthropic.Float(float64(*config.TopP))
		}
		params.StopSequences = config.StopSequences
	}

	for _, decl := range request.FunctionDeclarations() {
		tool, err := functionDeclarationToToolParam(decl)
		if err != nil {
			return nil, err
		}
		params.Tools = append(params.Tools, tool)
	}

	if names, forced := request.ForcedFunctionNames(); forced && len(params.Tools) > 0 {
		if len(names) == 1 {
			params.ToolChoice = anthropic.ToolChoiceUnionParam{
				OfTool: &anthropic.ToolChoiceToolParam{Name: names[0]},
			}
		} else {
			params.ToolChoice = anthropic.ToolChoiceUnionParam{
				OfAny: &anthropic.ToolChoiceAnyParam{},
			}
		}
	}

	message, err := m.anthropicClient.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude %s: %w", modelName, err)
	}

	response, err := claudeMessageToLLMResponse(message)
	if err != nil {
		return nil, err
	}
	m.log(ctx).DebugContext(ctx, "response",
		"model", modelName,
		"stop_reason", message.StopReason,
		"text", response.Text(),
		"function_calls", len(response.FunctionCalls()),
	)
	return response, nil
}

// functionDeclarationToToolParam converts a function declaration into an Anthropic tool.
func functionDeclarationToToolParam(decl *genai.FunctionDeclaration) (anthropic.ToolUnionParam, error) {
	if decl == nil || decl.Name == "" {
		return anthropic.ToolUnionParam{}, errors.New("function declaration name is empty")
	}

	inputSchema := anthropic.ToolInputSchemaParam{Properties: map[string]any{}}
	if params := decl.Parameters; params != nil {
		properties := make(map[string]any, len(params.Properties))
		for name, prop := range params.Properties {
			properties[name] = schemaToJSON(prop)
		}
		inputSchema.Properties = properties
		inputSchema.Required = params.Required
	}

	tool := &anthropic.ToolParam{
		Name:        decl.Name,
		InputSchema: inputSchema,
	}
	if decl.Description != "" {
		tool.Description = anthropic.String(decl.Description)
	}
	return anthropic.ToolUnionParam{OfTool: tool}, nil
}

// schemaToJSON converts a Gemini schema back into a JSON Schema document.
func schemaToJSON(s *genai.Schema) map[string]any {
	if s == nil {
		return map[string]any{}
	}

	out := make(map[string]any)
	if s.Type != "" {
		typ := strings.ToLower(string(s.Type))
		if s.Nullable != nil && *s.Nullable {
			out["type"] = []any{typ, "null"}
		} else {
			out["type"] = typ
		}
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Format != "" && s.Format != "enum" {
		out["format"] = s.Format
	}
	if len(s.Enum) > 0 {
		enum := make([]any, len(s.Enum))
		for i, e := range s.Enum {
			enum[i] = e
		}
		out["enum"] = enum
	}
	if s.Items != nil {
		out["items"] = schemaToJSON(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = schemaToJSON(prop)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		required := make([]any, len(s.Required))
		for i, r := range s.Required {
			required[i] = r
		}
		out["required"] = required
	}
	if len(s.AnyOf) > 0 {
		anyOf := make([]any, len(s.AnyOf))
		for i, sub := range s.AnyOf {
			anyOf[i] = schemaToJSON(sub)
		}
		out["anyOf"] = anyOf
	}
	return out
}

func asClaudeRole(role string) anthropic.MessageParamRole {
	if role == RoleModel || role == "assistant" {
		return anthropic.MessageParamRoleAssistant
	}
	return anthropic.MessageParamRoleUser
}

// contentsToClaudeMessages converts contents to Anthropic messages. Consecutive contents
// with the same role are merged, since the Messages API requires alternating roles.
func contentsToClaudeMessages(contents []*genai.Content) ([]anthropic.MessageParam, error) {
	messages := make([]anthropic.MessageParam, 0, len(contents))
	for i, content := range contents {
		if content == nil {
			continue
		}
		role := asClaudeRole(content.Role)

		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(content.Parts))
		for j, part := range content.Parts {
			block, err := partToClaudeMessageBlock(part)
			if err != nil {
				return nil, fmt.Errorf("content %d part %d: %w", i, j, err)
			}
			blocks = append(blocks, block)
		}
		if len(blocks) == 0 {
			continue
		}

		if n := len(messages); n > 0 && messages[n-1].Role == role {
			messages[n-1].Content = append(messages[n-1].Content, blocks...)
			continue
		}
		messages = append(messages, anthropic.MessageParam{Role: role, Content: blocks})
	}
	return messages, nil
}

func partToClaudeMessageBlock(part *genai.Part) (anthropic.ContentBlockParamUnion, error) {
	switch {
	case part == nil:
		return anthropic.ContentBlockParamUnion{}, errors.New("nil part")

	case part.FunctionCall != nil:
		funcCall := part.FunctionCall
		if funcCall.Name == "" {
			return anthropic.ContentBlockParamUnion{}, errors.New("function call name is empty")
		}
		if funcCall.ID == "" {
			return anthropic.ContentBlockParamUnion{}, fmt.Errorf("function call %q has no ID", funcCall.Name)
		}
		args := funcCall.Args
		if args == nil {
			args = map[string]any{}
		}
		return anthropic.NewToolUseBlock(funcCall.ID, args, funcCall.Name), nil

	case part.FunctionResponse != nil:
		funcResp := part.FunctionResponse
		if funcResp.ID == "" {
			return anthropic.ContentBlockParamUnion{}, fmt.Errorf("function response %q has no ID", funcResp.Name)
		}
		content, err := functionResponseText(funcResp.Response)
		if err != nil {
			return anthropic.ContentBlockParamUnion{}, err
		}
		return anthropic.NewToolResultBlock(funcResp.ID, content, false), nil

	case part.Text != "":
		return anthropic.NewTextBlock(part.Text), nil
	}

	return anthropic.ContentBlockParamUnion{}, errors.New("unsupported part: only text, function call and function response parts are supported")
}

// functionResponseText flattens a function response to the text of a tool_result block.
func functionResponseText(resp map[string]any) (string, error) {
	for _, key := range []string{"output", "result"} {
		if s, ok := resp[key].(string); ok {
			return s, nil
		}
	}
	data, err := sonic.ConfigStd.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("marshal function response: %w", err)
	}
	return string(data), nil
}

var claudeStopReasons = []anthropic.StopReason{
	anthropic.StopReasonEndTurn,
	anthropic.StopReasonStopSequence,
	anthropic.StopReasonToolUse,
}

func asClaudeToFinishReason(stopReason anthropic.StopReason) genai.FinishReason {
	if slices.Contains(claudeStopReasons, stopReason) {
		return genai.FinishReasonStop
	}

	if stopReason == anthropic.StopReasonMaxTokens {
		return genai.FinishReasonMaxTokens
	}

	return genai.FinishReasonUnspecified
}

func claudeMessageToLLMResponse(message *anthropic.Message) (*LLMResponse, error) {
	parts := make([]*genai.Part, 0, len(message.Content))
	for _, block := range message.Content {
		switch block.Type {
		case "text":
			parts = append(parts, &genai.Part{Text: block.Text})

		case "tool_use":
			var args map[string]any
			if len(block.Input) > 0 {
				if err := sonic.ConfigFastest.Unmarshal(block.Input, &args); err != nil {
					return nil, fmt.Errorf("unmarshal tool_use %q input: %w", block.Name, err)
				}
			}
			parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{
				ID:   block.ID,
				Name: block.Name,
				Args: args,
			}})
		}
	}

	return &LLMResponse{
		Content: &genai.Content{
			Role:  RoleModel,
			Parts: parts,
		},
		FinishReason: asClaudeToFinishReason(message.StopReason),
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     int32(message.Usage.InputTokens),
			CandidatesTokenCount: int32(message.Usage.OutputTokens),
			TotalTokenCount:      int32(message.Usage.InputTokens + message.Usage.OutputTokens),
		},
	}, nil
}
