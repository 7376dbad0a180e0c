// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/fewshot/pkg/logging"
)

// BaseLLM holds what every backend shares: the model name and its [Config].
type BaseLLM struct {
	Config

	// modelName represents the specific LLM model name.
	modelName string
}

var _ Model = (*BaseLLM)(nil)

// NewBaseLLM returns the new [BaseLLM] with the specified model name.
func NewBaseLLM(modelName string, opts ...Option) *BaseLLM {
	llm := &BaseLLM{
		Config:    newConfig(),
		modelName: modelName,
	}

	for _, opt := range opts {
		llm.Config = opt.apply(llm.Config)
	}

	return llm
}

// Name implements [Model].
func (m *BaseLLM) Name() string {
	return m.modelName
}

// GenerateContent implements [Model].
func (m *BaseLLM) GenerateContent(context.Context, *LLMRequest) (*LLMResponse, error) {
	return nil, NotImplementedError(fmt.Sprintf("BaseLLM: generation is not supported for %s", m.modelName))
}

// log returns the configured logger, or the logger of ctx.
func (m *BaseLLM) log(ctx context.Context) *slog.Logger {
	if m.logger != nil {
		return m.logger
	}
	return logging.FromContext(ctx)
}

// appendUserContent checks if the last message is from the user and if not, appends an empty user message.
func (m *BaseLLM) appendUserContent(contents []*genai.Content) []*genai.Content {
	switch {
	case len(contents) == 0:
		return append(slices.Clip(contents), &genai.Content{
			Role: RoleUser,
			Parts: []*genai.Part{
				{Text: `Handle the requests as specified in the System Instruction.`},
			},
		})

	case strings.ToLower(contents[len(contents)-1].Role) != RoleUser:
		return append(slices.Clip(contents), &genai.Content{
			Role: RoleUser,
			Parts: []*genai.Part{
				{Text: `Continue processing previous requests as instructed. Exit or provide a summary if no more outputs are needed.`},
			},
		})

	default:
		return contents
	}
}
