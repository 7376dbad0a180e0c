// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package modeltest provides a scripted [model.Model] for tests.
package modeltest

import (
	"context"
	"errors"
	"sync"

	"google.golang.org/genai"

	"github.com/go-a2a/fewshot/model"
)

// ErrNoResponse is returned when a [Model] runs out of scripted responses.
var ErrNoResponse = errors.New("modeltest: no scripted response left")

// HandlerFunc computes the response to a request.
type HandlerFunc func(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error)

type scripted struct {
	resp *model.LLMResponse
	err  error
}

// Model is a fake [model.Model]. It replies with scripted responses in order, or with
// Handler when no scripted response is left, and records every request.
type Model struct {
	// Handler, when set, answers requests once the script is exhausted.
	Handler HandlerFunc

	name string

	mu       sync.Mutex
	script   []scripted
	requests []*model.LLMRequest
}

var _ model.Model = (*Model)(nil)

// New returns a [Model] named name that replies with responses in order.
func New(name string, responses ...*model.LLMResponse) *Model {
	m := &Model{name: name}
	for _, resp := range responses {
		m.Reply(resp)
	}
	return m
}

// Name implements [model.Model].
func (m *Model) Name() string { return m.name }

// Reply appends a response to the script.
func (m *Model) Reply(resp *model.LLMResponse) *Model {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{resp: resp})
	return m
}

// Fail appends an error to the script.
func (m *Model) Fail(err error) *Model {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{err: err})
	return m
}

// GenerateContent implements [model.Model].
func (m *Model) GenerateContent(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		m.mu.Unlock()
		return next.resp, next.err
	}
	handler := m.Handler
	m.mu.Unlock()

	if handler != nil {
		return handler(ctx, req)
	}
	return nil, ErrNoResponse
}

// Requests returns the requests received so far, in order.
func (m *Model) Requests() []*model.LLMRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*model.LLMRequest(nil), m.requests...)
}

// FunctionCall returns a response holding one function call per args entry.
func FunctionCall(name string, args ...map[string]any) *model.LLMResponse {
	parts := make([]*genai.Part, 0, len(args))
	for _, a := range args {
		parts = append(parts, &genai.Part{FunctionCall: &genai.FunctionCall{Name: name, Args: a}})
	}
	return &model.LLMResponse{
		Content:      &genai.Content{Role: model.RoleModel, Parts: parts},
		FinishReason: genai.FinishReasonStop,
	}
}

// Text returns a text response.
func Text(text string) *model.LLMResponse {
	return &model.LLMResponse{
		Content:      &genai.Content{Role: model.RoleModel, Parts: []*genai.Part{{Text: text}}},
		FinishReason: genai.FinishReasonStop,
	}
}

// LastUserText returns the text of the last user content of req, which is the input
// being extracted from in an extraction request.
func LastUserText(req *model.LLMRequest) string {
	for i := len(req.Contents) - 1; i >= 0; i-- {
		c := req.Contents[i]
		if c == nil || c.Role != model.RoleUser {
			continue
		}
		for _, p := range c.Parts {
			if p != nil && p.Text != "" {
				return p.Text
			}
		}
	}
	return ""
}
