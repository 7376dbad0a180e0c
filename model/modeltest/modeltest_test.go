// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package modeltest_test

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/genai"

	"github.com/go-a2a/fewshot/model"
	"github.com/go-a2a/fewshot/model/modeltest"
)

func TestModel(t *testing.T) {
	boom := errors.New("boom")
	m := modeltest.New("fake", modeltest.Text("first")).Fail(boom)
	m.Handler = func(_ context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
		return modeltest.Text("echo " + modeltest.LastUserText(req)), nil
	}

	req := model.NewLLMRequest([]*genai.Content{{Role: model.RoleUser, Parts: []*genai.Part{{Text: "hi"}}}})

	resp, err := m.GenerateContent(t.Context(), req)
	if err != nil || resp.Text() != "first" {
		t.Fatalf("first call = %v, %v", resp, err)
	}
	if _, err := m.GenerateContent(t.Context(), req); !errors.Is(err, boom) {
		t.Fatalf("second call error = %v, want %v", err, boom)
	}
	resp, err = m.GenerateContent(t.Context(), req)
	if err != nil || resp.Text() != "echo hi" {
		t.Fatalf("handler call = %v, %v", resp, err)
	}

	if got := len(m.Requests()); got != 3 {
		t.Errorf("recorded %d requests, want 3", got)
	}
	if m.Name() != "fake" {
		t.Errorf("Name() = %q", m.Name())
	}
}

func TestModel_Exhausted(t *testing.T) {
	m := modeltest.New("fake")
	if _, err := m.GenerateContent(t.Context(), &model.LLMRequest{}); !errors.Is(err, modeltest.ErrNoResponse) {
		t.Errorf("error = %v, want ErrNoResponse", err)
	}
}

func TestFunctionCall(t *testing.T) {
	resp := modeltest.FunctionCall("Data", map[string]any{"a": 1}, map[string]any{"b": 2})
	calls := resp.FunctionCalls()
	if len(calls) != 2 || calls[0].Name != "Data" || calls[1].Args["b"] != 2 {
		t.Errorf("FunctionCalls = %+v", calls)
	}
}
