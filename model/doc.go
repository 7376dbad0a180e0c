// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package model provides a provider-neutral interface to hosted language models.
//
// Requests and responses use the google.golang.org/genai content types regardless of
// the backend, so a conversation built once (for example a few-shot history of tool
// calls) can be sent to any [Model].
//
// # Backends
//
//   - [Gemini]: the Gemini API (API key) or Vertex AI (application default credentials)
//   - [Claude]: the Anthropic Messages API; function calls map to tool_use blocks and
//     function responses to tool_result blocks
//
// # Model Registry
//
// [NewLLM] resolves a model name against registered patterns:
//
//	gemini-2.0-flash
//	projects/my-project/locations/us-central1/publishers/google/models/gemini-pro
//	claude-3-5-sonnet-latest
//
// # Usage
//
//	m, err := model.NewLLM(ctx, "gemini-2.0-flash", model.WithAPIKey(key))
//	if err != nil {
//		return err
//	}
//
//	req := model.NewLLMRequest(contents).
//		AppendInstructions("You are an expert extraction algorithm.").
//		AppendTools(decl).
//		ForceFunctionCall(decl.Name)
//
//	resp, err := m.GenerateContent(ctx, req)
//	if err != nil {
//		return err
//	}
//	for _, call := range resp.FunctionCalls() {
//		fmt.Println(call.Name, call.Args)
//	}
package model
