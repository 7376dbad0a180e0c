// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package fewshot is a code-first Go toolkit for structured extraction with large language models,
// guided by few-shot examples replayed as a simulated tool-calling conversation.
//
// The toolkit is split into small packages:
//
//   - [github.com/go-a2a/fewshot/schema] defines what to extract.
//   - [github.com/go-a2a/fewshot/example] turns input/output pairs into conversation history.
//   - [github.com/go-a2a/fewshot/prompt] builds the chat prompt around that history.
//   - [github.com/go-a2a/fewshot/model] talks to Gemini and Claude.
//   - [github.com/go-a2a/fewshot/extract] ties everything together into a typed structured-output call.
package fewshot

// Version is the version of the fewshot toolkit.
var Version = "v0.1.0"
