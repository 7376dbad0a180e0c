// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package prompt provides chat prompt templates.
//
// A [Template] is an ordered list of messages. Text messages use {name} variables,
// with {{ and }} for literal braces; placeholders are expanded to a list of
// [google.golang.org/genai.Content] values, typically a few-shot conversation:
//
//	tmpl := prompt.MustNew(
//		prompt.System("You are an expert extraction algorithm."),
//		prompt.Placeholder("examples"),
//		prompt.Human("{text}"),
//	)
//
//	p, err := tmpl.Format(
//		map[string]any{"text": "Fiona traveled far from France to Spain."},
//		map[string][]*genai.Content{"examples": history},
//	)
//
// System messages are joined into [Prompt.System]; every other message becomes a
// content of [Prompt.Contents] in template order.
package prompt
