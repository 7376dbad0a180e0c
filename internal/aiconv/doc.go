// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package aiconv converts conversation contents between the Vertex AI protobuf types
// (aiplatformpb) and the genai types, limited to the part kinds few-shot examples use:
// text, function calls and function responses.
package aiconv
