// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package pool provides generic type pooling, and a [*strings.Builder] pool used when
// rendering few-shot examples and prompts to text.
package pool
