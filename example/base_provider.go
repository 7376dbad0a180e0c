// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"context"
)

// Provider represents a base interface for example providers.
//
// query is the text being extracted from; providers may use it to select the most
// relevant examples or ignore it.
type Provider interface {
	GetExamples(ctx context.Context, query string) ([]*Example, error)
}

// StaticProvider returns the same examples for every query.
type StaticProvider struct {
	examples []*Example
}

var _ Provider = (*StaticProvider)(nil)

// NewStaticProvider returns a [StaticProvider] serving examples.
func NewStaticProvider(examples ...*Example) *StaticProvider {
	return &StaticProvider{examples: examples}
}

// GetExamples implements [Provider].
//
// The returned examples are deep copies, so callers may modify them freely.
func (p *StaticProvider) GetExamples(context.Context, string) ([]*Example, error) {
	return Clone(p.examples)
}
