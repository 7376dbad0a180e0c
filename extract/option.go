// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"log/slog"

	"github.com/go-a2a/fewshot/example"
	"github.com/go-a2a/fewshot/prompt"
)

type config struct {
	template    *prompt.Template
	examples    []*example.Example
	provider    example.Provider
	method      Method
	includeRaw  bool
	temperature *float32
	maxRetries  int
	logger      *slog.Logger
}

func newConfig() config {
	return config{
		template: prompt.ExtractionTemplate(),
		method:   FunctionCalling,
	}
}

// Option configures an [Extractor].
type Option interface {
	apply(config) config
}

type optionFunc func(config) config

func (f optionFunc) apply(c config) config { return f(c) }

// WithTemplate sets the prompt template. It must reference no variable other than
// {text}, and should have an "examples" placeholder when examples are used.
//
// The default is [prompt.ExtractionTemplate].
func WithTemplate(t *prompt.Template) Option {
	return optionFunc(func(c config) config {
		c.template = t
		return c
	})
}

// WithExamples sets a fixed list of few-shot examples. Their tool calls are validated
// against the schema by [New].
func WithExamples(examples ...*example.Example) Option {
	return optionFunc(func(c config) config {
		c.examples = examples
		c.provider = example.NewStaticProvider(examples...)
		return c
	})
}

// WithExampleProvider fetches few-shot examples from p on every call, with the input
// text as query.
func WithExampleProvider(p example.Provider) Option {
	return optionFunc(func(c config) config {
		c.examples = nil
		c.provider = p
		return c
	})
}

// WithMethod sets the extraction method. The default is [FunctionCalling].
func WithMethod(m Method) Option {
	return optionFunc(func(c config) config {
		c.method = m
		return c
	})
}

// WithIncludeRaw makes [Extractor.InvokeWithResult] report parsing failures in
// [Result.ParsingError] instead of returning an error.
func WithIncludeRaw(include bool) Option {
	return optionFunc(func(c config) config {
		c.includeRaw = include
		return c
	})
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return optionFunc(func(c config) config {
		c.temperature = &t
		return c
	})
}

// WithMaxRetries sets how many times a call is repeated when the model output cannot be
// parsed or fails validation. Model errors are never retried. The default is 0.
func WithMaxRetries(n int) Option {
	return optionFunc(func(c config) config {
		c.maxRetries = max(n, 0)
		return c
	})
}

// WithLogger sets the logger. Without it the logger of the call context is used.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(c config) config {
		c.logger = logger
		return c
	})
}
