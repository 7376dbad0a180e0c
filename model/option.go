// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"log/slog"
	"net/http"
)

// DefaultMaxTokens is the output token limit used when neither the request nor
// [WithMaxTokens] sets one. Only backends that require a limit use it.
const DefaultMaxTokens = 4096

// Config holds the settings shared by all model backends.
type Config struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	maxTokens  int32

	vertexAI bool
	project  string
	location string
}

func newConfig() Config {
	return Config{
		maxTokens: DefaultMaxTokens,
	}
}

// Option is a function that modifies the [Config] of a model.
type Option interface {
	apply(base Config) Config
}

type apiKeyOption string

func (o apiKeyOption) apply(base Config) Config {
	base.apiKey = string(o)
	return base
}

// WithAPIKey sets the provider API key. Without it the backend reads its
// environment variable.
func WithAPIKey(key string) Option {
	return apiKeyOption(key)
}

type baseURLOption string

func (o baseURLOption) apply(base Config) Config {
	base.baseURL = string(o)
	return base
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return baseURLOption(url)
}

type httpClientOption struct{ *http.Client }

func (o httpClientOption) apply(base Config) Config {
	base.httpClient = o.Client
	return base
}

// WithHTTPClient sets the HTTP client used to reach the provider.
func WithHTTPClient(client *http.Client) Option {
	return httpClientOption{client}
}

type loggerOption struct{ *slog.Logger }

func (o loggerOption) apply(base Config) Config {
	base.logger = o.Logger
	return base
}

// WithLogger sets the logger. Without it the logger of the request context is used.
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger}
}

type maxTokensOption int32

func (o maxTokensOption) apply(base Config) Config {
	if o > 0 {
		base.maxTokens = int32(o)
	}
	return base
}

// WithMaxTokens sets the default output token limit.
func WithMaxTokens(n int32) Option {
	return maxTokensOption(n)
}

type vertexAIOption struct{ project, location string }

func (o vertexAIOption) apply(base Config) Config {
	base.vertexAI = true
	base.project = o.project
	base.location = o.location
	return base
}

// WithVertexAI makes Gemini models use the Vertex AI backend with application default
// credentials. Empty arguments fall back to GOOGLE_CLOUD_PROJECT and GOOGLE_CLOUD_LOCATION.
func WithVertexAI(project, location string) Option {
	return vertexAIOption{project: project, location: location}
}
