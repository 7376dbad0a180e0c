// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"context"
	"fmt"
	"regexp"
	"sync"
)

// init registers the built-in model types.
func init() {
	// Register Claude models
	mustRegister(
		[]string{
			`claude-.*`,
		},
		func(ctx context.Context, modelName string, opts ...Option) (Model, error) {
			return NewClaude(ctx, modelName, opts...)
		},
	)

	// Register Google/Gemini models
	mustRegister(
		[]string{
			`gemini-.*`,
			`projects\/.*\/locations\/.*\/endpoints\/.*`,
			`projects\/.*\/locations\/.*\/publishers\/google\/models\/gemini-.*`,
		},
		func(ctx context.Context, modelName string, opts ...Option) (Model, error) {
			return NewGemini(ctx, modelName, opts...)
		},
	)
}

// CreatorFunc is a function type that creates a model instance.
type CreatorFunc func(ctx context.Context, modelName string, opts ...Option) (Model, error)

// modelEntry represents a registry entry with a regex pattern and model creator function.
type modelEntry struct {
	pattern *regexp.Regexp
	creator CreatorFunc
}

// LLMRegistry provides a registry for LLM models.
// It allows registering and resolving model implementations based on regex patterns.
type LLMRegistry struct {
	mu         sync.RWMutex
	registry   []modelEntry
	cacheSize  int
	modelCache map[string]CreatorFunc
}

var (
	defaultRegistry *LLMRegistry
	once            sync.Once
)

// GetRegistry returns the singleton registry instance.
func GetRegistry() *LLMRegistry {
	once.Do(func() {
		defaultRegistry = NewLLMRegistry(32)
	})
	return defaultRegistry
}

// NewLLMRegistry creates a new LLM registry with the specified cache size.
func NewLLMRegistry(cacheSize int) *LLMRegistry {
	return &LLMRegistry{
		registry:   make([]modelEntry, 0),
		cacheSize:  cacheSize,
		modelCache: make(map[string]CreatorFunc),
	}
}

// RegisterLLM registers a model pattern with a creator function.
// If the pattern already exists, it will be updated with the new creator.
//
// The pattern must match the whole model name.
func (r *LLMRegistry) RegisterLLM(modelPattern string, creator CreatorFunc) error {
	regex, err := regexp.Compile(`^(?:` + modelPattern + `)$`)
	if err != nil {
		return fmt.Errorf("compile model pattern %q: %w", modelPattern, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// any cached resolution may now be stale
	clear(r.modelCache)

	for i, entry := range r.registry {
		if entry.pattern.String() == regex.String() {
			r.registry[i].creator = creator
			return nil
		}
	}

	r.registry = append(r.registry, modelEntry{
		pattern: regex,
		creator: creator,
	})
	return nil
}

// ResolveLLM finds the appropriate model creator for the given model name.
// Patterns are tried in registration order; results are cached.
func (r *LLMRegistry) ResolveLLM(modelName string) (CreatorFunc, error) {
	r.mu.RLock()
	if creator, ok := r.modelCache[modelName]; ok {
		r.mu.RUnlock()
		return creator, nil
	}

	var matchedCreator CreatorFunc
	for _, entry := range r.registry {
		if entry.pattern.MatchString(modelName) {
			matchedCreator = entry.creator
			break
		}
	}
	r.mu.RUnlock()

	if matchedCreator == nil {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelName)
	}

	r.mu.Lock()
	if len(r.modelCache) >= r.cacheSize {
		// Simple eviction strategy - clear cache when full
		clear(r.modelCache)
	}
	r.modelCache[modelName] = matchedCreator
	r.mu.Unlock()

	return matchedCreator, nil
}

// NewLLM creates a new LLM instance for the given model name.
// It resolves the appropriate model implementation and creates an instance.
func (r *LLMRegistry) NewLLM(ctx context.Context, modelName string, opts ...Option) (Model, error) {
	creator, err := r.ResolveLLM(modelName)
	if err != nil {
		return nil, err
	}

	return creator(ctx, modelName, opts...)
}

// RegisterLLM is a convenience function to register a model pattern in the default registry.
func RegisterLLM(modelPattern string, creator CreatorFunc) error {
	return GetRegistry().RegisterLLM(modelPattern, creator)
}

func mustRegister(patterns []string, creator CreatorFunc) {
	for _, pattern := range patterns {
		if err := RegisterLLM(pattern, creator); err != nil {
			panic(err)
		}
	}
}

// NewLLM is a convenience function to create a new LLM instance from the default registry.
func NewLLM(ctx context.Context, modelName string, opts ...Option) (Model, error) {
	return GetRegistry().NewLLM(ctx, modelName, opts...)
}
