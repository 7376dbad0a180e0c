// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package pool

import (
	"strings"
	"sync"
)

// Pool is a generics wrapper around [sync.Pool] to provide strongly-typed object pooling.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
}

// New returns a new [Pool] for T, and will use fn to construct new T's when the pool is empty.
// reset, if non-nil, is called on every value handed back through [Pool.Put].
func New[T any](fn func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return fn()
			},
		},
		reset: reset,
	}
}

// Get gets a T from the pool, or creates a new one if the pool is empty.
func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

// Put resets x and returns it into the pool.
func (p *Pool[T]) Put(x T) {
	if p.reset != nil {
		p.reset(x)
	}
	p.pool.Put(x)
}

// maxPooledSize caps the capacity of builders kept in [String]; larger ones are left to the GC.
const maxPooledSize = 64 << 10

// String provides the [*strings.Builder] pooling objects.
var String = New(
	func() *strings.Builder { return &strings.Builder{} },
	func(sb *strings.Builder) { sb.Reset() },
)

// BuildString runs fn with a pooled builder and returns the built string.
func BuildString(fn func(sb *strings.Builder) error) (string, error) {
	sb := String.Get()
	defer func() {
		if sb.Cap() <= maxPooledSize {
			String.Put(sb)
		}
	}()

	if err := fn(sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
