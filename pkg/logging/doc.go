// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging provides context-based structured logging utilities using Go's standard slog package.
//
// Loggers are stored in and retrieved from [context.Context] values, so every layer of an
// extraction call (prompt formatting, model invocation, output parsing) logs through the
// same handler without threading a logger parameter around.
//
// # Basic Usage
//
//	logger, err := logging.New(os.Stderr, "debug", logging.FormatText)
//	if err != nil {
//		return err
//	}
//	ctx = logging.NewContext(ctx, logger)
//
//	// later, anywhere below ctx
//	logging.FromContext(ctx).DebugContext(ctx, "formatted prompt", "contents", len(contents))
//
// # Default Behavior
//
// When no logger is found in the context, FromContext returns a JSON logger that writes
// to stderr at INFO level, so stdout stays reserved for extraction results.
package logging
