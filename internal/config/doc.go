// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the configuration of the fewshot command from a YAML file,
// .env files and the environment, in increasing order of precedence. Command line
// flags are applied on top by the caller.
package config
