// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/go-a2a/fewshot/example"
	"github.com/go-a2a/fewshot/schema"
)

func (a *app) render(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	var (
		flags flagValues
		query string
	)
	flags.register(fs)
	fs.StringVar(&query, "query", "", "`text` used to select examples from an example store")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: fewshot render [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return errUsage
	}

	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}
	flags.apply(cfg)

	provider, closeFn, err := openExamples(ctx, cfg.Examples)
	if err != nil {
		return err
	}
	defer closeFn()

	examples, err := provider.GetExamples(ctx, query)
	if err != nil {
		return fmt.Errorf("get examples: %w", err)
	}

	s, err := renderSchema(cfg.Schema, cfg.SchemaName, cfg.SchemaDescription)
	if err != nil {
		return err
	}
	for i, ex := range examples {
		for j, tc := range ex.ToolCalls {
			if err := s.Validate(tc); err != nil {
				return fmt.Errorf("example %d tool call %d: %w", i, j, err)
			}
		}
	}

	conversation, err := example.ToConversation(examples, s.Name)
	if err != nil {
		return err
	}
	data, err := json.Marshal(conversation, json.Deterministic(true), jsontext.WithIndent("  "))
	if err != nil {
		return fmt.Errorf("marshal conversation: %w", err)
	}
	text, err := example.ConvertExamplesToText(examples, s.Name)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "# conversation\n%s\n\n# text\n%s\n", data, text)
	return nil
}

// renderSchema returns the schema examples are checked against: the JSON Schema file at
// path, or the built-in people schema.
func renderSchema(path, name, description string) (*schema.Schema, error) {
	if path == "" {
		return dataSchema()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return schema.FromJSON(name, description, data)
}
