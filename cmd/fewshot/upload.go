// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/go-a2a/fewshot/example"
	"github.com/go-a2a/fewshot/pkg/logging"
)

func (a *app) upload(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	var (
		flags     flagValues
		store     string
		overwrite bool
	)
	flags.register(fs)
	fs.StringVar(&store, "store", "", "Vertex AI Example Store resource `name`, projects/.../exampleStores/...")
	fs.BoolVar(&overwrite, "overwrite", false, "replace stored examples with the same input")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: fewshot upload -store name [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() > 0 || !isExampleStore(store) {
		fs.Usage()
		return errUsage
	}

	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}
	flags.apply(cfg)
	if cfg.Examples == store {
		return errors.New("-examples and -store name the same example store")
	}

	logger, err := logging.New(a.stderr, cfg.Log.Level, cfg.LogFormat())
	if err != nil {
		return err
	}
	ctx = logging.NewContext(ctx, logger)

	provider, closeFn, err := openExamples(ctx, cfg.Examples)
	if err != nil {
		return err
	}
	defer closeFn()

	examples, err := provider.GetExamples(ctx, "")
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

	dst, err := example.NewVertexAIExampleStore(ctx, store)
	if err != nil {
		return err
	}
	defer dst.Close()

	if err := dst.UpsertExamples(ctx, s.Name, overwrite, examples...); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "uploaded %d examples to %s\n", len(examples), store)
	return nil
}
