// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command fewshot extracts structured data from text with a language model, guided by
// few-shot examples.
//
// Usage:
//
//	fewshot extract [flags] text...|-
//	fewshot render [flags]
//	fewshot upload -store name [flags]
//	fewshot version
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-a2a/fewshot"
	"github.com/go-a2a/fewshot/internal/config"
	"github.com/go-a2a/fewshot/model"
)

const usage = `usage: fewshot <command> [flags]

commands:
  extract   extract structured data from text arguments, or stdin lines with "-"
  render    print the few-shot examples as a conversation and as text
  upload    store the few-shot examples in a Vertex AI Example Store
  version   print the version

Run "fewshot <command> -h" for the flags of a command.
`

// errUsage is returned when the command line is invalid. The usage has already been printed.
var errUsage = errors.New("invalid usage")

// app holds the process streams and the model factory so tests can swap them.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	newModel func(ctx context.Context, name string, opts ...model.Option) (model.Model, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		newModel: model.NewLLM,
	}
	os.Exit(a.run(ctx, os.Args[1:]))
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return 2
	}

	var err error
	switch cmd, rest := args[0], args[1:]; cmd {
	case "extract":
		err = a.extract(ctx, rest)
	case "render":
		err = a.render(ctx, rest)
	case "upload":
		err = a.upload(ctx, rest)
	case "version":
		fmt.Fprintln(a.stdout, "fewshot", fewshot.Version)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(a.stdout, usage)
	default:
		fmt.Fprintf(a.stderr, "fewshot: unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		fmt.Fprintf(a.stderr, "fewshot: %v\n", err)
		return 1
	}
}

// loadConfig loads the .env file, then the configuration file at path.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	return config.Load(path)
}
