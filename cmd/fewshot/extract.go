// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/go-a2a/fewshot/example"
	"github.com/go-a2a/fewshot/extract"
	"github.com/go-a2a/fewshot/internal/config"
	"github.com/go-a2a/fewshot/model"
	"github.com/go-a2a/fewshot/pkg/logging"
	"github.com/go-a2a/fewshot/schema"
)

// flagValues are the flags shared by extract and render. Empty values keep the configuration.
type flagValues struct {
	config   string
	model    string
	examples string
	schema   string
	name     string
	method   string
}

func (f *flagValues) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "YAML configuration `file`")
	fs.StringVar(&f.examples, "examples", "", "examples: a YAML/JSON `file`, a gs:// URI or a Vertex AI Example Store resource name")
	fs.StringVar(&f.schema, "schema", "", "JSON Schema `file` of the extraction target (default: built-in people schema)")
	fs.StringVar(&f.name, "name", "", "tool `name` of the schema given with -schema")
}

func (f *flagValues) apply(cfg *config.Config) {
	for dst, v := range map[*string]string{
		&cfg.Model:      f.model,
		&cfg.Method:     f.method,
		&cfg.Examples:   f.examples,
		&cfg.Schema:     f.schema,
		&cfg.SchemaName: f.name,
	} {
		if v != "" {
			*dst = v
		}
	}
}

func (a *app) extract(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	var (
		flags       flagValues
		repeat      int
		concurrency int
		includeRaw  bool
	)
	flags.register(fs)
	fs.StringVar(&flags.model, "model", "", "model `name`, e.g. gemini-2.0-flash or claude-3-5-sonnet-latest")
	fs.StringVar(&flags.method, "method", "", "extraction `method`: function_calling or json")
	fs.IntVar(&repeat, "n", 1, "extract each text `n` times")
	fs.IntVar(&concurrency, "concurrency", -1, "maximum concurrent model calls, 0 for no limit (default from config)")
	fs.BoolVar(&includeRaw, "raw", false, "print the raw model response and parsing error with each result")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: fewshot extract [flags] text...|-")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}
	if repeat < 1 {
		return fmt.Errorf("-n must be positive, got %d", repeat)
	}

	cfg, err := loadConfig(flags.config)
	if err != nil {
		return err
	}
	flags.apply(cfg)
	if concurrency >= 0 {
		cfg.Concurrency = concurrency
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(a.stderr, cfg.Log.Level, cfg.LogFormat())
	if err != nil {
		return err
	}
	ctx = logging.NewContext(ctx, logger)

	texts, err := readTexts(fs.Args(), a.stdin)
	if err != nil {
		return err
	}
	texts = repeatEach(texts, repeat)

	m, err := a.newModel(ctx, cfg.Model, append(cfg.ModelOptions(), model.WithLogger(logger))...)
	if err != nil {
		return err
	}

	opts := append(cfg.ExtractOptions(), extract.WithLogger(logger))

	if cfg.Schema == "" {
		s, err := dataSchema()
		if err != nil {
			return err
		}
		provider, closeFn, err := openExamples(ctx, cfg.Examples)
		if err != nil {
			return err
		}
		defer closeFn()
		opts = append(opts, extract.WithExampleProvider(provider))
		return runExtraction[Data](ctx, a.stdout, m, s, texts, cfg.Concurrency, includeRaw, opts...)
	}

	data, err := os.ReadFile(cfg.Schema)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	s, err := schema.FromJSON(cfg.SchemaName, cfg.SchemaDescription, data)
	if err != nil {
		return err
	}
	if cfg.Examples != "" {
		provider, closeFn, err := openExamples(ctx, cfg.Examples)
		if err != nil {
			return err
		}
		defer closeFn()
		opts = append(opts, extract.WithExampleProvider(provider))
	}
	return runExtraction[map[string]any](ctx, a.stdout, m, s, texts, cfg.Concurrency, includeRaw, opts...)
}

// rawResult is printed for each text with -raw.
type rawResult[T any] struct {
	Parsed       T      `json:"parsed"`
	Raw          any    `json:"raw,omitempty"`
	ParsingError string `json:"parsing_error,omitempty"`
}

func runExtraction[T any](ctx context.Context, w io.Writer, m model.Model, s *schema.Schema, texts []string, concurrency int, includeRaw bool, opts ...extract.Option) error {
	if includeRaw {
		opts = append(opts, extract.WithIncludeRaw(true))
	}
	ex, err := extract.New[T](m, s, opts...)
	if err != nil {
		return err
	}

	if !includeRaw {
		results, err := ex.Batch(ctx, texts, concurrency)
		if err != nil {
			return err
		}
		for _, r := range results {
			if err := writeJSONLine(w, r); err != nil {
				return err
			}
		}
		return nil
	}

	// raw results are reported one text at a time so a parsing failure does not hide the others
	for _, text := range texts {
		res, err := ex.InvokeWithResult(ctx, text)
		if err != nil {
			return err
		}
		out := rawResult[T]{Parsed: res.Parsed}
		if res.Raw != nil {
			out.Raw = res.Raw.Content
		}
		if res.ParsingError != nil {
			out.ParsingError = res.ParsingError.Error()
		}
		if err := writeJSONLine(w, out); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v, json.Deterministic(true))
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// readTexts returns args, or the non-empty lines of stdin when args is "-".
func readTexts(args []string, stdin io.Reader) ([]string, error) {
	if !slices.Equal(args, []string{"-"}) {
		return args, nil
	}

	var texts []string
	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(texts) == 0 {
		return nil, errors.New("no text on stdin")
	}
	return texts, nil
}

func repeatEach(texts []string, n int) []string {
	if n == 1 {
		return texts
	}
	out := make([]string, 0, len(texts)*n)
	for _, t := range texts {
		for range n {
			out = append(out, t)
		}
	}
	return out
}

// openExamples opens the example source src, the built-in examples when src is empty.
// The returned close function is never nil.
func openExamples(ctx context.Context, src string) (example.Provider, func() error, error) {
	noop := func() error { return nil }

	switch {
	case src == "":
		examples, err := builtinExamples()
		if err != nil {
			return nil, noop, fmt.Errorf("built-in examples: %w", err)
		}
		return example.NewStaticProvider(examples...), noop, nil

	case strings.HasPrefix(src, "gs://"):
		p, err := example.NewGCSProvider(ctx, src)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil

	case isExampleStore(src):
		p, err := example.NewVertexAIExampleStore(ctx, src)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil

	default:
		p, err := example.NewFileProvider(src)
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil
	}
}

// isExampleStore reports whether src is a Vertex AI Example Store resource name.
func isExampleStore(src string) bool {
	return strings.HasPrefix(src, "projects/") && strings.Contains(src, "/exampleStores/")
}
