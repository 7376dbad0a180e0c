// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-json-experiment/json"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/go-a2a/fewshot/example"
	"github.com/go-a2a/fewshot/model"
	"github.com/go-a2a/fewshot/pkg/logging"
	"github.com/go-a2a/fewshot/prompt"
	"github.com/go-a2a/fewshot/schema"
)

// jsonModeInstruction is appended to the system instruction of JSON-mode requests.
var jsonModeInstruction = heredoc.Doc(`
	Respond only with a JSON object named %s that conforms to the following JSON Schema.
	Do not add any text before or after the JSON object.

	%s
`)

// Result is the outcome of one extraction call.
type Result[T any] struct {
	// Parsed is the extracted value. It is the zero value when ParsingError is set.
	Parsed T

	// Raw is the model response the value was parsed from.
	Raw *model.LLMResponse

	// ParsingError is the reason Raw could not be parsed, in include-raw mode.
	ParsingError error
}

// Extractor extracts values of type T from text with a language model.
//
// An Extractor is safe for concurrent use.
type Extractor[T any] struct {
	model  model.Model
	schema *schema.Schema
	cfg    config

	// derived from schema once
	decl       *genai.FunctionDeclaration
	respSchema *genai.Schema
	schemaJSON string
}

// New returns an [Extractor] that asks m for values conforming to s and decodes them into T.
//
// T should be the Go type s describes, e.g. the type s was built from with [schema.For].
func New[T any](m model.Model, s *schema.Schema, opts ...Option) (*Extractor[T], error) {
	if m == nil {
		return nil, errors.New("nil model")
	}
	if s == nil {
		return nil, errors.New("nil schema")
	}

	cfg := newConfig()
	for _, opt := range opts {
		cfg = opt.apply(cfg)
	}

	e := &Extractor[T]{
		model:  m,
		schema: s,
		cfg:    cfg,
	}
	if err := e.init(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Extractor[T]) init() error {
	cfg := e.cfg
	if cfg.template == nil {
		return errors.New("nil template")
	}
	for _, v := range cfg.template.InputVariables() {
		if v != prompt.TextVariable {
			return fmt.Errorf("template variable %q is never set: only {%s} is supplied", v, prompt.TextVariable)
		}
	}
	if cfg.method == FunctionCalling && cfg.provider != nil &&
		!slices.Contains(cfg.template.Placeholders(), prompt.ExamplesPlaceholder) {
		return fmt.Errorf("template has no %q placeholder for the examples", prompt.ExamplesPlaceholder)
	}

	for i, ex := range cfg.examples {
		if err := ex.Validate(); err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		for j, tc := range ex.ToolCalls {
			if err := e.schema.Validate(tc); err != nil {
				return fmt.Errorf("example %d tool call %d: %w", i, j, err)
			}
		}
	}

	var err error
	switch cfg.method {
	case FunctionCalling:
		if e.decl, err = e.schema.FunctionDeclaration(); err != nil {
			return fmt.Errorf("function declaration for %s: %w", e.schema.Name, err)
		}
	case JSONMode:
		if e.respSchema, err = e.schema.Gemini(); err != nil {
			return fmt.Errorf("response schema for %s: %w", e.schema.Name, err)
		}
		if e.schemaJSON, err = e.schema.JSONString(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown extraction method %q", cfg.method)
	}
	return nil
}

// Schema returns the schema the extractor asks for.
func (e *Extractor[T]) Schema() *schema.Schema { return e.schema }

// Method returns the extraction method.
func (e *Extractor[T]) Method() Method { return e.cfg.method }

func (e *Extractor[T]) log(ctx context.Context) *slog.Logger {
	if e.cfg.logger != nil {
		return e.cfg.logger
	}
	return logging.FromContext(ctx)
}

// Invoke extracts a value from text.
func (e *Extractor[T]) Invoke(ctx context.Context, text string) (T, error) {
	var zero T

	res, err := e.InvokeWithResult(ctx, text)
	if err != nil {
		return zero, err
	}
	if res.ParsingError != nil {
		return zero, res.ParsingError
	}
	return res.Parsed, nil
}

// InvokeWithResult extracts a value from text and returns it with the raw model response.
//
// Output that cannot be parsed is retried up to the configured number of times. After
// the last attempt the parsing error is returned, or reported in [Result.ParsingError]
// when the extractor was built with [WithIncludeRaw].
func (e *Extractor[T]) InvokeWithResult(ctx context.Context, text string) (*Result[T], error) {
	req, err := e.BuildRequest(ctx, text)
	if err != nil {
		return nil, err
	}
	logger := e.log(ctx)
	if logger.Enabled(ctx, slog.LevelDebug) {
		if dump, err := req.ToJSON(); err == nil {
			logger.DebugContext(ctx, "extract request", "model", e.model.Name(), "request", dump)
		} else {
			logger.DebugContext(ctx, "extract request not dumped", "error", err)
		}
	}

	for attempt := 0; ; attempt++ {
		logger.DebugContext(ctx, "extract",
			"model", e.model.Name(),
			"schema", e.schema.Name,
			"method", e.cfg.method,
			"contents", len(req.Contents),
			"attempt", attempt,
		)

		resp, err := e.model.GenerateContent(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("generate with %s: %w", e.model.Name(), err)
		}
		if resp == nil {
			return nil, fmt.Errorf("generate with %s: nil response", e.model.Name())
		}
		if resp.IsError() && resp.Content == nil {
			return nil, &ResponseError{Model: e.model.Name(), Code: resp.ErrorCode, Message: resp.ErrorMessage}
		}

		parsed, perr := e.parse(resp)
		if perr == nil {
			return &Result[T]{Parsed: parsed, Raw: resp}, nil
		}

		logger.WarnContext(ctx, "unusable model output",
			"model", e.model.Name(),
			"attempt", attempt,
			"error", perr,
		)
		if attempt >= e.cfg.maxRetries || ctx.Err() != nil {
			if e.cfg.includeRaw {
				return &Result[T]{Raw: resp, ParsingError: perr}, nil
			}
			return nil, perr
		}
	}
}

// Batch extracts a value from each text, running up to concurrency calls at a time.
// concurrency <= 0 means no limit.
//
// Results are in the order of texts. The first error cancels the remaining calls.
func (e *Extractor[T]) Batch(ctx context.Context, texts []string, concurrency int) ([]T, error) {
	results := make([]T, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, text := range texts {
		g.Go(func() error {
			v, err := e.Invoke(ctx, text)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BuildRequest returns the model request for text without sending it.
func (e *Extractor[T]) BuildRequest(ctx context.Context, text string) (*model.LLMRequest, error) {
	var examples []*example.Example
	if e.cfg.provider != nil {
		var err error
		if examples, err = e.cfg.provider.GetExamples(ctx, text); err != nil {
			return nil, fmt.Errorf("get examples: %w", err)
		}
	}

	var (
		placeholders = make(map[string][]*genai.Content)
		instructions []string
	)
	switch e.cfg.method {
	case FunctionCalling:
		history, err := example.ToConversation(examples, e.schema.Name)
		if err != nil {
			return nil, err
		}
		placeholders[prompt.ExamplesPlaceholder] = history

	case JSONMode:
		placeholders[prompt.ExamplesPlaceholder] = nil
		instructions = append(instructions, fmt.Sprintf(jsonModeInstruction, e.schema.Name, e.schemaJSON))
		exampleText, err := example.ConvertExamplesToText(examples, e.schema.Name)
		if err != nil {
			return nil, err
		}
		if exampleText != "" {
			instructions = append(instructions, exampleText)
		}
	}

	p, err := e.cfg.template.Format(map[string]any{prompt.TextVariable: text}, placeholders)
	if err != nil {
		return nil, fmt.Errorf("format prompt: %w", err)
	}

	req := model.NewLLMRequest(p.Contents)
	if p.System != "" {
		req.AppendInstructions(p.System)
	}
	req.AppendInstructions(instructions...)

	switch e.cfg.method {
	case FunctionCalling:
		req.AppendTools(e.decl).ForceFunctionCall(e.schema.Name)
	case JSONMode:
		req.SetOutputSchema(e.respSchema)
	}
	if e.cfg.temperature != nil {
		req.SetTemperature(*e.cfg.temperature)
	}
	return req, nil
}

// parse turns a response into a validated T.
func (e *Extractor[T]) parse(resp *model.LLMResponse) (T, error) {
	var (
		zero T
		raw  any
		text string
	)

	switch e.cfg.method {
	case FunctionCalling:
		idx := slices.IndexFunc(resp.FunctionCalls(), func(fc *genai.FunctionCall) bool {
			return fc.Name == e.schema.Name
		})
		if idx < 0 {
			return zero, &ParseError{Method: e.cfg.method, Raw: resp.Text(), Err: ErrNoToolCall}
		}
		args := resp.FunctionCalls()[idx].Args
		if args == nil {
			args = map[string]any{}
		}
		raw = args
		data, err := json.Marshal(args, json.Deterministic(true))
		if err != nil {
			return zero, &ParseError{Method: e.cfg.method, Err: err}
		}
		text = string(data)

	case JSONMode:
		text = extractJSON(resp.Text())
		if text == "" {
			return zero, &ParseError{Method: e.cfg.method, Err: errors.New("empty response")}
		}
		if err := json.Unmarshal([]byte(text), &raw); err != nil {
			return zero, &ParseError{Method: e.cfg.method, Raw: text, Err: err}
		}
	}

	if err := e.schema.Validate(raw); err != nil {
		return zero, &ParseError{Method: e.cfg.method, Raw: text, Err: err}
	}

	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return zero, &ParseError{Method: e.cfg.method, Raw: text, Err: fmt.Errorf("decode into %T: %w", out, err)}
	}
	return out, nil
}
