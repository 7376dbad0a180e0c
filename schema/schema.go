// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/genai"
)

// namePattern is the set of tool names accepted by both Gemini and Claude.
var namePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]{0,63}$`)

// Schema describes the structured value a model is asked to extract.
//
// The same Schema is bound as the only tool of a function-calling request, used as the
// response schema of a JSON-mode request, and used to validate what the model returns.
type Schema struct {
	// Name is the tool name the model calls, e.g. "Data".
	Name string

	// Description tells the model what the tool captures.
	Description string

	// JSON is the JSON Schema of the tool arguments. Its root is always an object.
	JSON *jsonschema.Schema

	resolved *jsonschema.Resolved
}

// New returns a [Schema] named name for the JSON Schema js.
//
// If description is empty, the description of js is used.
func New(name, description string, js *jsonschema.Schema) (*Schema, error) {
	if !namePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid schema name %q: must match %s", name, namePattern)
	}
	if js == nil {
		return nil, errors.New("nil JSON schema")
	}
	if js.Type != "object" && !slices.Contains(js.Types, "object") {
		return nil, fmt.Errorf("schema %s: root type must be object, got %q", name, rootType(js))
	}

	resolved, err := js.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema %s: %w", name, err)
	}

	if description == "" {
		description = js.Description
	}

	return &Schema{
		Name:        name,
		Description: description,
		JSON:        js,
		resolved:    resolved,
	}, nil
}

// For infers the [Schema] of the Go type T.
//
// The schema name is the name of T (or of the type it points to). Field descriptions are
// read from `jsonschema:"..."` struct tags, field names from `json:"..."` tags.
func For[T any](description string) (*Schema, error) {
	typ := reflect.TypeFor[T]()
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Name() == "" {
		return nil, fmt.Errorf("cannot infer schema name for unnamed type %s", typ)
	}

	js, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("infer schema for %s: %w", typ, err)
	}

	// pointer roots come back as ["null", "object"]; the tool arguments themselves are never null
	if js.Type == "" && slices.Contains(js.Types, "object") {
		js.Type, js.Types = "object", nil
	}

	return New(typ.Name(), description, js)
}

// FromJSON parses a JSON Schema document and returns it as a [Schema] named name.
func FromJSON(name, description string, data []byte) (*Schema, error) {
	var js jsonschema.Schema
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("parse JSON schema %s: %w", name, err)
	}
	return New(name, description, &js)
}

// Validate checks instance against the schema.
//
// instance may be any value that marshals to JSON; it is normalized to its JSON form first,
// so Go structs, YAML-decoded maps and JSON-decoded maps validate the same way.
// The returned error, if any, is a [*ValidationError].
func (s *Schema) Validate(instance any) error {
	normalized, err := normalize(instance)
	if err != nil {
		return &ValidationError{Schema: s.Name, Err: err}
	}
	if err := s.resolved.Validate(normalized); err != nil {
		return &ValidationError{Schema: s.Name, Err: err}
	}
	return nil
}

// JSONString returns the indented JSON Schema document.
func (s *Schema) JSONString() (string, error) {
	data, err := json.Marshal(s.JSON, jsontext.WithIndent("  "))
	if err != nil {
		return "", fmt.Errorf("marshal schema %s: %w", s.Name, err)
	}
	return string(data), nil
}

// FunctionDeclaration returns the schema as a tool declaration for a function-calling request.
func (s *Schema) FunctionDeclaration() (*genai.FunctionDeclaration, error) {
	params, err := s.Gemini()
	if err != nil {
		return nil, err
	}
	return &genai.FunctionDeclaration{
		Name:        s.Name,
		Description: s.Description,
		Parameters:  params,
	}, nil
}

// normalize round-trips v through JSON so it only holds map[string]any, []any, string,
// float64, bool and nil.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func rootType(js *jsonschema.Schema) string {
	if js.Type != "" {
		return js.Type
	}
	if len(js.Types) > 0 {
		return fmt.Sprint(js.Types)
	}
	return "unspecified"
}
