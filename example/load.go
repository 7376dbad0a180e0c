// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/go-json-experiment/json"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of an example document.
type Format string

const (
	// FormatYAML is a YAML example document.
	FormatYAML Format = "yaml"

	// FormatJSON is a JSON example document.
	FormatJSON Format = "json"
)

// FormatOf guesses the format of an example document from its file name.
func FormatOf(name string) (Format, error) {
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown example file extension %q (want .yaml, .yml or .json)", ext)
	}
}

// document is the on-disk layout of an example file:
//
//	examples:
//	  - input: Fiona traveled far from France to Spain.
//	    tool_calls:
//	      - people: [{name: Fiona, hair_color: null, height_in_meters: null}]
type document struct {
	Examples []*Example `json:"examples" yaml:"examples"`
}

// Load decodes an example document from r.
func Load(r io.Reader, format Format) ([]*Example, error) {
	var doc document

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode YAML examples: %w", err)
		}
	case FormatJSON:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read JSON examples: %w", err)
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode JSON examples: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown example format %q", format)
	}

	for i, ex := range doc.Examples {
		if err := ex.Validate(); err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
	}
	return doc.Examples, nil
}

// FileProvider serves the examples of a local YAML or JSON file.
//
// The file is read on every call, so edits are picked up without a restart.
type FileProvider struct {
	path   string
	format Format
}

var _ Provider = (*FileProvider)(nil)

// NewFileProvider returns a [FileProvider] for path. The format is taken from the extension.
func NewFileProvider(path string) (*FileProvider, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	return &FileProvider{path: path, format: format}, nil
}

// GetExamples implements [Provider].
func (p *FileProvider) GetExamples(context.Context, string) ([]*Example, error) {
	f, err := os.Open(p.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	examples, err := Load(f, p.format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.path, err)
	}
	return examples, nil
}
