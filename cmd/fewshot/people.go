// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/go-a2a/fewshot/example"
	"github.com/go-a2a/fewshot/schema"
)

// Person is information about a person.
type Person struct {
	Name           *string  `json:"name,omitempty" jsonschema:"the name of the person"`
	HairColor      *string  `json:"hair_color,omitempty" jsonschema:"the color of the person's hair if known"`
	HeightInMeters *float64 `json:"height_in_meters,omitempty" jsonschema:"height measured in meters"`
}

// Data is the built-in extraction target.
type Data struct {
	People []Person `json:"people" jsonschema:"every person mentioned in the text"`
}

const dataDescription = "Extracted data about people."

//go:embed examples.yaml
var builtinExamplesYAML []byte

var builtinExamples = sync.OnceValues(func() ([]*example.Example, error) {
	return example.Load(bytes.NewReader(builtinExamplesYAML), example.FormatYAML)
})

var dataSchema = sync.OnceValues(func() (*schema.Schema, error) {
	return schema.For[Data](dataDescription)
})
