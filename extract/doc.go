// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package extract extracts structured values from text with a language model.
//
// An [Extractor] combines a [schema.Schema], a prompt template and optional few-shot
// examples into a model request, and turns the response into a Go value:
//
//	type Person struct {
//		Name           *string `json:"name,omitempty" jsonschema:"The name of the person"`
//		HairColor      *string `json:"hair_color,omitempty" jsonschema:"The color of the person's hair if known"`
//		HeightInMeters *string `json:"height_in_meters,omitempty" jsonschema:"Height measured in meters"`
//	}
//
//	type Data struct {
//		People []Person `json:"people" jsonschema:"Extracted data about people"`
//	}
//
//	s, err := schema.For[Data]("Extracted data about people.")
//	...
//	e, err := extract.New[Data](m, s, extract.WithExamples(examples...))
//	...
//	data, err := e.Invoke(ctx, "Alan Smith is 6 feet tall and has blond hair.")
//
// # Methods
//
// With [FunctionCalling] (the default) the schema is bound as the only tool and the
// model is forced to call it. Examples are replayed before the input as a conversation
// in which the model already called the tool correctly, see [example.ToMessages].
//
// With [JSONMode] the schema is sent as the response schema and described in the
// system instruction, and examples are rendered as text. Use it with models or
// deployments without tool calling.
//
// # Errors
//
// Output the extractor cannot use is reported as a [*ParseError], wrapping
// [ErrNoToolCall], a [*schema.ValidationError] or a decoding error. Such output is
// retried up to [WithMaxRetries] times; model errors are returned as is.
package extract
