// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the structured values a model is asked to extract.
//
// A [Schema] wraps a JSON Schema (github.com/google/jsonschema-go) with the tool name the
// model calls. It is usually inferred from a Go type:
//
//	type Person struct {
//		Name           *string `json:"name" jsonschema:"The name of the person"`
//		HairColor      *string `json:"hair_color" jsonschema:"The color of the person's hair if known"`
//		HeightInMeters *string `json:"height_in_meters" jsonschema:"Height measured in meters"`
//	}
//
//	type Data struct {
//		People []Person `json:"people" jsonschema:"Extracted data about people"`
//	}
//
//	s, err := schema.For[Data]("Extracted data about people.")
//
// Pointer fields without omitempty become required-but-nullable properties, which is how
// the model is told to answer null for attributes it cannot find.
//
// The schema converts to the Gemini OpenAPI subset with [Schema.Gemini] and validates
// model output with [Schema.Validate].
package schema
