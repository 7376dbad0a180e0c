// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/genai"
)

// Gemini converts the schema to the OpenAPI subset Gemini accepts as function parameters
// and response schemas.
func (s *Schema) Gemini() (*genai.Schema, error) {
	gs, err := ToGeminiSchema(s.JSON)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", s.Name, err)
	}
	return gs, nil
}

// ToGeminiSchema converts a JSON schema to a Gemini Schema object.
//
// The conversion:
//  1. resolves the schema type, turning ["T", "null"] type lists and anyOf [T, null]
//     into T with Nullable set
//  2. drops formats Gemini rejects (only int32/int64 for numbers, date-time/enum for strings survive)
//  3. inlines local $ref pointers into $defs or definitions of the root schema
//  4. recurses into properties, items and anyOf branches
//
// Property ordering follows the sorted property names so requests are deterministic.
// Recursive references cannot be expressed in the Gemini subset and are an error.
func ToGeminiSchema(js *jsonschema.Schema) (*genai.Schema, error) {
	c := &geminiConverter{root: js}
	return c.convert(js)
}

// maxRefDepth bounds how many $ref hops are inlined along one path.
const maxRefDepth = 32

type geminiConverter struct {
	root *jsonschema.Schema
	refs []string // $refs being inlined on the current path
}

// resolve returns the definition a local $ref points to.
func (c *geminiConverter) resolve(ref string) (*jsonschema.Schema, error) {
	var (
		name string
		defs map[string]*jsonschema.Schema
	)
	switch {
	case strings.HasPrefix(ref, "#/$defs/"):
		name, defs = strings.TrimPrefix(ref, "#/$defs/"), c.root.Defs
	case strings.HasPrefix(ref, "#/definitions/"):
		name, defs = strings.TrimPrefix(ref, "#/definitions/"), c.root.Definitions
	default:
		return nil, fmt.Errorf("unsupported $ref %q: only #/$defs/... and #/definitions/... are resolved", ref)
	}
	def, ok := defs[name]
	if !ok || def == nil {
		return nil, fmt.Errorf("unresolved $ref %q", ref)
	}
	return def, nil
}

func (c *geminiConverter) convertRef(js *jsonschema.Schema) (*genai.Schema, error) {
	if slices.Contains(c.refs, js.Ref) {
		return nil, fmt.Errorf("recursive $ref %q is not supported", js.Ref)
	}
	if len(c.refs) >= maxRefDepth {
		return nil, fmt.Errorf("$ref %q nested deeper than %d", js.Ref, maxRefDepth)
	}
	def, err := c.resolve(js.Ref)
	if err != nil {
		return nil, err
	}

	c.refs = append(c.refs, js.Ref)
	gs, err := c.convert(def)
	c.refs = c.refs[:len(c.refs)-1]
	if err != nil {
		return nil, err
	}

	// annotations next to the $ref describe this use of the definition
	if js.Description != "" {
		gs.Description = js.Description
	}
	if js.Title != "" {
		gs.Title = js.Title
	}
	return gs, nil
}

func (c *geminiConverter) convert(js *jsonschema.Schema) (*genai.Schema, error) {
	if js == nil {
		return nil, nil
	}
	if js.Ref != "" {
		return c.convertRef(js)
	}

	if collapsed, ok := collapseNullableAnyOf(js); ok {
		gs, err := c.convert(collapsed)
		if err != nil {
			return nil, err
		}
		gs.Nullable = genai.Ptr(true)
		if gs.Description == "" {
			gs.Description = js.Description
		}
		return gs, nil
	}

	typ, nullable := schemaType(js)
	result := &genai.Schema{
		Type:        typ,
		Title:       js.Title,
		Description: js.Description,
		Pattern:     js.Pattern,
		Minimum:     js.Minimum,
		Maximum:     js.Maximum,
	}
	if nullable {
		result.Nullable = genai.Ptr(true)
	}
	if validFormat(typ, js.Format) {
		result.Format = js.Format
	}

	for _, v := range js.Enum {
		if s, ok := v.(string); ok {
			result.Enum = append(result.Enum, s)
		}
	}
	if len(result.Enum) > 0 && typ == genai.TypeString {
		result.Format = "enum"
	}

	result.MinLength = intPtr(js.MinLength)
	result.MaxLength = intPtr(js.MaxLength)
	result.MinItems = intPtr(js.MinItems)
	result.MaxItems = intPtr(js.MaxItems)
	result.MinProperties = intPtr(js.MinProperties)
	result.MaxProperties = intPtr(js.MaxProperties)

	if js.Items != nil {
		items, err := c.convert(js.Items)
		if err != nil {
			return nil, fmt.Errorf("convert items schema: %w", err)
		}
		result.Items = items
	} else if typ == genai.TypeArray {
		// Gemini rejects arrays without an items schema
		result.Items = &genai.Schema{Type: genai.TypeString}
	}

	if len(js.Properties) > 0 {
		result.Properties = make(map[string]*genai.Schema, len(js.Properties))
		for _, name := range slices.Sorted(maps.Keys(js.Properties)) {
			prop, err := c.convert(js.Properties[name])
			if err != nil {
				return nil, fmt.Errorf("convert property %s schema: %w", name, err)
			}
			result.Properties[name] = prop
			result.PropertyOrdering = append(result.PropertyOrdering, name)
		}
	}
	if len(js.Required) > 0 {
		result.Required = slices.Clone(js.Required)
	}

	for i, branch := range js.AnyOf {
		converted, err := c.convert(branch)
		if err != nil {
			return nil, fmt.Errorf("convert anyOf schema[%d]: %w", i, err)
		}
		result.AnyOf = append(result.AnyOf, converted)
	}
	if err := ValidateGeminiSchema(result); err != nil {
		return nil, err
	}
	return result, nil
}

// ValidateGeminiSchema validates that a schema is compatible with Gemini's requirements.
func ValidateGeminiSchema(gs *genai.Schema) error {
	if gs == nil {
		return nil
	}

	switch gs.Type {
	case genai.TypeArray:
		if gs.Items == nil {
			return fmt.Errorf("array type requires items schema")
		}
		if err := ValidateGeminiSchema(gs.Items); err != nil {
			return fmt.Errorf("invalid items schema: %w", err)
		}

	case genai.TypeObject:
		for name, prop := range gs.Properties {
			if err := ValidateGeminiSchema(prop); err != nil {
				return fmt.Errorf("invalid property %s schema: %w", name, err)
			}
		}
		for _, req := range gs.Required {
			if _, ok := gs.Properties[req]; !ok {
				return fmt.Errorf("required field %q not found in properties", req)
			}
		}
	}

	return nil
}

// schemaType maps the JSON schema type (or type list) to a Gemini type and reports whether
// "null" was part of it.
func schemaType(js *jsonschema.Schema) (genai.Type, bool) {
	typ := js.Type
	nullable := false
	for _, t := range js.Types {
		switch {
		case t == "null":
			nullable = true
		case typ == "":
			typ = t
		}
	}
	if typ == "null" {
		typ, nullable = "", true
	}

	switch typ {
	case "string":
		return genai.TypeString, nullable
	case "integer":
		return genai.TypeInteger, nullable
	case "number":
		return genai.TypeNumber, nullable
	case "boolean":
		return genai.TypeBoolean, nullable
	case "array":
		return genai.TypeArray, nullable
	case "object":
		return genai.TypeObject, nullable
	}

	switch {
	case js.Items != nil:
		return genai.TypeArray, nullable
	case len(js.AnyOf) > 0:
		return "", nullable
	default:
		// untyped values ("any" fields) are modelled as free-form objects
		return genai.TypeObject, nullable
	}
}

// collapseNullableAnyOf turns anyOf [T, {"type": "null"}] into T.
func collapseNullableAnyOf(js *jsonschema.Schema) (*jsonschema.Schema, bool) {
	if len(js.AnyOf) != 2 {
		return nil, false
	}
	for i, branch := range js.AnyOf {
		if branch != nil && branch.Type == "null" {
			return js.AnyOf[1-i], true
		}
	}
	return nil, false
}

func validFormat(typ genai.Type, format string) bool {
	switch typ {
	case genai.TypeInteger, genai.TypeNumber:
		return format == "int32" || format == "int64"
	case genai.TypeString:
		return format == "date-time" || format == "enum"
	}
	return false
}

func intPtr(v *int) *int64 {
	if v == nil {
		return nil
	}
	return genai.Ptr(int64(*v))
}
