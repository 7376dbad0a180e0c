// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/genai"

	"github.com/go-a2a/fewshot/schema"
)

type Person struct {
	Name           *string `json:"name" jsonschema:"The name of the person"`
	HairColor      *string `json:"hair_color" jsonschema:"The color of the person's hair if known"`
	HeightInMeters *string `json:"height_in_meters" jsonschema:"Height measured in meters"`
}

type Data struct {
	People []Person `json:"people" jsonschema:"Extracted data about people"`
}

func ptr(s string) *string { return &s }

func TestFor(t *testing.T) {
	s, err := schema.For[Data]("Extracted data about people.")
	if err != nil {
		t.Fatalf("For[Data]: %v", err)
	}
	if s.Name != "Data" {
		t.Errorf("Name = %q, want %q", s.Name, "Data")
	}
	if s.Description != "Extracted data about people." {
		t.Errorf("Description = %q", s.Description)
	}
	if s.JSON.Type != "object" {
		t.Errorf("root type = %q, want object", s.JSON.Type)
	}

	people := s.JSON.Properties["people"]
	if people == nil {
		t.Fatal("missing people property")
	}
	if people.Description != "Extracted data about people" {
		t.Errorf("people description = %q", people.Description)
	}

	if _, err := schema.For[*Data](""); err != nil {
		t.Errorf("For[*Data]: %v", err)
	}
	if _, err := schema.For[struct{ A int }](""); err == nil {
		t.Error("For on an unnamed type: want error")
	}
}

func TestValidate(t *testing.T) {
	s, err := schema.For[Data]("")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		instance any
		wantErr  bool
	}{
		{
			name: "decoded map",
			instance: map[string]any{
				"people": []any{
					map[string]any{"name": "Fiona", "hair_color": nil, "height_in_meters": nil},
				},
			},
		},
		{
			name:     "go value",
			instance: Data{People: []Person{{Name: ptr("Fiona")}}},
		},
		{
			name:     "empty people",
			instance: map[string]any{"people": []any{}},
		},
		{
			name:     "missing required property",
			instance: map[string]any{},
			wantErr:  true,
		},
		{
			name: "wrong property type",
			instance: map[string]any{
				"people": []any{
					map[string]any{"name": 42, "hair_color": nil, "height_in_meters": nil},
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(tt.instance)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var verr *schema.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %T is not a *schema.ValidationError", err)
			}
			if verr.Schema != "Data" {
				t.Errorf("ValidationError.Schema = %q, want Data", verr.Schema)
			}
		})
	}
}

func TestNew(t *testing.T) {
	object := &jsonschema.Schema{Type: "object", Description: "from schema"}

	tests := []struct {
		name    string
		tool    string
		js      *jsonschema.Schema
		wantErr string
	}{
		{name: "valid", tool: "extract_people", js: object},
		{name: "empty name", tool: "", js: object, wantErr: "invalid schema name"},
		{name: "name with space", tool: "extract people", js: object, wantErr: "invalid schema name"},
		{name: "nil schema", tool: "x", js: nil, wantErr: "nil JSON schema"},
		{name: "non-object root", tool: "x", js: &jsonschema.Schema{Type: "array"}, wantErr: "root type must be object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := schema.New(tt.tool, "", tt.js)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("New() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if s.Description != "from schema" {
				t.Errorf("Description = %q, want fallback to schema description", s.Description)
			}
		})
	}
}

func TestFromJSON(t *testing.T) {
	doc := []byte(`{
		"type": "object",
		"description": "A recipe",
		"properties": {
			"title": {"type": "string"},
			"servings": {"type": "integer", "minimum": 1}
		},
		"required": ["title"]
	}`)

	s, err := schema.FromJSON("recipe", "", doc)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if s.Description != "A recipe" {
		t.Errorf("Description = %q", s.Description)
	}
	if err := s.Validate(map[string]any{"title": "Soup", "servings": 4}); err != nil {
		t.Errorf("Validate(valid) = %v", err)
	}
	if err := s.Validate(map[string]any{"servings": 0}); err == nil {
		t.Error("Validate(invalid) = nil, want error")
	}

	if _, err := schema.FromJSON("recipe", "", []byte(`{`)); err == nil {
		t.Error("FromJSON(truncated) = nil error")
	}
}

func TestSchema_Gemini(t *testing.T) {
	s, err := schema.For[Data]("")
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Gemini()
	if err != nil {
		t.Fatalf("Gemini: %v", err)
	}

	nullableString := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Nullable: genai.Ptr(true), Description: desc}
	}
	want := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"people": {
				Type:        genai.TypeArray,
				Nullable:    genai.Ptr(true),
				Description: "Extracted data about people",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":             nullableString("The name of the person"),
						"hair_color":       nullableString("The color of the person's hair if known"),
						"height_in_meters": nullableString("Height measured in meters"),
					},
					PropertyOrdering: []string{"hair_color", "height_in_meters", "name"},
					Required:         []string{"name", "hair_color", "height_in_meters"},
				},
			},
		},
		PropertyOrdering: []string{"people"},
		Required:         []string{"people"},
	}

	opts := cmp.Options{
		cmpopts.SortSlices(func(a, b string) bool { return a < b }),
		cmpopts.IgnoreFields(genai.Schema{}, "Required"),
	}
	if diff := cmp.Diff(want, got, opts); diff != "" {
		t.Errorf("Gemini() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want.Properties["people"].Items.Required, got.Properties["people"].Items.Required, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("Person required mismatch (-want +got):\n%s", diff)
	}
}

func TestToGeminiSchema(t *testing.T) {
	tests := []struct {
		name string
		in   *jsonschema.Schema
		want *genai.Schema
	}{
		{
			name: "nil",
			in:   nil,
			want: nil,
		},
		{
			name: "anyOf with null collapses",
			in: &jsonschema.Schema{
				Description: "optional count",
				AnyOf:       []*jsonschema.Schema{{Type: "integer"}, {Type: "null"}},
			},
			want: &genai.Schema{Type: genai.TypeInteger, Nullable: genai.Ptr(true), Description: "optional count"},
		},
		{
			name: "unsupported format dropped",
			in:   &jsonschema.Schema{Type: "string", Format: "email"},
			want: &genai.Schema{Type: genai.TypeString},
		},
		{
			name: "supported format kept",
			in:   &jsonschema.Schema{Type: "integer", Format: "int64"},
			want: &genai.Schema{Type: genai.TypeInteger, Format: "int64"},
		},
		{
			name: "string enum",
			in:   &jsonschema.Schema{Type: "string", Enum: []any{"red", "blond", 3}},
			want: &genai.Schema{Type: genai.TypeString, Format: "enum", Enum: []string{"red", "blond"}},
		},
		{
			name: "array without items",
			in:   &jsonschema.Schema{Type: "array"},
			want: &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		},
		{
			name: "definitions ref inlined",
			in: &jsonschema.Schema{
				Type:        "object",
				Properties:  map[string]*jsonschema.Schema{"tag": {Ref: "#/definitions/Tag"}},
				Definitions: map[string]*jsonschema.Schema{"Tag": {Type: "string", Description: "a label"}},
			},
			want: &genai.Schema{
				Type:             genai.TypeObject,
				Properties:       map[string]*genai.Schema{"tag": {Type: genai.TypeString, Description: "a label"}},
				PropertyOrdering: []string{"tag"},
			},
		},
		{
			name: "untyped defaults to object",
			in:   &jsonschema.Schema{},
			want: &genai.Schema{Type: genai.TypeObject},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schema.ToGeminiSchema(tt.in)
			if err != nil {
				t.Fatalf("ToGeminiSchema: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToGeminiSchema mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToGeminiSchema_RequiredMustExist(t *testing.T) {
	_, err := schema.ToGeminiSchema(&jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{"a": {Type: "string"}},
		Required:   []string{"b"},
	})
	if err == nil || !strings.Contains(err.Error(), `"b"`) {
		t.Fatalf("ToGeminiSchema error = %v, want missing required field", err)
	}
}

func TestSchema_GeminiResolvesRefs(t *testing.T) {
	s, err := schema.FromJSON("Team", "", []byte(`{
  "type": "object",
  "properties": {
    "lead": {"$ref": "#/$defs/Member", "description": "who leads the team"},
    "members": {"type": "array", "items": {"$ref": "#/$defs/Member"}}
  },
  "required": ["lead"],
  "$defs": {
    "Member": {
      "type": "object",
      "properties": {"name": {"type": "string"}, "role": {"$ref": "#/$defs/Role"}},
      "required": ["name"]
    },
    "Role": {"type": "string", "enum": ["dev", "ops"]}
  }
}`))
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}

	got, err := s.Gemini()
	if err != nil {
		t.Fatalf("Gemini: %v", err)
	}

	member := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {Type: genai.TypeString},
			"role": {Type: genai.TypeString, Format: "enum", Enum: []string{"dev", "ops"}},
		},
		PropertyOrdering: []string{"name", "role"},
		Required:         []string{"name"},
	}
	lead := *member
	lead.Description = "who leads the team"
	want := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"lead": &lead,
			"members": {Type: genai.TypeArray, Items: member},
		},
		PropertyOrdering: []string{"lead", "members"},
		Required:         []string{"lead"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Gemini mismatch (-want +got):\n%s", diff)
	}
}

func TestToGeminiSchema_RefErrors(t *testing.T) {
	tests := map[string]struct {
		in      *jsonschema.Schema
		wantErr string
	}{
		"recursive": {
			in: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{"root": {Ref: "#/$defs/Node"}},
				Defs: map[string]*jsonschema.Schema{
					"Node": {
						Type:       "object",
						Properties: map[string]*jsonschema.Schema{"child": {Ref: "#/$defs/Node"}},
					},
				},
			},
			wantErr: "recursive $ref",
		},
		"missing definition": {
			in: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{"p": {Ref: "#/$defs/Missing"}},
			},
			wantErr: "unresolved $ref",
		},
		"remote ref": {
			in: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{"p": {Ref: "https://example.com/p.json"}},
			},
			wantErr: "unsupported $ref",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := schema.ToGeminiSchema(tt.in)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("ToGeminiSchema error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"camelCase":                     "camel_case",
		"UpperCamelCase":                "upper_camel_case",
		"space separated":               "space_separated",
		"REST API":                      "rest_api",
		"APIKey":                        "api_key",
		"HTTPSConnection":               "https_connection",
		"":                              "",
		"word":                          "word",
		"already_snake_case":            "already_snake_case",
		"version2Beta":                  "version2_beta",
		"field-name.with@special#chars": "field_name_with_special_chars",
		"field__with___underscores":     "field_with_underscores",
		"_field_name_":                  "field_name",
		"heightInMeters":                "height_in_meters",
	}
	for in, want := range tests {
		if got := schema.ToSnakeCase(in); got != want {
			t.Errorf("ToSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
