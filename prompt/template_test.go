// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    []segment
		wantErr string
	}{
		{
			name: "plain text",
			text: "hello",
			want: []segment{{literal: "hello"}},
		},
		{
			name: "variables",
			text: "Hi {name}, you are {age_1}.",
			want: []segment{
				{literal: "Hi "},
				{variable: "name"},
				{literal: ", you are "},
				{variable: "age_1"},
				{literal: "."},
			},
		},
		{
			name: "escaped braces",
			text: `{{"people": []}} for {text}`,
			want: []segment{
				{literal: `{"people": []} for `},
				{variable: "text"},
			},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{name: "unmatched open", text: "a {b", wantErr: "unmatched opening brace"},
		{name: "unmatched close", text: "a } b", wantErr: "unmatched closing brace"},
		{name: "empty name", text: "a {} b", wantErr: "empty variable name"},
		{name: "invalid name", text: "a {1x} b", wantErr: `invalid variable name "1x"`},
		{name: "json object", text: `{"a": 1}`, wantErr: "invalid variable name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(tt.text)
			if tt.wantErr != "" {
				var terr *TemplateError
				if !errors.As(err, &terr) {
					t.Fatalf("parse(%q) error = %v, want *TemplateError", tt.text, err)
				}
				if !errors.Is(err, ErrInvalidTemplate) {
					t.Errorf("parse(%q) error does not wrap ErrInvalidTemplate", tt.text)
				}
				if !strings.Contains(terr.Reason, tt.wantErr) {
					t.Errorf("parse(%q) reason = %q, want containing %q", tt.text, terr.Reason, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse(%q): %v", tt.text, err)
			}
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(segment{})); diff != "" {
				t.Errorf("parse(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestTemplate_Format(t *testing.T) {
	history := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: "example input"}}},
		{Role: "model", Parts: []*genai.Part{{FunctionCall: &genai.FunctionCall{ID: "call_1", Name: "Data"}}}},
	}

	tmpl, err := New(
		System("You extract {what}."),
		Placeholder("examples"),
		AI("Ready."),
		System("Answer with {{json}}."),
		Human("{text}"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if diff := cmp.Diff([]string{"text", "what"}, tmpl.InputVariables()); diff != "" {
		t.Errorf("InputVariables mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"examples"}, tmpl.Placeholders()); diff != "" {
		t.Errorf("Placeholders mismatch (-want +got):\n%s", diff)
	}

	got, err := tmpl.Format(
		map[string]any{"what": "people", "text": "Alan Smith is 6 feet tall.", "unused": 1},
		map[string][]*genai.Content{"examples": history},
	)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	want := &Prompt{
		System: "You extract people.\n\nAnswer with {json}.",
		Contents: []*genai.Content{
			history[0],
			history[1],
			{Role: "model", Parts: []*genai.Part{{Text: "Ready."}}},
			{Role: "user", Parts: []*genai.Part{{Text: "Alan Smith is 6 feet tall."}}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Format mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplate_FormatErrors(t *testing.T) {
	tmpl := MustNew(System("{a} and {b}"), Placeholder("examples"), OptionalPlaceholder("extra"))

	_, err := tmpl.Format(map[string]any{"a": 1}, map[string][]*genai.Content{"examples": nil})
	var missing *MissingVariablesError
	if !errors.As(err, &missing) {
		t.Fatalf("Format error = %v, want *MissingVariablesError", err)
	}
	if diff := cmp.Diff([]string{"b"}, missing.Variables); diff != "" {
		t.Errorf("missing variables mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(err, ErrMissingVariables) {
		t.Error("error does not wrap ErrMissingVariables")
	}

	vars := map[string]any{"a": 1, "b": 2}
	if _, err := tmpl.Format(vars, nil); !errors.Is(err, ErrMissingPlaceholder) {
		t.Errorf("Format without required placeholder error = %v, want ErrMissingPlaceholder", err)
	}

	// an empty list satisfies a required placeholder and contributes nothing
	p, err := tmpl.Format(vars, map[string][]*genai.Content{"examples": {}})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(p.Contents) != 0 {
		t.Errorf("Contents = %v, want empty", p.Contents)
	}
	if p.System != "1 and 2" {
		t.Errorf("System = %q, want %q", p.System, "1 and 2")
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		messages []Message
	}{
		{"bad text", []Message{Human("{")}},
		{"bad placeholder name", []Message{Placeholder("my examples")}},
		{"duplicate placeholder", []Message{Placeholder("a"), OptionalPlaceholder("a")}},
		{"unknown kind", []Message{{Kind: "tool", Text: "x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.messages...); !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("New error = %v, want ErrInvalidTemplate", err)
			}
		})
	}
}

func TestFormatText(t *testing.T) {
	got, err := FormatText("{greeting}, {{name}}! {greeting}", map[string]any{"greeting": "Hello"})
	if err != nil {
		t.Fatalf("FormatText: %v", err)
	}
	if want := "Hello, {name}! Hello"; got != want {
		t.Errorf("FormatText = %q, want %q", got, want)
	}

	if _, err := FormatText("{x}{y}{x}", nil); err == nil {
		t.Error("FormatText with missing variables: want error")
	} else if diff := cmp.Diff([]string{"x", "y"}, err.(*MissingVariablesError).Variables); diff != "" {
		t.Errorf("missing variables mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractionTemplate(t *testing.T) {
	tmpl := ExtractionTemplate()

	if diff := cmp.Diff([]string{TextVariable}, tmpl.InputVariables()); diff != "" {
		t.Errorf("InputVariables mismatch (-want +got):\n%s", diff)
	}

	// examples are optional
	p, err := tmpl.Format(map[string]any{TextVariable: "The ocean is vast and blue."}, nil)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if p.System != ExtractionSystemPrompt {
		t.Errorf("System = %q, want %q", p.System, ExtractionSystemPrompt)
	}
	want := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: "The ocean is vast and blue."}}}}
	if diff := cmp.Diff(want, p.Contents); diff != "" {
		t.Errorf("Contents mismatch (-want +got):\n%s", diff)
	}
}
