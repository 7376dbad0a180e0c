// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"google.golang.org/genai"

	"github.com/go-a2a/fewshot/internal/pool"
)

// Kind is the kind of a template [Message].
type Kind string

const (
	// KindSystem is text appended to the system instruction.
	KindSystem Kind = "system"

	// KindHuman is a user turn.
	KindHuman Kind = "human"

	// KindAI is a model turn.
	KindAI Kind = "ai"

	// KindPlaceholder is replaced by a list of contents at format time.
	KindPlaceholder Kind = "placeholder"
)

var varNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Message is a single entry of a [Template].
type Message struct {
	Kind Kind

	// Text is the message text with {name} variables. Unused for placeholders.
	Text string

	// Name is the placeholder name. Unused for text messages.
	Name string

	// Optional placeholders may be left without a value.
	Optional bool
}

// System returns a system message.
func System(text string) Message { return Message{Kind: KindSystem, Text: text} }

// Human returns a user message.
func Human(text string) Message { return Message{Kind: KindHuman, Text: text} }

// AI returns a model message.
func AI(text string) Message { return Message{Kind: KindAI, Text: text} }

// Placeholder returns a required message placeholder.
func Placeholder(name string) Message { return Message{Kind: KindPlaceholder, Name: name} }

// OptionalPlaceholder returns a message placeholder that may be omitted at format time.
func OptionalPlaceholder(name string) Message {
	return Message{Kind: KindPlaceholder, Name: name, Optional: true}
}

// segment is a literal run of text or a variable reference.
type segment struct {
	literal  string
	variable string
}

type parsedMessage struct {
	Message
	segments []segment
}

// Template is an ordered list of chat messages.
//
// Message text uses Python-style {variable} substitution. Literal braces are written
// {{ and }}.
type Template struct {
	messages []parsedMessage
}

// New parses messages into a [Template].
func New(messages ...Message) (*Template, error) {
	t := &Template{messages: make([]parsedMessage, 0, len(messages))}
	seen := make(map[string]bool)

	for i, m := range messages {
		pm := parsedMessage{Message: m}
		switch m.Kind {
		case KindSystem, KindHuman, KindAI:
			segs, err := parse(m.Text)
			if err != nil {
				return nil, fmt.Errorf("message %d: %w", i, err)
			}
			pm.segments = segs
		case KindPlaceholder:
			if !varNamePattern.MatchString(m.Name) {
				return nil, fmt.Errorf("message %d: %w: invalid placeholder name %q", i, ErrInvalidTemplate, m.Name)
			}
			if seen[m.Name] {
				return nil, fmt.Errorf("message %d: %w: duplicate placeholder %q", i, ErrInvalidTemplate, m.Name)
			}
			seen[m.Name] = true
		default:
			return nil, fmt.Errorf("message %d: %w: unknown message kind %q", i, ErrInvalidTemplate, m.Kind)
		}
		t.messages = append(t.messages, pm)
	}

	return t, nil
}

// MustNew is like [New] but panics on error. It is meant for package-level templates.
func MustNew(messages ...Message) *Template {
	t, err := New(messages...)
	if err != nil {
		panic(err)
	}
	return t
}

// Messages returns a copy of the template messages.
func (t *Template) Messages() []Message {
	out := make([]Message, len(t.messages))
	for i, m := range t.messages {
		out[i] = m.Message
	}
	return out
}

// InputVariables returns the sorted names of all variables referenced by the template.
func (t *Template) InputVariables() []string {
	var names []string
	for _, m := range t.messages {
		for _, s := range m.segments {
			if s.variable != "" && !slices.Contains(names, s.variable) {
				names = append(names, s.variable)
			}
		}
	}
	slices.Sort(names)
	return names
}

// Placeholders returns the placeholder names in template order.
func (t *Template) Placeholders() []string {
	var names []string
	for _, m := range t.messages {
		if m.Kind == KindPlaceholder {
			names = append(names, m.Name)
		}
	}
	return names
}

// Prompt is a formatted template, ready to be sent to a model.
type Prompt struct {
	// System is the concatenation of all system messages, separated by blank lines.
	System string

	// Contents is the conversation in template order.
	Contents []*genai.Content
}

// Format substitutes vars into the message texts and expands placeholders.
//
// Every referenced variable must be present in vars; extra entries are ignored. A
// required placeholder must have an entry in placeholders, though the entry may be an
// empty list.
func (t *Template) Format(vars map[string]any, placeholders map[string][]*genai.Content) (*Prompt, error) {
	var missing []string
	for _, name := range t.InputVariables() {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingVariablesError{Variables: missing}
	}

	p := &Prompt{}
	var system []string

	for _, m := range t.messages {
		switch m.Kind {
		case KindPlaceholder:
			contents, ok := placeholders[m.Name]
			if !ok && !m.Optional {
				return nil, fmt.Errorf("%w: %q", ErrMissingPlaceholder, m.Name)
			}
			p.Contents = append(p.Contents, contents...)

		default:
			text, err := render(m.segments, vars)
			if err != nil {
				return nil, err
			}
			switch m.Kind {
			case KindSystem:
				system = append(system, text)
			case KindHuman:
				p.Contents = append(p.Contents, &genai.Content{Role: "user", Parts: []*genai.Part{{Text: text}}})
			case KindAI:
				p.Contents = append(p.Contents, &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}})
			}
		}
	}

	p.System = strings.Join(system, "\n\n")
	return p, nil
}

// FormatText substitutes vars into a single template string.
func FormatText(text string, vars map[string]any) (string, error) {
	segs, err := parse(text)
	if err != nil {
		return "", err
	}
	var missing []string
	for _, s := range segs {
		if s.variable == "" {
			continue
		}
		if _, ok := vars[s.variable]; !ok && !slices.Contains(missing, s.variable) {
			missing = append(missing, s.variable)
		}
	}
	if len(missing) > 0 {
		return "", &MissingVariablesError{Variables: missing}
	}
	return render(segs, vars)
}

func render(segs []segment, vars map[string]any) (string, error) {
	return pool.BuildString(func(sb *strings.Builder) error {
		for _, s := range segs {
			if s.variable == "" {
				sb.WriteString(s.literal)
				continue
			}
			fmt.Fprint(sb, vars[s.variable])
		}
		return nil
	})
}

// parse splits text into literal and variable segments.
func parse(text string) ([]segment, error) {
	var (
		segs []segment
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		switch c := text[i]; c {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return nil, &TemplateError{Text: text, Pos: i, Reason: "unmatched opening brace"}
			}
			name := text[i+1 : i+1+end]
			if name == "" {
				return nil, &TemplateError{Text: text, Pos: i, Reason: "empty variable name"}
			}
			if !varNamePattern.MatchString(name) {
				return nil, &TemplateError{Text: text, Pos: i, Reason: fmt.Sprintf("invalid variable name %q", name)}
			}
			flush()
			segs = append(segs, segment{variable: name})
			i += end + 1

		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, &TemplateError{Text: text, Pos: i, Reason: "unmatched closing brace"}

		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return segs, nil
}
