// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"github.com/MakeNowJust/heredoc/v2"
)

const (
	// ExamplesPlaceholder is the placeholder the extraction template expands to the
	// few-shot conversation.
	ExamplesPlaceholder = "examples"

	// TextVariable is the variable holding the text to extract from.
	TextVariable = "text"
)

// ExtractionSystemPrompt is the system text of [ExtractionTemplate].
var ExtractionSystemPrompt = heredoc.Doc(`
	You are an expert extraction algorithm.
	Only extract relevant information from the text.
	If you do not know the value of an attribute asked to extract,
	return null for the attribute's value.
`)

// ExtractionTemplate returns the default extraction prompt: the extraction system
// instruction, the optional "examples" placeholder and the "{text}" user turn.
func ExtractionTemplate() *Template {
	return MustNew(
		System(ExtractionSystemPrompt),
		OptionalPlaceholder(ExamplesPlaceholder),
		Human("{"+TextVariable+"}"),
	)
}
