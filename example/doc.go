// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package example provides few-shot example management for structured extraction.
//
// Models extract more reliably when they are shown what a correct extraction looks like.
// The most faithful way to show them is to replay, before the real input, conversations in
// which the model already called the extraction tool correctly.
//
// # Core Components
//
//   - Example: an input text and the tool calls expected for it
//   - ToMessages / ToConversation: replay examples as simulated tool-calling turns
//   - ConvertExamplesToText: render examples as a system instruction block
//   - Provider: interface for retrieving examples, with static, file, GCS and
//     Vertex AI Example Store implementations
//
// # Simulated Conversation
//
// An example
//
//	&example.Example{
//		Input:     "Fiona traveled far from France to Spain.",
//		ToolCalls: []any{Data{People: []Person{{Name: ptr("Fiona")}}}},
//	}
//
// becomes three turns:
//
//	[user]  Fiona traveled far from France to Spain.
//	[model] Data({"people":[{"name":"Fiona","hair_color":null,"height_in_meters":null}]})  id=call_…
//	[user]  Data → {"output":"You have correctly called this tool."}                     id=call_…
//
// Each function response carries the ID of the call it answers. A closing model turn is
// appended when AIResponse is set.
//
// # Example Files
//
// FileProvider and GCSProvider read YAML or JSON documents:
//
//	examples:
//	  - input: The ocean is vast and blue. It's more than 20,000 feet deep.
//	    tool_calls:
//	      - people: []
//	  - input: Fiona traveled far from France to Spain.
//	    tool_calls:
//	      - people:
//	          - name: Fiona
//	            hair_color: null
//	            height_in_meters: null
//
// # Text Rendering
//
// Requests that cannot carry tool calls (JSON mode) get the examples as text instead:
//
//	<EXAMPLES>
//	Begin few-shot
//	The following are examples of user queries and model responses using the available tools.
//
//	EXAMPLE 1:
//	Begin example
//	[user]
//	Fiona traveled far from France to Spain.
//
//	[model]
//	```tool_code
//	Data({"people":[{"hair_color":null,"height_in_meters":null,"name":"Fiona"}]})
//	```
//	```tool_outputs
//	You have correctly called this tool.
//	```
//	End example
//
//	End few-shot
//	<EXAMPLES>
//
// # Best Practices
//
//  1. Include a negative example: text with nothing to extract and an empty result.
//  2. Keep examples short; every example is sent with every request.
//  3. Prefer examples that cover attributes the model tends to get wrong.
package example
