// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/go-a2a/fewshot/internal/pool"
)

// Constant parts of the example string.
const (
	ExamplesIntro          = "<EXAMPLES>\nBegin few-shot\nThe following are examples of user queries and model responses using the available tools.\n\n"
	ExamplesEnd            = "End few-shot\n<EXAMPLES>"
	ExampleStart           = "EXAMPLE %d:\nBegin example\n"
	ExampleEnd             = "End example\n\n"
	UserPrefix             = "[user]\n"
	ModelPrefix            = "[model]\n"
	FunctionCallPrefix     = "```tool_code\n"
	FunctionCallSuffix     = "\n```\n"
	FunctionResponsePrefix = "```tool_outputs\n"
	FunctionResponseSuffix = "\n```\n"
)

// ConvertExamplesToText converts a list of examples to a string that can be used in a system instruction.
//
// This is the fallback for requests that cannot replay examples as tool calls, such as
// JSON-mode extraction. Tool calls are rendered as toolName({...json...}).
func ConvertExamplesToText(examples []*Example, toolName string) (string, error) {
	if len(examples) == 0 {
		return "", nil
	}

	return pool.BuildString(func(sb *strings.Builder) error {
		sb.WriteString(ExamplesIntro)

		for i, ex := range examples {
			if err := ex.Validate(); err != nil {
				return err
			}

			fmt.Fprintf(sb, ExampleStart, i+1)
			sb.WriteString(UserPrefix)
			sb.WriteString(ex.Input)
			sb.WriteString("\n\n")

			if len(ex.ToolCalls) > 0 || ex.AIResponse != "" {
				sb.WriteString(ModelPrefix)
			}
			for j, tc := range ex.ToolCalls {
				args, err := toArgs(tc)
				if err != nil {
					return fmt.Errorf("example %d tool call %d: %w", i+1, j, err)
				}
				data, err := json.Marshal(args, json.Deterministic(true))
				if err != nil {
					return err
				}
				fmt.Fprintf(sb, "%s%s(%s)%s", FunctionCallPrefix, toolName, data, FunctionCallSuffix)
				fmt.Fprintf(sb, "%s%s%s", FunctionResponsePrefix, ex.toolOutput(j), FunctionResponseSuffix)
			}
			if ex.AIResponse != "" {
				sb.WriteString(ex.AIResponse)
				sb.WriteByte('\n')
			}

			sb.WriteString(ExampleEnd)
		}

		sb.WriteString(ExamplesEnd)
		return nil
	})
}

// BuildExampleSI fetches the examples for query from provider and renders them with
// [ConvertExamplesToText].
func BuildExampleSI(ctx context.Context, provider Provider, query, toolName string) (string, error) {
	examples, err := provider.GetExamples(ctx, query)
	if err != nil {
		return "", fmt.Errorf("get examples: %w", err)
	}
	return ConvertExamplesToText(examples, toolName)
}
