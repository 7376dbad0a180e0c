// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package aiconv

import (
	"fmt"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"google.golang.org/genai"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToAIPlatformContent converts genai.Content to aiplatformpb.Content.
// Returns nil if input is nil.
func ToAIPlatformContent(content *genai.Content) (*aiplatformpb.Content, error) {
	if content == nil {
		return nil, nil
	}

	result := &aiplatformpb.Content{
		Role:  content.Role,
		Parts: make([]*aiplatformpb.Part, 0, len(content.Parts)),
	}
	for i, part := range content.Parts {
		p, err := ToAIPlatformPart(part)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
		if p != nil {
			result.Parts = append(result.Parts, p)
		}
	}
	return result, nil
}

// FromAIPlatformContent converts aiplatformpb.Content to genai.Content.
// Parts of kinds not used for few-shot examples (inline data, files, code) are skipped.
func FromAIPlatformContent(content *aiplatformpb.Content) *genai.Content {
	if content == nil {
		return nil
	}

	result := &genai.Content{
		Role:  content.GetRole(),
		Parts: make([]*genai.Part, 0, len(content.GetParts())),
	}
	for _, part := range content.GetParts() {
		if p := FromAIPlatformPart(part); p != nil {
			result.Parts = append(result.Parts, p)
		}
	}
	return result
}

// ToAIPlatformPart converts a text, function call or function response genai.Part.
func ToAIPlatformPart(part *genai.Part) (*aiplatformpb.Part, error) {
	switch {
	case part == nil:
		return nil, nil

	case part.FunctionCall != nil:
		args, err := toStruct(part.FunctionCall.Args)
		if err != nil {
			return nil, fmt.Errorf("function call %s args: %w", part.FunctionCall.Name, err)
		}
		return &aiplatformpb.Part{
			Data: &aiplatformpb.Part_FunctionCall{
				FunctionCall: &aiplatformpb.FunctionCall{
					Name: part.FunctionCall.Name,
					Args: args,
				},
			},
		}, nil

	case part.FunctionResponse != nil:
		resp, err := toStruct(part.FunctionResponse.Response)
		if err != nil {
			return nil, fmt.Errorf("function response %s: %w", part.FunctionResponse.Name, err)
		}
		return &aiplatformpb.Part{
			Data: &aiplatformpb.Part_FunctionResponse{
				FunctionResponse: &aiplatformpb.FunctionResponse{
					Name:     part.FunctionResponse.Name,
					Response: resp,
				},
			},
		}, nil

	case part.Text != "":
		return &aiplatformpb.Part{
			Data: &aiplatformpb.Part_Text{Text: part.Text},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported genai.Part: %+v", part)
	}
}

// FromAIPlatformPart converts aiplatformpb.Part to genai.Part, or returns nil for
// unsupported part kinds.
func FromAIPlatformPart(part *aiplatformpb.Part) *genai.Part {
	switch data := part.GetData().(type) {
	case *aiplatformpb.Part_Text:
		return &genai.Part{Text: data.Text}

	case *aiplatformpb.Part_FunctionCall:
		fc := data.FunctionCall
		return &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: fc.GetName(),
				Args: fc.GetArgs().AsMap(),
			},
		}

	case *aiplatformpb.Part_FunctionResponse:
		fr := data.FunctionResponse
		return &genai.Part{
			FunctionResponse: &genai.FunctionResponse{
				Name:     fr.GetName(),
				Response: fr.GetResponse().AsMap(),
			},
		}

	default:
		return nil
	}
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	if m == nil {
		return nil, nil
	}
	return structpb.NewStruct(m)
}
