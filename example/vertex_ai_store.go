// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"context"
	"errors"
	"fmt"
	"strings"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"github.com/go-json-experiment/json"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"github.com/go-a2a/fewshot/internal/aiconv"
	"github.com/go-a2a/fewshot/pkg/logging"
)

const (
	// vertexTopK is the number of neighbours requested from the example store.
	vertexTopK = 10

	// MinSimilarityScore is the similarity below which example store results are dropped.
	MinSimilarityScore = 0.5
)

// VertexAIExampleStore provides examples from a Vertex AI Example Store, selected by
// semantic similarity to the extraction input.
type VertexAIExampleStore struct {
	client       *aiplatform.ExampleStoreClient
	exampleStore string
}

var _ Provider = (*VertexAIExampleStore)(nil)

// NewVertexAIExampleStore creates a new VertexAIExampleStore client from the given exampleStore.
//
// exampleStore is the resource name of the vertex example store, in the format of
//
//	projects/{project}/locations/{location}/exampleStores/{example_store}
func NewVertexAIExampleStore(ctx context.Context, exampleStore string, opts ...option.ClientOption) (*VertexAIExampleStore, error) {
	logger := logging.FromContext(ctx).WithGroup("example.VertexAIExampleStore")
	opts = append(opts, option.WithLogger(logger))

	client, err := aiplatform.NewExampleStoreClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create example store client: %w", err)
	}

	return &VertexAIExampleStore{
		client:       client,
		exampleStore: exampleStore,
	}, nil
}

// GetExamples returns the examples stored under search keys similar to query.
func (e *VertexAIExampleStore) GetExamples(ctx context.Context, query string) ([]*Example, error) {
	req := &aiplatformpb.SearchExamplesRequest{
		Parameters: &aiplatformpb.SearchExamplesRequest_StoredContentsExampleParameters{
			StoredContentsExampleParameters: &aiplatformpb.StoredContentsExampleParameters{
				Query: &aiplatformpb.StoredContentsExampleParameters_ContentSearchKey_{
					ContentSearchKey: &aiplatformpb.StoredContentsExampleParameters_ContentSearchKey{
						Contents: []*aiplatformpb.Content{
							{
								Role: roleUser,
								Parts: []*aiplatformpb.Part{
									{Data: &aiplatformpb.Part_Text{Text: query}},
								},
							},
						},
						SearchKeyGenerationMethod: &aiplatformpb.StoredContentsExample_SearchKeyGenerationMethod{
							Method: &aiplatformpb.StoredContentsExample_SearchKeyGenerationMethod_LastEntry_{
								LastEntry: &aiplatformpb.StoredContentsExample_SearchKeyGenerationMethod_LastEntry{},
							},
						},
					},
				},
			},
		},
		ExampleStore: e.exampleStore,
		TopK:         vertexTopK,
	}
	resp, err := e.client.SearchExamples(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search examples in %s: %w", e.exampleStore, err)
	}

	var examples []*Example
	for _, result := range resp.GetResults() {
		if result.GetSimilarityScore() < MinSimilarityScore {
			continue
		}
		stored := result.GetExample().GetStoredContentsExample()
		examples = append(examples, FromContents(stored.GetSearchKey(), storedContents(stored)))
	}

	logging.FromContext(ctx).DebugContext(ctx, "example store search",
		"store", e.exampleStore,
		"results", len(resp.GetResults()),
		"kept", len(examples),
	)
	return examples, nil
}

// UpsertExamples stores examples in the example store under their input as search key.
// Existing examples with the same search key are replaced only when overwrite is set.
func (e *VertexAIExampleStore) UpsertExamples(ctx context.Context, toolName string, overwrite bool, examples ...*Example) error {
	req := &aiplatformpb.UpsertExamplesRequest{
		ExampleStore: e.exampleStore,
		Overwrite:    overwrite,
	}
	for i, ex := range examples {
		stored, err := toStoredExample(ex, toolName)
		if err != nil {
			return fmt.Errorf("example %d: %w", i, err)
		}
		req.Examples = append(req.Examples, stored)
	}

	resp, err := e.client.UpsertExamples(ctx, req)
	if err != nil {
		return fmt.Errorf("upsert examples in %s: %w", e.exampleStore, err)
	}

	var errs []error
	for i, result := range resp.GetResults() {
		if st := result.GetStatus(); st != nil && st.GetCode() != 0 {
			errs = append(errs, fmt.Errorf("example %d: %s (code %d)", i, st.GetMessage(), st.GetCode()))
		}
	}

	logging.FromContext(ctx).DebugContext(ctx, "example store upsert",
		"store", e.exampleStore,
		"examples", len(examples),
		"failed", len(errs),
	)
	return errors.Join(errs...)
}

// toStoredExample converts ex to a stored contents example: the input turn is the
// conversation and the tool calls, tool results and closing reply are the expected steps.
func toStoredExample(ex *Example, toolName string) (*aiplatformpb.Example, error) {
	messages, err := ToMessages(ex, toolName)
	if err != nil {
		return nil, err
	}

	contents := &aiplatformpb.ContentsExample{}
	for i, msg := range messages {
		c, err := aiconv.ToAIPlatformContent(msg)
		if err != nil {
			return nil, fmt.Errorf("content %d: %w", i, err)
		}
		if i == 0 {
			contents.Contents = append(contents.Contents, c)
			continue
		}
		contents.ExpectedContents = append(contents.ExpectedContents, &aiplatformpb.ContentsExample_ExpectedContent{Content: c})
	}

	return &aiplatformpb.Example{
		ExampleType: &aiplatformpb.Example_StoredContentsExample{
			StoredContentsExample: &aiplatformpb.StoredContentsExample{
				SearchKey:       ex.Input,
				ContentsExample: contents,
			},
		},
	}, nil
}

// storedContents returns the conversation of a stored example followed by its expected steps.
func storedContents(stored *aiplatformpb.StoredContentsExample) []*genai.Content {
	ce := stored.GetContentsExample()
	contents := make([]*genai.Content, 0, len(ce.GetContents())+len(ce.GetExpectedContents()))
	for _, c := range ce.GetContents() {
		contents = append(contents, aiconv.FromAIPlatformContent(c))
	}
	for _, expected := range ce.GetExpectedContents() {
		if c := aiconv.FromAIPlatformContent(expected.GetContent()); c != nil {
			contents = append(contents, c)
		}
	}
	return contents
}

// Close closes the example store client.
func (e *VertexAIExampleStore) Close() error {
	return e.client.Close()
}

// FromContents rebuilds an [Example] from a stored conversation, the inverse of [ToMessages].
//
// input falls back to the first user text when empty. Function responses become tool
// outputs only when there is exactly one per tool call.
func FromContents(input string, contents []*genai.Content) *Example {
	ex := &Example{Input: input}

	var (
		outputs      []string
		seenToolCall bool
	)
	for _, content := range contents {
		for _, part := range content.Parts {
			switch {
			case part.FunctionCall != nil:
				seenToolCall = true
				ex.ToolCalls = append(ex.ToolCalls, part.FunctionCall.Args)

			case part.FunctionResponse != nil:
				outputs = append(outputs, responseText(part.FunctionResponse.Response))

			case part.Text != "":
				switch {
				case content.Role == roleUser && ex.Input == "":
					ex.Input = part.Text
				case content.Role == roleModel && seenToolCall:
					ex.AIResponse = strings.TrimSpace(strings.Join([]string{ex.AIResponse, part.Text}, "\n"))
				}
			}
		}
	}

	if len(outputs) == len(ex.ToolCalls) && !allDefault(outputs) {
		ex.ToolOutputs = outputs
	}
	return ex
}

func responseText(resp map[string]any) string {
	if out, ok := resp["output"].(string); ok {
		return out
	}
	data, err := json.Marshal(resp, json.Deterministic(true))
	if err != nil {
		return fmt.Sprint(resp)
	}
	return string(data)
}

func allDefault(outputs []string) bool {
	for _, o := range outputs {
		if o != DefaultToolOutput {
			return false
		}
	}
	return true
}
