// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"
)

const (
	// GeminiDefaultModel is the default model name for [Gemini].
	GeminiDefaultModel = "gemini-2.0-flash"

	// EnvGoogleAPIKey is the environment variable name for the Google AI API key.
	EnvGoogleAPIKey = "GOOGLE_API_KEY"

	// EnvGoogleCloudProject is the environment variable name for the Vertex AI project.
	EnvGoogleCloudProject = "GOOGLE_CLOUD_PROJECT"

	// EnvGoogleCloudLocation is the environment variable name for the Vertex AI location.
	EnvGoogleCloudLocation = "GOOGLE_CLOUD_LOCATION"

	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
)

// Gemini represents a Google Gemini Large Language Model.
type Gemini struct {
	*BaseLLM

	genAIClient *genai.Client
}

var _ Model = (*Gemini)(nil)

// NewGemini creates a new [Gemini] instance.
//
// By default it talks to the Gemini API with the key from [WithAPIKey] or the
// GOOGLE_API_KEY environment variable. [WithVertexAI] switches to Vertex AI with
// application default credentials.
func NewGemini(ctx context.Context, modelName string, opts ...Option) (*Gemini, error) {
	if modelName == "" {
		modelName = GeminiDefaultModel
	}
	base := NewBaseLLM(modelName, opts...)

	cc := &genai.ClientConfig{
		HTTPClient: base.httpClient,
	}
	if base.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: base.baseURL}
	}

	if base.vertexAI {
		project := cmp.Or(base.project, os.Getenv(EnvGoogleCloudProject))
		location := cmp.Or(base.location, os.Getenv(EnvGoogleCloudLocation))
		if project == "" || location == "" {
			return nil, fmt.Errorf("vertex AI needs a project and location: set them with WithVertexAI or %s and %s", EnvGoogleCloudProject, EnvGoogleCloudLocation)
		}
		cc.Backend = genai.BackendVertexAI
		cc.Project = project
		cc.Location = location

		if base.httpClient == nil {
			creds, err := credentials.DetectDefault(&credentials.DetectOptions{
				Scopes: []string{cloudPlatformScope},
			})
			if err != nil {
				return nil, fmt.Errorf("detect default credentials: %w", err)
			}
			cc.Credentials = creds
		}
	} else {
		apiKey := cmp.Or(base.apiKey, os.Getenv(EnvGoogleAPIKey))
		if apiKey == "" {
			return nil, fmt.Errorf("either WithAPIKey or %q environment variable must be set", EnvGoogleAPIKey)
		}
		cc.Backend = genai.BackendGeminiAPI
		cc.APIKey = apiKey
	}

	genAIClient, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		BaseLLM:     base,
		genAIClient: genAIClient,
	}, nil
}

// GenerateContent implements [Model].
func (m *Gemini) GenerateContent(ctx context.Context, request *LLMRequest) (*LLMResponse, error) {
	modelName := cmp.Or(request.Model, m.modelName)

	// Ensure the last message is from the user
	contents := m.appendUserContent(request.Contents)
	if m.vertexAI {
		contents = withoutFunctionIDs(contents)
	}

	config := &genai.GenerateContentConfig{}
	if request.Config != nil {
		c := *request.Config
		config = &c
	}
	if config.MaxOutputTokens == 0 {
		config.MaxOutputTokens = m.maxTokens
	}

	response, err := m.genAIClient.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini %s: %w", modelName, err)
	}
	m.log(ctx).DebugContext(ctx, "response", buildResponseLog(response))

	return CreateLLMResponse(response), nil
}

// withoutFunctionIDs returns contents with the IDs of function calls and responses
// cleared. Vertex AI rejects requests that set them.
func withoutFunctionIDs(contents []*genai.Content) []*genai.Content {
	out := make([]*genai.Content, len(contents))
	for i, content := range contents {
		if content == nil {
			continue
		}
		c := *content
		c.Parts = make([]*genai.Part, len(content.Parts))
		for j, part := range content.Parts {
			if part == nil {
				continue
			}
			p := *part
			if p.FunctionCall != nil && p.FunctionCall.ID != "" {
				fc := *p.FunctionCall
				fc.ID = ""
				p.FunctionCall = &fc
			}
			if p.FunctionResponse != nil && p.FunctionResponse.ID != "" {
				fr := *p.FunctionResponse
				fr.ID = ""
				p.FunctionResponse = &fr
			}
			c.Parts[j] = &p
		}
		out[i] = &c
	}
	return out
}

const responseLogFmt = `
LLM Response:
-----------------------------------------------------------
Text:
%s
-----------------------------------------------------------
Function calls:
%s
-----------------------------------------------------------
`

func buildResponseLog(resp *genai.GenerateContentResponse) slog.Attr {
	llmResp := CreateLLMResponse(resp)
	functionCalls := llmResp.FunctionCalls()
	functionCallsText := make([]string, len(functionCalls))
	for i, funcCall := range functionCalls {
		functionCallsText[i] = fmt.Sprintf("name: %s, args: %v", funcCall.Name, funcCall.Args)
	}

	return slog.String("response", fmt.Sprintf(responseLogFmt, llmResp.Text(), strings.Join(functionCallsText, "\n")))
}
