// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/fewshot/extract"
)

// clearEnv unsets every variable read by Load for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvModel, EnvMethod, EnvExamples, EnvSchema, EnvTemperature, EnvMaxRetries,
		EnvMaxTokens, EnvConcurrency, EnvLogLevel, EnvLogFormat, EnvGoogleAPIKey,
		EnvUseVertexAI, EnvGoogleCloudProject, EnvGoogleCloudLocation, EnvAnthropicAPIKey,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "fewshot.yaml", `
model: claude-3-5-haiku-latest
method: json_mode
examples: gs://bucket/examples.yaml
temperature: 0.5
max_retries: 2
concurrency: 8
log:
  level: debug
  format: json
anthropic:
  api_key: sk-file
`)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Model = "claude-3-5-haiku-latest"
	want.Method = "json_mode"
	want.Examples = "gs://bucket/examples.yaml"
	want.Temperature = 0.5
	want.MaxRetries = 2
	want.Concurrency = 8
	want.Log = LogConfig{Level: "debug", Format: "json"}
	want.Anthropic.APIKey = "sk-file"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "fewshot.yaml", "model: gemini-1.5-pro\nconcurrency: 2\n")

	t.Setenv(EnvModel, "gemini-2.0-flash-lite")
	t.Setenv(EnvConcurrency, "16")
	t.Setenv(EnvUseVertexAI, "true")
	t.Setenv(EnvGoogleCloudProject, "my-project")
	t.Setenv(EnvGoogleCloudLocation, "us-central1")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Model != "gemini-2.0-flash-lite" {
		t.Errorf("Model = %q, want env value", got.Model)
	}
	if got.Concurrency != 16 {
		t.Errorf("Concurrency = %d, want 16", got.Concurrency)
	}
	wantGoogle := GoogleConfig{VertexAI: true, Project: "my-project", Location: "us-central1"}
	if diff := cmp.Diff(wantGoogle, got.Google); diff != "" {
		t.Errorf("Google mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		file    string
		env     map[string]string
		wantErr string
	}{
		"unknown field": {
			file:    "modle: typo\n",
			wantErr: "field modle not found",
		},
		"bad int": {
			env:     map[string]string{EnvMaxRetries: "three"},
			wantErr: EnvMaxRetries,
		},
		"bad bool": {
			env:     map[string]string{EnvUseVertexAI: "maybe"},
			wantErr: EnvUseVertexAI,
		},
		"bad float": {
			env:     map[string]string{EnvTemperature: "hot"},
			wantErr: EnvTemperature,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			var path string
			if tt.file != "" {
				path = writeFile(t, "fewshot.yaml", tt.file)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() error = nil")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, ".env", "FEWSHOT_MODEL=claude-from-dotenv\nANTHROPIC_API_KEY=sk-dotenv\n")
	t.Setenv(EnvAnthropicAPIKey, "sk-env")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Model != "claude-from-dotenv" {
		t.Errorf("Model = %q, want value from .env", cfg.Model)
	}
	if cfg.Anthropic.APIKey != "sk-env" {
		t.Errorf("Anthropic.APIKey = %q, want the variable already set", cfg.Anthropic.APIKey)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Model = ""
	cfg.Method = "xml"
	cfg.Temperature = 3
	cfg.MaxRetries = -1
	cfg.Concurrency = -2
	cfg.Log.Level = "loud"
	cfg.Log.Format = "yaml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() error = nil")
	}
	for _, want := range []string{"model is required", "xml", "temperature", "max_retries", "concurrency", "loud", "yaml"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error = %v, want it to mention %q", err, want)
		}
	}
}

func TestConfig_ExtractMethod(t *testing.T) {
	cfg := Default()
	if got := cfg.ExtractMethod(); got != extract.FunctionCalling {
		t.Errorf("ExtractMethod() = %q, want %q", got, extract.FunctionCalling)
	}
	cfg.Method = "json"
	if got := cfg.ExtractMethod(); got != extract.JSONMode {
		t.Errorf("ExtractMethod() = %q, want %q", got, extract.JSONMode)
	}
}

func TestConfig_ModelOptions(t *testing.T) {
	tests := map[string]struct {
		cfg  func(*Config)
		want int
	}{
		"gemini api key": {
			cfg:  func(c *Config) { c.Google.APIKey = "key" },
			want: 2,
		},
		"gemini vertex": {
			cfg:  func(c *Config) { c.Google.VertexAI = true; c.Google.APIKey = "ignored" },
			want: 2,
		},
		"claude with base url": {
			cfg: func(c *Config) {
				c.Model = "claude-3-5-sonnet-latest"
				c.Anthropic = AnthropicConfig{APIKey: "sk", BaseURL: "http://localhost"}
			},
			want: 3,
		},
		"no credentials": {
			cfg:  func(*Config) {},
			want: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			tt.cfg(cfg)
			if got := len(cfg.ModelOptions()); got != tt.want {
				t.Errorf("len(ModelOptions()) = %d, want %d", got, tt.want)
			}
		})
	}
}
