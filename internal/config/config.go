// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/go-a2a/fewshot/extract"
	"github.com/go-a2a/fewshot/model"
	"github.com/go-a2a/fewshot/pkg/logging"
)

// Environment variables read by [Load]. Provider keys use the names of the provider SDKs.
const (
	EnvModel       = "FEWSHOT_MODEL"
	EnvMethod      = "FEWSHOT_METHOD"
	EnvExamples    = "FEWSHOT_EXAMPLES"
	EnvSchema      = "FEWSHOT_SCHEMA"
	EnvTemperature = "FEWSHOT_TEMPERATURE"
	EnvMaxRetries  = "FEWSHOT_MAX_RETRIES"
	EnvMaxTokens   = "FEWSHOT_MAX_TOKENS"
	EnvConcurrency = "FEWSHOT_CONCURRENCY"
	EnvLogLevel    = "FEWSHOT_LOG_LEVEL"
	EnvLogFormat   = "FEWSHOT_LOG_FORMAT"

	EnvGoogleAPIKey        = model.EnvGoogleAPIKey
	EnvUseVertexAI         = "GOOGLE_GENAI_USE_VERTEXAI"
	EnvGoogleCloudProject  = model.EnvGoogleCloudProject
	EnvGoogleCloudLocation = model.EnvGoogleCloudLocation
	EnvAnthropicAPIKey     = model.EnvAnthropicAPIKey
)

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// GoogleConfig holds Gemini settings.
type GoogleConfig struct {
	APIKey   string `yaml:"api_key"`
	VertexAI bool   `yaml:"vertex_ai"`
	Project  string `yaml:"project"`
	Location string `yaml:"location"`
}

// AnthropicConfig holds Claude settings.
type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// Config is the configuration of the fewshot command.
type Config struct {
	// Model is the model name, resolved with [model.NewLLM].
	Model string `yaml:"model"`

	// Method is the extraction method, see [extract.ParseMethod].
	Method string `yaml:"method"`

	// Examples is a local YAML/JSON file, a gs:// URI or a Vertex AI Example Store
	// resource name. Empty means the built-in examples.
	Examples string `yaml:"examples"`

	// Schema is a JSON Schema file. Empty means the built-in schema.
	Schema            string `yaml:"schema"`
	SchemaName        string `yaml:"schema_name"`
	SchemaDescription string `yaml:"schema_description"`

	Temperature float32 `yaml:"temperature"`
	MaxRetries  int     `yaml:"max_retries"`
	MaxTokens   int32   `yaml:"max_tokens"`
	Concurrency int     `yaml:"concurrency"`

	Log       LogConfig       `yaml:"log"`
	Google    GoogleConfig    `yaml:"google"`
	Anthropic AnthropicConfig `yaml:"anthropic"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Model:       model.GeminiDefaultModel,
		Method:      string(extract.FunctionCalling),
		SchemaName:  "Data",
		Temperature: 0,
		MaxTokens:   model.DefaultMaxTokens,
		Concurrency: 4,
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
	}
}

// LoadDotEnv loads environment variables from the given .env files, ".env" when none is
// given. Missing files are ignored and variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load returns the default configuration, overlaid with the YAML file at path (if path
// is not empty) and then with the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var errs []error

	envString(EnvModel, &c.Model)
	envString(EnvMethod, &c.Method)
	envString(EnvExamples, &c.Examples)
	envString(EnvSchema, &c.Schema)
	envString(EnvLogLevel, &c.Log.Level)
	envString(EnvLogFormat, &c.Log.Format)
	envString(EnvGoogleAPIKey, &c.Google.APIKey)
	envString(EnvGoogleCloudProject, &c.Google.Project)
	envString(EnvGoogleCloudLocation, &c.Google.Location)
	envString(EnvAnthropicAPIKey, &c.Anthropic.APIKey)

	errs = append(errs,
		envParse(EnvTemperature, &c.Temperature, func(s string) (float32, error) {
			f, err := strconv.ParseFloat(s, 32)
			return float32(f), err
		}),
		envParse(EnvMaxRetries, &c.MaxRetries, strconv.Atoi),
		envParse(EnvMaxTokens, &c.MaxTokens, func(s string) (int32, error) {
			n, err := strconv.ParseInt(s, 10, 32)
			return int32(n), err
		}),
		envParse(EnvConcurrency, &c.Concurrency, strconv.Atoi),
		envParse(EnvUseVertexAI, &c.Google.VertexAI, strconv.ParseBool),
	)
	return errors.Join(errs...)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envParse[T any](key string, dst *T, parse func(string) (T, error)) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	parsed, err := parse(v)
	if err != nil {
		return fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
	*dst = parsed
	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Model == "" {
		errs = append(errs, errors.New("model is required"))
	}
	if _, err := extract.ParseMethod(c.Method); err != nil {
		errs = append(errs, err)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		errs = append(errs, fmt.Errorf("temperature %v out of range [0, 2]", c.Temperature))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries))
	}
	if c.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("max_tokens must not be negative, got %d", c.MaxTokens))
	}
	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format == "" {
		errs = append(errs, errors.New("log format is required"))
	} else if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ExtractMethod returns the parsed extraction method.
func (c *Config) ExtractMethod() extract.Method {
	m, err := extract.ParseMethod(c.Method)
	if err != nil {
		return extract.FunctionCalling
	}
	return m
}

// LogFormat returns the parsed log format.
func (c *Config) LogFormat() logging.Format {
	f, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		return logging.FormatText
	}
	return f
}

// ModelOptions returns the [model.Option]s for the configured model.
func (c *Config) ModelOptions() []model.Option {
	opts := []model.Option{model.WithMaxTokens(c.MaxTokens)}

	if strings.HasPrefix(c.Model, "claude") {
		if c.Anthropic.APIKey != "" {
			opts = append(opts, model.WithAPIKey(c.Anthropic.APIKey))
		}
		if c.Anthropic.BaseURL != "" {
			opts = append(opts, model.WithBaseURL(c.Anthropic.BaseURL))
		}
		return opts
	}

	if c.Google.VertexAI {
		return append(opts, model.WithVertexAI(c.Google.Project, c.Google.Location))
	}
	if c.Google.APIKey != "" {
		opts = append(opts, model.WithAPIKey(c.Google.APIKey))
	}
	return opts
}

// ExtractOptions returns the [extract.Option]s for the configured sampling and retry settings.
func (c *Config) ExtractOptions() []extract.Option {
	return []extract.Option{
		extract.WithMethod(c.ExtractMethod()),
		extract.WithTemperature(c.Temperature),
		extract.WithMaxRetries(c.MaxRetries),
	}
}
