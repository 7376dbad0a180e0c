// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package example

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/go-a2a/fewshot/pkg/logging"
)

// GCSProvider serves the examples of a YAML or JSON object in Google Cloud Storage.
type GCSProvider struct {
	client *storage.Client
	bucket string
	object string
	format Format
}

var _ Provider = (*GCSProvider)(nil)

// ParseGCSURI splits a gs://bucket/object URI.
func ParseGCSURI(uri string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("not a gs:// URI: %q", uri)
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("gs:// URI needs both bucket and object: %q", uri)
	}
	return bucket, object, nil
}

// NewGCSProvider returns a [GCSProvider] for uri (gs://bucket/path/examples.yaml).
func NewGCSProvider(ctx context.Context, uri string, opts ...option.ClientOption) (*GCSProvider, error) {
	bucket, object, err := ParseGCSURI(uri)
	if err != nil {
		return nil, err
	}
	format, err := FormatOf(object)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx).WithGroup("example.GCSProvider")
	opts = append(opts, option.WithLogger(logger))

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &GCSProvider{
		client: client,
		bucket: bucket,
		object: object,
		format: format,
	}, nil
}

// GetExamples implements [Provider].
func (p *GCSProvider) GetExamples(ctx context.Context, _ string) ([]*Example, error) {
	r, err := p.client.Bucket(p.bucket).Object(p.object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", p.bucket, p.object, err)
	}
	defer r.Close()

	examples, err := Load(r, p.format)
	if err != nil {
		return nil, fmt.Errorf("gs://%s/%s: %w", p.bucket, p.object, err)
	}
	return examples, nil
}

// Close releases the storage client.
func (p *GCSProvider) Close() error {
	return p.client.Close()
}
