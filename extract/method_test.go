// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{in: "", want: FunctionCalling},
		{in: "function_calling", want: FunctionCalling},
		{in: "Tool", want: FunctionCalling},
		{in: "json", want: JSONMode},
		{in: " json_mode ", want: JSONMode},
		{in: "xml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMethod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMethod(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
