// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"strings"

	"github.com/go-json-experiment/json/jsontext"
)

// fencedBlock matches a markdown code block, optionally tagged json, anywhere in the text.
var fencedBlock = regexp.MustCompile("```(?:json|JSON)?\\s*([\\s\\S]*?)```")

// extractJSON returns the JSON object in a model reply.
//
// The reply is tried as a whole first, then the first fenced code block holding valid
// JSON, then the first balanced {...} span that is valid JSON. When nothing matches the
// trimmed reply is returned so the caller reports the decode error against it.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || jsontext.Value(s).IsValid() {
		return s
	}

	if strings.Contains(s, "```") {
		for _, m := range fencedBlock.FindAllStringSubmatch(s, -1) {
			if candidate := strings.TrimSpace(m[1]); jsontext.Value(candidate).IsValid() {
				return candidate
			}
		}
	}

	if candidate, ok := balancedObject(s); ok {
		return candidate
	}
	return s
}

// balancedObject scans s for the first {...} span with matching braces, outside of
// string literals, that is valid JSON.
func balancedObject(s string) (string, bool) {
	for i := strings.IndexByte(s, '{'); i >= 0 && i < len(s); {
		level, inString, escaped := 0, false, false
	scan:
		for j := i; j < len(s); j++ {
			c := s[j]
			switch {
			case escaped:
				escaped = false
			case c == '\\' && inString:
				escaped = true
			case c == '"':
				inString = !inString
			case inString:
			case c == '{':
				level++
			case c == '}':
				level--
				if level == 0 {
					if candidate := s[i : j+1]; jsontext.Value(candidate).IsValid() {
						return candidate, true
					}
					break scan
				}
			}
		}

		next := strings.IndexByte(s[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return "", false
}
