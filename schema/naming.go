// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts a string into snake_case.
//
// Word boundaries are lower→upper transitions ("camelCase"), the last capital of an
// acronym followed by a lowercase letter ("HTTPServer" → "http_server") and any run of
// non-alphanumeric characters. Leading and trailing separators are dropped.
//
//	ToSnakeCase("heightInMeters") -> "height_in_meters"
//	ToSnakeCase("REST API")       -> "rest_api"
//	ToSnakeCase("people.v2-file") -> "people_v2_file"
func ToSnakeCase(text string) string {
	runes := []rune(text)

	var b strings.Builder
	b.Grow(len(text) + len(text)/2)

	pending := false // a separator is owed before the next letter or digit
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pending = b.Len() > 0
			continue
		}

		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				pending = b.Len() > 0
			}
		}

		if pending {
			b.WriteByte('_')
			pending = false
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
