package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeRedirect(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", defaultRedirect},
		{"/", "/"},
		{"/reports/purchases", "/reports/purchases"},
		{"/reports?startDate=2025-01-01", "/reports?startDate=2025-01-01"},
		{"https://evil.example", defaultRedirect},
		{"//evil.example", defaultRedirect},
		{"reports", defaultRedirect},
		{"/\\evil.example", defaultRedirect},
		{"/line\nbreak", defaultRedirect},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeRedirect(tt.in), "sanitizeRedirect(%q)", tt.in)
	}
}
