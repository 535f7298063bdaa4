package redact_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quizgen/quizgen/internal/redact"
)

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "no sensitive content",
			input: "generation failed: count mismatch",
			want:  "generation failed: count mismatch",
		},
		{
			name:  "api key in query parameter",
			input: "googleapi: 400 https://generativelanguage.googleapis.com/v1beta/models?key=AIzaSyD4X8f2kQmNop",
			want:  "googleapi: 400 https://generativelanguage.googleapis.com/v1beta/models?key=" + redact.KeyPlaceholder,
		},
		{
			name:  "key value credential",
			input: `config dump: api_key="AIzaSyD4X8f2kQmNop"`,
			want:  `config dump: api_key="` + redact.KeyPlaceholder + `"`,
		},
		{
			name:  "bearer token",
			input: "request rejected: Bearer ya29.a0AfH6SMBx71q",
			want:  "request rejected: " + redact.TokenPlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redact.String(tt.input))
		})
	}
}

func TestError(t *testing.T) {
	assert.Equal(t, "", redact.Error(nil))

	err := errors.New("call failed: ?key=AIzaSyD4X8f2kQmNop")
	assert.Equal(t, "call failed: ?key="+redact.KeyPlaceholder, redact.Error(err))
}
