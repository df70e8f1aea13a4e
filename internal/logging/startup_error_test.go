package logging

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTest = errors.New("missing closing parenthesis")

func TestStartupError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StartupError
		want string
	}{
		{
			name: "with wrapped error",
			err:  NewStartupError(ErrorTypeInvalidPattern, "cli", "cannot compile pattern", errTest),
			want: "invalid_pattern: cannot compile pattern: missing closing parenthesis",
		},
		{
			name: "without wrapped error",
			err:  NewStartupError(ErrorTypeUserInterrupted, "main", "interrupted", nil),
			want: "user_interrupted: interrupted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestStartupError_Unwrap(t *testing.T) {
	wrapped := fmt.Errorf("run: %w", NewStartupError(ErrorTypeInvalidPattern, "cli", "cannot compile pattern", errTest))

	assert.ErrorIs(t, wrapped, errTest)

	var se *StartupError
	require.ErrorAs(t, wrapped, &se)
	assert.Equal(t, ErrorTypeInvalidPattern, se.Type)
}

func TestHandleStartupError(t *testing.T) {
	var buf bytes.Buffer
	HandleStartupError(&buf, NewStartupError(ErrorTypeUnknownColor, "config", "preset \"errors\"", errTest), "01JRUN")

	assert.Equal(t, "Error: unknown_color\n"+
		"  Component: config\n"+
		"  Details: preset \"errors\": missing closing parenthesis\n"+
		"  Run ID: 01JRUN\n", buf.String())
}

func TestHandleStartupError_PlainError(t *testing.T) {
	var buf bytes.Buffer
	HandleStartupError(&buf, errTest, "")

	assert.Equal(t, "Error: system_error\n"+
		"  Details: unexpected failure: missing closing parenthesis\n", buf.String())
}
