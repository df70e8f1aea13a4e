package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in   string
		want ColorMode
	}{
		{"", ColorAlways},
		{"always", ColorAlways},
		{"AUTO", ColorAuto},
		{" never ", ColorNever},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColorMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseColorMode("sometimes")
	assert.ErrorIs(t, err, ErrInvalidColorMode)
}

func TestColorMode_Enabled(t *testing.T) {
	setupCleanEnv(t, map[string]string{"TERM": "xterm"})

	onTerminal := NewCapabilities(Options{DetectorOptions: DetectorOptions{IsTerminal: terminals(Stdout)}})
	piped := NewCapabilities(Options{DetectorOptions: DetectorOptions{IsTerminal: terminals()}})

	assert.True(t, ColorAlways.Enabled(piped))
	assert.False(t, ColorNever.Enabled(onTerminal))
	assert.True(t, ColorAuto.Enabled(onTerminal))
	assert.False(t, ColorAuto.Enabled(piped))
}

func TestColorMode_PreferenceOptions(t *testing.T) {
	assert.Equal(t, PreferenceOptions{DisableColor: true}, ColorNever.PreferenceOptions())
	assert.Equal(t, PreferenceOptions{}, ColorAlways.PreferenceOptions())
	assert.Equal(t, PreferenceOptions{}, ColorAuto.PreferenceOptions())
}
