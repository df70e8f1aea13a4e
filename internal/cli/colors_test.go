package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isseis/go-pipetint/internal/color"
)

func TestParseColorGroups(t *testing.T) {
	groups := ParseColorGroups([]string{"red,bold", "blue", " , ", "bg_yellow , swap"})

	assert.Equal(t, [][]string{
		{"red", "bold"},
		{"blue"},
		nil,
		{"bg_yellow", "swap"},
	}, groups)
}

func TestValidateColorGroups(t *testing.T) {
	assert.NoError(t, ValidateColorGroups([][]string{{"red", "bold"}, nil, {"bg_lightcyan"}}))

	err := ValidateColorGroups([][]string{{"red"}, {"bold", "nosuchcolor"}})
	assert.ErrorIs(t, err, color.ErrUnknownColor)
	assert.ErrorContains(t, err, `"nosuchcolor"`)
}

func TestLayers(t *testing.T) {
	tests := []struct {
		name   string
		groups [][]string
		want   [][]string
	}{
		{
			name:   "single color per group",
			groups: [][]string{{"red"}, {"blue"}},
			want:   [][]string{{"red", "blue"}},
		},
		{
			name:   "stack on one group",
			groups: [][]string{{"black", "bg_yellow", "swapcolor"}},
			want:   [][]string{{"black"}, {"bg_yellow"}, {"swapcolor"}},
		},
		{
			name:   "uneven stacks",
			groups: [][]string{{"red", "bold"}, {"blue"}, nil},
			want:   [][]string{{"red", "blue", ""}, {"bold", "", ""}},
		},
		{
			name:   "no colors",
			groups: [][]string{nil},
			want:   [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Layers(tt.groups))
		})
	}
}
