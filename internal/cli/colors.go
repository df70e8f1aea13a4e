package cli

import (
	"github.com/isseis/go-pipetint/internal/color"
)

// ParseColorGroups turns COLORS arguments into one color stack per capture
// group: ["red,bold", "blue"] becomes [[red bold] [blue]]. Blank names are
// dropped, so an argument of "," leaves its group uncolored.
func ParseColorGroups(args []string) [][]string {
	groups := make([][]string, len(args))
	for i, arg := range args {
		groups[i] = color.SplitList(arg)
	}
	return groups
}

// ValidateColorGroups checks every name against the registry.
func ValidateColorGroups(groups [][]string) error {
	for _, group := range groups {
		for _, name := range group {
			if err := color.Validate(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Layers transposes color stacks into highlight passes. Layer n holds the
// nth color of every group, or "" for groups with fewer colors, which the
// highlighter skips. Applying the layers in order lets a later layer add a
// second channel (bold over red) without disturbing the others.
func Layers(groups [][]string) [][]string {
	depth := 0
	for _, g := range groups {
		depth = max(depth, len(g))
	}

	layers := make([][]string, depth)
	for n := range layers {
		layer := make([]string, len(groups))
		for i, g := range groups {
			if n < len(g) {
				layer[i] = g[n]
			}
		}
		layers[n] = layer
	}
	return layers
}
