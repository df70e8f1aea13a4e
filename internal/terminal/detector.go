// Package terminal detects what the attached terminal can do: whether the
// standard streams are terminals, whether the process runs under CI, and
// whether colored output is wanted according to flags and the NO_COLOR,
// CLICOLOR and CLICOLOR_FORCE conventions.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Stream identifies one of the standard streams.
type Stream int

const (
	// Stdin is standard input.
	Stdin Stream = iota
	// Stdout is standard output.
	Stdout
	// Stderr is standard error.
	Stderr
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"TRAVIS",                 // Travis CI
	"CIRCLECI",               // Circle CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"GITLAB_CI",              // GitLab CI
	"APPVEYOR",               // AppVeyor
	"BUILDKITE",              // Buildkite
	"DRONE",                  // Drone CI
	"TF_BUILD",               // Azure DevOps
}

// DetectorOptions contains options for controlling interactive detection
type DetectorOptions struct {
	ForceInteractive    bool // Force interactive mode regardless of environment
	ForceNonInteractive bool // Force non-interactive mode regardless of environment

	// IsTerminal replaces the real terminal check, mainly for tests.
	IsTerminal func(Stream) bool
}

// InteractiveDetector interface defines methods for detecting interactive terminal capabilities
type InteractiveDetector interface {
	IsInteractive() bool
	IsTerminal(s Stream) bool
	IsCIEnvironment() bool
}

// DefaultInteractiveDetector implements InteractiveDetector
type DefaultInteractiveDetector struct {
	options DetectorOptions
}

// NewInteractiveDetector creates a new interactive detector with the given options
func NewInteractiveDetector(options DetectorOptions) InteractiveDetector {
	return &DefaultInteractiveDetector{
		options: options,
	}
}

// IsInteractive reports whether a person is likely watching stderr, where
// diagnostics are written.
func (d *DefaultInteractiveDetector) IsInteractive() bool {
	if d.options.ForceInteractive {
		return true
	}
	if d.options.ForceNonInteractive {
		return false
	}
	if d.IsCIEnvironment() {
		return false
	}
	return d.IsTerminal(Stderr)
}

// IsTerminal reports whether stream s is connected to a terminal.
func (d *DefaultInteractiveDetector) IsTerminal(s Stream) bool {
	if d.options.IsTerminal != nil {
		return d.options.IsTerminal(s)
	}
	var f *os.File
	switch s {
	case Stdin:
		f = os.Stdin
	case Stdout:
		f = os.Stdout
	case Stderr:
		f = os.Stderr
	default:
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsCIEnvironment checks if the current environment is a CI/CD system
func (d *DefaultInteractiveDetector) IsCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		if value := os.Getenv(envVar); value != "" {
			// CI=false and friends do not count
			if envVar == "CI" {
				return isCITruthy(value)
			}
			return true
		}
	}

	return false
}

// isCITruthy checks if a CI environment variable value should be considered "true"
func isCITruthy(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower != "false" && lower != "0" && lower != "no"
}
