package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInteractiveDetector_IsInteractive(t *testing.T) {
	tests := []struct {
		name            string
		envVars         map[string]string
		options         DetectorOptions
		wantInteractive bool
	}{
		{
			name:            "CI environment detected - GITHUB_ACTIONS",
			envVars:         map[string]string{"GITHUB_ACTIONS": "true"},
			options:         DetectorOptions{IsTerminal: terminals(Stderr)},
			wantInteractive: false,
		},
		{
			name:            "CI environment detected - CI=true",
			envVars:         map[string]string{"CI": "true"},
			options:         DetectorOptions{IsTerminal: terminals(Stderr)},
			wantInteractive: false,
		},
		{
			name:            "CI=false is not CI",
			envVars:         map[string]string{"CI": "false"},
			options:         DetectorOptions{IsTerminal: terminals(Stderr)},
			wantInteractive: true,
		},
		{
			name:            "Force interactive mode overrides CI",
			envVars:         map[string]string{"CI": "true"},
			options:         DetectorOptions{ForceInteractive: true},
			wantInteractive: true,
		},
		{
			name:            "Force non-interactive mode",
			options:         DetectorOptions{ForceNonInteractive: true, IsTerminal: terminals(Stderr)},
			wantInteractive: false,
		},
		{
			name:            "stderr terminal",
			options:         DetectorOptions{IsTerminal: terminals(Stderr)},
			wantInteractive: true,
		},
		{
			name:            "only stdout is a terminal",
			options:         DetectorOptions{IsTerminal: terminals(Stdout)},
			wantInteractive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCleanEnv(t, tt.envVars)

			detector := NewInteractiveDetector(tt.options)
			assert.Equal(t, tt.wantInteractive, detector.IsInteractive())
		})
	}
}

func TestInteractiveDetector_IsTerminal(t *testing.T) {
	detector := NewInteractiveDetector(DetectorOptions{IsTerminal: terminals(Stdin)})

	assert.True(t, detector.IsTerminal(Stdin))
	assert.False(t, detector.IsTerminal(Stdout))
	assert.False(t, detector.IsTerminal(Stderr))

	// without an override an unknown stream is never a terminal
	assert.False(t, NewInteractiveDetector(DetectorOptions{}).IsTerminal(Stream(9)))
}

func TestInteractiveDetector_IsCIEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    bool
	}{
		{"none", map[string]string{}, false},
		{"CI=1", map[string]string{"CI": "1"}, true},
		{"CI=0", map[string]string{"CI": "0"}, false},
		{"CI=no", map[string]string{"CI": "no"}, false},
		{"JENKINS_URL", map[string]string{"JENKINS_URL": "http://jenkins.example.com"}, true},
		{"BUILD_NUMBER", map[string]string{"BUILD_NUMBER": "123"}, true},
		{"TF_BUILD", map[string]string{"TF_BUILD": "True"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCleanEnv(t, tt.envVars)
			assert.Equal(t, tt.want, NewInteractiveDetector(DetectorOptions{}).IsCIEnvironment())
		})
	}
}
