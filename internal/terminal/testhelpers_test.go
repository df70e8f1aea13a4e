package terminal

import (
	"os"
	"testing"
)

// setupCleanEnv controls every variable the package reads and sets only the
// given ones, so tests do not depend on the developer's terminal.
func setupCleanEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	// read with os.LookupEnv: empty differs from unset
	existenceCheckedVars := []string{"NO_COLOR"}

	// read with os.Getenv: empty means unset
	valueCheckedVars := []string{
		"CLICOLOR", "CLICOLOR_FORCE",
		"TERM", "COLORTERM",
		"CI", "GITHUB_ACTIONS", "JENKINS_URL", "BUILD_NUMBER",
		"CONTINUOUS_INTEGRATION", "TRAVIS", "CIRCLECI", "APPVEYOR", "GITLAB_CI",
		"BUILDKITE", "DRONE", "TF_BUILD",
	}

	for _, v := range existenceCheckedVars {
		if value, specified := envVars[v]; specified {
			t.Setenv(v, value)
			continue
		}
		// t.Setenv registers the restore, then the variable is removed
		t.Setenv(v, "")
		os.Unsetenv(v)
	}

	for _, v := range valueCheckedVars {
		if value, specified := envVars[v]; specified {
			t.Setenv(v, value)
		} else {
			t.Setenv(v, "")
		}
	}
}

// terminals returns an IsTerminal replacement that reports the listed
// streams as terminals.
func terminals(streams ...Stream) func(Stream) bool {
	set := make(map[Stream]bool, len(streams))
	for _, s := range streams {
		set[s] = true
	}
	return func(s Stream) bool {
		return set[s]
	}
}
