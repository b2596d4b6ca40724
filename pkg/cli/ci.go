package cli

import (
	"os"

	"github.com/tbb-tools/tbtools/pkg/logger"
)

var ciLog = logger.New("cli:ci")

// ciProviders maps the variable a CI service sets to a display name. The
// generic CI variable comes last so named providers win.
var ciProviders = []struct {
	envVar string
	name   string
}{
	{"GITLAB_CI", "GitLab CI"},
	{"GITHUB_ACTIONS", "GitHub Actions"},
	{"CI", "CI"},
	{"CONTINUOUS_INTEGRATION", "CI"},
}

// DetectCI returns the name of the CI service running the tool, or "" when
// running interactively. The smoke test launcher always prints the computed
// build in CI so the job log records what was tested.
func DetectCI() string {
	for _, p := range ciProviders {
		if os.Getenv(p.envVar) != "" {
			ciLog.Printf("CI environment detected via %s", p.envVar)
			return p.name
		}
	}
	ciLog.Print("No CI environment detected")
	return ""
}
