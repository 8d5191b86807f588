// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-zeta/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a well-known CI variable is set.
func inCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForNpx returns hints for a missing or failing npx.
// In CI/Docker the npm bootstrap is usually unwanted, so --no-npm is suggested first.
func ForNpx() string {
	var hints []string

	if inCI() || IsInContainer() {
		hints = append(hints, "use --no-npm to skip the zenn-cli and qiita-cli setup")
	}
	hints = append(hints, "install Node.js so that npx is on PATH")

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests zeta init, the --config flag and the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "run zeta init, or use --config /path/to/zeta.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(toSlash(p), ".config/zeta") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForRepository returns a hint for a missing or malformed repository setting.
func ForRepository() string {
	return format(`set repository: "owner/repo" in zeta.yaml or ZETA_REPOSITORY`)
}

// ForGitRemote returns hints when the default branch of remote cannot be resolved.
func ForGitRemote(remote string) string {
	return formatHints([]string{
		"check that `git remote show " + remote + "` works",
		"or set branch in zeta.yaml",
	})
}

// ForArticleNotFound lists the articles that do exist.
func ForArticleNotFound(available []string) string {
	if len(available) == 0 {
		return format("create one with zeta new <slug>")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// toSlash normalizes Windows separators for substring checks.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
