// Package version resolves the version string of the running binary or of
// a source checkout. Resolution order: embedded module build info, a
// VERSION file at the root of the tree, git describe, and finally a
// placeholder when nothing is available.
package version

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime/debug"
	"strings"
)

// Unknown is returned when no version source is available.
const Unknown = "0.0.0+unknown"

var reDescribe = regexp.MustCompile(`^v?(\d+\.\d+\.\d+)(?:-(\d+)-g([0-9a-f]+))?$`)

// Get resolves the version of the current binary, falling back to the
// working directory for file and git based lookups.
func Get() string {
	if v, ok := FromBuildInfo(); ok {
		return v
	}
	dir, err := os.Getwd()
	if err != nil {
		return Unknown
	}
	if v, ok := FromFile(filepath.Join(dir, "VERSION")); ok {
		return v
	}
	if v, ok := FromGit(dir); ok {
		return v
	}
	return Unknown
}

// FromBuildInfo reads the module version stamped by the Go toolchain.
// Development builds report "(devel)" and are treated as unavailable.
func FromBuildInfo() (string, bool) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	v := bi.Main.Version
	if v == "" || v == "(devel)" {
		return "", false
	}
	return strings.TrimPrefix(v, "v"), true
}

// FromFile reads a version string from a plain text file, typically a
// VERSION file at the repository root.
func FromFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", false
	}
	return strings.TrimPrefix(v, "v"), true
}

// FromGit derives a version from git describe in the given directory. A
// checkout that is ahead of the latest tag or has local modifications gets
// a ".devN+hash" suffix.
func FromGit(dir string) (string, bool) {
	out, err := git(dir, "describe", "--tags", "--long")
	if err != nil {
		return "", false
	}
	m := reDescribe.FindStringSubmatch(out)
	if m == nil {
		return "", false
	}
	base, ahead, hash := m[1], m[2], m[3]
	dirty := false
	if _, err := git(dir, "diff", "--quiet"); err != nil {
		dirty = true
	}
	if (ahead == "" || ahead == "0") && !dirty {
		return base, true
	}
	if ahead == "" {
		ahead = "0"
	}
	return fmt.Sprintf("%s.dev%s+%s", base, ahead, hash), true
}

func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
