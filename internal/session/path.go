package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SplitASLPath splits the colon-separated ASL_PATH environment variable
// (spec.md §6) into its component directories, dropping empty segments
// (a leading/trailing/doubled colon) the way a standard PATH parser does.
func SplitASLPath(env string) []string {
	if env == "" {
		return nil
	}

	var dirs []string

	for _, p := range strings.Split(env, ":") {
		if p != "" {
			dirs = append(dirs, p)
		}
	}

	return dirs
}

// ResolveSource finds name on searchPath, trying the current directory
// first (so a local file always shadows the installed prelude), then each
// ASL_PATH entry in order. name is usually a bare filename like
// "prelude.asl" referenced without a directory component.
func ResolveSource(name string, searchPath []string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	for _, dir := range searchPath {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("session: %q not found on ASL_PATH %v", name, searchPath)
}
