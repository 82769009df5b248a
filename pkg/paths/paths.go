// Package paths holds the path arithmetic used when resolving link
// entries and formatting them for display.
package paths

import (
	"path/filepath"
	"strings"
)

// ResolveRoot joins a task path with a directory, applying the
// fallback when the task is empty. Empty segments contribute nothing
// to the join, so a config with neither task nor directory resolves
// to the fallback alone.
func ResolveRoot(task, directory, fallback string) string {
	if task == "" {
		task = fallback
	}
	if task == "" {
		return directory
	}
	if directory == "" {
		return task
	}
	return filepath.Join(task, directory)
}

// TrimCommonPrefix removes the shared leading directories from two
// paths so progress lines show only where they diverge. When one path
// is fully contained in the other's prefix it collapses to ".".
func TrimCommonPrefix(a, b string) (string, string) {
	aParts := split(a)
	bParts := split(b)

	common := 0
	for common < len(aParts) && common < len(bParts) && aParts[common] == bParts[common] {
		common++
	}

	return joinOrDot(aParts[common:]), joinOrDot(bParts[common:])
}

func split(p string) []string {
	p = filepath.Clean(p)
	if p == "." {
		return nil
	}
	parts := strings.Split(p, string(filepath.Separator))
	// Absolute paths split with a leading empty element; keep the
	// separator as its own part so "/a" and "a" never compare equal.
	if len(parts) > 0 && parts[0] == "" {
		parts[0] = string(filepath.Separator)
	}
	return parts
}

func joinOrDot(parts []string) string {
	if len(parts) == 0 {
		return "."
	}
	return filepath.Join(parts...)
}
