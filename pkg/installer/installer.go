// Package installer copies the Nickel scaffolding into a project:
// the link contracts and a starter template that exports to the JSON
// document relink consumes.
package installer

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/eloualiche/relink/pkg/errors"
	"github.com/eloualiche/relink/pkg/logging"
)

//go:embed assets
var assets embed.FS

// DefaultDest is the subdirectory tools land in when none is given.
const DefaultDest = "_tools"

// files lists embedded assets and their install location under the
// tools directory, in install order.
var files = []struct {
	asset string
	rel   string
}{
	{"assets/nickel/link_contracts.ncl", "nickel/link_contracts.ncl"},
	{"assets/nickel/links_template.ncl", "nickel/links_template.ncl"},
}

// Options configures an install.
type Options struct {
	// ProjectDir is the project to install into. It must exist.
	ProjectDir string

	// Dest is the tools subdirectory inside the project. "." installs
	// directly into the project; empty selects DefaultDest.
	Dest string

	// Force overwrites files that already exist.
	Force bool
}

// Result records what an install did.
type Result struct {
	// ToolsDir is the resolved directory files were installed under.
	ToolsDir string

	// Installed lists files written, relative to ToolsDir.
	Installed []string

	// Skipped lists files left untouched because they already exist.
	Skipped []string
}

// Install writes the scaffolding files. Existing files are skipped
// unless Force is set, so a re-run never clobbers local edits.
func Install(opts Options) (*Result, error) {
	logger := logging.GetLogger("installer")

	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	absProject, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"cannot resolve project directory %s", projectDir)
	}

	info, err := os.Stat(absProject)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrInstallTarget,
			"project directory does not exist: %s", absProject)
	}

	dest := strings.Trim(opts.Dest, "/")
	if dest == "" {
		dest = DefaultDest
	}

	toolsDir := absProject
	if dest != "." {
		toolsDir = filepath.Join(absProject, dest)
	}

	result := &Result{ToolsDir: toolsDir}

	for _, f := range files {
		rel := f.rel
		target := filepath.Join(toolsDir, filepath.FromSlash(rel))

		if _, err := os.Lstat(target); err == nil && !opts.Force {
			logger.Debug().Str("file", rel).Msg("File exists, skipping")
			result.Skipped = append(result.Skipped, rel)
			continue
		}

		content, err := assets.ReadFile(f.asset)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal,
				"embedded asset missing: %s", f.asset)
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInstallWrite,
				"cannot create directory for %s", rel)
		}
		if err := os.WriteFile(target, content, 0644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInstallWrite,
				"cannot write %s", rel)
		}

		logger.Debug().Str("file", rel).Msg("File installed")
		result.Installed = append(result.Installed, rel)
	}

	return result, nil
}
