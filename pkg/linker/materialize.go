package linker

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/eloualiche/relink/pkg/errors"
	"github.com/eloualiche/relink/pkg/types"
)

// Materialize makes target a symlink to source, replacing whatever
// occupies the target slot. Steps, in order:
//
//  1. the source's filesystem type must match the declared kind;
//  2. the target slot is cleared: a symlink (dangling included) is
//     removed itself, never followed; a real directory is removed
//     recursively when isDir; a real file is removed;
//  3. the target's parent directory is created if missing;
//  4. the symlink is created, with the directory hint when isDir.
//
// Clearing runs directly against the filesystem; creation goes
// through the executor.
func Materialize(fsys types.FS, exec Executor, source, target string, isDir bool) error {
	if err := validateSource(fsys, source, isDir); err != nil {
		return err
	}

	if err := clearTarget(fsys, target, isDir); err != nil {
		return err
	}

	return exec.Execute([]Operation{
		{Type: OpCreateDir, Path: filepath.Dir(target)},
		{Type: OpCreateSymlink, Path: target, Source: source, IsDir: isDir},
	})
}

// validateSource checks the source against the declared kind.
func validateSource(fsys types.FS, source string, isDir bool) error {
	info, err := fsys.Stat(source)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceNotFound,
			"source %s disappeared before linking", source)
	}

	if isDir && !info.IsDir() {
		return errors.Newf(errors.ErrSourceTypeMismatch,
			"source %s declared as directory but is not a directory", source)
	}
	if !isDir && !info.Mode().IsRegular() {
		return errors.Newf(errors.ErrSourceTypeMismatch,
			"source %s declared as file but is not a regular file", source)
	}
	return nil
}

// clearTarget empties the target slot. A symlink is unlinked without
// being followed, whatever it points at and whether or not it
// resolves.
func clearTarget(fsys types.FS, target string, isDir bool) error {
	info, err := fsys.Lstat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrTargetClear,
			"cannot inspect target %s", target)
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		err = fsys.Remove(target)
	case isDir:
		err = fsys.RemoveAll(target)
	default:
		// A real directory in a file slot fails here and surfaces as
		// a per-target error.
		err = fsys.Remove(target)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrTargetClear,
			"cannot clear target %s", target)
	}
	return nil
}
