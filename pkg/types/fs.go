package types

import "io/fs"

// FS abstracts the filesystem operations relink performs, so the
// engine can be exercised against temp directories in tests without
// touching process-global state.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)

	MkdirAll(path string, perm fs.FileMode) error

	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	Remove(name string) error
	RemoveAll(path string) error
}
