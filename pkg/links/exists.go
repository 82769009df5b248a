package links

import (
	"path/filepath"

	"github.com/eloualiche/relink/pkg/types"
)

// SourceExists reports whether every source path of the entry exists.
// This is an existence check only; whether the filesystem type
// matches the declared kind is verified at link time.
//
// Directory entries check the source root itself. File and Files
// entries check every source file under the source root; an empty
// list is vacuously true, although valid parsing never produces one.
func SourceExists(fsys types.FS, entry *types.LinkEntry) bool {
	if entry.Kind == types.KindDirectory {
		_, err := fsys.Stat(entry.SourceRoot)
		return err == nil
	}

	for _, sf := range entry.SourceFiles {
		if _, err := fsys.Stat(filepath.Join(entry.SourceRoot, sf)); err != nil {
			return false
		}
	}
	return true
}
