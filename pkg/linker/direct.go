package linker

import (
	"github.com/eloualiche/relink/pkg/errors"
	"github.com/eloualiche/relink/pkg/logging"
	"github.com/eloualiche/relink/pkg/types"
)

// DirectExecutor performs operations straight against a types.FS.
type DirectExecutor struct {
	fs types.FS
}

// NewDirectExecutor creates an executor backed by the given
// filesystem.
func NewDirectExecutor(fsys types.FS) *DirectExecutor {
	return &DirectExecutor{fs: fsys}
}

// Execute runs the operations in order, stopping at the first
// failure.
func (e *DirectExecutor) Execute(ops []Operation) error {
	logger := logging.GetLogger("linker.direct")

	for _, op := range ops {
		switch op.Type {
		case OpCreateDir:
			logger.Debug().Str("path", op.Path).Msg("Creating directory")
			if err := e.fs.MkdirAll(op.Path, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate,
					"failed to create directory %s", op.Path)
			}
		case OpCreateSymlink:
			logger.Debug().
				Str("source", op.Source).
				Str("target", op.Path).
				Bool("isDir", op.IsDir).
				Msg("Creating symlink")
			// os.Symlink carries no file/dir distinction on POSIX, so
			// the IsDir hint is a no-op here.
			if err := e.fs.Symlink(op.Source, op.Path); err != nil {
				return errors.Wrapf(err, errors.ErrSymlinkCreate,
					"failed to create symlink %s -> %s", op.Path, op.Source)
			}
		default:
			return errors.Newf(errors.ErrInternal, "unsupported operation type: %s", op.Type)
		}
	}
	return nil
}

var _ Executor = (*DirectExecutor)(nil)
