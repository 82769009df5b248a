// Package synthfs adapts linker operations onto the synthfs
// pipeline, which validates and sequences filesystem mutations before
// touching the disk.
package synthfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"

	"github.com/eloualiche/relink/pkg/errors"
	"github.com/eloualiche/relink/pkg/linker"
	"github.com/eloualiche/relink/pkg/logging"
)

// Executor runs linker operations through a synthfs pipeline against
// the OS filesystem rooted at /. Target slots must already be clear;
// synthfs validation rejects occupied paths.
type Executor struct {
	logger zerolog.Logger
	fs     synthfs.FileSystem
}

// NewExecutor creates a synthfs-backed executor.
func NewExecutor() *Executor {
	return &Executor{
		logger: logging.GetLogger("linker.synthfs"),
		fs:     filesystem.NewOSFileSystem("/"),
	}
}

// Execute converts the operations, batches them into one pipeline,
// and runs it.
func (e *Executor) Execute(ops []linker.Operation) error {
	synthOps := make([]synthfs.Operation, 0, len(ops))
	for _, op := range ops {
		synthOp, err := e.convert(op)
		if err != nil {
			return err
		}
		if synthOp != nil {
			synthOps = append(synthOps, synthOp)
		}
	}

	if len(synthOps) == 0 {
		e.logger.Debug().Msg("No operations to execute")
		return nil
	}

	pipeline := synthfs.NewMemPipeline()
	for _, synthOp := range synthOps {
		if err := pipeline.Add(synthOp); err != nil {
			return errors.Wrap(err, errors.ErrInternal,
				"failed to add operation to pipeline")
		}
	}

	e.logger.Debug().Int("operationCount", len(synthOps)).Msg("Executing pipeline")

	result := synthfs.NewExecutor().Run(context.Background(), pipeline, e.fs)
	if result.GetError() != nil {
		return errors.Wrap(result.GetError(), errors.ErrSymlinkCreate,
			"pipeline execution failed")
	}
	return nil
}

func (e *Executor) convert(op linker.Operation) (synthfs.Operation, error) {
	switch op.Type {
	case linker.OpCreateDir:
		return e.convertCreateDir(op)
	case linker.OpCreateSymlink:
		return e.convertCreateSymlink(op)
	default:
		return nil, errors.Newf(errors.ErrInternal,
			"unsupported operation type: %s", op.Type)
	}
}

func (e *Executor) convertCreateDir(op linker.Operation) (synthfs.Operation, error) {
	if op.Path == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"create directory operation requires a path")
	}

	// synthfs rejects creating a directory that already exists;
	// nothing to do in that case.
	if info, err := os.Stat(op.Path); err == nil && info.IsDir() {
		return nil, nil
	}

	// synthfs paths are relative to the filesystem root.
	relPath, err := filepath.Rel("/", op.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Path)
	}

	e.logger.Debug().Str("path", op.Path).Msg("Creating directory operation")

	opID := core.OperationID(fmt.Sprintf("create-dir-%s", op.Path))
	createOp := operations.NewCreateDirectoryOperation(opID, relPath)
	createOp.SetItem(&directoryItem{
		path: relPath,
		mode: 0755,
	})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

func (e *Executor) convertCreateSymlink(op linker.Operation) (synthfs.Operation, error) {
	if op.Source == "" || op.Path == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"symlink operation requires source and path")
	}

	relPath, err := filepath.Rel("/", op.Path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert path: %s", op.Path)
	}
	relSource, err := filepath.Rel("/", op.Source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"failed to convert source path: %s", op.Source)
	}

	e.logger.Debug().
		Str("source", op.Source).
		Str("target", op.Path).
		Msg("Creating symlink operation")

	opID := core.OperationID(fmt.Sprintf("symlink-%s", op.Path))
	symlinkOp := operations.NewCreateSymlinkOperation(opID, relPath)
	symlinkOp.SetDescriptionDetail("target", relSource)
	symlinkOp.SetItem(&symlinkItem{
		path:   relPath,
		target: relSource,
	})

	return synthfs.NewOperationsPackageAdapter(symlinkOp), nil
}

var _ linker.Executor = (*Executor)(nil)

// Item types synthfs operations carry.

type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }

type symlinkItem struct {
	path   string
	target string
}

func (s *symlinkItem) Path() string   { return s.path }
func (s *symlinkItem) Type() string   { return "symlink" }
func (s *symlinkItem) Target() string { return s.target }
