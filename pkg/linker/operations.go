package linker

// OperationType identifies a mutation the engine wants performed.
type OperationType string

const (
	// OpCreateDir creates a directory and any missing parents.
	// Idempotent: an existing directory is not an error.
	OpCreateDir OperationType = "create-dir"

	// OpCreateSymlink creates a symlink at Path pointing to Source.
	// The target slot has already been cleared.
	OpCreateSymlink OperationType = "create-symlink"
)

// Operation is one filesystem mutation. The engine emits operations;
// an Executor carries them out.
type Operation struct {
	Type   OperationType
	Path   string
	Source string

	// IsDir marks directory symlinks. A hint only: platforms without
	// distinct file and directory symlinks ignore it.
	IsDir bool
}

// Executor performs a batch of operations in order, stopping at the
// first failure.
type Executor interface {
	Execute(ops []Operation) error
}
