package types

import "path/filepath"

// LinkEntry is a single named link declaration, fully resolved against
// the working directory it was parsed with. Entries are immutable
// after construction; Pairs recomputes its output from entry state so
// the sequence is deterministic and restartable.
type LinkEntry struct {
	// Name is the mapping key from the configuration document. Used
	// for reporting only.
	Name string

	// Kind is the validated link shape.
	Kind LinkKind

	// Description is optional display-only text from metadata.
	Description string

	// SourceRoot is source.task joined with source.directory.
	SourceRoot string

	// TargetRoot is target.task (defaulting to the caller's working
	// directory) joined with target.directory.
	TargetRoot string

	// SourceFiles and TargetFiles hold the per-file names for
	// KindFile (exactly one element each) and KindFiles (equal
	// lengths). Both are nil for KindDirectory.
	SourceFiles []string
	TargetFiles []string
}

// LinkPair is one concrete (source, target) path pair derived from an
// entry.
type LinkPair struct {
	Source string
	Target string
}

// Pairs expands the entry into its ordered link pairs: one pair for
// KindFile and KindDirectory, one per file for KindFiles. Source
// order is preserved. Callers must have validated list lengths for
// KindFiles; extra source entries without a target counterpart are
// not emitted.
func (e *LinkEntry) Pairs() []LinkPair {
	switch e.Kind {
	case KindDirectory:
		return []LinkPair{{Source: e.SourceRoot, Target: e.TargetRoot}}
	default:
		pairs := make([]LinkPair, 0, len(e.SourceFiles))
		for i, sf := range e.SourceFiles {
			if i >= len(e.TargetFiles) {
				break
			}
			pairs = append(pairs, LinkPair{
				Source: filepath.Join(e.SourceRoot, sf),
				Target: filepath.Join(e.TargetRoot, e.TargetFiles[i]),
			})
		}
		return pairs
	}
}

// ListsMatch reports whether source and target file lists have equal
// length. Always true for KindDirectory.
func (e *LinkEntry) ListsMatch() bool {
	if e.Kind == KindDirectory {
		return true
	}
	return len(e.SourceFiles) == len(e.TargetFiles)
}
