// Package linker is the symlink materialization engine. It expands
// validated link entries into filesystem operations, clears whatever
// currently occupies each target slot, and creates the symlinks,
// reporting per-entry and aggregate results.
//
// Processing is strictly sequential. Per-target failures never abort
// the run; only configuration loading errors do.
package linker
