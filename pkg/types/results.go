package types

// EntryStatus is the terminal state of a single entry after a run.
type EntryStatus string

const (
	// StatusPending marks an entry that has not been processed yet.
	StatusPending EntryStatus = "pending"

	// StatusSkipped marks an entry whose source did not exist; it was
	// never attempted.
	StatusSkipped EntryStatus = "skipped"

	// StatusSucceeded marks an entry whose links were all created.
	StatusSucceeded EntryStatus = "succeeded"

	// StatusPartiallyFailed marks an entry where some links were
	// created and at least one failed.
	StatusPartiallyFailed EntryStatus = "partially-failed"

	// StatusFailed marks an entry that failed validation (for
	// example mismatched file lists) or created no links at all.
	StatusFailed EntryStatus = "failed"
)

// EntryResult captures the outcome of processing one entry.
type EntryResult struct {
	Name   string
	Kind   LinkKind
	Status EntryStatus

	// Pairs is the number of link pairs the entry expanded to.
	Pairs int

	// Linked is the number of links actually created (or, in dry-run
	// mode, that would have been created).
	Linked int

	// Errors holds the per-target failures, in processing order.
	Errors []error
}

// SkippedEntry records an entry excluded because its source was
// missing, for the trailing summary.
type SkippedEntry struct {
	Name   string
	Source string
}

// RunResult aggregates a full engine run.
type RunResult struct {
	ConfigPath string
	DryRun     bool

	// Entries holds results for every processed entry, in processing
	// order. Skipped entries appear in Skipped instead.
	Entries []EntryResult

	// Skipped lists entries excluded by the source-existence filter.
	Skipped []SkippedEntry

	// Dropped counts entries discarded at parse time for having an
	// unrecognized shape or kind.
	Dropped int
}

// Success reports whether every processed entry completed without
// failures. Skipped and dropped entries do not count against success.
func (r *RunResult) Success() bool {
	for _, e := range r.Entries {
		if e.Status == StatusPartiallyFailed || e.Status == StatusFailed {
			return false
		}
	}
	return true
}

// Linked returns the total number of links created across all entries.
func (r *RunResult) Linked() int {
	n := 0
	for _, e := range r.Entries {
		n += e.Linked
	}
	return n
}
