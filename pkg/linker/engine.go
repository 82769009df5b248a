package linker

import (
	"os"
	"path/filepath"

	"github.com/eloualiche/relink/pkg/config"
	"github.com/eloualiche/relink/pkg/errors"
	"github.com/eloualiche/relink/pkg/filesystem"
	"github.com/eloualiche/relink/pkg/links"
	"github.com/eloualiche/relink/pkg/logging"
	"github.com/eloualiche/relink/pkg/types"
)

// Options configures a run. Zero values select sensible defaults:
// the OS filesystem, a direct executor on that filesystem, a null
// reporter, and the process working directory.
type Options struct {
	// ConfigPath is the links document to process.
	ConfigPath string

	// Cwd is the directory unresolved target tasks default to.
	Cwd string

	// DryRun resolves and reports every pair without mutating the
	// filesystem.
	DryRun bool

	FS       types.FS
	Executor Executor
	Reporter types.Reporter

	// OnDrop observes entries discarded at parse time.
	OnDrop links.DropFunc
}

// Run loads the links document, parses and filters its entries, and
// materializes (or, in dry-run mode, previews) every surviving link.
//
// The returned error is non-nil only for fatal failures: an
// unreadable, unsupported, or malformed document. Everything else is
// recovered at entry or target granularity and recorded in the
// RunResult.
func Run(opts Options) (*types.RunResult, error) {
	logger := logging.GetLogger("linker.engine")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	exec := opts.Executor
	if exec == nil {
		exec = NewDirectExecutor(fsys)
	}
	var reporter types.Reporter = types.NullReporter{}
	if opts.Reporter != nil {
		reporter = opts.Reporter
	}
	cwd := opts.Cwd
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
		}
	}

	result := &types.RunResult{
		ConfigPath: opts.ConfigPath,
		DryRun:     opts.DryRun,
	}

	// Loaded
	raw, err := config.LoadLinks(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	// Parsed
	entries := links.ParseAll(raw, cwd, func(name, reason string) {
		result.Dropped++
		if opts.OnDrop != nil {
			opts.OnDrop(name, reason)
		}
	})

	// Filtered
	processable := make([]*types.LinkEntry, 0, len(entries))
	for _, entry := range entries {
		if links.SourceExists(fsys, entry) {
			processable = append(processable, entry)
			continue
		}
		result.Skipped = append(result.Skipped, types.SkippedEntry{
			Name:   entry.Name,
			Source: describeSource(entry),
		})
		logger.Info().Str("entry", entry.Name).Msg("Source not found, entry skipped")
	}

	reporter.RunStart(opts.ConfigPath, len(processable), opts.DryRun)

	// Processed
	for _, entry := range processable {
		result.Entries = append(result.Entries, processEntry(fsys, exec, reporter, entry, opts.DryRun))
	}

	// Reported
	reporter.Summary(result)
	logger.Info().
		Int("entries", len(result.Entries)).
		Int("skipped", len(result.Skipped)).
		Int("dropped", result.Dropped).
		Int("linked", result.Linked()).
		Bool("dryRun", result.DryRun).
		Msg("Run finished")

	return result, nil
}

// processEntry materializes every pair of one entry. Failures are
// collected per target; the rest of the entry still runs.
func processEntry(fsys types.FS, exec Executor, reporter types.Reporter, entry *types.LinkEntry, dryRun bool) types.EntryResult {
	reporter.EntryStart(entry)

	res := types.EntryResult{
		Name:   entry.Name,
		Kind:   entry.Kind,
		Status: types.StatusPending,
	}

	// The list-length invariant must hold before any link of the
	// entry is created, dry-run included.
	if !entry.ListsMatch() {
		err := errors.Newf(errors.ErrMismatchedLists,
			"entry %s: source and target file lists must have the same length (%d vs %d)",
			entry.Name, len(entry.SourceFiles), len(entry.TargetFiles))
		res.Status = types.StatusFailed
		res.Errors = append(res.Errors, err)
		reporter.PairError(entry, types.LinkPair{}, err)
		reporter.EntryDone(res)
		return res
	}

	pairs := entry.Pairs()
	res.Pairs = len(pairs)

	for i, pair := range pairs {
		reporter.Pair(entry, pair, i, len(pairs))
		reporter.DirIntent(entry, filepath.Dir(pair.Target))

		if dryRun {
			// The source type is still validated so the preview
			// matches what a real run would do.
			if err := validateSource(fsys, pair.Source, entry.Kind.IsDirectory()); err != nil {
				res.Errors = append(res.Errors, err)
				reporter.PairError(entry, pair, err)
				continue
			}
			res.Linked++
			continue
		}

		if err := Materialize(fsys, exec, pair.Source, pair.Target, entry.Kind.IsDirectory()); err != nil {
			res.Errors = append(res.Errors, err)
			reporter.PairError(entry, pair, err)
			continue
		}
		res.Linked++
	}

	switch {
	case len(res.Errors) == 0:
		res.Status = types.StatusSucceeded
	case res.Linked > 0:
		res.Status = types.StatusPartiallyFailed
	default:
		res.Status = types.StatusFailed
	}

	reporter.EntryDone(res)
	return res
}

// describeSource summarizes what was looked for, for the skipped
// report.
func describeSource(entry *types.LinkEntry) string {
	if entry.Kind == types.KindDirectory || len(entry.SourceFiles) == 0 {
		return entry.SourceRoot
	}
	if len(entry.SourceFiles) == 1 {
		return filepath.Join(entry.SourceRoot, entry.SourceFiles[0])
	}
	return filepath.Join(entry.SourceRoot, entry.SourceFiles[0]) + ", ..."
}
