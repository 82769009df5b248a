package types

// Reporter receives progress events during an engine run. The engine
// core never writes to process-wide streams directly; injecting a
// reporter keeps it testable.
//
// Pair is invoked for every link pair, including in dry-run mode.
// Display truncation for long Files entries is a reporter concern,
// driven by the index and total arguments.
type Reporter interface {
	// RunStart announces the configuration being processed and how
	// many entries survived the existence filter.
	RunStart(configPath string, entries int, dryRun bool)

	// EntryStart announces an entry before its pairs are processed.
	EntryStart(entry *LinkEntry)

	// Pair reports one resolved (source, target) pair. index is the
	// zero-based position within the entry, total the entry's pair
	// count.
	Pair(entry *LinkEntry, pair LinkPair, index, total int)

	// DirIntent reports the parent directory a pair's link needs,
	// created if missing. Emitted for every pair, dry-run included.
	DirIntent(entry *LinkEntry, path string)

	// PairError reports a per-target failure. The run continues.
	PairError(entry *LinkEntry, pair LinkPair, err error)

	// EntryDone reports the entry's terminal state.
	EntryDone(result EntryResult)

	// Summary reports the aggregate outcome, including skipped
	// entries, after all processing is finished.
	Summary(result *RunResult)
}

// NullReporter discards all events. Useful as a default and in tests
// that only inspect the RunResult.
type NullReporter struct{}

func (NullReporter) RunStart(string, int, bool)            {}
func (NullReporter) EntryStart(*LinkEntry)                 {}
func (NullReporter) Pair(*LinkEntry, LinkPair, int, int)   {}
func (NullReporter) DirIntent(*LinkEntry, string)          {}
func (NullReporter) PairError(*LinkEntry, LinkPair, error) {}
func (NullReporter) EntryDone(EntryResult)                 {}
func (NullReporter) Summary(*RunResult)                    {}

var _ Reporter = NullReporter{}
