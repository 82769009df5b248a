package display

import (
	"fmt"
	"io"
	"os"

	"github.com/eloualiche/relink/pkg/paths"
	"github.com/eloualiche/relink/pkg/style"
	"github.com/eloualiche/relink/pkg/types"
)

// DefaultMaxPairs is how many pair lines an entry shows before the
// remainder collapses into a single count. Truncation is purely
// visual; every pair is still linked.
const DefaultMaxPairs = 5

// Options configures a ConsoleReporter.
type Options struct {
	// Writer defaults to stdout.
	Writer io.Writer

	// MaxPairs caps pair lines per entry; zero or negative selects
	// DefaultMaxPairs.
	MaxPairs int

	// NoColor forces plain text even on a capable terminal.
	NoColor bool
}

// ConsoleReporter prints run progress as it happens and a summary at
// the end.
type ConsoleReporter struct {
	w        io.Writer
	maxPairs int
	colored  bool
	dryRun   bool

	// per-entry state
	pairIndex int
	lastDir   string
}

// NewConsoleReporter creates a reporter. Styling is enabled only when
// the writer is a capable terminal and color is not disabled.
func NewConsoleReporter(opts Options) *ConsoleReporter {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	maxPairs := opts.MaxPairs
	if maxPairs <= 0 {
		maxPairs = DefaultMaxPairs
	}

	colored := false
	if !opts.NoColor {
		if f, ok := w.(*os.File); ok {
			colored = DetectFormat(f) == FormatTerminal
		}
	}

	return &ConsoleReporter{
		w:        w,
		maxPairs: maxPairs,
		colored:  colored,
	}
}

// RunStart prints the run header.
func (r *ConsoleReporter) RunStart(configPath string, entries int, dryRun bool) {
	r.dryRun = dryRun
	fmt.Fprintf(r.w, "%s\n", r.styled("Title",
		fmt.Sprintf("Linking %d entries from %s", entries, configPath)))
	if dryRun {
		fmt.Fprintf(r.w, "%s\n", r.styled("Muted", "Dry run: no links will be created."))
	}
}

// EntryStart prints the entry header.
func (r *ConsoleReporter) EntryStart(e *types.LinkEntry) {
	r.pairIndex = 0
	r.lastDir = ""
	fmt.Fprintf(r.w, "\n%s (%s)\n", r.styled("Entry", e.Name), e.Kind)
	if e.Description != "" {
		fmt.Fprintf(r.w, "  %s\n", r.styled("Muted", e.Description))
	}
}

// Pair prints one target -> source line, truncating after maxPairs.
func (r *ConsoleReporter) Pair(_ *types.LinkEntry, pair types.LinkPair, index, total int) {
	r.pairIndex = index
	if index == r.maxPairs {
		fmt.Fprintf(r.w, "  %s\n", r.styled("Muted",
			fmt.Sprintf("... and %d more files", total-r.maxPairs)))
	}
	if index >= r.maxPairs {
		return
	}

	target, source := paths.TrimCommonPrefix(pair.Target, pair.Source)
	fmt.Fprintf(r.w, "  %s -> %s\n", target, r.styled("Path", source))
}

// DirIntent prints the parent directory a pair's link needs. Runs of
// pairs sharing a parent print it once, and truncation follows Pair.
func (r *ConsoleReporter) DirIntent(_ *types.LinkEntry, path string) {
	if r.pairIndex >= r.maxPairs || path == r.lastDir {
		return
	}
	r.lastDir = path
	fmt.Fprintf(r.w, "    %s\n", r.styled("Muted", fmt.Sprintf("mkdir -p %s", path)))
}

// PairError prints a per-target failure. Entry-level failures arrive
// with a zero pair.
func (r *ConsoleReporter) PairError(_ *types.LinkEntry, pair types.LinkPair, err error) {
	if pair.Target == "" {
		fmt.Fprintf(r.w, "  %s %v\n", r.errorIndicator(), err)
		return
	}
	fmt.Fprintf(r.w, "  %s %s: %v\n", r.errorIndicator(), pair.Target, err)
}

// EntryDone prints the entry's outcome line.
func (r *ConsoleReporter) EntryDone(res types.EntryResult) {
	switch res.Status {
	case types.StatusSucceeded:
		if r.dryRun {
			fmt.Fprintf(r.w, "  %s %s\n", r.infoIndicator(),
				r.statusText(res.Status, fmt.Sprintf("would link %d of %d", res.Linked, res.Pairs)))
			return
		}
		fmt.Fprintf(r.w, "  %s %s\n", r.successIndicator(),
			r.statusText(res.Status, fmt.Sprintf("linked %d of %d", res.Linked, res.Pairs)))
	case types.StatusPartiallyFailed:
		fmt.Fprintf(r.w, "  %s %s\n", r.warningIndicator(),
			r.statusText(res.Status, fmt.Sprintf("linked %d of %d", res.Linked, res.Pairs)))
	case types.StatusFailed:
		fmt.Fprintf(r.w, "  %s %s\n", r.errorIndicator(), r.statusText(res.Status, "failed"))
	}
}

// statusText colors an outcome line by entry status.
func (r *ConsoleReporter) statusText(status types.EntryStatus, s string) string {
	if !r.colored {
		return s
	}
	return style.StatusStyle(status).Sprint(s)
}

// Summary prints the trailing totals and the skipped entries.
func (r *ConsoleReporter) Summary(result *types.RunResult) {
	fmt.Fprintln(r.w)

	if len(result.Skipped) > 0 {
		fmt.Fprintf(r.w, "%s\n", r.styled("Title", "Skipped (source not found)"))
		for _, s := range result.Skipped {
			fmt.Fprintf(r.w, "  %s %s: %s\n", r.skippedIndicator(),
				s.Name, r.styled("Muted", s.Source))
		}
		fmt.Fprintln(r.w)
	}

	verb := "linked"
	if result.DryRun {
		verb = "would link"
	}
	line := fmt.Sprintf("%d entries processed, %s %d targets", len(result.Entries), verb, result.Linked())
	if len(result.Skipped) > 0 {
		line += fmt.Sprintf(", %d skipped", len(result.Skipped))
	}
	if result.Dropped > 0 {
		line += fmt.Sprintf(", %d malformed entries ignored", result.Dropped)
	}
	fmt.Fprintf(r.w, "%s\n", r.styled("Normal", line))

	if !result.Success() {
		fmt.Fprintf(r.w, "%s\n", r.styled("Error", "Some links could not be created."))
	}
}

func (r *ConsoleReporter) styled(name, s string) string {
	if !r.colored {
		return s
	}
	return style.GetStyle(name).Render(s)
}

func (r *ConsoleReporter) successIndicator() string {
	if !r.colored {
		return "✓"
	}
	return style.SuccessIndicator
}

func (r *ConsoleReporter) errorIndicator() string {
	if !r.colored {
		return "✗"
	}
	return style.ErrorIndicator
}

func (r *ConsoleReporter) warningIndicator() string {
	if !r.colored {
		return "!"
	}
	return style.WarningIndicator
}

func (r *ConsoleReporter) infoIndicator() string {
	if !r.colored {
		return "•"
	}
	return style.InfoIndicator
}

func (r *ConsoleReporter) skippedIndicator() string {
	if !r.colored {
		return "○"
	}
	return style.SkippedIndicator
}

var _ types.Reporter = (*ConsoleReporter)(nil)
