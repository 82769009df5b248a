package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eloualiche/relink/pkg/errors"
	"github.com/eloualiche/relink/pkg/testutil"
	"github.com/eloualiche/relink/pkg/types"
)

// recordingReporter captures engine events for assertions.
type recordingReporter struct {
	started   []string
	pairs     []types.LinkPair
	pairTotal int
	dirs      []string
	errs      []error
	done      []types.EntryResult
	summary   *types.RunResult
}

func (r *recordingReporter) RunStart(string, int, bool) {}
func (r *recordingReporter) EntryStart(e *types.LinkEntry) {
	r.started = append(r.started, e.Name)
}
func (r *recordingReporter) Pair(_ *types.LinkEntry, p types.LinkPair, _, total int) {
	r.pairs = append(r.pairs, p)
	r.pairTotal = total
}
func (r *recordingReporter) DirIntent(_ *types.LinkEntry, path string) {
	r.dirs = append(r.dirs, path)
}
func (r *recordingReporter) PairError(_ *types.LinkEntry, _ types.LinkPair, err error) {
	r.errs = append(r.errs, err)
}
func (r *recordingReporter) EntryDone(res types.EntryResult) {
	r.done = append(r.done, res)
}
func (r *recordingReporter) Summary(res *types.RunResult) {
	r.summary = res
}

func writeLinks(t *testing.T, dir, name, content string) string {
	t.Helper()
	return testutil.CreateFile(t, dir, name, content)
}

func fileEntryJSON(name, srcDir, srcFile, tgtDir string) string {
	return fmt.Sprintf(`"%s": {
		"metadata": {"type": "file"},
		"source": {"directory": "%s", "file": "%s"},
		"target": {"directory": "%s"}
	}`, name, srcDir, srcFile, tgtDir)
}

func TestRunScenarioSingleFile(t *testing.T) {
	// One file entry with an existing source links and exits clean.
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	testutil.CreateFile(t, dir, "src/a.txt", "content")
	dst := filepath.Join(dir, "dst")

	cfg := writeLinks(t, dir, "links.json",
		"{"+fileEntryJSON("Data", src, "a.txt", dst)+"}")

	result, err := Run(Options{ConfigPath: cfg, Cwd: dir})
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Equal(t, 1, result.Linked())
	require.Len(t, result.Entries, 1)
	assert.Equal(t, types.StatusSucceeded, result.Entries[0].Status)

	target := filepath.Join(dst, "a.txt")
	assert.True(t, testutil.SymlinkExists(t, target))
	assert.Equal(t, filepath.Join(src, "a.txt"), testutil.ReadSymlink(t, target))
}

func TestRunScenarioMissingSourceIsSkipped(t *testing.T) {
	// Same as above but the source file does not exist: the entry is
	// excluded, reported as skipped, and the run still succeeds.
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	dst := filepath.Join(dir, "dst")

	cfg := writeLinks(t, dir, "links.json",
		"{"+fileEntryJSON("Data", src, "a.txt", dst)+"}")

	rep := &recordingReporter{}
	result, err := Run(Options{ConfigPath: cfg, Cwd: dir, Reporter: rep})
	require.NoError(t, err)

	assert.True(t, result.Success(), "skipped-only runs count as success")
	assert.Empty(t, result.Entries)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "Data", result.Skipped[0].Name)
	assert.Equal(t, filepath.Join(src, "a.txt"), result.Skipped[0].Source)
	assert.False(t, testutil.SymlinkExists(t, filepath.Join(dst, "a.txt")))
	require.NotNil(t, rep.summary)
}

func TestRunScenarioMismatchedFileLists(t *testing.T) {
	// A mismatched Files entry fails without creating anything, but
	// the other entry still processes.
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	testutil.CreateFile(t, dir, "src/a", "a")
	testutil.CreateFile(t, dir, "src/b", "b")
	testutil.CreateFile(t, dir, "src/ok.txt", "ok")
	dst := filepath.Join(dir, "dst")

	cfg := writeLinks(t, dir, "links.json", fmt.Sprintf(`{
		"Broken": {
			"metadata": {"type": "files"},
			"source": {"directory": "%s", "file": ["a", "b"]},
			"target": {"directory": "%s", "file": ["a"]}
		},
		%s
	}`, src, dst, fileEntryJSON("Works", src, "ok.txt", dst)))

	result, err := Run(Options{ConfigPath: cfg, Cwd: dir})
	require.NoError(t, err)

	assert.False(t, result.Success())
	require.Len(t, result.Entries, 2)

	broken := result.Entries[0]
	assert.Equal(t, "Broken", broken.Name)
	assert.Equal(t, types.StatusFailed, broken.Status)
	assert.Equal(t, 0, broken.Linked)
	require.Len(t, broken.Errors, 1)
	assert.True(t, errors.IsErrorCode(broken.Errors[0], errors.ErrMismatchedLists))
	assert.False(t, testutil.SymlinkExists(t, filepath.Join(dst, "a")))
	assert.False(t, testutil.SymlinkExists(t, filepath.Join(dst, "b")))

	works := result.Entries[1]
	assert.Equal(t, types.StatusSucceeded, works.Status)
	assert.True(t, testutil.SymlinkExists(t, filepath.Join(dst, "ok.txt")))
}

func TestRunScenarioDirectoryReplacesRealTree(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "raw")
	testutil.CreateFile(t, dir, "raw/fresh.csv", "fresh")
	dst := testutil.CreateDir(t, dir, "input/raw")
	testutil.CreateFile(t, dir, "input/raw/stale.csv", "stale")

	cfg := writeLinks(t, dir, "links.json", fmt.Sprintf(`{
		"Raw": {
			"metadata": {"type": "directory"},
			"source": {"directory": "%s"},
			"target": {"directory": "%s"}
		}
	}`, src, dst))

	result, err := Run(Options{ConfigPath: cfg, Cwd: dir})
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.True(t, testutil.SymlinkExists(t, dst))
	assert.Equal(t, src, testutil.ReadSymlink(t, dst))
	assert.True(t, testutil.FileExists(t, filepath.Join(dst, "fresh.csv")))
}

func TestRunFilesEntryLinksAllPairs(t *testing.T) {
	// More pairs than the display truncation limit: every pair is
	// still linked; truncation is a reporting concern only.
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	dst := filepath.Join(dir, "dst")

	names := make([]string, 0, 8)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("f%d.txt", i)
		testutil.CreateFile(t, dir, "src/"+name, name)
		names = append(names, fmt.Sprintf("%q", name))
	}

	cfg := writeLinks(t, dir, "links.json", fmt.Sprintf(`{
		"Batch": {
			"metadata": {"type": "files"},
			"source": {"directory": "%s", "file": [%s]},
			"target": {"directory": "%s"}
		}
	}`, src, strings.Join(names, ", "), dst))

	rep := &recordingReporter{}
	result, err := Run(Options{ConfigPath: cfg, Cwd: dir, Reporter: rep})
	require.NoError(t, err)

	assert.Equal(t, 8, result.Linked())
	assert.Len(t, rep.pairs, 8, "reporter sees every pair")
	assert.Equal(t, 8, rep.pairTotal)
	for i := 0; i < 8; i++ {
		assert.True(t, testutil.SymlinkExists(t, filepath.Join(dst, fmt.Sprintf("f%d.txt", i))))
	}
}

func TestRunDryRunMutatesNothing(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	testutil.CreateFile(t, dir, "src/a.txt", "content")
	dst := filepath.Join(dir, "dst")

	cfg := writeLinks(t, dir, "links.json",
		"{"+fileEntryJSON("Data", src, "a.txt", dst)+"}")

	rep := &recordingReporter{}
	result, err := Run(Options{ConfigPath: cfg, Cwd: dir, DryRun: true, Reporter: rep})
	require.NoError(t, err)

	assert.True(t, result.Success())
	assert.Equal(t, 1, result.Linked(), "dry-run reports what would be linked")
	assert.Len(t, rep.pairs, 1, "pairs are still resolved and reported")

	_, statErr := os.Lstat(dst)
	assert.True(t, os.IsNotExist(statErr), "target directory must not be created")
}

func TestRunReportsDirectoryIntent(t *testing.T) {
	// Every pair announces the parent directory its link needs, in
	// dry-run and real runs alike.
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	testutil.CreateFile(t, dir, "src/a.txt", "content")
	dst := filepath.Join(dir, "dst")

	cfg := writeLinks(t, dir, "links.json",
		"{"+fileEntryJSON("Data", src, "a.txt", dst)+"}")

	dry := &recordingReporter{}
	_, err := Run(Options{ConfigPath: cfg, Cwd: dir, DryRun: true, Reporter: dry})
	require.NoError(t, err)
	assert.Equal(t, []string{dst}, dry.dirs)

	live := &recordingReporter{}
	_, err = Run(Options{ConfigPath: cfg, Cwd: dir, Reporter: live})
	require.NoError(t, err)
	assert.Equal(t, []string{dst}, live.dirs)
}

func TestRunDryRunValidatesSourceTypes(t *testing.T) {
	// A file entry whose source turns out to be a directory must fail
	// the preview the same way it would fail the real run.
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	testutil.CreateDir(t, dir, "src/trap.txt")
	dst := filepath.Join(dir, "dst")

	cfg := writeLinks(t, dir, "links.json",
		"{"+fileEntryJSON("Trap", src, "trap.txt", dst)+"}")

	rep := &recordingReporter{}
	result, err := Run(Options{ConfigPath: cfg, Cwd: dir, DryRun: true, Reporter: rep})
	require.NoError(t, err)

	assert.False(t, result.Success())
	require.Len(t, result.Entries, 1)
	assert.Equal(t, types.StatusFailed, result.Entries[0].Status)
	assert.Equal(t, 0, result.Entries[0].Linked)
	require.Len(t, rep.errs, 1)
	assert.True(t, errors.IsErrorCode(rep.errs[0], errors.ErrSourceTypeMismatch))

	_, statErr := os.Lstat(dst)
	assert.True(t, os.IsNotExist(statErr), "dry-run must not touch the target")
}

func TestRunDryRunStillFailsMismatchedLists(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	testutil.CreateFile(t, dir, "src/a", "a")
	testutil.CreateFile(t, dir, "src/b", "b")

	cfg := writeLinks(t, dir, "links.json", fmt.Sprintf(`{
		"Broken": {
			"metadata": {"type": "files"},
			"source": {"directory": "%s", "file": ["a", "b"]},
			"target": {"directory": "%s", "file": ["a"]}
		}
	}`, src, filepath.Join(dir, "dst")))

	result, err := Run(Options{ConfigPath: cfg, Cwd: dir, DryRun: true})
	require.NoError(t, err)

	assert.False(t, result.Success())
	require.Len(t, result.Entries, 1)
	assert.Equal(t, types.StatusFailed, result.Entries[0].Status)
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	testutil.CreateFile(t, dir, "src/a.txt", "content")
	dst := filepath.Join(dir, "dst")

	cfg := writeLinks(t, dir, "links.json",
		"{"+fileEntryJSON("Data", src, "a.txt", dst)+"}")

	first, err := Run(Options{ConfigPath: cfg, Cwd: dir})
	require.NoError(t, err)
	require.True(t, first.Success())

	second, err := Run(Options{ConfigPath: cfg, Cwd: dir})
	require.NoError(t, err)
	assert.True(t, second.Success(), "second run over unchanged state must not error")
	assert.Equal(t, filepath.Join(src, "a.txt"), testutil.ReadSymlink(t, filepath.Join(dst, "a.txt")))
}

func TestRunPartialFailureContinues(t *testing.T) {
	// One pair of a Files entry has a source whose type flipped to a
	// directory after the existence filter: that pair fails, the
	// other still links, and the entry is partially failed.
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	testutil.CreateFile(t, dir, "src/good.txt", "good")
	testutil.CreateDir(t, dir, "src/trap.txt")
	dst := filepath.Join(dir, "dst")

	cfg := writeLinks(t, dir, "links.json", fmt.Sprintf(`{
		"Mixed": {
			"metadata": {"type": "files"},
			"source": {"directory": "%s", "file": ["good.txt", "trap.txt"]},
			"target": {"directory": "%s"}
		}
	}`, src, dst))

	rep := &recordingReporter{}
	result, err := Run(Options{ConfigPath: cfg, Cwd: dir, Reporter: rep})
	require.NoError(t, err)

	assert.False(t, result.Success())
	require.Len(t, result.Entries, 1)
	assert.Equal(t, types.StatusPartiallyFailed, result.Entries[0].Status)
	assert.Equal(t, 1, result.Entries[0].Linked)
	require.Len(t, rep.errs, 1)
	assert.True(t, errors.IsErrorCode(rep.errs[0], errors.ErrSourceTypeMismatch))
	assert.True(t, testutil.SymlinkExists(t, filepath.Join(dst, "good.txt")))
	assert.False(t, testutil.SymlinkExists(t, filepath.Join(dst, "trap.txt")))
}

func TestRunCountsDrops(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	testutil.CreateFile(t, dir, "src/a.txt", "content")

	cfg := writeLinks(t, dir, "links.json", fmt.Sprintf(`{
		"Bogus": {"metadata": {"type": "hardlink"}},
		%s
	}`, fileEntryJSON("Data", src, "a.txt", filepath.Join(dir, "dst"))))

	var dropped []string
	result, err := Run(Options{
		ConfigPath: cfg,
		Cwd:        dir,
		OnDrop: func(name, reason string) {
			dropped = append(dropped, name)
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, []string{"Bogus"}, dropped)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Data", result.Entries[0].Name)
}

func TestRunFatalOnBadConfig(t *testing.T) {
	dir := t.TempDir()

	_, err := Run(Options{ConfigPath: filepath.Join(dir, "absent.json"), Cwd: dir})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))

	bad := writeLinks(t, dir, "links.ini", "[x]\n")
	_, err = Run(Options{ConfigPath: bad, Cwd: dir})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedFormat))
}

func TestRunTargetTaskDefaultsToCwd(t *testing.T) {
	dir := t.TempDir()
	src := testutil.CreateDir(t, dir, "src")
	testutil.CreateFile(t, dir, "src/a.txt", "content")

	cfg := writeLinks(t, dir, "links.json", fmt.Sprintf(`{
		"Data": {
			"metadata": {"type": "file"},
			"source": {"directory": "%s", "file": "a.txt"},
			"target": {"directory": "out"}
		}
	}`, src))

	result, err := Run(Options{ConfigPath: cfg, Cwd: dir})
	require.NoError(t, err)
	require.True(t, result.Success())

	assert.True(t, testutil.SymlinkExists(t, filepath.Join(dir, "out", "a.txt")))
}
