// Package links turns the raw links document into validated entries
// and filters out entries whose sources are missing.
package links

import (
	"sort"

	"github.com/eloualiche/relink/pkg/config"
	"github.com/eloualiche/relink/pkg/logging"
	"github.com/eloualiche/relink/pkg/paths"
	"github.com/eloualiche/relink/pkg/types"
)

// Drop reasons passed to the DropFunc diagnostic callback.
const (
	DropNotAnObject    = "entry is not an object"
	DropUnknownKind    = "metadata.type missing or unrecognized"
	DropNoSourceFile   = "source.file missing"
	DropBadSourceFiles = "source.file is not a list of strings"
)

// DropFunc observes entries discarded during parsing. Dropping is
// silent by design; the callback exists so callers and tests can
// count drops without scraping log output.
type DropFunc func(name, reason string)

// Parse converts one raw mapping value into a LinkEntry resolved
// against cwd. It returns nil when the entry must be dropped: the
// value is not object-shaped, metadata.type is not a recognized kind,
// or the source file attribute is unusable for the declared kind.
//
// Defaults applied here, and nowhere else:
//
//	source.task   -> "" (contributes nothing to the join)
//	target.task   -> cwd
//	target.file   -> source.file
func Parse(name string, raw interface{}, cwd string) *types.LinkEntry {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}

	metadata := subMap(obj, "metadata")
	kind, ok := types.ParseLinkKind(getString(metadata, "type"))
	if !ok {
		return nil
	}

	source := subMap(obj, "source")
	target := subMap(obj, "target")

	entry := &types.LinkEntry{
		Name:        name,
		Kind:        kind,
		Description: getString(metadata, "description"),
		SourceRoot:  paths.ResolveRoot(getString(source, "task"), getString(source, "directory"), ""),
		TargetRoot:  paths.ResolveRoot(getString(target, "task"), getString(target, "directory"), cwd),
	}

	switch kind {
	case types.KindFile:
		sf := getString(source, "file")
		if sf == "" {
			return nil
		}
		tf := getString(target, "file")
		if tf == "" {
			tf = sf
		}
		entry.SourceFiles = []string{sf}
		entry.TargetFiles = []string{tf}

	case types.KindFiles:
		sfs, ok := getStringSlice(source, "file")
		if !ok || len(sfs) == 0 {
			return nil
		}
		entry.SourceFiles = sfs

		// Target list is copied verbatim when present, even when the
		// lengths differ; the engine rejects the mismatch before
		// creating any link of the entry.
		if tfs, present := rawSlice(target, "file"); present {
			entry.TargetFiles = tfs
		} else {
			entry.TargetFiles = append([]string(nil), sfs...)
		}

	case types.KindDirectory:
		// The directory itself is the unit; no file lists.
	}

	return entry
}

// ParseAll parses every entry of the document, dropping invalid ones
// through onDrop (which may be nil). Entries are returned in lexical
// name order so runs are deterministic.
func ParseAll(cfg config.RawConfig, cwd string, onDrop DropFunc) []*types.LinkEntry {
	logger := logging.GetLogger("links.parse")

	names := make([]string, 0, len(cfg))
	for name := range cfg {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]*types.LinkEntry, 0, len(names))
	for _, name := range names {
		entry := Parse(name, cfg[name], cwd)
		if entry == nil {
			reason := dropReason(cfg[name])
			logger.Debug().Str("entry", name).Str("reason", reason).Msg("Entry dropped")
			if onDrop != nil {
				onDrop(name, reason)
			}
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}

// dropReason re-derives why Parse rejected a value, for diagnostics.
func dropReason(raw interface{}) string {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return DropNotAnObject
	}
	kind, ok := types.ParseLinkKind(getString(subMap(obj, "metadata"), "type"))
	if !ok {
		return DropUnknownKind
	}
	source := subMap(obj, "source")
	switch kind {
	case types.KindFile:
		return DropNoSourceFile
	case types.KindFiles:
		if _, ok := getStringSlice(source, "file"); !ok {
			return DropBadSourceFiles
		}
		return DropNoSourceFile
	default:
		return DropUnknownKind
	}
}

func subMap(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	sub, _ := m[key].(map[string]interface{})
	return sub
}

func getString(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// getStringSlice reads a list attribute. JSON decodes lists as
// []interface{}; TOML may produce []string directly. Non-string
// elements invalidate the whole list.
func getStringSlice(m map[string]interface{}, key string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	switch v := m[key].(type) {
	case []string:
		return append([]string(nil), v...), true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

// rawSlice is getStringSlice plus a presence flag, distinguishing an
// absent attribute (default applies) from a present one.
func rawSlice(m map[string]interface{}, key string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	if _, present := m[key]; !present {
		return nil, false
	}
	out, ok := getStringSlice(m, key)
	if !ok {
		// Present but unusable: treat as an empty list so the
		// length-mismatch check fires instead of silently defaulting.
		return []string{}, true
	}
	return out, true
}
