package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eloualiche/relink/pkg/errors"
	"github.com/eloualiche/relink/pkg/testutil"
)

func TestLoadLinksJSON(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "links.json", `{
		"Config": {
			"metadata": {"type": "file", "description": "editor config"},
			"source": {"directory": "/data/src", "file": "a.txt"},
			"target": {"directory": "dst"}
		}
	}`)

	raw, err := LoadLinks(path)
	require.NoError(t, err)
	require.Contains(t, raw, "Config")

	entry, ok := raw["Config"].(map[string]interface{})
	require.True(t, ok)
	meta, ok := entry["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "file", meta["type"])
}

func TestLoadLinksTOML(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "links.toml", `
[RawData]
  [RawData.metadata]
  type = "directory"
  [RawData.source]
  directory = "/data/raw"
  [RawData.target]
  directory = "input/raw"
`)

	raw, err := LoadLinks(path)
	require.NoError(t, err)
	require.Contains(t, raw, "RawData")

	entry, ok := raw["RawData"].(map[string]interface{})
	require.True(t, ok)
	meta, ok := entry["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "directory", meta["type"])
}

func TestLoadLinksUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := testutil.CreateFile(t, dir, "links.yaml", "a: b\n")

	_, err := LoadLinks(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedFormat))
}

func TestLoadLinksMissingFile(t *testing.T) {
	_, err := LoadLinks(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoadLinksMalformed(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad json", "bad.json", `{"a": `},
		{"bad toml", "bad.toml", "[unclosed\n"},
		{"json array at top level", "array.json", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.CreateFile(t, dir, tt.file, tt.content)
			_, err := LoadLinks(path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
		})
	}
}
