package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/eloualiche/relink/pkg/errors"
	"github.com/eloualiche/relink/pkg/logging"
)

// RawConfig is the links document exactly as deserialized: a mapping
// from link name to an untyped attribute structure. Values stay
// untyped until links.Parse shapes them into entries.
type RawConfig map[string]interface{}

// LoadLinks reads a links document from path. The format is selected
// by file extension: .json and .toml are supported, anything else is
// an ErrUnsupportedFormat. Malformed documents yield ErrConfigParse.
// The file is only read, never modified.
func LoadLinks(path string) (RawConfig, error) {
	logger := logging.GetLogger("config.links")

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".toml":
	default:
		return nil, errors.Newf(errors.ErrUnsupportedFormat,
			"unsupported file extension %q, only .json and .toml are supported", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"cannot read links file %s", path)
	}

	var raw RawConfig
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"malformed links file %s", path)
	}

	logger.Debug().
		Str("path", path).
		Str("format", ext).
		Int("entries", len(raw)).
		Msg("Links document loaded")

	return raw, nil
}
