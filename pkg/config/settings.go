package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	relinkerr "github.com/eloualiche/relink/pkg/errors"
	"github.com/eloualiche/relink/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// DisplaySettings controls console reporting.
type DisplaySettings struct {
	// MaxPairs is the number of pairs shown per entry before
	// truncation; linking is never truncated.
	MaxPairs int  `koanf:"max_pairs"`
	NoColor  bool `koanf:"no_color"`
}

// LoggingSettings holds the default log verbosity, overridable with
// the -v flag.
type LoggingSettings struct {
	Verbosity int `koanf:"verbosity"`
}

// InstallSettings holds defaults for the install command.
type InstallSettings struct {
	Dest string `koanf:"dest"`
}

// Settings is the application configuration, layered from embedded
// defaults, an optional settings file, and RELINK_ environment
// variables.
type Settings struct {
	Display DisplaySettings `koanf:"display"`
	Logging LoggingSettings `koanf:"logging"`
	Install InstallSettings `koanf:"install"`
}

// settingsFileCandidates returns the locations probed for a settings
// file, in priority order. The first existing file wins.
func settingsFileCandidates() []string {
	candidates := []string{".relink.toml"}
	if xdg.ConfigHome != "" {
		candidates = append(candidates, filepath.Join(xdg.ConfigHome, "relink", "relink.toml"))
	}
	return candidates
}

// LoadSettings builds the layered application settings.
func LoadSettings() (*Settings, error) {
	return loadSettings(settingsFileCandidates())
}

func loadSettings(candidates []string) (*Settings, error) {
	logger := logging.GetLogger("config.settings")
	k := koanf.New(".")

	// 1. Hard fallbacks, in case the embedded file ever loses a key
	hardDefaults := map[string]interface{}{
		"display.max_pairs": 5,
		"install.dest":      "_tools",
	}
	if err := k.Load(confmap.Provider(hardDefaults, "."), nil); err != nil {
		return nil, relinkerr.Wrap(err, relinkerr.ErrConfigLoad, "failed to load base settings")
	}

	// 2. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, relinkerr.Wrap(err, relinkerr.ErrConfigLoad, "failed to load default settings")
	}

	// 3. First existing settings file
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, relinkerr.Wrapf(err, relinkerr.ErrConfigParse,
				"failed to load settings from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Settings file loaded")
		break
	}

	// 4. Environment overrides: RELINK_DISPLAY_MAX_PAIRS and friends
	if err := k.Load(env.Provider("RELINK_", ".", envKeyTransform), nil); err != nil {
		return nil, relinkerr.Wrap(err, relinkerr.ErrConfigLoad, "failed to load environment settings")
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, relinkerr.Wrap(err, relinkerr.ErrConfigParse, "failed to unmarshal settings")
	}

	return &s, nil
}

// envKeyTransform maps RELINK_DISPLAY_MAX_PAIRS to display.max_pairs.
// Section and key are separated by the first underscore; the rest of
// the name keeps its underscores.
func envKeyTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "RELINK_"))
	return strings.Replace(s, "_", ".", 1)
}
