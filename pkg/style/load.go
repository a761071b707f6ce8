package style

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/brewvino/placecards/pkg/errors"
)

// LoadFile reads a style configuration from a JSON or TOML file, chosen by
// extension (.toml is TOML, everything else is JSON). The returned Config
// still needs Resolve() before use.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "style file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "read style file %s", path)
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "parse TOML style %s", path)
		}
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "parse JSON style %s", path)
	}
	return cfg, nil
}

// Marshal serializes a Config as pretty-printed JSON, the reference style
// file format.
func Marshal(cfg Config) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}
