package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/typecontrol/core"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a file format for settings profiles.
type Format int

// Supported profile formats
const (
	FormatUnknown Format = iota
	FormatTOML
	FormatYAML
	FormatJSON
)

// FormatOf derives a profile format from a file name's extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatUnknown
}

// Load reads a settings profile from a file. Keys absent from the file keep
// their default values.
//
// A missing file is not an error: Load returns the defaults, the same way a
// fresh session starts without stored settings. A file which exists but
// cannot be decoded results in an EFORMAT error, together with the defaults.
func Load(path string) (Settings, error) {
	s := Defaults()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		tracer().Infof("no settings profile at %s, using defaults", path)
		return s, nil
	} else if err != nil {
		return s, core.WrapError(err, core.EMISSING, "cannot read settings profile %s", path)
	}
	if err = Decode(data, FormatOf(path), &s); err != nil {
		return Defaults(), core.WrapError(err, core.EFORMAT, "malformed settings profile %s", path)
	}
	tracer().Debugf("loaded settings profile %s", path)
	return s, nil
}

// Decode decodes profile data in a given format on top of s.
func Decode(data []byte, format Format, s *Settings) error {
	switch format {
	case FormatTOML:
		return toml.Unmarshal(data, s)
	case FormatYAML:
		return yaml.Unmarshal(data, s)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		return dec.Decode(s)
	}
	return core.Error(core.EINVALID, "unknown settings profile format")
}

// Encode encodes settings in a given profile format.
func Encode(s Settings, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(s)
	case FormatYAML:
		return yaml.Marshal(s)
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	}
	return nil, core.Error(core.EINVALID, "unknown settings profile format")
}

// Save writes a settings profile, in the format given by the file extension.
func Save(path string, s Settings) error {
	data, err := Encode(s, FormatOf(path))
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot write settings profile %s", path)
	}
	tracer().Infof("saved settings profile %s", path)
	return nil
}
