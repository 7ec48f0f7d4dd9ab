package presets

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/zachfi/nowplaying/pkg/schema"
)

type presetFile struct {
	Presets []schema.RadioSchema `yaml:"presets" toml:"presets" json:"presets"`
}

// LoadFile reads presets from a YAML, TOML or JSON file, chosen by extension.
func LoadFile(file string) ([]schema.RadioSchema, error) {
	filename, _ := filepath.Abs(file)

	buf, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read presets file")
	}

	var pf presetFile
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(buf, &pf)
	case ".toml":
		var md toml.MetaData
		md, err = toml.NewDecoder(bytes.NewReader(buf)).Decode(&pf)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = errors.Errorf("unknown keys %v", undecoded)
			}
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(buf))
		dec.DisallowUnknownFields()
		err = dec.Decode(&pf)
	default:
		return nil, errors.Errorf("unsupported presets file extension %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse presets file %s", file)
	}

	for _, s := range pf.Presets {
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(err, "presets file %s", file)
		}
	}

	return pf.Presets, nil
}

// Load returns the builtin presets overlaid with those from file, if set,
// with environment references expanded.
func Load(file string) ([]schema.RadioSchema, error) {
	schemas := Builtin()
	if file != "" {
		fromFile, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, fromFile...)
	}

	for i := range schemas {
		schemas[i] = schemas[i].ExpandEnv()
	}
	return schemas, nil
}
