package config

import (
	"os"

	"github.com/attrkit/attrkit/coerce"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// A Source contributes a flat map of configuration values. Sources are
// loaded in registration order; later sources override earlier ones.
type Source interface {
	// Load returns the key/value items of the source.
	Load() (map[string]any, error)

	// Location returns the file path backing the source, or an empty
	// string when the source is not file backed. File locations are
	// watched by Config.Watch.
	Location() string
}

// yamlSource reads a YAML mapping. YAML values arrive typed, which makes it
// the preferred file format: integers stay integers and booleans stay
// booleans without guessing.
type yamlSource struct {
	path string
}

func (s *yamlSource) Load() (map[string]any, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	items := make(map[string]any)
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *yamlSource) Location() string { return s.path }

// dotenvSource reads a dotenv file. Dotenv values are untyped strings, so
// each one is typified on load.
type dotenvSource struct {
	path string
}

func (s *dotenvSource) Load() (map[string]any, error) {
	raw, err := godotenv.Read(s.path)
	if err != nil {
		return nil, err
	}
	items := make(map[string]any, len(raw))
	for k, v := range raw {
		items[k] = coerce.Typify(v)
	}
	return items, nil
}

func (s *dotenvSource) Location() string { return s.path }

// staticSource serves a literal map.
type staticSource map[string]any

func (s staticSource) Load() (map[string]any, error) {
	items := make(map[string]any, len(s))
	for k, v := range s {
		items[k] = v
	}
	return items, nil
}

func (s staticSource) Location() string { return "" }
