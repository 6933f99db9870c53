// Package config provides a layered configuration map for applications.
//
// Values come from YAML files, dotenv files, and literal maps, merged in the
// order the sources were given. Environment variables override everything:
// given an app name "foo" and a key "bar", setting FOO_BAR overrides the
// value of "bar". An override read from the environment is coerced against
// the type of the underlying value when one exists, so a YAML `bar: 15`
// keeps its integer type when FOO_BAR=22 takes over; without an underlying
// value the type is guessed.
//
//	cfg, err := config.New("foo",
//	    config.WithYAML("config.yml"),
//	    config.WithDotenv(".env"),
//	    config.WithRequired("bar", "db-url"),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Verify(); err != nil {
//	    return err
//	}
//	port, err := cfg.GetInt("port")
//
// Sources can be reloaded explicitly with Reload or automatically with
// Watch, which reacts to file changes.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/attrkit/attrkit/coerce"

	"github.com/go-openapi/inflect"
	"github.com/hengadev/errsx"
	"golang.org/x/sync/singleflight"
)

// A Config is a read-mostly map of configuration values resolved from the
// registered sources and the process environment. It is safe for concurrent
// use.
type Config struct {
	app     string
	sources []Source

	mu      sync.RWMutex
	values  map[string]any
	envKeys map[string]struct{}

	required []string
	group    singleflight.Group
}

// An Option configures a Config under construction.
type Option func(*Config)

// WithYAML appends a YAML file source. May be given multiple times; later
// sources override earlier ones key by key.
func WithYAML(path string) Option {
	return func(c *Config) { c.sources = append(c.sources, &yamlSource{path: path}) }
}

// WithDotenv appends a dotenv file source. Values are typified, so PORT=8080
// loads as an integer.
func WithDotenv(path string) Option {
	return func(c *Config) { c.sources = append(c.sources, &dotenvSource{path: path}) }
}

// WithValues appends a literal map source, useful for defaults and tests.
func WithValues(values map[string]any) Option {
	return func(c *Config) { c.sources = append(c.sources, staticSource(values)) }
}

// WithRequired declares keys that Verify demands from the merged sources or
// the environment.
func WithRequired(keys ...string) Option {
	return func(c *Config) { c.required = append(c.required, keys...) }
}

// New builds a configuration map for the given app name, loading every
// source and registering environment overrides carrying the app prefix.
func New(app string, opts ...Option) (*Config, error) {
	c := &Config{app: app}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// EnvKey returns the environment variable name that overrides the given key:
// the upper-cased app name and key joined by an underscore, with dashes,
// spaces, and camelCase humps normalized to underscores.
func (c *Config) EnvKey(key string) string {
	k := strings.NewReplacer("-", "_", " ", "_", ".", "_").Replace(key)
	k = inflect.Underscore(k)
	return strings.ToUpper(c.app + "_" + k)
}

func (c *Config) reverseEnvKey(envKey string) string {
	prefix := strings.ToUpper(c.app) + "_"
	return strings.ToLower(strings.TrimPrefix(envKey, prefix))
}

// Get returns the resolved value of a key. Environment overrides win over
// source values and are coerced against the type of the underlying source
// value when one exists. Keys found nowhere fail with NotFoundError.
func (c *Config) Get(key string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.envKeys[key]; ok {
		if raw, found := os.LookupEnv(c.EnvKey(key)); found {
			v, err := coerce.TypifyAs(raw, c.values[key])
			if err != nil {
				return nil, fmt.Errorf("config: environment override %s: %w", c.EnvKey(key), err)
			}
			return v, nil
		}
	}
	v, ok := c.values[key]
	if !ok {
		return nil, NewNotFoundError(key)
	}
	return v, nil
}

// GetDefault returns the resolved value of a key, or def when the key is not
// found.
func (c *Config) GetDefault(key string, def any) any {
	v, err := c.Get(key)
	if err != nil {
		return def
	}
	return v
}

// GetString returns the value of a key coerced to a string.
func (c *Config) GetString(key string) (string, error) {
	v, err := c.Get(key)
	if err != nil {
		return "", err
	}
	return coerce.String(v)
}

// GetInt returns the value of a key coerced to an int64.
func (c *Config) GetInt(key string) (int64, error) {
	v, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	return coerce.Int(v)
}

// GetFloat returns the value of a key coerced to a float64.
func (c *Config) GetFloat(key string) (float64, error) {
	v, err := c.Get(key)
	if err != nil {
		return 0, err
	}
	return coerce.Float(v)
}

// GetBool returns the value of a key coerced to a bool.
func (c *Config) GetBool(key string) (bool, error) {
	v, err := c.Get(key)
	if err != nil {
		return false, err
	}
	return coerce.Bool(v)
}

// Set writes an environment override for the given key, prefixed with the
// app name, and registers it so no Reload is needed. Sources are never
// mutated; Set only touches the environment layer.
func (c *Config) Set(key string, value any) error {
	s, err := coerce.String(value)
	if err != nil {
		return fmt.Errorf("config: cannot set %q: %w", key, err)
	}
	if err := os.Setenv(c.EnvKey(key), s); err != nil {
		return err
	}
	c.mu.Lock()
	c.envKeys[key] = struct{}{}
	c.mu.Unlock()
	return nil
}

// Unset removes the environment override of the given key.
func (c *Config) Unset(key string) error {
	if err := os.Unsetenv(c.EnvKey(key)); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.envKeys, key)
	c.mu.Unlock()
	return nil
}

// Keys returns all known keys, sorted: the union of source keys and
// registered environment overrides.
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set := make(map[string]struct{}, len(c.values)+len(c.envKeys))
	for k := range c.values {
		set[k] = struct{}{}
	}
	for k := range c.envKeys {
		set[k] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Items returns every key with its resolved value.
func (c *Config) Items() map[string]any {
	out := make(map[string]any)
	for _, k := range c.Keys() {
		if v, err := c.Get(k); err == nil {
			out[k] = v
		}
	}
	return out
}

// Verify checks that every required key is available from the sources or
// the environment, collecting all missing keys into one error.
func (c *Config) Verify() error {
	known := make(map[string]struct{})
	for _, k := range c.Keys() {
		known[k] = struct{}{}
	}
	var errs errsx.Map
	for _, k := range c.required {
		if _, ok := known[k]; !ok {
			errs.Set(k, ErrRequired)
		}
	}
	return errs.AsError()
}

// Reload re-reads every source and rescans the environment. Concurrent
// callers share a single reload.
func (c *Config) Reload() error {
	_, err, _ := c.group.Do("reload", func() (any, error) {
		return nil, c.load()
	})
	return err
}

func (c *Config) load() error {
	values := make(map[string]any)
	for _, s := range c.sources {
		items, err := s.Load()
		if err != nil {
			return fmt.Errorf("config: loading %s: %w", s.Location(), err)
		}
		for k, v := range items {
			values[k] = v
		}
	}
	envKeys := make(map[string]struct{})
	prefix := strings.ToUpper(c.app) + "_"
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, prefix) {
			envKeys[c.reverseEnvKey(name)] = struct{}{}
		}
	}
	c.mu.Lock()
	c.values = values
	c.envKeys = envKeys
	c.mu.Unlock()
	return nil
}
