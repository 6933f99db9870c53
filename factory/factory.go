// Package factory provides a small plugin registry: named constructors for
// an interface, one of which is picked at startup from configuration. It is
// how a process selects a storage backend, a codec, or a transport without
// the call sites knowing which implementation is live.
package factory

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/attrkit/attrkit/config"
)

// Standard sentinel errors.
var (
	// ErrInitialized is returned by Initialize when the factory already has
	// a selected implementation.
	ErrInitialized = errors.New("factory: already initialized")

	// ErrNotInitialized is returned by Instance before Initialize ran.
	ErrNotInitialized = errors.New("factory: not initialized")

	// ErrUnknown is returned when a requested implementation name was never
	// registered.
	ErrUnknown = errors.New("factory: unknown implementation")

	// ErrDuplicate is returned when an implementation name is registered
	// twice.
	ErrDuplicate = errors.New("factory: implementation already registered")
)

// Constructor builds an implementation from the application configuration.
type Constructor[T any] func(cfg *config.Config) (T, error)

// Factory holds named constructors for T and, after Initialize, the name of
// the selected default implementation. All methods are safe for concurrent
// use.
type Factory[T any] struct {
	mu     sync.Mutex
	ctors  map[string]Constructor[T]
	cached map[string]bool
	cache  map[string]T
	cfg    *config.Config
	def    string
}

// New returns an empty factory for T.
func New[T any]() *Factory[T] {
	return &Factory[T]{
		ctors:  make(map[string]Constructor[T]),
		cached: make(map[string]bool),
		cache:  make(map[string]T),
	}
}

// Register adds a named constructor. The constructor runs on every Instance
// or InstanceOf call.
func (f *Factory[T]) Register(name string, ctor Constructor[T]) error {
	return f.register(name, ctor, false)
}

// RegisterCached adds a named constructor whose result is built once and
// reused for every subsequent lookup.
func (f *Factory[T]) RegisterCached(name string, ctor Constructor[T]) error {
	return f.register(name, ctor, true)
}

func (f *Factory[T]) register(name string, ctor Constructor[T], cached bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ctors[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	f.ctors[name] = ctor
	f.cached[name] = cached
	return nil
}

// Initialize selects the default implementation and binds the configuration
// passed to constructors. It can run only once.
func (f *Factory[T]) Initialize(cfg *config.Config, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.def != "" {
		return fmt.Errorf("%w with %q", ErrInitialized, f.def)
	}
	if _, ok := f.ctors[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	f.cfg = cfg
	f.def = name
	return nil
}

// Initialized reports whether a default implementation was selected.
func (f *Factory[T]) Initialized() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.def != ""
}

// Instance returns the default implementation.
func (f *Factory[T]) Instance() (T, error) {
	f.mu.Lock()
	name := f.def
	f.mu.Unlock()
	if name == "" {
		var zero T
		return zero, ErrNotInitialized
	}
	return f.instance(name)
}

// InstanceOf returns the named implementation regardless of the default.
// The factory must be initialized first, so constructors have configuration
// to work with.
func (f *Factory[T]) InstanceOf(name string) (T, error) {
	f.mu.Lock()
	initialized := f.def != ""
	f.mu.Unlock()
	if !initialized {
		var zero T
		return zero, ErrNotInitialized
	}
	return f.instance(name)
}

// instance looks the constructor up under the lock but invokes it outside,
// so a constructor may call back into the factory.
func (f *Factory[T]) instance(name string) (T, error) {
	f.mu.Lock()
	if v, ok := f.cache[name]; ok {
		f.mu.Unlock()
		return v, nil
	}
	ctor, ok := f.ctors[name]
	cached := f.cached[name]
	cfg := f.cfg
	f.mu.Unlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	v, err := ctor(cfg)
	if err != nil {
		var zero T
		return zero, err
	}
	if cached {
		f.mu.Lock()
		defer f.mu.Unlock()
		// A concurrent caller may have built it first; keep the earlier one.
		if prior, ok := f.cache[name]; ok {
			return prior, nil
		}
		f.cache[name] = v
	}
	return v, nil
}

// Names returns the registered implementation names in sorted order.
func (f *Factory[T]) Names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.ctors))
	for name := range f.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
