package schedule

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownStrategy is returned when a strategy name is not registered.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Constructor builds a strategy from options.
type Constructor func(Options) Strategy

// Factory is a registry of strategy constructors keyed by name. It is safe
// for concurrent use.
type Factory struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{constructors: make(map[string]Constructor)}
}

// NewDefaultFactory returns a factory with the concurrent and parallel
// strategies registered.
func NewDefaultFactory() *Factory {
	f := NewFactory()
	f.Register(ConcurrentName, func(o Options) Strategy { return NewConcurrent(o) })
	f.Register(ParallelName, func(o Options) Strategy { return NewParallel(o) })
	return f
}

// Register adds or replaces a constructor.
func (f *Factory) Register(name string, c Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[name] = c
}

// List returns the registered names in sorted order.
func (f *Factory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.constructors))
	for name := range f.constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named strategy after validating the options.
func (f *Factory) New(name string, opts Options) (Strategy, error) {
	f.mu.RLock()
	c, ok := f.constructors[name]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return c(opts), nil
}
