package convert

import (
	"fmt"
	"runtime"
	"slices"
	"sort"
	"sync"
)

// registry holds the converters known to this build. Converters register
// themselves from their package init.
type registry struct {
	mu         sync.RWMutex
	converters map[string]Converter
}

var defaultRegistry = &registry{converters: make(map[string]Converter)}

// Register adds a converter to the default registry.
// Registering the same name twice is a programming error.
func Register(c Converter) error {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()

	name := c.Name()
	if _, exists := defaultRegistry.converters[name]; exists {
		return fmt.Errorf("converter %q already registered", name)
	}
	defaultRegistry.converters[name] = c
	return nil
}

// MustRegister registers a converter and panics on error.
// Intended for package init use.
func MustRegister(c Converter) {
	if err := Register(c); err != nil {
		panic(err)
	}
}

// Get returns the converter registered under name.
func Get(name string) (Converter, error) {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	c, ok := defaultRegistry.converters[name]
	if !ok {
		return nil, fmt.Errorf("unknown converter %q (available: %v)", name, names())
	}
	return c, nil
}

// Names returns the registered converter names in sorted order.
func Names() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	return names()
}

// names must be called with the registry lock held.
func names() []string {
	out := make([]string, 0, len(defaultRegistry.converters))
	for name := range defaultRegistry.converters {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// All returns the registered converters in name order.
func All() []Converter {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	out := make([]Converter, 0, len(defaultRegistry.converters))
	for _, name := range names() {
		out = append(out, defaultRegistry.converters[name])
	}
	return out
}

// Advise emits the compatibility advisory through the injected hook when
// the running platform is not listed as compatible with the converter.
func Advise(c Converter, opts Options) {
	if opts.Quiet || opts.Advise == nil {
		return
	}
	if slices.Contains(c.Compatible(), runtime.GOOS) {
		return
	}
	opts.Advise(fmt.Sprintf("converter %q is not verified on %s (compatible: %v); results may be incomplete",
		c.Name(), runtime.GOOS, c.Compatible()))
}
