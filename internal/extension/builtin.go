package extension

import (
	"fmt"
	"sort"
	"sync"
)

// Built-in extensions compile into the host binary and register a factory
// from their package init(). Installed extensions, by contrast, are loaded
// from disk by the Loader.
var (
	builtinMu sync.Mutex
	builtins  = make(map[string]Factory)
)

// RegisterBuiltin records a built-in extension factory under name.
// Typically called from init() in the extension's package.
func RegisterBuiltin(name string, factory Factory) error {
	builtinMu.Lock()
	defer builtinMu.Unlock()

	if name == "" {
		return fmt.Errorf("built-in extension name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("built-in extension %s: factory cannot be nil", name)
	}
	if _, exists := builtins[name]; exists {
		return fmt.Errorf("built-in extension %s already registered", name)
	}
	builtins[name] = factory
	return nil
}

// MustRegisterBuiltin is RegisterBuiltin that panics on error, for init().
func MustRegisterBuiltin(name string, factory Factory) {
	if err := RegisterBuiltin(name, factory); err != nil {
		panic(err)
	}
}

// Builtins returns the registered factories keyed by name, in sorted order.
func Builtins() []Factory {
	builtinMu.Lock()
	defer builtinMu.Unlock()

	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]Factory, 0, len(names))
	for _, name := range names {
		result = append(result, builtins[name])
	}
	return result
}
