package security

import (
	"fmt"
	"sync"

	"github.com/brettbedarf/memns"
	"github.com/brettbedarf/memns/config"
)

// SupplierFactory builds a descriptor supplier from the runtime config
type SupplierFactory func(cfg *config.Config) (memns.DescriptorSupplier, error)

// Built-in supplier kinds
const (
	StaticSupplierKind  = "static"
	ProcessSupplierKind = "process"
)

var (
	mu        sync.RWMutex
	factories = map[string]SupplierFactory{}
)

func init() {
	RegisterBuiltins()
}

// Register ties a factory to a supplier kind. Registering a kind again
// replaces its factory.
func Register(kind string, factory SupplierFactory) {
	mu.Lock()
	factories[kind] = factory
	mu.Unlock()
}

// RegisterBuiltins registers all built-in suppliers by default
// or only the specific ones if kinds are provided
func RegisterBuiltins(kinds ...string) {
	if len(kinds) == 0 {
		kinds = []string{StaticSupplierKind, ProcessSupplierKind}
	}
	for _, kind := range kinds {
		switch kind {
		case StaticSupplierKind:
			Register(kind, func(cfg *config.Config) (memns.DescriptorSupplier, error) {
				if cfg == nil || cfg.RootSDDL == "" {
					return nil, fmt.Errorf("%s supplier: root_sddl not set", kind)
				}
				return &StaticSupplier{SDDL: cfg.RootSDDL}, nil
			})
		case ProcessSupplierKind:
			Register(kind, func(*config.Config) (memns.DescriptorSupplier, error) {
				return &ProcessSupplier{}, nil
			})
		}
	}
}

// New builds the supplier registered under kind
func New(kind string, cfg *config.Config) (memns.DescriptorSupplier, error) {
	mu.RLock()
	f, ok := factories[kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no descriptor supplier for %q", kind)
	}
	return f(cfg)
}
