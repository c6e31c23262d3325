package shadow

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Registry holds the process-wide catalog. Readers always see one whole
// catalog: replacing it is a single atomic swap, never an in-place edit.
type Registry struct {
	current atomic.Pointer[Catalog]
	logger  *zap.Logger
}

// NewRegistry creates a Registry serving initial.
func NewRegistry(initial *Catalog, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Registry{logger: logger}
	r.current.Store(initial)

	return r
}

// Catalog returns the catalog currently in use.
func (o *Registry) Catalog() *Catalog {
	return o.current.Load()
}

// Swap installs next and returns the catalog it replaced.
func (o *Registry) Swap(next *Catalog) (*Catalog, error) {
	if next == nil {
		return nil, invalidShadow("", "replacement catalog cannot be nil")
	}

	prev := o.current.Swap(next)

	if prev != nil {
		o.logger.Info("replaced shadow catalog",
			zap.Stringer("from", prev.Version()),
			zap.Stringer("to", next.Version()))
	}

	return prev, nil
}

// Shadow returns the current catalog's shadow for kind.
func (o *Registry) Shadow(kind Kind) (*Type, error) {
	c := o.current.Load()
	if c == nil {
		return nil, configurationError(kind)
	}
	return c.Shadow(kind)
}

// Verify verifies the current catalog against apiLevel.
func (o *Registry) Verify(apiLevel int) error {
	c := o.current.Load()
	if c == nil {
		return &Error{Kind: KindConfiguration, Detail: "no catalog installed"}
	}
	return c.Verify(apiLevel)
}

// Default is the registry used by GetShadow. It starts with the
// built-in ART catalog.
var Default = NewRegistry(ARTCatalog(), nil)

// GetShadow returns the shadow for kind from the default registry.
func GetShadow(kind Kind) (*Type, error) {
	return Default.Shadow(kind)
}
