package memory

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

// NewOffsetTable creates an empty *OffsetTable whose lookups use
// initialContext until SetContext is called.
func NewOffsetTable(initialContext string) *OffsetTable {
	return &OffsetTable{
		current:  initialContext,
		contexts: make(map[string]map[string]shadow.Offset),
	}
}

// OffsetTable keeps resolved field offsets for several contexts. A
// context is usually a target platform, but may also be a runtime build.
//
// Symbols are named "<shadow>.<field>". For example, the offset of
// the artMethod field of java.lang.reflect.Executable on arm64 can be
// stored in the "arm64" context as "java.lang.reflect.Executable.artMethod".
//
// Code that reads hidden fields can then look symbols up in the current
// context, and switching targets only requires a different context.
type OffsetTable struct {
	current  string
	contexts map[string]map[string]shadow.Offset
}

// Symbol returns the table symbol for a shadow's field.
func Symbol(shadowName string, field string) string {
	return shadowName + "." + field
}

// SetContext selects the context used by Offset and Symbols.
func (o *OffsetTable) SetContext(context string) *OffsetTable {
	o.current = context
	return o
}

// CurrentContext returns the selected context.
func (o *OffsetTable) CurrentContext() string {
	return o.current
}

// AddSymbolInContext adds or replaces a symbol's offset in context.
func (o *OffsetTable) AddSymbolInContext(symbol string, offset shadow.Offset, context string) *OffsetTable {
	symbols, hasIt := o.contexts[context]
	if !hasIt {
		symbols = make(map[string]shadow.Offset)
		o.contexts[context] = symbols
	}

	symbols[symbol] = offset

	return o
}

// AddShadowInContext resolves every instance field of t and stores the
// offsets in context.
func (o *OffsetTable) AddShadowInContext(resolver *shadow.Resolver, t *shadow.Type, context string) error {
	layout, err := resolver.Layout(t)
	if err != nil {
		return err
	}

	for _, fd := range layout.Fields {
		// Ambiguous names are left out so that a lookup fails
		// rather than returning one of the candidates.
		_, err := layout.Field(fd.Name)
		if err != nil {
			continue
		}

		o.AddSymbolInContext(Symbol(layout.Shadow, fd.Name), fd.Offset, context)
	}

	return nil
}

// AddCatalogInContext adds every shadow of c using AddShadowInContext.
func (o *OffsetTable) AddCatalogInContext(resolver *shadow.Resolver, c *shadow.Catalog, context string) error {
	for _, kind := range c.Kinds() {
		t, err := c.Shadow(kind)
		if err != nil {
			return err
		}

		err = o.AddShadowInContext(resolver, t, context)
		if err != nil {
			return fmt.Errorf("failed to add %s shadow - %w", kind, err)
		}
	}

	return nil
}

// Symbols returns the symbols of the current context, sorted.
func (o *OffsetTable) Symbols() []string {
	symbols := maps.Keys(o.contexts[o.current])
	slices.Sort(symbols)
	return symbols
}

// Offset returns the offset of symbol in the current context.
func (o *OffsetTable) Offset(symbol string) (shadow.Offset, error) {
	symbols, hasIt := o.contexts[o.current]
	if !hasIt {
		return 0, fmt.Errorf("the current context ('%s') is not in the lookup table",
			o.current)
	}

	offset, hasIt := symbols[symbol]
	if !hasIt {
		return 0, fmt.Errorf("failed to find the symbol '%s' in the table for '%s'",
			symbol, o.current)
	}

	return offset, nil
}

// OffsetOrExit is like Offset, but invokes DefaultExitFn if the
// context or the symbol do not exist.
func (o *OffsetTable) OffsetOrExit(symbol string) shadow.Offset {
	offset, err := o.Offset(symbol)
	if err != nil {
		DefaultExitFn(err)
	}
	return offset
}
