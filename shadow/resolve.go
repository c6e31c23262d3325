package shadow

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"
)

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used to trace field placement.
func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver converts shadow fields into byte offsets for one platform.
// It holds no mutable state and may be shared between goroutines.
type Resolver struct {
	platform Platform
	logger   *zap.Logger
}

// NewResolver creates a Resolver for the specified platform.
func NewResolver(platform Platform, opts ...ResolverOption) (*Resolver, error) {
	err := platform.Validate()
	if err != nil {
		return nil, err
	}

	r := &Resolver{
		platform: platform,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Platform returns the platform offsets are computed for.
func (o *Resolver) Platform() Platform {
	return o.platform
}

// Layout is the computed placement of every instance field of a shadow.
type Layout struct {
	Shadow   string
	Platform string

	// Fields are in declared order, inherited fields first.
	Fields []FieldDescriptor

	// InheritedSize is the offset at which the shadow's own fields
	// begin. It includes any padding inserted ahead of the first own
	// field. For a shadow without a base it is the header size.
	InheritedSize Offset

	// Size is the end of the last field rounded up to Align.
	Size  uint64
	Align uint64
}

// Field returns the descriptor of the named field.
func (o Layout) Field(name string) (FieldDescriptor, error) {
	var found []FieldDescriptor
	for _, fd := range o.Fields {
		if fd.Name == name {
			found = append(found, fd)
		}
	}

	switch len(found) {
	case 0:
		return FieldDescriptor{}, fieldNotFound(o.Shadow, name, "")
	case 1:
		return found[0], nil
	default:
		owners := make([]string, len(found))
		for i, fd := range found {
			owners[i] = fmt.Sprintf("%s (index %d)", fd.Owner, fd.DeclaredIndex)
		}
		return FieldDescriptor{}, ambiguousField(o.Shadow, name, owners)
	}
}

// Layout places every instance field of t.
//
// Fields are walked base-first in declared order. Each field is aligned
// to its own size and the offset accumulates from the platform's header
// size. Names are not checked for uniqueness here; see Resolve.
func (o *Resolver) Layout(t *Type) (Layout, error) {
	if t == nil {
		return Layout{}, invalidShadow("", "shadow type is nil")
	}

	layout := Layout{
		Shadow:        t.name,
		Platform:      o.platform.Name,
		Align:         1,
		InheritedSize: Offset(o.platform.HeaderSize),
	}

	offset := uint64(o.platform.HeaderSize)
	index := 0

	for _, owner := range t.chain() {
		for i, f := range owner.fields {
			size := f.Kind.sizeOn(o.platform)
			offset = alignUp(offset, size)

			if owner == t && i == 0 {
				layout.InheritedSize = Offset(offset)
			}

			o.logger.Debug("placed shadow field",
				zap.String("shadow", t.name),
				zap.String("owner", owner.name),
				zap.String("field", f.Name),
				zap.Stringer("kind", f.Kind),
				zap.Uint64("offset", offset),
				zap.Uint64("size", size))

			layout.Fields = append(layout.Fields, FieldDescriptor{
				Name:          f.Name,
				Kind:          f.Kind,
				Owner:         owner.name,
				DeclaredIndex: index,
				Offset:        Offset(offset),
				Size:          size,
			})

			if size > layout.Align {
				layout.Align = size
			}

			offset += size
			index++
		}

		if owner == t && len(owner.fields) == 0 {
			layout.InheritedSize = Offset(offset)
		}
	}

	layout.Size = alignUp(offset, layout.Align)

	return layout, nil
}

// Resolve returns the offset of fieldName within an object laid out
// like t. The name must be declared exactly once across t's own and
// inherited instance fields.
func (o *Resolver) Resolve(t *Type, fieldName string) (Offset, error) {
	fd, err := o.Descriptor(t, fieldName)
	if err != nil {
		return 0, err
	}
	return fd.Offset, nil
}

// Descriptor is like Resolve, but returns the full field descriptor.
func (o *Resolver) Descriptor(t *Type, fieldName string) (FieldDescriptor, error) {
	layout, err := o.Layout(t)
	if err != nil {
		return FieldDescriptor{}, err
	}

	fd, err := layout.Field(fieldName)
	if err != nil {
		if errors.Is(err, ErrFieldNotFound) && isStatic(t, fieldName) {
			return FieldDescriptor{}, fieldNotFound(t.name, fieldName,
				"declared static - static fields are not part of the instance layout")
		}
		return FieldDescriptor{}, err
	}

	return fd, nil
}

// ResolveOrExit is like Resolve, but invokes DefaultExitFn on error.
func (o *Resolver) ResolveOrExit(t *Type, fieldName string) Offset {
	offset, err := o.Resolve(t, fieldName)
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to resolve field offset - %w", err))
	}
	return offset
}

// Resolve is a convenience for resolving a single field without
// keeping a Resolver around.
func Resolve(t *Type, fieldName string, platform Platform) (Offset, error) {
	r, err := NewResolver(platform)
	if err != nil {
		return 0, err
	}
	return r.Resolve(t, fieldName)
}

func isStatic(t *Type, name string) bool {
	for _, owner := range t.chain() {
		for _, f := range owner.statics {
			if f.Name == name {
				return true
			}
		}
	}
	return false
}

func alignUp[T constraints.Unsigned](v T, align T) T {
	if align <= 1 {
		return v
	}
	return (v + align - 1) / align * align
}
