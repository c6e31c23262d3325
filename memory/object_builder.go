package memory

import (
	"encoding/binary"
	"fmt"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

// NewObjectBuilder starts a zero-filled image of an instance of t, laid
// out for the resolver's platform.
//
// This is useful for staging objects that are later written into a
// target, and for testing code that reads objects through an Image.
func NewObjectBuilder(resolver *shadow.Resolver, t *shadow.Type) *ObjectBuilder {
	if resolver == nil {
		return &ObjectBuilder{err: fmt.Errorf("resolver cannot be nil")}
	}

	layout, err := resolver.Layout(t)
	if err != nil {
		return &ObjectBuilder{err: fmt.Errorf("failed to lay out shadow - %w", err)}
	}

	return &ObjectBuilder{
		layout: layout,
		order:  resolver.Platform().ByteOrder,
		buf:    make([]byte, layout.Size),
	}
}

// ObjectBuilder sets the fields of an object image by name using the
// "builder pattern". The first error stops all further writes and is
// returned by Build.
type ObjectBuilder struct {
	layout shadow.Layout
	order  binary.ByteOrder
	buf    []byte
	err    error
}

// Uint writes value to the named field. The value must fit the
// field's width on the platform.
func (o *ObjectBuilder) Uint(field string, value uint64) *ObjectBuilder {
	if o.err != nil {
		return o
	}

	fd, err := o.layout.Field(field)
	if err != nil {
		o.err = err
		return o
	}

	b, err := encodeUint(o.order, fd.Size, value)
	if err != nil {
		o.err = fmt.Errorf("failed to encode field %s - %w", field, err)
		return o
	}

	copy(o.buf[fd.Offset:], b)

	return o
}

// Bool writes 1 or 0 to the named field.
func (o *ObjectBuilder) Bool(field string, b bool) *ObjectBuilder {
	if b {
		return o.Uint(field, 1)
	}
	return o.Uint(field, 0)
}

// Pointer writes p to the named handle or reference field.
func (o *ObjectBuilder) Pointer(field string, p Pointer) *ObjectBuilder {
	if o.err != nil {
		return o
	}

	fd, err := o.layout.Field(field)
	if err != nil {
		o.err = err
		return o
	}

	switch fd.Kind.Class {
	case shadow.ClassHandle, shadow.ClassReference:
	default:
		o.err = fmt.Errorf("field %s is a %s field, not a handle or reference", field, fd.Kind)
		return o
	}

	return o.Uint(field, p.Uint())
}

// Layout returns the layout the image follows.
func (o *ObjectBuilder) Layout() shadow.Layout {
	return o.layout
}

// Build returns the object image.
func (o *ObjectBuilder) Build() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}

	out := make([]byte, len(o.buf))
	copy(out, o.buf)

	return out, nil
}

// BuildOrExit is like Build, but invokes DefaultExitFn on error.
func (o *ObjectBuilder) BuildOrExit() []byte {
	b, err := o.Build()
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to build object - %w", err))
	}
	return b
}

// BuildImage returns the object image mapped at base.
func (o *ObjectBuilder) BuildImage(base uint64) (*Image, error) {
	b, err := o.Build()
	if err != nil {
		return nil, err
	}
	return NewImage(base, b), nil
}
