package memory

import (
	"errors"
	"fmt"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

// NewObject creates a view of the object at addr, which the caller
// believes to be an instance of the structure t mirrors.
func NewObject(mem Reader, resolver *shadow.Resolver, t *shadow.Type, addr uint64) (*Object, error) {
	if mem == nil {
		return nil, errors.New("memory reader cannot be nil")
	}

	if resolver == nil {
		return nil, errors.New("resolver cannot be nil")
	}

	if addr == 0 {
		return nil, errors.New("object address cannot be zero")
	}

	layout, err := resolver.Layout(t)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out shadow - %w", err)
	}

	return &Object{
		mem:      mem,
		platform: resolver.Platform(),
		layout:   layout,
		addr:     addr,
	}, nil
}

// Object reads and writes the named fields of a live runtime object.
type Object struct {
	mem      Reader
	platform shadow.Platform
	layout   shadow.Layout
	addr     uint64
}

// Address returns the object's address.
func (o *Object) Address() uint64 {
	return o.addr
}

// Layout returns the layout the object is viewed through.
func (o *Object) Layout() shadow.Layout {
	return o.layout
}

// FieldAddress returns the address of the named field.
func (o *Object) FieldAddress(field string) (uint64, error) {
	fd, err := o.layout.Field(field)
	if err != nil {
		return 0, err
	}
	return o.addr + uint64(fd.Offset), nil
}

// Uint reads the named field, zero extended. The number of bytes read
// is the field's width on the platform.
func (o *Object) Uint(field string) (uint64, error) {
	fd, err := o.layout.Field(field)
	if err != nil {
		return 0, err
	}

	v, err := readUint(o.mem, o.platform.ByteOrder, o.addr+uint64(fd.Offset), fd.Size)
	if err != nil {
		return 0, fmt.Errorf("failed to read field %s - %w", field, err)
	}

	return v, nil
}

// Pointer reads the named handle or reference field.
func (o *Object) Pointer(field string) (uint64, error) {
	fd, err := o.layout.Field(field)
	if err != nil {
		return 0, err
	}

	switch fd.Kind.Class {
	case shadow.ClassHandle, shadow.ClassReference:
	default:
		return 0, fmt.Errorf("field %s is a %s field, not a handle or reference", field, fd.Kind)
	}

	return o.Uint(field)
}

// SetUint overwrites the named field. The underlying Reader must also
// implement Writer.
func (o *Object) SetUint(field string, value uint64) error {
	w, ok := o.mem.(Writer)
	if !ok {
		return fmt.Errorf("memory accessor %T does not support writes", o.mem)
	}

	fd, err := o.layout.Field(field)
	if err != nil {
		return err
	}

	err = writeUint(w, o.platform.ByteOrder, o.addr+uint64(fd.Offset), fd.Size, value)
	if err != nil {
		return fmt.Errorf("failed to write field %s - %w", field, err)
	}

	return nil
}

// SetUintOrExit is like SetUint, but invokes DefaultExitFn on error.
func (o *Object) SetUintOrExit(field string, value uint64) {
	err := o.SetUint(field, value)
	if err != nil {
		DefaultExitFn(err)
	}
}

// UintOrExit is like Uint, but invokes DefaultExitFn on error.
func (o *Object) UintOrExit(field string) uint64 {
	v, err := o.Uint(field)
	if err != nil {
		DefaultExitFn(err)
	}
	return v
}
