package shadow

import (
	"fmt"
)

// Field is one declared field of a shadow type.
type Field struct {
	Name string
	Kind FieldKind
}

// F is shorthand for declaring a Field.
func F(name string, kind FieldKind) Field {
	return Field{Name: name, Kind: kind}
}

// TypeOption configures a Type created by NewType.
type TypeOption func(*Type)

// WithBase makes the new type a layout extension of base: every field
// of base (and of its own bases) precedes the new type's fields.
func WithBase(base *Type) TypeOption {
	return func(t *Type) {
		t.base = base
	}
}

// WithStatics declares static fields. Static fields live outside the
// instance and never affect instance offsets.
func WithStatics(fields ...Field) TypeOption {
	return func(t *Type) {
		t.statics = append(t.statics, fields...)
	}
}

// WithMethods declares method names, in declaration order.
func WithMethods(names ...string) TypeOption {
	return func(t *Type) {
		t.methods = append(t.methods, names...)
	}
}

// Type is a shadow type: an ordered field sequence that structurally
// echoes one internal runtime structure. A Type is never instantiated
// for behavior and is immutable once created.
type Type struct {
	name    string
	base    *Type
	fields  []Field
	statics []Field
	methods []string
}

// NewType creates a shadow type named name with the given instance
// fields in declaration order.
//
// Duplicate field names are accepted here so that a mismatched shadow
// can still be described. Resolving such a name fails with
// ErrAmbiguousField.
func NewType(name string, fields []Field, opts ...TypeOption) (*Type, error) {
	t := &Type{
		name:   name,
		fields: append([]Field(nil), fields...),
	}

	for _, opt := range opts {
		opt(t)
	}

	err := t.validate()
	if err != nil {
		return nil, err
	}

	return t, nil
}

// MustNewType is like NewType, but panics if the type is invalid.
// It is intended for package-level catalog declarations.
func MustNewType(name string, fields []Field, opts ...TypeOption) *Type {
	t, err := NewType(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

func (o *Type) validate() error {
	if o.name == "" {
		return invalidShadow("", "shadow name cannot be empty")
	}

	for i, f := range append(append([]Field(nil), o.fields...), o.statics...) {
		if f.Name == "" {
			return invalidShadow(o.name, fmt.Sprintf("field %d has an empty name", i))
		}

		err := f.Kind.validate()
		if err != nil {
			return &Error{
				Kind:   KindInvalidShadow,
				Shadow: o.name,
				Field:  f.Name,
				Cause:  err,
			}
		}
	}

	seen := map[*Type]struct{}{o: {}}
	for b := o.base; b != nil; b = b.base {
		if _, hasIt := seen[b]; hasIt {
			return invalidShadow(o.name, "base chain contains a cycle")
		}
		seen[b] = struct{}{}
	}

	return nil
}

// Name returns the shadow's name.
func (o *Type) Name() string {
	return o.name
}

// Base returns the shadow this type extends, or nil.
func (o *Type) Base() *Type {
	return o.base
}

// Fields returns a copy of the type's own instance fields.
func (o *Type) Fields() []Field {
	return append([]Field(nil), o.fields...)
}

// Statics returns a copy of the type's static fields.
func (o *Type) Statics() []Field {
	return append([]Field(nil), o.statics...)
}

// Methods returns a copy of the type's declared method names.
func (o *Type) Methods() []string {
	return append([]string(nil), o.methods...)
}

// NumFields returns the number of instance fields including
// inherited ones.
func (o *Type) NumFields() int {
	n := 0
	for _, t := range o.chain() {
		n += len(t.fields)
	}
	return n
}

// chain returns the base chain, root first, ending with o.
func (o *Type) chain() []*Type {
	var c []*Type
	for t := o; t != nil; t = t.base {
		c = append(c, t)
	}

	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}

	return c
}

// FieldDescriptor is a field's position, derived by scanning a shadow.
type FieldDescriptor struct {
	Name  string
	Kind  FieldKind
	Owner string

	// DeclaredIndex is the position within the whole instance
	// sequence, inherited fields first.
	DeclaredIndex int

	Offset Offset
	Size   uint64
}

// Offset is a byte distance from the start of an object.
type Offset uint64

func (o Offset) String() string {
	return fmt.Sprintf("0x%x", uint64(o))
}
