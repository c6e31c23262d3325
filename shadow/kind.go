package shadow

import (
	"fmt"
)

// FieldClass distinguishes how the runtime stores a field.
type FieldClass uint8

const (
	// ClassReference is a managed reference to another runtime object.
	ClassReference FieldClass = iota + 1

	// ClassInteger is a primitive integer of a declared bit width.
	ClassInteger

	// ClassBool is a one byte boolean.
	ClassBool

	// ClassHandle is a native pointer the runtime does not expose as
	// a typed reference. It is always modeled as an integer.
	ClassHandle
)

func (o FieldClass) String() string {
	switch o {
	case ClassReference:
		return "ref"
	case ClassInteger:
		return "int"
	case ClassBool:
		return "bool"
	case ClassHandle:
		return "handle"
	default:
		return fmt.Sprintf("FieldClass(%d)", uint8(o))
	}
}

// FieldKind describes the storage of a single shadow field.
//
// A Bits value of zero means "as wide as the platform says": pointer
// width for handles, reference width for references.
type FieldKind struct {
	Class FieldClass
	Bits  int
}

var (
	Reference = FieldKind{Class: ClassReference}
	Handle    = FieldKind{Class: ClassHandle}
	Handle64  = FieldKind{Class: ClassHandle, Bits: 64}
	Bool      = FieldKind{Class: ClassBool, Bits: 8}
	Int8      = FieldKind{Class: ClassInteger, Bits: 8}
	Int16     = FieldKind{Class: ClassInteger, Bits: 16}
	Int32     = FieldKind{Class: ClassInteger, Bits: 32}
	Int64     = FieldKind{Class: ClassInteger, Bits: 64}
)

// String returns the name used for the kind in catalog files.
func (o FieldKind) String() string {
	switch o.Class {
	case ClassReference, ClassHandle:
		if o.Bits == 0 {
			return o.Class.String()
		}
		return fmt.Sprintf("%s%d", o.Class, o.Bits)
	case ClassBool:
		return "bool"
	case ClassInteger:
		return fmt.Sprintf("int%d", o.Bits)
	default:
		return o.Class.String()
	}
}

// ParseFieldKind parses the names produced by FieldKind.String.
func ParseFieldKind(s string) (FieldKind, error) {
	switch s {
	case "ref", "reference":
		return Reference, nil
	case "handle":
		return Handle, nil
	case "handle32":
		return FieldKind{Class: ClassHandle, Bits: 32}, nil
	case "handle64":
		return Handle64, nil
	case "bool", "boolean":
		return Bool, nil
	case "int8", "byte":
		return Int8, nil
	case "int16", "short", "char":
		return Int16, nil
	case "int32", "int":
		return Int32, nil
	case "int64", "long":
		return Int64, nil
	default:
		return FieldKind{}, fmt.Errorf("unknown field kind: '%s'", s)
	}
}

func (o FieldKind) validate() error {
	switch o.Class {
	case ClassReference, ClassHandle:
		switch o.Bits {
		case 0, 32, 64:
			return nil
		}
	case ClassBool:
		if o.Bits == 8 {
			return nil
		}
	case ClassInteger:
		switch o.Bits {
		case 8, 16, 32, 64:
			return nil
		}
	default:
		return fmt.Errorf("unknown field class %s", o.Class)
	}

	return fmt.Errorf("unsupported width %d for %s field", o.Bits, o.Class)
}

// sizeOn returns the field's size in bytes on the given platform.
// Alignment is always equal to the size.
func (o FieldKind) sizeOn(p Platform) uint64 {
	if o.Bits != 0 {
		return uint64(o.Bits / 8)
	}

	switch o.Class {
	case ClassReference:
		return uint64(p.referenceSize())
	default:
		return uint64(p.PointerSize)
	}
}
