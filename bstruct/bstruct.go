// Package bstruct derives shadow types from Go struct declarations.
//
// Declaring a shadow as a Go struct keeps it next to code that reads
// the same structure, e.g.:
//
//	type lookup struct {
//		LookupClass  *byte  `shadow:"lookupClass"`
//		AllowedModes int32  `shadow:"allowedModes"`
//	}
//
// The struct is only inspected, never used to hold runtime data.
package bstruct

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

// DefaultExitFn is invoked by functions ending in the "OrExit" suffix
// when an error occurs.
var DefaultExitFn = func(err error) {
	shadow.FatalLogger().Fatal("fatal", zap.Error(err))
}

// FieldInfo describes a struct field as it is added to a shadow.
type FieldInfo struct {
	Index  int
	Name   string
	GoType string
	Kind   shadow.FieldKind
}

func TypeOfOrExit(name string, s interface{}, base *shadow.Type, optFn func(FieldInfo) error) *shadow.Type {
	t, err := TypeOf(name, s, base, optFn)
	if err != nil {
		DefaultExitFn(err)
	}

	return t
}

// TypeOf creates a shadow named name from the fields of struct s,
// in declaration order.
//
// Field kinds follow from the Go types: fixed size integers map to
// integer kinds, bool to shadow.Bool, uintptr to shadow.Handle, and
// pointers, slices, maps, interfaces, and strings to shadow.Reference.
// A "shadow" struct tag may rename a field and override its kind:
//
//	`shadow:"artMethod,handle"`
//	`shadow:",ref"`
//	`shadow:"-"`
//
// Unexported fields are included. optFn, if non-nil, is called for
// every field that is added.
func TypeOf(name string, s interface{}, base *shadow.Type, optFn func(FieldInfo) error) (*shadow.Type, error) {
	if s == nil {
		return nil, errors.New("struct is nil")
	}

	structType := reflect.TypeOf(s)
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected a struct - got %s", structType)
	}

	numFields := structType.NumField()

	var fields []shadow.Field

	for i := 0; i < numFields; i++ {
		field := structType.Field(i)

		fieldName, kindOverride, skip := parseTag(field.Tag.Get("shadow"))
		if skip {
			continue
		}

		if fieldName == "" {
			fieldName = field.Name
		}

		var kind shadow.FieldKind
		if kindOverride != "" {
			var err error
			kind, err = shadow.ParseFieldKind(kindOverride)
			if err != nil {
				return nil, fmt.Errorf("invalid kind for field %q (index %d) - %w",
					field.Name, i, err)
			}
		} else {
			var err error
			kind, err = kindOf(field.Type)
			if err != nil {
				return nil, fmt.Errorf("unsupported data type %s for field %q (index %d) - %w",
					field.Type, field.Name, i, err)
			}
		}

		fields = append(fields, shadow.F(fieldName, kind))

		if optFn != nil {
			err := optFn(FieldInfo{
				Index:  i,
				Name:   fieldName,
				GoType: field.Type.String(),
				Kind:   kind,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	var opts []shadow.TypeOption
	if base != nil {
		opts = append(opts, shadow.WithBase(base))
	}

	return shadow.NewType(name, fields, opts...)
}

func parseTag(tag string) (name string, kind string, skip bool) {
	if tag == "-" {
		return "", "", true
	}

	name, kind, _ = strings.Cut(tag, ",")

	return name, kind, false
}

func kindOf(t reflect.Type) (shadow.FieldKind, error) {
	switch t.Kind() {
	case reflect.Bool:
		return shadow.Bool, nil
	case reflect.Int8, reflect.Uint8:
		return shadow.Int8, nil
	case reflect.Int16, reflect.Uint16:
		return shadow.Int16, nil
	case reflect.Int32, reflect.Uint32:
		return shadow.Int32, nil
	case reflect.Int64, reflect.Uint64:
		return shadow.Int64, nil
	case reflect.Uintptr:
		return shadow.Handle, nil
	case reflect.Ptr, reflect.UnsafePointer, reflect.Slice, reflect.Map,
		reflect.Interface, reflect.String, reflect.Func, reflect.Chan:
		return shadow.Reference, nil
	default:
		return shadow.FieldKind{}, errors.New("no fixed-width shadow kind for this type")
	}
}
