package bstruct_test

import (
	"fmt"
	"log"

	"gitlab.com/stephen-fox/artshadow/bstruct"
	"gitlab.com/stephen-fox/artshadow/shadow"
)

func ExampleTypeOf() {
	type methodHandle struct {
		Type                *byte
		NominalType         *byte
		CachedSpreadInvoker *byte
		HandleKind          int32
		ArtFieldOrMethod    uintptr
	}

	mh, err := bstruct.TypeOf("MethodHandle", methodHandle{}, nil, nil)
	if err != nil {
		log.Fatalln(err)
	}

	r, err := shadow.NewResolver(shadow.PlatformARM64)
	if err != nil {
		log.Fatalln(err)
	}

	offset, err := r.Resolve(mh, "ArtFieldOrMethod")
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Println(offset)

	// Output:
	// 0x20
}

func ExampleTypeOf_with_logging() {
	type executable struct {
		AccessFlags int32   `shadow:"accessFlags"`
		ArtMethod   int64   `shadow:"artMethod,handle"`
		Internal    string  `shadow:"-"`
		Parameters  []*byte `shadow:"parameters"`
	}

	base := shadow.MustNewType("AccessibleObject", []shadow.Field{
		shadow.F("override", shadow.Bool),
	})

	_, err := bstruct.TypeOf("Executable", executable{}, base, func(fi bstruct.FieldInfo) error {
		fmt.Printf("field: %d | name: %q | go type: %s | kind: %s\n",
			fi.Index, fi.Name, fi.GoType, fi.Kind)
		return nil
	})
	if err != nil {
		log.Fatalln(err)
	}

	// Output:
	// field: 0 | name: "accessFlags" | go type: int32 | kind: int32
	// field: 1 | name: "artMethod" | go type: int64 | kind: handle
	// field: 3 | name: "parameters" | go type: []*uint8 | kind: ref
}
