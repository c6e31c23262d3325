package bstruct

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

func TestTypeOf_MatchesCatalogLayout(t *testing.T) {
	type class struct {
		classLoader                *byte
		componentType              *byte
		dexCache                   *byte
		extData                    *byte
		ifTable                    []*byte
		name                       string
		superClass                 *byte
		vtable                     *byte
		iFields                    uintptr
		methods                    uintptr
		sFields                    uintptr
		accessFlags                uint32
		classFlags                 uint32
		classSize                  uint32
		clinitThreadId             uint32
		dexClassDefIndex           int32
		dexTypeIndex               int32
		numReferenceInstanceFields uint32
		numReferenceStaticFields   uint32
		objectSize                 uint32
		objectSizeAllocFastPath    uint32
		primitiveType              uint32
		referenceInstanceOffsets   uint32
		status                     int32
		copiedMethodsOffset        uint16
		virtualMethodsOffset       uint16
	}

	derived, err := TypeOf("java.lang.Class", &class{}, nil, nil)
	require.NoError(t, err)

	cataloged, err := shadow.GetShadow(shadow.ClassMeta)
	require.NoError(t, err)

	for _, p := range []shadow.Platform{shadow.PlatformARM64, shadow.PlatformARM} {
		r, err := shadow.NewResolver(p)
		require.NoError(t, err)

		a, err := r.Layout(derived)
		require.NoError(t, err)

		b, err := r.Layout(cataloged)
		require.NoError(t, err)

		assert.Equal(t, b, a, p.Name)
	}
}

func TestTypeOf_Errors(t *testing.T) {
	_, err := TypeOf("x", nil, nil, nil)
	assert.Error(t, err)

	_, err = TypeOf("x", 42, nil, nil)
	assert.ErrorContains(t, err, "expected a struct")

	type withFloat struct {
		F float64
	}
	_, err = TypeOf("x", withFloat{}, nil, nil)
	assert.ErrorContains(t, err, "unsupported data type float64")

	type badTag struct {
		F int32 `shadow:",float"`
	}
	_, err = TypeOf("x", badTag{}, nil, nil)
	assert.ErrorContains(t, err, "invalid kind")

	type ok struct {
		A int32
	}
	stop := errors.New("stop")
	_, err = TypeOf("x", ok{}, nil, func(FieldInfo) error { return stop })
	assert.ErrorIs(t, err, stop)

	_, err = TypeOf("", ok{}, nil, nil)
	assert.ErrorIs(t, err, shadow.ErrInvalidShadow)
}

func TestTypeOfOrExit(t *testing.T) {
	orig := DefaultExitFn
	defer func() { DefaultExitFn = orig }()

	var exitErr error
	DefaultExitFn = func(err error) { exitErr = err }

	type lookup struct {
		LookupClass  *byte `shadow:"lookupClass"`
		AllowedModes int32 `shadow:"allowedModes"`
	}

	base := shadow.MustNewType("Object", []shadow.Field{shadow.F("klass", shadow.Reference)})

	typ := TypeOfOrExit("Lookup", lookup{}, base, nil)
	require.NoError(t, exitErr)
	assert.Same(t, base, typ.Base())
	assert.Equal(t, []shadow.Field{
		shadow.F("lookupClass", shadow.Reference),
		shadow.F("allowedModes", shadow.Int32),
	}, typ.Fields())

	TypeOfOrExit("bad", 1, nil, nil)
	assert.Error(t, exitErr)
}
