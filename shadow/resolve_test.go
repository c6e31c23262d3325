package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_PointerIntPointer64(t *testing.T) {
	typ := MustNewType("abc", []Field{
		F("a", Reference),
		F("b", Int32),
		F("c", Reference),
	})

	r, err := NewResolver(PlatformARM64)
	require.NoError(t, err)

	for name, exp := range map[string]Offset{"a": 0, "b": 8, "c": 16} {
		offset, err := r.Resolve(typ, name)
		require.NoError(t, err)
		assert.Equal(t, exp, offset, "field %s", name)
	}

	layout, err := r.Layout(typ)
	require.NoError(t, err)
	assert.Equal(t, uint64(24), layout.Size)
	assert.Equal(t, uint64(8), layout.Align)
}

func TestResolve_PointerIntPointer32(t *testing.T) {
	typ := MustNewType("abc", []Field{
		F("a", Reference),
		F("b", Int32),
		F("c", Reference),
	})

	for name, exp := range map[string]Offset{"a": 0, "b": 4, "c": 8} {
		offset, err := Resolve(typ, name, PlatformARM)
		require.NoError(t, err)
		assert.Equal(t, exp, offset, "field %s", name)
	}
}

func TestResolve_DerivedAfterBase(t *testing.T) {
	base := MustNewType("base", []Field{F("basePtr", Reference)})
	derived := MustNewType("derived", []Field{F("own", Int32)}, WithBase(base))

	r, err := NewResolver(PlatformARM64)
	require.NoError(t, err)

	own, err := r.Resolve(derived, "own")
	require.NoError(t, err)
	assert.Equal(t, Offset(8), own)

	inherited, err := r.Resolve(derived, "basePtr")
	require.NoError(t, err)
	assert.Equal(t, Offset(0), inherited)

	layout, err := r.Layout(derived)
	require.NoError(t, err)
	assert.Equal(t, Offset(8), layout.InheritedSize)
	assert.Equal(t, 2, derived.NumFields())
}

func TestResolve_FirstOwnFieldStartsAfterInherited(t *testing.T) {
	r, err := NewResolver(PlatformARM64)
	require.NoError(t, err)

	for _, kind := range ARTCatalog().Kinds() {
		typ, err := GetShadow(kind)
		require.NoError(t, err)

		if typ.Base() == nil || len(typ.Fields()) == 0 {
			continue
		}

		baseLayout, err := r.Layout(typ.Base())
		require.NoError(t, err)

		layout, err := r.Layout(typ)
		require.NoError(t, err)

		numInherited := typ.Base().NumFields()
		first := layout.Fields[numInherited]

		last := baseLayout.Fields[len(baseLayout.Fields)-1]
		inheritedEnd := uint64(last.Offset) + last.Size

		assert.Equal(t, layout.InheritedSize, first.Offset, kind.String())
		assert.Equal(t, alignUp(inheritedEnd, first.Size), uint64(first.Offset), kind.String())

		for i := 0; i < numInherited; i++ {
			assert.Equal(t, baseLayout.Fields[i].Offset, layout.Fields[i].Offset)
			assert.Less(t, uint64(layout.Fields[i].Offset), uint64(first.Offset))
		}
	}
}

func TestResolve_OffsetsIncreaseWithDeclaredIndex(t *testing.T) {
	for _, p := range []Platform{PlatformARM64, PlatformARM, PlatformX86} {
		r, err := NewResolver(p)
		require.NoError(t, err)

		for _, kind := range Kinds() {
			typ, err := GetShadow(kind)
			require.NoError(t, err)

			layout, err := r.Layout(typ)
			require.NoError(t, err)
			require.Len(t, layout.Fields, typ.NumFields())

			for i, fd := range layout.Fields {
				assert.Equal(t, i, fd.DeclaredIndex)
				if i > 0 {
					prev := layout.Fields[i-1]
					assert.Greater(t, uint64(fd.Offset), uint64(prev.Offset), "%s.%s on %s", typ.Name(), fd.Name, p.Name)
					assert.GreaterOrEqual(t, uint64(fd.Offset), uint64(prev.Offset)+prev.Size)
				}
			}
		}
	}
}

func TestResolve_FieldNotFound(t *testing.T) {
	typ := MustNewType("t", []Field{F("x", Int32)})

	_, err := Resolve(typ, "missing", PlatformARM64)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFieldNotFound)
	assert.NotErrorIs(t, err, ErrAmbiguousField)
	assert.Contains(t, err.Error(), "t.missing")
}

func TestResolve_StaticFieldIsNotInstanceField(t *testing.T) {
	probe, err := GetShadow(Probe)
	require.NoError(t, err)

	_, err = Resolve(probe, "a", PlatformARM64)
	require.ErrorIs(t, err, ErrFieldNotFound)
	assert.Contains(t, err.Error(), "declared static")

	offset, err := Resolve(probe, "i", PlatformARM64)
	require.NoError(t, err)
	assert.Equal(t, Offset(0), offset)
}

func TestResolve_AmbiguousField(t *testing.T) {
	twice := MustNewType("twice", []Field{
		F("x", Int32),
		F("x", Int64),
	})

	_, err := Resolve(twice, "x", PlatformARM64)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmbiguousField)

	base := MustNewType("base", []Field{F("hidden", Reference)})
	derived := MustNewType("derived", []Field{F("hidden", Int32)}, WithBase(base))

	_, err = Resolve(derived, "hidden", PlatformARM64)
	require.ErrorIs(t, err, ErrAmbiguousField)
	assert.Contains(t, err.Error(), "base (index 0)")
	assert.Contains(t, err.Error(), "derived (index 1)")
}

func TestResolve_HeaderAndCompressedReferences(t *testing.T) {
	p := Platform{
		Name:          "art64",
		ByteOrder:     PlatformARM64.ByteOrder,
		PointerSize:   8,
		ReferenceSize: 4,
		HeaderSize:    8,
	}

	mh, err := GetShadow(MethodHandle)
	require.NoError(t, err)

	r, err := NewResolver(p)
	require.NoError(t, err)

	layout, err := r.Layout(mh)
	require.NoError(t, err)

	offsets := map[string]Offset{}
	for _, fd := range layout.Fields {
		offsets[fd.Name] = fd.Offset
	}

	assert.Equal(t, map[string]Offset{
		"type":                8,
		"nominalType":         12,
		"cachedSpreadInvoker": 16,
		"handleKind":          20,
		"artFieldOrMethod":    24,
	}, offsets)
	assert.Equal(t, uint64(32), layout.Size)
}

func TestResolve_Handle64OnThirtyTwoBit(t *testing.T) {
	typ := MustNewType("t", []Field{
		F("flag", Bool),
		F("native", Handle64),
		F("ptr", Handle),
	})

	r, err := NewResolver(PlatformARM)
	require.NoError(t, err)

	layout, err := r.Layout(typ)
	require.NoError(t, err)
	assert.Equal(t, Offset(8), layout.Fields[1].Offset)
	assert.Equal(t, uint64(8), layout.Fields[1].Size)
	assert.Equal(t, Offset(16), layout.Fields[2].Offset)
	assert.Equal(t, uint64(4), layout.Fields[2].Size)
}

func TestResolve_Deterministic(t *testing.T) {
	r, err := NewResolver(PlatformARM64)
	require.NoError(t, err)

	cls, err := GetShadow(ClassMeta)
	require.NoError(t, err)

	first, err := r.Layout(cls)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := r.Layout(cls)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNewResolver_InvalidPlatform(t *testing.T) {
	_, err := NewResolver(Platform{Name: "bad", ByteOrder: PlatformARM.ByteOrder, PointerSize: 2})
	assert.ErrorIs(t, err, ErrInvalidPlatform)

	_, err = NewResolver(Platform{Name: "nil-order", PointerSize: 8})
	assert.ErrorIs(t, err, ErrInvalidPlatform)

	_, err = NewResolver(Platform{Name: "bad-ref", ByteOrder: PlatformARM.ByteOrder, PointerSize: 8, ReferenceSize: 2})
	assert.ErrorIs(t, err, ErrInvalidPlatform)
}

func TestLayout_NilType(t *testing.T) {
	r, err := NewResolver(PlatformARM64)
	require.NoError(t, err)

	_, err = r.Layout(nil)
	assert.ErrorIs(t, err, ErrInvalidShadow)
}

func TestResolveOrExit(t *testing.T) {
	orig := DefaultExitFn
	defer func() { DefaultExitFn = orig }()

	var exitErr error
	DefaultExitFn = func(err error) { exitErr = err }

	r, err := NewResolver(PlatformARM64)
	require.NoError(t, err)

	lookup, err := GetShadow(Lookup)
	require.NoError(t, err)

	assert.Equal(t, Offset(8), r.ResolveOrExit(lookup, "allowedModes"))
	assert.NoError(t, exitErr)

	r.ResolveOrExit(lookup, "nope")
	assert.ErrorIs(t, exitErr, ErrFieldNotFound)
}
