package conv

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

func TestSplitWords(t *testing.T) {
	tests := map[string][]string{
		"artFieldOrMethod":                 {"art", "Field", "Or", "Method"},
		"declaringClassOfOverriddenMethod": {"declaring", "Class", "Of", "Overridden", "Method"},
		"MethodHandleImpl$HandleInfo":      {"Method", "Handle", "Impl", "Handle", "Info"},
		"iFields":                          {"i", "Fields"},
		"ARTMethod":                        {"ART", "Method"},
		"x86_64":                           {"x86", "64"},
		"":                                 nil,
	}

	for in, exp := range tests {
		assert.Equal(t, exp, splitWords(in), in)
	}
}

func TestIdentifiers(t *testing.T) {
	assert.Equal(t, "ClassIFields", goIdentifier("Class", "iFields"))
	assert.Equal(t, "CLASS_I_FIELDS", cIdentifier("Class", "iFields"))
	assert.Equal(t, "NeverCallI", goIdentifier("NeverCall", "i"))
	assert.Equal(t, "NEVER_CALL", cIdentifier("NeverCall", ""))
}

func TestLayoutRendering_RejectsRepeatedNames(t *testing.T) {
	r, err := shadow.NewResolver(shadow.PlatformARM64)
	require.NoError(t, err)

	base := shadow.MustNewType("Base", []shadow.Field{
		shadow.F("value", shadow.Int32),
	})

	hiding := shadow.MustNewType("Hiding", []shadow.Field{
		shadow.F("value", shadow.Int64),
	}, shadow.WithBase(base))

	hidingLayout, err := r.Layout(hiding)
	require.NoError(t, err)

	mangled := shadow.MustNewType("Mangled", []shadow.Field{
		shadow.F("iFields", shadow.Handle),
		shadow.F("IFields", shadow.Handle),
	})

	mangledLayout, err := r.Layout(mangled)
	require.NoError(t, err)

	renderers := map[string]func(io.Writer, string, shadow.Layout) error{
		"go": LayoutToGoConsts,
		"c":  LayoutToCDefines,
	}

	for name, render := range renderers {
		t.Run(name, func(t *testing.T) {
			out := bytes.NewBuffer(nil)

			err := render(out, "Hiding", hidingLayout)
			assert.ErrorIs(t, err, shadow.ErrAmbiguousField)
			assert.Zero(t, out.Len())

			err = render(out, "Mangled", mangledLayout)
			assert.ErrorContains(t, err, "more than once")
			assert.Zero(t, out.Len())
		})
	}
}
