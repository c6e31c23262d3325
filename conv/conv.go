// Package conv renders resolved shadow layouts as source code, so that
// native accessors can be compiled against the offsets.
package conv

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

// LayoutToGoConsts writes a Go const block with one "<prefix><Field>Offset"
// constant per field and a "<prefix>Size" constant.
//
// A layout in which a field name is declared more than once fails with
// shadow.ErrAmbiguousField, and nothing is written.
func LayoutToGoConsts(w io.Writer, prefix string, layout shadow.Layout) error {
	err := checkFieldNames(layout)
	if err != nil {
		return err
	}

	consts := make([]namedValue, 0, len(layout.Fields)+1)
	for _, fd := range layout.Fields {
		consts = append(consts, namedValue{
			name:  goIdentifier(prefix, fd.Name) + "Offset",
			value: uint64(fd.Offset),
			note:  fd.Kind.String(),
		})
	}
	consts = append(consts, namedValue{
		name:  goIdentifier(prefix, "") + "Size",
		value: layout.Size,
	})

	err = checkIdentifiers(consts)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "// %s (%s)\n", layout.Shadow, layout.Platform)
	bw.WriteString("const (\n")

	longest := longestName(consts)
	for _, c := range consts {
		fmt.Fprintf(bw, "\t%s%s = 0x%x", c.name, strings.Repeat(" ", longest-len(c.name)), c.value)
		if c.note != "" {
			fmt.Fprintf(bw, " // %s", c.note)
		}
		bw.WriteByte('\n')
	}

	bw.WriteString(")\n")

	return bw.Flush()
}

type namedValue struct {
	name  string
	value uint64
	note  string
}

func checkFieldNames(layout shadow.Layout) error {
	for _, fd := range layout.Fields {
		_, err := layout.Field(fd.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

// checkIdentifiers rejects distinct field names that map to the same
// identifier, such as "iFields" and "IFields".
func checkIdentifiers(values []namedValue) error {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v.name]; dup {
			return fmt.Errorf("identifier %s is generated more than once", v.name)
		}
		seen[v.name] = struct{}{}
	}
	return nil
}

func longestName(values []namedValue) int {
	longest := 0
	for _, v := range values {
		if len(v.name) > longest {
			longest = len(v.name)
		}
	}
	return longest
}

func goIdentifier(prefix string, field string) string {
	var b strings.Builder
	for _, part := range []string{prefix, field} {
		for _, word := range splitWords(part) {
			runes := []rune(word)
			runes[0] = unicode.ToUpper(runes[0])
			b.WriteString(string(runes))
		}
	}
	return b.String()
}

// splitWords splits s at camel case boundaries and at any rune that
// cannot appear in an identifier.
func splitWords(s string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && len(current) > 0:
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return words
}
