package conv

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

// LayoutToCDefines writes one "#define <PREFIX>_<FIELD>_OFFSET" line
// per field and a "<PREFIX>_SIZE" line, preceded by a comment naming
// the shadow and platform.
//
// Field names are checked as for LayoutToGoConsts.
func LayoutToCDefines(w io.Writer, prefix string, layout shadow.Layout) error {
	err := checkFieldNames(layout)
	if err != nil {
		return err
	}

	defines := make([]namedValue, 0, len(layout.Fields)+1)
	for _, fd := range layout.Fields {
		defines = append(defines, namedValue{
			name:  cIdentifier(prefix, fd.Name) + "_OFFSET",
			value: uint64(fd.Offset),
			note:  fd.Kind.String(),
		})
	}
	defines = append(defines, namedValue{
		name:  cIdentifier(prefix, "") + "_SIZE",
		value: layout.Size,
	})

	err = checkIdentifiers(defines)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "/* %s (%s) */\n", layout.Shadow, layout.Platform)

	longest := longestName(defines)
	for _, d := range defines {
		fmt.Fprintf(bw, "#define %s%s 0x%x", d.name, strings.Repeat(" ", longest-len(d.name)), d.value)
		if d.note != "" {
			fmt.Fprintf(bw, " /* %s */", d.note)
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func cIdentifier(prefix string, field string) string {
	var words []string
	for _, part := range []string{prefix, field} {
		for _, word := range splitWords(part) {
			words = append(words, strings.ToUpper(word))
		}
	}
	return strings.Join(words, "_")
}
