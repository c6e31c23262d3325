package shadow

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Platform describes the target the offsets are computed for.
type Platform struct {
	// Name identifies the platform in offset tables and on the
	// command line.
	Name string

	// ByteOrder is the target's endianness.
	ByteOrder binary.ByteOrder

	// PointerSize is the size of a native pointer in bytes.
	PointerSize int

	// ReferenceSize is the size of a managed reference in bytes.
	// Zero means PointerSize.
	ReferenceSize int

	// HeaderSize is the offset of the first declared field.
	// Zero places the first field at offset 0.
	HeaderSize int
}

var (
	PlatformARM64 = Platform{
		Name:        "arm64",
		ByteOrder:   binary.LittleEndian,
		PointerSize: 8,
	}

	PlatformARM = Platform{
		Name:        "arm",
		ByteOrder:   binary.LittleEndian,
		PointerSize: 4,
	}

	PlatformX86_64 = Platform{
		Name:        "x86_64",
		ByteOrder:   binary.LittleEndian,
		PointerSize: 8,
	}

	PlatformX86 = Platform{
		Name:        "x86",
		ByteOrder:   binary.LittleEndian,
		PointerSize: 4,
	}
)

var namedPlatforms = map[string]Platform{
	PlatformARM64.Name:  PlatformARM64,
	"aarch64":           PlatformARM64,
	PlatformARM.Name:    PlatformARM,
	"armeabi-v7a":       PlatformARM,
	PlatformX86_64.Name: PlatformX86_64,
	"amd64":             PlatformX86_64,
	PlatformX86.Name:    PlatformX86,
	"386":               PlatformX86,
}

// PlatformByName returns one of the preset platforms.
func PlatformByName(name string) (Platform, error) {
	p, hasIt := namedPlatforms[strings.ToLower(name)]
	if !hasIt {
		return Platform{}, &Error{
			Kind:   KindInvalidPlatform,
			Detail: fmt.Sprintf("unknown platform '%s' (known: %s)", name, strings.Join(PlatformNames(), ", ")),
		}
	}
	return p, nil
}

// PlatformNames returns the names accepted by PlatformByName, sorted.
func PlatformNames() []string {
	names := maps.Keys(namedPlatforms)
	slices.Sort(names)
	return names
}

// Validate checks that the platform's sizes are usable.
func (o Platform) Validate() error {
	if o.ByteOrder == nil {
		return &Error{Kind: KindInvalidPlatform, Detail: "byte order cannot be nil"}
	}

	if o.PointerSize != 4 && o.PointerSize != 8 {
		return &Error{
			Kind:   KindInvalidPlatform,
			Detail: fmt.Sprintf("pointer size must be 4 or 8 bytes - it is %d", o.PointerSize),
		}
	}

	if o.ReferenceSize != 0 && o.ReferenceSize != 4 && o.ReferenceSize != 8 {
		return &Error{
			Kind:   KindInvalidPlatform,
			Detail: fmt.Sprintf("reference size must be 4 or 8 bytes - it is %d", o.ReferenceSize),
		}
	}

	if o.HeaderSize < 0 {
		return &Error{Kind: KindInvalidPlatform, Detail: "header size cannot be negative"}
	}

	return nil
}

func (o Platform) referenceSize() int {
	if o.ReferenceSize == 0 {
		return o.PointerSize
	}
	return o.ReferenceSize
}
