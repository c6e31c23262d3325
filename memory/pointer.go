package memory

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

func PointerMakerForARM64() PointerMaker {
	return PointerMakerForOrExit(shadow.PlatformARM64)
}

func PointerMakerForARM() PointerMaker {
	return PointerMakerForOrExit(shadow.PlatformARM)
}

func PointerMakerForOrExit(platform shadow.Platform) PointerMaker {
	pm, err := PointerMakerFor(platform)
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to create pointer maker - %w", err))
	}
	return pm
}

// PointerMakerFor creates a PointerMaker for the platform's byte order
// and pointer size.
func PointerMakerFor(platform shadow.Platform) (PointerMaker, error) {
	err := platform.Validate()
	if err != nil {
		return PointerMaker{}, err
	}

	return PointerMaker{
		byteOrder: platform.ByteOrder,
		ptrSize:   platform.PointerSize,
	}, nil
}

// PointerMaker encodes and decodes native pointers, including the
// opaque handle fields of a shadow.
type PointerMaker struct {
	byteOrder binary.ByteOrder
	ptrSize   int
}

// Size returns the pointer size in bytes.
func (o PointerMaker) Size() int {
	return o.ptrSize
}

// ByteOrder returns the target's byte order.
func (o PointerMaker) ByteOrder() binary.ByteOrder {
	return o.byteOrder
}

// FromUint encodes address. Bits that do not fit the pointer size
// are discarded.
func (o PointerMaker) FromUint(address uint64) Pointer {
	out := make([]byte, o.ptrSize)
	switch o.ptrSize {
	case 4:
		address &= 0xffffffff
		o.byteOrder.PutUint32(out, uint32(address))
	case 8:
		o.byteOrder.PutUint64(out, address)
	default:
		panic(fmt.Sprintf("unsupported pointer size: %d", o.ptrSize))
	}

	return Pointer{value: address, raw: out}
}

// ParseUint parses s in the given base.
func (o PointerMaker) ParseUint(s string, base int) (Pointer, error) {
	v, err := strconv.ParseUint(s, base, o.ptrSize*8)
	if err != nil {
		return Pointer{}, fmt.Errorf("failed to parse pointer - %w", err)
	}
	return o.FromUint(v), nil
}

// ParseUintPrefix is like ParseUint, but strips prefix from s first.
func (o PointerMaker) ParseUintPrefix(s string, base int, prefix string) (Pointer, error) {
	return o.ParseUint(strings.TrimPrefix(s, prefix), base)
}

// FromHexString decodes a hex string that is stored in
// sourceEndianness order.
func (o PointerMaker) FromHexString(hexStr string, sourceEndianness binary.ByteOrder) (Pointer, error) {
	return o.FromHexBytes([]byte(hexStr), sourceEndianness)
}

func (o PointerMaker) FromHexBytes(hexBytes []byte, sourceEndianness binary.ByteOrder) (Pointer, error) {
	hexBytesNoPrefix := bytes.TrimPrefix(hexBytes, []byte("0x"))

	hexStrLen := len(hexBytesNoPrefix)
	if hexStrLen == 0 {
		return Pointer{}, fmt.Errorf("hex string cannot be zero-length")
	}

	maxLen := o.ptrSize * 2
	if hexStrLen > maxLen {
		return Pointer{}, fmt.Errorf("hex string cannot be longer than %d chars - it is %d chars long",
			maxLen, hexStrLen)
	}

	numZeros := maxLen - hexStrLen
	if numZeros > 0 {
		zeros := bytes.Repeat([]byte("0"), numZeros)
		if sourceEndianness.String() == binary.LittleEndian.String() {
			hexBytesNoPrefix = append(hexBytesNoPrefix, zeros...)
		} else {
			hexBytesNoPrefix = append(zeros, hexBytesNoPrefix...)
		}
	}

	decoded := make([]byte, o.ptrSize)
	_, err := hex.Decode(decoded, hexBytesNoPrefix)
	if err != nil {
		return Pointer{}, fmt.Errorf("failed to hex decode data - %w", err)
	}

	v, err := decodeUint(sourceEndianness, decoded)
	if err != nil {
		return Pointer{}, err
	}

	return o.FromUint(v), nil
}

// Decode decodes a pointer stored in target byte order.
func (o PointerMaker) Decode(b []byte) (Pointer, error) {
	if len(b) != o.ptrSize {
		return Pointer{}, fmt.Errorf("pointer must be %d bytes - it is %d bytes",
			o.ptrSize, len(b))
	}

	v, err := decodeUint(o.byteOrder, b)
	if err != nil {
		return Pointer{}, err
	}

	return o.FromUint(v), nil
}

// Read reads a pointer from mem at addr.
func (o PointerMaker) Read(mem Reader, addr uint64) (Pointer, error) {
	b := make([]byte, o.ptrSize)

	err := mem.ReadAt(b, addr)
	if err != nil {
		return Pointer{}, fmt.Errorf("failed to read pointer at 0x%x - %w", addr, err)
	}

	return o.Decode(b)
}

// Pointer is a native pointer in the target's representation.
type Pointer struct {
	value uint64
	raw   []byte
}

// Uint returns the pointer's numeric value.
func (o Pointer) Uint() uint64 {
	return o.value
}

// Bytes returns the pointer in target byte order.
func (o Pointer) Bytes() []byte {
	return o.raw
}

// IsNull reports whether the pointer is zero.
func (o Pointer) IsNull() bool {
	return o.value == 0
}

func (o Pointer) HexString() string {
	return fmt.Sprintf("0x%x", o.value)
}
