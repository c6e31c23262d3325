package memory

import (
	"bytes"
	"encoding/binary"
	"testing"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

func TestPointerMakerForARM_FromUint(t *testing.T) {
	pm := PointerMakerForARM()
	pointer := pm.FromUint(0xdeadbeef)
	exp := []byte{0xef, 0xbe, 0xad, 0xde}
	if !bytes.Equal(pointer.Bytes(), exp) {
		t.Fatalf("expected 0x%x - got 0x%x", exp, pointer.Bytes())
	}
}

func TestPointerMakerForARM_FromHexBytes(t *testing.T) {
	exp := []byte{0xef, 0xbe, 0xad, 0x00}

	pm := PointerMakerForARM()
	pointer, err := pm.FromHexBytes([]byte("0xadbeef"), binary.BigEndian)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(pointer.Bytes(), exp) {
		t.Fatalf("expected 0x%x - got 0x%x", exp, pointer.Bytes())
	}

	pointer, err = pm.FromHexBytes([]byte("0xefbead"), binary.LittleEndian)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(pointer.Bytes(), exp) {
		t.Fatalf("expected 0x%x - got 0x%x", exp, pointer.Bytes())
	}
}

func TestPointerMakerForARM64_FromUint(t *testing.T) {
	pm := PointerMakerForARM64()
	pointer := pm.FromUint(0x00000000deadbeef)
	exp := []byte{0xef, 0xbe, 0xad, 0xde, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(pointer.Bytes(), exp) {
		t.Fatalf("expected 0x%x - got 0x%x", exp, pointer.Bytes())
	}
}

func TestPointerMakerForARM64_FromHexBytesTooLong(t *testing.T) {
	pm := PointerMakerForARM64()
	_, err := pm.FromHexBytes([]byte("0x00000000deadbeef00"), binary.BigEndian)
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestPointerMaker_Decode(t *testing.T) {
	pm := PointerMakerForARM64()

	pointer, err := pm.Decode([]byte{0x08, 0x20, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	if pointer.Uint() != 0x2008 {
		t.Fatalf("expected 0x2008 - got %s", pointer.HexString())
	}

	_, err = pm.Decode([]byte{0x08})
	if err == nil {
		t.Fatal("expected an error for a short pointer")
	}
}

func TestPointerMaker_Read(t *testing.T) {
	pm := PointerMakerForARM()
	img := NewImage(0x100, []byte{0, 0, 0, 0, 0x0d, 0xf0, 0xad, 0x0b})

	pointer, err := pm.Read(img, 0x104)
	if err != nil {
		t.Fatal(err)
	}

	if pointer.Uint() != 0x0badf00d {
		t.Fatalf("expected 0xbadf00d - got %s", pointer.HexString())
	}

	_, err = pm.Read(img, 0x106)
	if err == nil {
		t.Fatal("expected an out of bounds error")
	}
}

func TestPointerMakerFor_InvalidPlatform(t *testing.T) {
	_, err := PointerMakerFor(shadow.Platform{Name: "bad", PointerSize: 8})
	if err == nil {
		t.Fatal("expected an error for a platform without a byte order")
	}
}
