package memory

import (
	"fmt"
)

// NewImage creates an Image of data mapped at base. The slice is used
// directly, so writes through the Image are visible in data.
func NewImage(base uint64, data []byte) *Image {
	return &Image{
		base: base,
		data: data,
	}
}

// Image is a ReadWriter over a contiguous chunk of memory, such as a
// region copied out of a target process.
type Image struct {
	base uint64
	data []byte
}

// Base returns the address of the first byte of the image.
func (o *Image) Base() uint64 {
	return o.base
}

// Len returns the size of the image in bytes.
func (o *Image) Len() int {
	return len(o.data)
}

func (o *Image) ReadAt(p []byte, addr uint64) error {
	start, err := o.index(addr, len(p))
	if err != nil {
		return err
	}

	copy(p, o.data[start:])

	return nil
}

func (o *Image) WriteAt(p []byte, addr uint64) error {
	start, err := o.index(addr, len(p))
	if err != nil {
		return err
	}

	copy(o.data[start:], p)

	return nil
}

func (o *Image) index(addr uint64, n int) (int, error) {
	end := o.base + uint64(len(o.data))

	if addr < o.base || addr+uint64(n) > end || addr+uint64(n) < addr {
		return 0, fmt.Errorf("access of %d bytes at 0x%x is outside image 0x%x-0x%x",
			n, addr, o.base, end)
	}

	return int(addr - o.base), nil
}
