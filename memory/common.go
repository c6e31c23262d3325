package memory

import (
	"encoding/binary"
	"fmt"

	"go.uber.org/zap"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

// Reader abstracts reading the memory of a target process.
type Reader interface {
	// ReadAt fills p with the bytes stored at addr.
	ReadAt(p []byte, addr uint64) error
}

// Writer abstracts writing the memory of a target process.
type Writer interface {
	// WriteAt stores p at addr.
	WriteAt(p []byte, addr uint64) error
}

// ReadWriter groups Reader and Writer.
type ReadWriter interface {
	Reader
	Writer
}

var (
	// DefaultExitFn is invoked by functions and methods ending in
	// the "OrExit" suffix when an error occurs.
	DefaultExitFn = func(err error) {
		shadow.FatalLogger().Fatal("fatal", zap.Error(err))
	}
)

func readUint(mem Reader, order binary.ByteOrder, addr uint64, size uint64) (uint64, error) {
	b := make([]byte, size)

	err := mem.ReadAt(b, addr)
	if err != nil {
		return 0, fmt.Errorf("failed to read %d bytes at 0x%x - %w", size, addr, err)
	}

	return decodeUint(order, b)
}

func writeUint(mem Writer, order binary.ByteOrder, addr uint64, size uint64, value uint64) error {
	b, err := encodeUint(order, size, value)
	if err != nil {
		return err
	}

	err = mem.WriteAt(b, addr)
	if err != nil {
		return fmt.Errorf("failed to write %d bytes at 0x%x - %w", size, addr, err)
	}

	return nil
}

func decodeUint(order binary.ByteOrder, b []byte) (uint64, error) {
	switch len(b) {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(order.Uint16(b)), nil
	case 4:
		return uint64(order.Uint32(b)), nil
	case 8:
		return order.Uint64(b), nil
	default:
		return 0, fmt.Errorf("unsupported integer size: %d", len(b))
	}
}

func encodeUint(order binary.ByteOrder, size uint64, value uint64) ([]byte, error) {
	out := make([]byte, size)

	switch size {
	case 1:
		if value > 0xff {
			return nil, fmt.Errorf("value 0x%x does not fit in 1 byte", value)
		}
		out[0] = byte(value)
	case 2:
		if value > 0xffff {
			return nil, fmt.Errorf("value 0x%x does not fit in 2 bytes", value)
		}
		order.PutUint16(out, uint16(value))
	case 4:
		if value > 0xffffffff {
			return nil, fmt.Errorf("value 0x%x does not fit in 4 bytes", value)
		}
		order.PutUint32(out, uint32(value))
	case 8:
		order.PutUint64(out, value)
	default:
		return nil, fmt.Errorf("unsupported integer size: %d", size)
	}

	return out, nil
}
