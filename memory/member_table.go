package memory

import (
	"encoding/binary"
	"fmt"

	"gitlab.com/stephen-fox/artshadow/shadow"
)

// MemberLayout describes the runtime's native member arrays: each is
// a uint32 length followed, after Bias bytes from the array's start,
// by Count records of Stride bytes.
type MemberLayout struct {
	Bias   uint64
	Stride uint64
}

// Calibration holds raw addresses taken from the probe class.
type Calibration struct {
	// Array is the probe class's member array pointer, read from
	// its class object (for example ClassMeta's methods field).
	Array uint64

	// First is the native record of the probe's first member
	// (its constructor for methods, its first static for fields).
	First uint64

	// Adjacent holds the native records of two members declared
	// next to each other, in declaration order.
	Adjacent [2]uint64
}

// Calibrate measures a MemberLayout from a probe class.
//
// The record size is the distance between two adjacent members, and
// the bias is the distance from the array's start to its first record.
func Calibrate(c Calibration) (MemberLayout, error) {
	if c.Array == 0 || c.First == 0 || c.Adjacent[0] == 0 || c.Adjacent[1] == 0 {
		return MemberLayout{}, fmt.Errorf("calibration addresses cannot be zero: %+v", c)
	}

	if c.Adjacent[1] <= c.Adjacent[0] {
		return MemberLayout{}, fmt.Errorf("adjacent members are out of order: 0x%x then 0x%x",
			c.Adjacent[0], c.Adjacent[1])
	}

	if c.First <= c.Array {
		return MemberLayout{}, fmt.Errorf("first member 0x%x does not follow array 0x%x",
			c.First, c.Array)
	}

	if c.Adjacent[0] < c.First {
		return MemberLayout{}, fmt.Errorf("adjacent member 0x%x precedes first member 0x%x",
			c.Adjacent[0], c.First)
	}

	ml := MemberLayout{
		Bias:   c.First - c.Array,
		Stride: c.Adjacent[1] - c.Adjacent[0],
	}

	if (c.Adjacent[0]-c.First)%ml.Stride != 0 {
		return MemberLayout{}, fmt.Errorf("adjacent members are not a whole number of %d byte records from the first member",
			ml.Stride)
	}

	return ml, nil
}

// Table returns the MemberTable of the array at addr.
func (o MemberLayout) Table(array uint64) MemberTable {
	return MemberTable{
		Array:  array,
		Layout: o,
	}
}

// MemberTable is one class's native member array.
type MemberTable struct {
	Array  uint64
	Layout MemberLayout
}

// ClassMemberTable reads the member array pointer stored in the named
// handle field of a class object (iFields, sFields, or methods).
func ClassMemberTable(class *Object, field string, ml MemberLayout) (MemberTable, error) {
	fd, err := class.Layout().Field(field)
	if err != nil {
		return MemberTable{}, err
	}

	if fd.Kind.Class != shadow.ClassHandle {
		return MemberTable{}, fmt.Errorf("class field %s is a %s field, not a handle", field, fd.Kind)
	}

	array, err := class.Uint(field)
	if err != nil {
		return MemberTable{}, err
	}

	return ml.Table(array), nil
}

// Count reads the array's length prefix. A null array has no members.
func (o MemberTable) Count(mem Reader, order binary.ByteOrder) (uint32, error) {
	if o.Array == 0 {
		return 0, nil
	}

	n, err := readUint(mem, order, o.Array, 4)
	if err != nil {
		return 0, fmt.Errorf("failed to read member count - %w", err)
	}

	return uint32(n), nil
}

// Address returns the address of the i-th record. i has the type of
// the array's length prefix, as returned by Count.
func (o MemberTable) Address(i uint32) uint64 {
	return o.Array + o.Layout.Bias + uint64(i)*o.Layout.Stride
}

// Walk calls fn with the address of every record in order. Walking
// stops early when fn returns true or an error.
func (o MemberTable) Walk(mem Reader, order binary.ByteOrder, fn func(i int, addr uint64) (bool, error)) error {
	n, err := o.Count(mem, order)
	if err != nil {
		return err
	}

	for i := uint32(0); i < n; i++ {
		stop, err := fn(int(i), o.Address(i))
		if err != nil {
			return fmt.Errorf("failed to visit member %d - %w", i, err)
		}

		if stop {
			return nil
		}
	}

	return nil
}
