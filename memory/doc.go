// Package memory applies shadow layouts to raw target memory.
//
// The accessor that actually reads and writes the target's memory is
// not part of this package. It is represented by the Reader and Writer
// interfaces, which may be backed by a debugger, /proc/<pid>/mem, an
// in-process unsafe primitive, or a memory dump loaded into an Image.
//
// Objects
//
// An Object pairs an address with a shadow layout, which allows named
// hidden fields to be read or overwritten:
//
//	lookup, err := memory.NewObject(mem, resolver, lookupShadow, addr)
//	if err != nil {
//		return err
//	}
//
//	err = lookup.SetUint("allowedModes", 0xf)
//
// An ObjectBuilder does the reverse, producing the bytes of an object
// from named field values.
//
// Member tables
//
// The runtime keeps a class's fields and methods in native
// length-prefixed arrays of fixed-size records. The record size and the
// distance from the array's start to its first record are not exposed.
// They are measured with a probe class whose adjacent members are known
// (see Calibrate), after which a MemberTable can visit every record of
// any class.
//
// Offset tables
//
// An OffsetTable keeps resolved offsets for several contexts, such as
// target platforms or runtime builds, so that switching targets is a
// one line change.
package memory
