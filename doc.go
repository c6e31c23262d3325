// Package artshadow provides functionality for locating hidden fields in
// the internal metadata objects of a managed runtime.
//
// The runtime's own reflection API refuses to reveal private runtime
// structures. Instead, this module keeps "shadow" descriptions of those
// structures whose field order and widths echo the real declarations, and
// computes byte offsets from them. A raw memory accessor can then read or
// overwrite the fields directly.
//
// APIs are separated into subpackages, and documented accordingly.
//
// For scripting convenience, "OrExit" functions and methods are provided.
// Any errors encountered by these functions are treated as fatal. In such
// cases, an exit handler function is invoked.
package artshadow
