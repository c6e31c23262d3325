package shadow

import (
	"fmt"
	"strings"
)

// Kind identifies an internal runtime structure with a cataloged shadow.
type Kind int

const (
	ClassMeta Kind = iota + 1
	AccessibleObject
	Executable
	MethodHandle
	MethodHandleImpl
	HandleInfo
	Lookup
	Probe
)

var kindNames = map[Kind]string{
	ClassMeta:        "ClassMeta",
	AccessibleObject: "AccessibleObject",
	Executable:       "Executable",
	MethodHandle:     "MethodHandle",
	MethodHandleImpl: "MethodHandleImpl",
	HandleInfo:       "HandleInfo",
	Lookup:           "Lookup",
	Probe:            "Probe",
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		ClassMeta,
		AccessibleObject,
		Executable,
		MethodHandle,
		MethodHandleImpl,
		HandleInfo,
		Lookup,
		Probe,
	}
}

func (o Kind) String() string {
	name, hasIt := kindNames[o]
	if !hasIt {
		return fmt.Sprintf("Kind(%d)", int(o))
	}
	return name
}

// ParseKind returns the Kind named s. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(name, s) {
			return k, nil
		}
	}
	return 0, &Error{
		Kind:   KindConfiguration,
		Detail: fmt.Sprintf("unknown shadow kind '%s'", s),
	}
}

// RuntimeVersion names the runtime builds a catalog's layouts were
// taken from.
type RuntimeVersion struct {
	Runtime string

	// MinAPI and MaxAPI bound the supported API levels, inclusive.
	// A MaxAPI of zero means no upper bound.
	MinAPI int
	MaxAPI int
}

func (o RuntimeVersion) String() string {
	if o.MaxAPI == 0 {
		return fmt.Sprintf("%s api %d+", o.Runtime, o.MinAPI)
	}
	return fmt.Sprintf("%s api %d-%d", o.Runtime, o.MinAPI, o.MaxAPI)
}

// Supports reports whether apiLevel is within the version's range.
func (o RuntimeVersion) Supports(apiLevel int) bool {
	if apiLevel < o.MinAPI {
		return false
	}
	return o.MaxAPI == 0 || apiLevel <= o.MaxAPI
}

// Catalog is a read-only set of shadows for one runtime version.
type Catalog struct {
	version RuntimeVersion
	shadows map[Kind]*Type
}

// NewCatalog creates a catalog from the specified shadows.
func NewCatalog(version RuntimeVersion, shadows map[Kind]*Type) (*Catalog, error) {
	if version.Runtime == "" {
		return nil, invalidShadow("", "catalog runtime name cannot be empty")
	}

	if version.MaxAPI != 0 && version.MaxAPI < version.MinAPI {
		return nil, invalidShadow("", fmt.Sprintf("catalog api range %d-%d is empty",
			version.MinAPI, version.MaxAPI))
	}

	c := &Catalog{
		version: version,
		shadows: make(map[Kind]*Type, len(shadows)),
	}

	for kind, t := range shadows {
		if _, known := kindNames[kind]; !known {
			return nil, configurationError(kind)
		}

		if t == nil {
			return nil, invalidShadow(kind.String(), "shadow cannot be nil")
		}

		err := t.validate()
		if err != nil {
			return nil, err
		}

		c.shadows[kind] = t
	}

	return c, nil
}

// Version returns the runtime version the catalog describes.
func (o *Catalog) Version() RuntimeVersion {
	return o.version
}

// Shadow returns the shadow cataloged for kind. It fails with
// ErrConfiguration for a kind the catalog does not hold.
func (o *Catalog) Shadow(kind Kind) (*Type, error) {
	t, hasIt := o.shadows[kind]
	if !hasIt {
		return nil, configurationError(kind)
	}
	return t, nil
}

// ShadowOrExit is like Shadow, but invokes DefaultExitFn on error.
func (o *Catalog) ShadowOrExit(kind Kind) *Type {
	t, err := o.Shadow(kind)
	if err != nil {
		DefaultExitFn(fmt.Errorf("failed to get shadow - %w", err))
	}
	return t
}

// Kinds returns the cataloged kinds in declaration order.
func (o *Catalog) Kinds() []Kind {
	var kinds []Kind
	for _, k := range Kinds() {
		if _, hasIt := o.shadows[k]; hasIt {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Verify checks that a live runtime at apiLevel matches the catalog.
// Offsets from a catalog that fails verification must not be trusted.
func (o *Catalog) Verify(apiLevel int) error {
	if !o.version.Supports(apiLevel) {
		return &Error{
			Kind:   KindVersionMismatch,
			Detail: fmt.Sprintf("runtime api level %d is outside %s", apiLevel, o.version),
		}
	}
	return nil
}
