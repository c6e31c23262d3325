// Package shadow mirrors the layout of a managed runtime's internal
// metadata objects and turns those mirrors into byte offsets.
//
// Catalog
//
// A Catalog holds one shadow Type per internal structure (see Kind).
// A shadow is an ordered list of fields whose count, order, and widths
// echo the real structure. Shadows are plain data. They are never
// instantiated, and nothing about them changes after construction.
//
// The built-in catalog describes ART on API 26 and later. Catalogs for
// other runtime builds can be loaded from YAML with LoadCatalog and
// installed with Registry.Swap.
//
// Resolving offsets
//
// A Resolver walks a shadow's fields in declared order, base shadows
// first, aligning each field to its natural alignment on the target
// Platform:
//
//	r, err := shadow.NewResolver(shadow.PlatformARM64)
//	if err != nil {
//		return err
//	}
//
//	mh, err := shadow.GetShadow(shadow.MethodHandle)
//	if err != nil {
//		return err
//	}
//
//	offset, err := r.Resolve(mh, "artFieldOrMethod")
//
// Layout drift
//
// If a shadow falls out of sync with the runtime it mirrors, Resolve
// returns a plausible but wrong offset. Nothing inside this package can
// detect that. Check the live runtime with Catalog.Verify before
// trusting any offset.
package shadow
