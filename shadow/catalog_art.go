package shadow

// Shadows of ART's mirror objects. Field order follows the declarations
// in libcore and must not be sorted: the resolver lays fields out in
// exactly this order.
var (
	artClass = MustNewType("java.lang.Class", []Field{
		F("classLoader", Reference),
		F("componentType", Reference),
		F("dexCache", Reference),
		F("extData", Reference),
		F("ifTable", Reference),
		F("name", Reference),
		F("superClass", Reference),
		F("vtable", Reference),
		// Native LengthPrefixedArray<ArtField>* and
		// LengthPrefixedArray<ArtMethod>*.
		F("iFields", Handle),
		F("methods", Handle),
		F("sFields", Handle),
		F("accessFlags", Int32),
		F("classFlags", Int32),
		F("classSize", Int32),
		F("clinitThreadId", Int32),
		F("dexClassDefIndex", Int32),
		F("dexTypeIndex", Int32),
		F("numReferenceInstanceFields", Int32),
		F("numReferenceStaticFields", Int32),
		F("objectSize", Int32),
		F("objectSizeAllocFastPath", Int32),
		F("primitiveType", Int32),
		F("referenceInstanceOffsets", Int32),
		F("status", Int32),
		F("copiedMethodsOffset", Int16),
		F("virtualMethodsOffset", Int16),
	})

	artAccessibleObject = MustNewType("java.lang.reflect.AccessibleObject", []Field{
		F("override", Bool),
	})

	artExecutable = MustNewType("java.lang.reflect.Executable", []Field{
		F("accessFlags", Int32),
		F("artMethod", Handle),
		F("declaringClass", Reference),
		F("declaringClassOfOverriddenMethod", Reference),
		F("parameters", Reference),
	}, WithBase(artAccessibleObject))

	artMethodHandle = MustNewType("java.lang.invoke.MethodHandle", []Field{
		F("type", Reference),
		F("nominalType", Reference),
		F("cachedSpreadInvoker", Reference),
		F("handleKind", Int32),
		// ArtField* or ArtMethod*.
		F("artFieldOrMethod", Handle),
	})

	artMethodHandleImpl = MustNewType("java.lang.invoke.MethodHandleImpl", []Field{
		F("info", Reference),
	}, WithBase(artMethodHandle))

	artHandleInfo = MustNewType("java.lang.invoke.MethodHandleImpl$HandleInfo", []Field{
		F("member", Reference),
		F("handle", Reference),
	})

	artLookup = MustNewType("java.lang.invoke.MethodHandles$Lookup", []Field{
		F("lookupClass", Reference),
		F("allowedModes", Int32),
	})

	// The probe is never instantiated. Its adjacent statics a and b,
	// and its adjacent methods s and t, are used to measure the size
	// of native member records. <init> is its first method.
	artProbe = MustNewType("NeverCall", []Field{
		F("i", Int32),
	},
		WithStatics(F("a", Int32), F("b", Int32)),
		WithMethods("<init>", "s", "t"))
)

// ARTVersion is the range of runtimes the built-in catalog describes.
var ARTVersion = RuntimeVersion{
	Runtime: "art",
	MinAPI:  26,
}

// ARTCatalog returns the built-in catalog of ART shadows.
func ARTCatalog() *Catalog {
	c, err := NewCatalog(ARTVersion, map[Kind]*Type{
		ClassMeta:        artClass,
		AccessibleObject: artAccessibleObject,
		Executable:       artExecutable,
		MethodHandle:     artMethodHandle,
		MethodHandleImpl: artMethodHandleImpl,
		HandleInfo:       artHandleInfo,
		Lookup:           artLookup,
		Probe:            artProbe,
	})
	if err != nil {
		panic(err)
	}
	return c
}
