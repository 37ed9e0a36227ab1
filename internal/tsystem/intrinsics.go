package tsystem

// Intrinsic names a hardware-accelerated instruction-set intrinsic the
// scanner pass may encounter as a dependency source (spec §4 rooting,
// Open Question resolved in SPEC_FULL.md §9: support level for a fixed
// list of ISA extensions is runtime-checked rather than baked in at
// compile time, because their availability varies across the deployed
// fleet even within one CPU vendor generation).
type Intrinsic string

const (
	IntrinsicAes        Intrinsic = "Aes"
	IntrinsicPclmulqdq   Intrinsic = "Pclmulqdq"
	IntrinsicSse3        Intrinsic = "Sse3"
	IntrinsicSsse3       Intrinsic = "Ssse3"
	IntrinsicLzcnt       Intrinsic = "Lzcnt"
	IntrinsicSse         Intrinsic = "Sse"
	IntrinsicSse2        Intrinsic = "Sse2"
	IntrinsicSse41       Intrinsic = "Sse41"
	IntrinsicSse42       Intrinsic = "Sse42"
	IntrinsicAvx         Intrinsic = "Avx"
	IntrinsicAvx2        Intrinsic = "Avx2"
	IntrinsicPopcnt      Intrinsic = "Popcnt"
	IntrinsicBmi1        Intrinsic = "Bmi1"
	IntrinsicBmi2        Intrinsic = "Bmi2"
)

// runtimeCheckedIntrinsics is the fixed, authoritative list from the
// resolved Open Question: these five extensions are common enough to
// be worth a method body, but not universal enough to assume present,
// so the compiled code must probe for them at process start rather
// than having the driver decide availability ahead of time.
var runtimeCheckedIntrinsics = map[Intrinsic]bool{
	IntrinsicAes:       true,
	IntrinsicPclmulqdq: true,
	IntrinsicSse3:      true,
	IntrinsicSsse3:     true,
	IntrinsicLzcnt:     true,
}

// IsKnownSupportedIntrinsicAtCompileTime reports whether the driver can
// assume i is present on every machine the compiled output will run on
// (so the scanner pass can root its intrinsic-using method bodies
// unconditionally, without a dynamic dependency on a runtime
// feature-detection node).
func IsKnownSupportedIntrinsicAtCompileTime(i Intrinsic) bool {
	return !runtimeCheckedIntrinsics[i]
}

// HasKnownSupportLevelAtCompileTime reports whether i's availability is
// decided by this driver ahead of time. The five runtime-checked
// intrinsics are deliberately excluded: their support level is decided
// at process start, not at compile time, so this returns false for
// them even though they are recognized names (SPEC_FULL.md §9 decision
// 2). An unrecognized intrinsic name also returns false, for the
// unrelated reason that it is not modeled at all.
func HasKnownSupportLevelAtCompileTime(i Intrinsic) bool {
	switch i {
	case IntrinsicSse, IntrinsicSse2, IntrinsicSse41, IntrinsicSse42,
		IntrinsicAvx, IntrinsicAvx2, IntrinsicPopcnt, IntrinsicBmi1, IntrinsicBmi2:
		return true
	default:
		return false
	}
}
