package config

import "os"

// Flags is the explicit configuration object spec §9 asks for in place
// of ad hoc environment reads: the three boolean switches named in
// spec §6, resolved once and threaded through the driver.
type Flags struct {
	// RootCanonicalCode makes library root providers include canonical
	// instantiations of generic types/methods (ROOT_CANONICAL_CODE).
	RootCanonicalCode bool
	// NoGenericCode makes the compiler emit an empty body for any
	// generic method (NO_GENERIC_CODE).
	NoGenericCode bool
	// OnlyCanonicalCode makes the compiler emit an empty body for
	// non-canonical instantiations of generics (ONLY_CANONICAL_CODE).
	OnlyCanonicalCode bool
}

// FlagsFromEnv reads the three documented environment variables. A
// value of exactly "1" enables the flag; anything else, including
// unset, leaves it disabled (spec §6: "values \"1\" to enable").
func FlagsFromEnv() Flags {
	return Flags{
		RootCanonicalCode: os.Getenv("ROOT_CANONICAL_CODE") == "1",
		NoGenericCode:     os.Getenv("NO_GENERIC_CODE") == "1",
		OnlyCanonicalCode: os.Getenv("ONLY_CANONICAL_CODE") == "1",
	}
}
