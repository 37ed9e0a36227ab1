package diag

// Code is a compact, stable identifier for a diagnostic kind, grouped
// by the component that raises it (compare the lexer/parser/sema code
// ranges of a source compiler — here the ranges are type-system, graph,
// scanner, and compiler instead, since there is no source text).
type Code uint16

const (
	UnknownCode Code = 0

	// Type-system algebra (§4.1, §7): resolution and format failures.
	TSBadImageFormat Code = 1000
	TSTypeLoad       Code = 1001
	TSMissingField   Code = 1002
	TSMissingMethod  Code = 1003
	TSInvalidProgram Code = 1004
	TSCanonMismatch  Code = 1005
	TSRvaOutOfBounds Code = 1006

	// Module group policy (§4.2).
	ModuleNotInGroup     Code = 1100
	ModuleVersionBubble  Code = 1101
	ModuleDuplicateEntry Code = 1102

	// Root providers (§4.3): non-fatal, root skipped.
	RootTypeLoadFailed Code = 1200
	RootSkippedGeneric Code = 1201
	RootFilteredByScan Code = 1202

	// Dependency graph engine (§4.4, §8).
	GraphCycleDetected    Code = 1300
	GraphDependencyFailed Code = 1301
	GraphFixedPointReport Code = 1302

	// Node factory (§4.5).
	NodeFactoryKeyCollision Code = 1400

	// Metadata manager (§4.6).
	ReflectionBlocked Code = 1500

	// Scanner pass (§4.7).
	ScanGenericCodeSize Code = 1600

	// Compiler pass (§4.8, §7): fatal unless noted.
	ScannerFailed      Code = 1700 // fatal: compiler saw what scanner didn't
	RequiresRuntimeJit Code = 1701 // non-fatal: method left empty
	CompileMethodInfo  Code = 1702 // verbose-mode "compiling X" trace line
)

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "UNKNOWN"
	case TSBadImageFormat:
		return "TS_BAD_IMAGE_FORMAT"
	case TSTypeLoad:
		return "TS_TYPE_LOAD"
	case TSMissingField:
		return "TS_MISSING_FIELD"
	case TSMissingMethod:
		return "TS_MISSING_METHOD"
	case TSInvalidProgram:
		return "TS_INVALID_PROGRAM"
	case TSCanonMismatch:
		return "TS_CANON_MISMATCH"
	case TSRvaOutOfBounds:
		return "TS_RVA_OUT_OF_BOUNDS"
	case ModuleNotInGroup:
		return "MODULE_NOT_IN_GROUP"
	case ModuleVersionBubble:
		return "MODULE_VERSION_BUBBLE"
	case ModuleDuplicateEntry:
		return "MODULE_DUPLICATE_ENTRY"
	case RootTypeLoadFailed:
		return "ROOT_TYPE_LOAD_FAILED"
	case RootSkippedGeneric:
		return "ROOT_SKIPPED_GENERIC"
	case RootFilteredByScan:
		return "ROOT_FILTERED_BY_SCAN"
	case GraphCycleDetected:
		return "GRAPH_CYCLE_DETECTED"
	case GraphDependencyFailed:
		return "GRAPH_DEPENDENCY_FAILED"
	case GraphFixedPointReport:
		return "GRAPH_FIXED_POINT_REPORT"
	case NodeFactoryKeyCollision:
		return "NODE_FACTORY_KEY_COLLISION"
	case ReflectionBlocked:
		return "REFLECTION_BLOCKED"
	case ScanGenericCodeSize:
		return "SCAN_GENERIC_CODE_SIZE"
	case ScannerFailed:
		return "SCANNER_FAILED"
	case RequiresRuntimeJit:
		return "REQUIRES_RUNTIME_JIT"
	case CompileMethodInfo:
		return "COMPILE_METHOD_INFO"
	default:
		return "UNKNOWN"
	}
}
