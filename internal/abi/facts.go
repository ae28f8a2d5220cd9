// Package abi answers the bit-exact layout and calling-convention questions
// every phase after semantic analysis asks about the compilation target:
// sizes and alignments, register-versus-memory returns, vector capability,
// va_list shape, and mangling dialect. Facts is populated once from a
// resolved target description and is read-only afterwards.
package abi

import (
	"fmt"
	"sync"

	"ember/internal/mangle"
	"ember/internal/target"
	"ember/internal/types"
)

// CFacts captures the C runtime ABI of the target.
type CFacts struct {
	LongSize            uint32
	LongDoubleSize      uint32
	CriticalSectionSize uint32
}

// CppFacts captures C++ interop flags consumed by codegen and mangling.
type CppFacts struct {
	ReverseOverloadOrder bool
	ExceptionInterop     bool
	TwoDtorInVtable      bool
}

// ObjCFacts captures Objective-C interop support.
type ObjCFacts struct {
	Interop bool
}

// Facts is the root aggregate of resolved target ABI facts. Construct with
// New, populate exactly once with Initialize, then treat as immutable. The
// va_list cache is the single post-initialization write and is guarded by an
// exactly-once cell.
type Facts struct {
	Desc  target.Description
	Types *types.Interner

	PtrSize            uint32
	ExtendedFloatSize  uint32
	ExtendedFloatPad   uint32
	ExtendedFloatAlign uint32
	ClassInfoSize      uint32
	MaxStaticDataSize  uint64

	Float32Props  FloatProperties
	Float64Props  FloatProperties
	ExtendedProps FloatProperties

	C    CFacts
	Cpp  CppFacts
	ObjC ObjCFacts

	scope   ScopeResolver
	mangler *mangle.Dispatcher

	vaListOnce *sync.Once
	vaList     types.TypeID

	initialized bool
}

// New creates an empty Facts bound to a type interner. Initialize must be
// called before any query.
func New(in *types.Interner) *Facts {
	return &Facts{Types: in, vaListOnce: new(sync.Once)}
}

// Initialize populates every sub-model from the target description. The
// scope resolver is needed only for the 64-bit POSIX va_list tag type and
// may be nil on targets that never derive it. An OS family outside the
// supported table is a build-configuration bug and panics.
func (f *Facts) Initialize(desc target.Description, scope ScopeResolver) {
	if f.initialized {
		panic(fmt.Errorf("abi: Facts initialized twice (target %q)", desc.Triple))
	}
	switch desc.OS {
	case target.OSLinux, target.OSWindows, target.OSOSX, target.OSFreeBSD,
		target.OSOpenBSD, target.OSDragonFlyBSD, target.OSSolaris:
	default:
		panic(fmt.Errorf("abi: unsupported target os %v (triple %q)", desc.OS, desc.Triple))
	}

	f.Desc = desc
	f.scope = scope

	f.Float32Props = float32Properties()
	f.Float64Props = float64Properties()
	f.ExtendedProps = extendedProperties()

	if desc.IsLP64 {
		f.PtrSize = 8
		f.ClassInfoSize = 152
	} else {
		f.PtrSize = 4
		f.ClassInfoSize = 76
	}

	f.MaxStaticDataSize = 0x7fff_ffff
	if desc.OS == target.OSWindows && !desc.Is64bit && !desc.ObjectFormatIsCoff {
		// The legacy OMF linker cannot emit larger data segments.
		f.MaxStaticDataSize = 0x100_0000
	}

	f.ExtendedFloatSize, f.ExtendedFloatPad, f.ExtendedFloatAlign = extendedFloatLayout(desc)

	f.C = resolveCFacts(desc, f.ExtendedFloatSize)
	f.Cpp = resolveCppFacts(desc)
	f.ObjC = resolveObjCFacts(desc)

	f.mangler = mangle.New(desc.OS, f.Types)
	f.initialized = true

	// Pre-warm the one lazily derived value so the steady state is
	// read-only even under parallel translation units.
	if scope != nil || !f.vaListNeedsScope() {
		f.VaListType()
	}
}

// Deinitialize resets every field to its zero value so the same Facts can be
// re-initialized for a different target. Used by tests and re-targeting
// tools only.
func (f *Facts) Deinitialize() {
	*f = Facts{Types: f.Types, vaListOnce: new(sync.Once)}
}

// extendedFloatLayout is the (size, pad, align) table for the 80-bit
// extended type, keyed on OS family and bitness.
func extendedFloatLayout(desc target.Description) (size, pad, align uint32) {
	switch {
	case desc.OS == target.OSWindows:
		return 10, 0, 2
	case desc.OS == target.OSOSX:
		return 16, 6, 16
	case desc.Is64bit:
		return 16, 6, 16
	default:
		return 12, 2, 4
	}
}

func resolveCFacts(desc target.Description, extendedFloatSize uint32) CFacts {
	c := CFacts{LongSize: 4, LongDoubleSize: extendedFloatSize}
	if desc.Is64bit && desc.OS != target.OSWindows {
		c.LongSize = 8
	}
	if desc.OS == target.OSWindows && desc.ObjectFormatIsCoff {
		// MSVC long double is plain double.
		c.LongDoubleSize = 8
	}
	c.CriticalSectionSize = criticalSectionSize(desc)
	return c
}

// criticalSectionSize is sizeof the platform mutex object: CRITICAL_SECTION
// on Windows, pthread_mutex_t elsewhere.
func criticalSectionSize(desc target.Description) uint32 {
	switch desc.OS {
	case target.OSWindows:
		if desc.Is64bit {
			return 40
		}
		return 24
	case target.OSOSX:
		return 64
	case target.OSLinux, target.OSSolaris:
		if desc.Is64bit {
			return 48
		}
		return 24
	case target.OSFreeBSD, target.OSOpenBSD, target.OSDragonFlyBSD:
		if desc.Is64bit {
			return 8
		}
		return 4
	default:
		panic(fmt.Errorf("abi: no critical section size for os %v", desc.OS))
	}
}

func resolveCppFacts(desc target.Description) CppFacts {
	windows := desc.OS == target.OSWindows
	return CppFacts{
		ReverseOverloadOrder: windows,
		ExceptionInterop:     !windows,
		TwoDtorInVtable:      !windows,
	}
}

func resolveObjCFacts(desc target.Description) ObjCFacts {
	return ObjCFacts{Interop: desc.OS == target.OSOSX && desc.Is64bit}
}

// CriticalSectionSize is the pass-through query codegen uses for
// synchronized statements.
func (f *Facts) CriticalSectionSize() uint32 {
	return f.C.CriticalSectionSize
}

// SystemLinkage returns the platform's default extern(System) linkage.
func (f *Facts) SystemLinkage() types.Linkage {
	if f.Desc.OS == target.OSWindows {
		return types.LinkageWindows
	}
	return types.LinkageC
}

// MangleSymbol delegates to the engine selected at initialization.
func (f *Facts) MangleSymbol(sym *mangle.Symbol) string {
	return f.mangler.MangleSymbol(sym)
}

// MangleTypeInfo delegates to the engine selected at initialization.
func (f *Facts) MangleTypeInfo(record types.TypeID) string {
	return f.mangler.MangleTypeInfo(record)
}

// AdjustParameterType rewrites a parameter type the way the mangler must see
// it (reference for by-ref, closure for lazy).
func (f *Facts) AdjustParameterType(p types.Param) types.TypeID {
	return f.mangler.AdjustParameterType(p)
}
