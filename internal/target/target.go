package target

import "fmt"

// OS identifies the operating-system family of a compilation target.
type OS uint8

const (
	OSNone OS = iota
	OSLinux
	OSWindows
	OSOSX
	OSFreeBSD
	OSOpenBSD
	OSDragonFlyBSD
	OSSolaris
)

func (os OS) String() string {
	switch os {
	case OSNone:
		return "none"
	case OSLinux:
		return "linux"
	case OSWindows:
		return "windows"
	case OSOSX:
		return "osx"
	case OSFreeBSD:
		return "freebsd"
	case OSOpenBSD:
		return "openbsd"
	case OSDragonFlyBSD:
		return "dragonflybsd"
	case OSSolaris:
		return "solaris"
	default:
		return fmt.Sprintf("OS(%d)", os)
	}
}

// IsPosix reports whether the family follows the System V side of the ABI
// tables (everything except Windows).
func (os OS) IsPosix() bool {
	return os != OSNone && os != OSWindows
}

// Feature is the ordered CPU instruction-set capability tier.
type Feature uint8

const (
	FeatureNone Feature = iota
	FeatureSSE
	FeatureSSE2
	FeatureSSE4_1
	FeatureAVX
	FeatureAVX2
	FeatureAVX512
)

func (f Feature) String() string {
	switch f {
	case FeatureNone:
		return "baseline"
	case FeatureSSE:
		return "sse"
	case FeatureSSE2:
		return "sse2"
	case FeatureSSE4_1:
		return "sse4.1"
	case FeatureAVX:
		return "avx"
	case FeatureAVX2:
		return "avx2"
	case FeatureAVX512:
		return "avx512"
	default:
		return fmt.Sprintf("Feature(%d)", f)
	}
}

// Description is the immutable bag of resolved target-triple facts. It is
// produced once by triple/manifest resolution and consumed read-only by the
// ABI core.
type Description struct {
	Triple string

	OS      OS
	Is64bit bool
	// IsLP64 is the pointer model, distinct from the instruction-set flag:
	// a target may run 64-bit instructions with 32-bit pointers.
	IsLP64 bool

	ObjectFormatIsCoff bool

	CPU Feature

	CppStd   int
	CRuntime string
}
