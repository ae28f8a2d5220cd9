package types

import "fmt"

// Linkage selects the calling/mangling convention of a function type.
type Linkage uint8

const (
	// LinkageNative is the compiler's own default convention.
	LinkageNative Linkage = iota
	LinkageC
	LinkageCpp
	LinkageWindows
)

func (l Linkage) String() string {
	switch l {
	case LinkageNative:
		return "native"
	case LinkageC:
		return "C"
	case LinkageCpp:
		return "C++"
	case LinkageWindows:
		return "Windows"
	default:
		return fmt.Sprintf("Linkage(%d)", l)
	}
}
