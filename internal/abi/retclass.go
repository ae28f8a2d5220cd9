package abi

import (
	"fmt"

	"ember/internal/target"
	"ember/internal/types"
)

// maxReturnPeel bounds the array/record reduction loop. A well-formed type
// graph terminates long before this; hitting the bound means the input is
// malformed.
const maxReturnPeel = 64

// IsReturnOnStack reports whether a function's result is written through a
// caller-supplied hidden pointer instead of being passed back in registers.
// needsThis marks callees with an implicit receiver (the C++ member-function
// case that changes the Windows tables).
func (f *Facts) IsReturnOnStack(fn types.TypeID, needsThis bool) bool {
	info, ok := f.Types.FnInfo(fn)
	if !ok {
		panic(fmt.Errorf("abi: type#%d is not a function type", fn))
	}
	if info.ReturnsRef {
		// A ref return already is a pointer.
		return false
	}
	tn := info.Result
	linkage := info.Linkage

	if f.Desc.OS == target.OSWindows && f.Desc.Is64bit {
		return f.returnOnStackWin64(tn, linkage, needsThis)
	}
	if f.Desc.OS == target.OSWindows && !f.Desc.Is64bit && f.Desc.ObjectFormatIsCoff {
		tns := f.Types.BaseElemOf(tn)
		if f.Types.KindOf(tns) == types.KindStruct &&
			linkage == types.LinkageCpp && needsThis {
			return true
		}
	}
	return f.returnOnStackGeneral(tn, linkage, needsThis)
}

// returnOnStackWin64 is the Microsoft x64 table: scalars in RAX/XMM0, and
// only power-of-two aggregates up to 16 bytes in registers.
func (f *Facts) returnOnStackWin64(tn types.TypeID, linkage types.Linkage, needsThis bool) bool {
	k := f.Types.KindOf(tn)
	if k == types.KindComplex32 {
		return true
	}
	if k.IsScalar() {
		return false
	}
	tns := f.Types.BaseElemOf(tn)
	if f.Types.KindOf(tns) == types.KindStruct {
		if linkage == types.LinkageCpp && needsThis {
			return true
		}
		sd, ok := f.Types.StructInfo(tns)
		if !ok {
			panic(fmt.Errorf("abi: struct type#%d has no metadata", tns))
		}
		if !sd.POD || sd.Size > 8 {
			return true
		}
		if sd.FieldCount == 0 {
			return true
		}
	}
	// The register gate measures the original type, not the peeled element.
	switch f.SizeOf(tn) {
	case 1, 2, 4, 8, 16:
		return false
	}
	return true
}

// returnOnStackGeneral classifies every remaining target by iteratively
// peeling one layer at a time: fixed array to element, record to its sole
// argument-type constituent.
func (f *Facts) returnOnStackGeneral(tn types.TypeID, linkage types.Linkage, needsThis bool) bool {
	// The size rule always measures the original type, not the peeled one.
	sizeRule := func() bool {
		if f.linux32ForeignLinkage(linkage) {
			return true
		}
		switch f.SizeOf(tn) {
		case 1, 2, 4, 8:
			return false
		}
		return true
	}

	tns := tn
	for depth := 0; depth < maxReturnPeel; depth++ {
		if f.Types.KindOf(tns) == types.KindFixedArray {
			tns = f.Types.BaseElemOf(tns)
			if f.Types.KindOf(tns) != types.KindStruct {
				return sizeRule()
			}
		}
		if f.Types.KindOf(tns) != types.KindStruct {
			break
		}

		if f.linux32ForeignLinkage(linkage) {
			// The 32-bit C/C++ ABI returns all aggregates in memory.
			return true
		}
		sd, ok := f.Types.StructInfo(tns)
		if !ok {
			panic(fmt.Errorf("abi: struct type#%d has no metadata", tns))
		}
		if f.Desc.OS == target.OSWindows && !f.Desc.Is64bit &&
			linkage == types.LinkageCpp && needsThis && sd.POD && sd.HasCtor {
			return true
		}
		if len(sd.ArgTypes) == 1 {
			tns = sd.ArgTypes[0]
			if f.Types.KindOf(tns) != types.KindStruct {
				if f.Types.KindOf(tns) == types.KindFixedArray {
					continue
				}
				return sizeRule()
			}
			continue
		}
		if len(sd.ArgTypes) == 0 && f.Desc.Is64bit {
			return true
		}
		if sd.POD {
			switch f.SizeOf(tns) {
			case 1, 2, 4, 8:
				return false
			case 16:
				// A 16-byte POD pair rides the SysV register pair.
				return !(f.Desc.Is64bit && f.Desc.OS != target.OSWindows)
			}
			return true
		}
		return true
	}
	if f.Types.KindOf(tns) == types.KindStruct || f.Types.KindOf(tns) == types.KindFixedArray {
		panic(fmt.Errorf("abi: return type reduction did not terminate (type#%d)", tn))
	}

	k := f.Types.KindOf(tns)
	if k.IsComplex() && linkage == types.LinkageC && f.Desc.OS.IsPosix() {
		// complex float splits across a register pair; complex double
		// goes to memory.
		return k != types.KindComplex32
	}
	return false
}

func (f *Facts) linux32ForeignLinkage(linkage types.Linkage) bool {
	return f.Desc.OS == target.OSLinux && !f.Desc.Is64bit && linkage != types.LinkageNative
}
