package abi

import (
	"fmt"

	"fortio.org/safecast"

	"ember/internal/types"
)

// SizeOf returns the target byte size of a type. Scalar sizes are fixed per
// kind; pointer-shaped and extended-float sizes depend on the resolved
// target.
func (f *Facts) SizeOf(id types.TypeID) uint64 {
	tt := f.Types.MustLookup(id)
	switch tt.Kind {
	case types.KindVoid, types.KindBool, types.KindChar8, types.KindInt8, types.KindUint8:
		return 1
	case types.KindChar16, types.KindInt16, types.KindUint16:
		return 2
	case types.KindChar32, types.KindInt32, types.KindUint32, types.KindFloat32, types.KindImaginary32:
		return 4
	case types.KindInt64, types.KindUint64, types.KindFloat64, types.KindImaginary64, types.KindComplex32:
		return 8
	case types.KindComplex64:
		return 16
	case types.KindFloat80, types.KindImaginary80:
		return uint64(f.ExtendedFloatSize)
	case types.KindComplex80:
		return 2 * uint64(f.ExtendedFloatSize)
	case types.KindPointer, types.KindReference, types.KindFn:
		return uint64(f.PtrSize)
	case types.KindClosure:
		// Context pointer plus function pointer.
		return 2 * uint64(f.PtrSize)
	case types.KindFixedArray, types.KindVector:
		return uint64(tt.Count) * f.SizeOf(tt.Elem)
	case types.KindStruct:
		info, ok := f.Types.StructInfo(id)
		if !ok {
			panic(fmt.Errorf("abi: struct type#%d has no metadata", id))
		}
		return info.Size
	case types.KindNamed:
		// Opaque tag types have no layout of their own.
		return 0
	default:
		panic(fmt.Errorf("abi: no size for kind %v (type#%d)", tt.Kind, id))
	}
}

// naturalAlign is the fall-through alignment rule: a type's own size for
// scalars and vectors, the recorded alignment for structs, the element
// alignment for fixed arrays.
func (f *Facts) naturalAlign(id types.TypeID) uint32 {
	tt := f.Types.MustLookup(id)
	switch tt.Kind {
	case types.KindStruct:
		info, ok := f.Types.StructInfo(id)
		if !ok {
			panic(fmt.Errorf("abi: struct type#%d has no metadata", id))
		}
		return info.Align
	case types.KindFixedArray:
		return f.AlignOf(tt.Elem)
	default:
		a, err := safecast.Conv[uint32](f.SizeOf(id))
		if err != nil {
			panic(fmt.Errorf("abi: alignment overflow for type#%d: %w", id, err))
		}
		return a
	}
}

func roundUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	r := n % align
	if r == 0 {
		return n
	}
	return n + (align - r)
}
