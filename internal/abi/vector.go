package abi

import (
	"fmt"

	"ember/internal/target"
	"ember/internal/types"
)

// VectorSupport classifies whether a vector type is representable on the
// configured target. Unsupported is a first-class result, not a failure.
type VectorSupport uint8

const (
	VectorSupported VectorSupport = iota
	VectorUnsupportedOnTarget
	VectorUnsupportedElemKind
	VectorUnsupportedSize
)

func (v VectorSupport) String() string {
	switch v {
	case VectorSupported:
		return "supported"
	case VectorUnsupportedOnTarget:
		return "unsupported on target"
	case VectorUnsupportedElemKind:
		return "unsupported element kind"
	case VectorUnsupportedSize:
		return "unsupported size"
	default:
		return fmt.Sprintf("VectorSupport(%d)", v)
	}
}

// VectorOp is the closed set of operator categories the capability model is
// total over.
type VectorOp uint8

const (
	OpUnaryPlus VectorOp = iota
	OpNegate
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpCmpLt
	OpCmpLe
	OpCmpGt
	OpCmpGe
	OpCmpEq
	OpCmpNe
	OpShiftLeft
	OpShiftRightArith
	OpShiftRightLogical
	OpRotateLeft
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot
	OpLogicalNot
)

// ClassifyVectorType reports whether a vector of the given byte width and
// element kind exists on the target. Vector instructions need 64-bit mode or
// an Apple target (guaranteed xmm support); then the element kind and the
// width/feature-tier pair are checked. A width rejected for a missing
// feature tier reports as an unsupported size.
func (f *Facts) ClassifyVectorType(byteSize uint64, elem types.Kind) VectorSupport {
	if !f.Desc.Is64bit && f.Desc.OS != target.OSOSX {
		return VectorUnsupportedOnTarget
	}
	switch elem {
	case types.KindVoid,
		types.KindInt8, types.KindUint8,
		types.KindInt16, types.KindUint16,
		types.KindInt32, types.KindUint32, types.KindFloat32,
		types.KindInt64, types.KindUint64, types.KindFloat64:
	default:
		return VectorUnsupportedElemKind
	}
	switch byteSize {
	case 16:
		need := target.FeatureSSE2
		switch elem {
		case types.KindFloat32, types.KindInt32, types.KindUint32:
			need = target.FeatureSSE
		}
		if f.Desc.CPU < need {
			return VectorUnsupportedSize
		}
	case 32:
		if f.Desc.CPU < target.FeatureAVX {
			return VectorUnsupportedSize
		}
	default:
		return VectorUnsupportedSize
	}
	return VectorSupported
}

// OperationSupported reports whether the target's instruction set can apply
// op to values of the given type. Non-vector types always report true: the
// check is a no-op for them. rhs is the second operand type where one
// exists; NoTypeID otherwise. The operator set is closed, so an operator
// outside it is a programmer error.
func (f *Facts) OperationSupported(id types.TypeID, op VectorOp, rhs types.TypeID) bool {
	_ = rhs // per-operand refinements do not exist in the current tables
	tt, ok := f.Types.Lookup(id)
	if !ok || tt.Kind != types.KindVector {
		return true
	}
	sz := f.SizeOf(id)
	if sz != 16 && sz != 32 {
		return false
	}
	wide := sz == 32
	elem := f.Types.KindOf(f.Types.BaseElemOf(tt.Elem))
	integral := elem.IsIntegral()
	floating := elem == types.KindFloat32 || elem == types.KindFloat64
	tier := f.Desc.CPU

	switch op {
	case OpUnaryPlus:
		return elem.IsScalar()

	case OpNegate, OpAdd, OpSub:
		if wide {
			if floating {
				return tier >= target.FeatureAVX
			}
			return integral && tier >= target.FeatureAVX2
		}
		if elem == types.KindFloat32 {
			return tier >= target.FeatureSSE
		}
		return (elem == types.KindFloat64 || integral) && tier >= target.FeatureSSE2

	case OpMul:
		if wide {
			if floating {
				return tier >= target.FeatureAVX
			}
			switch elem {
			case types.KindInt16, types.KindUint16, types.KindInt32, types.KindUint32:
				return tier >= target.FeatureAVX2
			}
			return false
		}
		switch elem {
		case types.KindFloat32:
			return tier >= target.FeatureSSE
		case types.KindFloat64, types.KindInt16, types.KindUint16:
			return tier >= target.FeatureSSE2
		case types.KindInt32, types.KindUint32:
			return tier >= target.FeatureSSE4_1
		}
		return false

	case OpDiv:
		// No integral SIMD division exists at any tier.
		if wide {
			return floating && tier >= target.FeatureAVX
		}
		switch elem {
		case types.KindFloat32:
			return tier >= target.FeatureSSE
		case types.KindFloat64:
			return tier >= target.FeatureSSE2
		}
		return false

	case OpBitAnd, OpBitOr, OpBitXor, OpBitNot:
		if !integral {
			return false
		}
		if wide {
			return tier >= target.FeatureAVX2
		}
		return tier >= target.FeatureSSE2

	case OpCmpLt, OpCmpLe, OpCmpGt, OpCmpGe, OpCmpEq, OpCmpNe,
		OpShiftLeft, OpShiftRightArith, OpShiftRightLogical, OpRotateLeft,
		OpMod, OpPow, OpLogicalNot:
		return false

	default:
		panic(fmt.Errorf("abi: unhandled vector operator %d", op))
	}
}
