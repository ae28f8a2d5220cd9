package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindChar8
	KindChar16
	KindChar32
	KindInt8
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindInt64
	KindUint64
	KindFloat32
	KindFloat64
	KindFloat80
	KindImaginary32
	KindImaginary64
	KindImaginary80
	KindComplex32
	KindComplex64
	KindComplex80
	KindPointer
	KindReference
	KindFixedArray
	KindVector
	KindStruct
	KindFn
	KindClosure
	KindNamed
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindChar8:
		return "char8"
	case KindChar16:
		return "char16"
	case KindChar32:
		return "char32"
	case KindInt8:
		return "int8"
	case KindUint8:
		return "uint8"
	case KindInt16:
		return "int16"
	case KindUint16:
		return "uint16"
	case KindInt32:
		return "int32"
	case KindUint32:
		return "uint32"
	case KindInt64:
		return "int64"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindFloat80:
		return "float80"
	case KindImaginary32:
		return "imaginary32"
	case KindImaginary64:
		return "imaginary64"
	case KindImaginary80:
		return "imaginary80"
	case KindComplex32:
		return "complex32"
	case KindComplex64:
		return "complex64"
	case KindComplex80:
		return "complex80"
	case KindPointer:
		return "pointer"
	case KindReference:
		return "reference"
	case KindFixedArray:
		return "fixed array"
	case KindVector:
		return "vector"
	case KindStruct:
		return "struct"
	case KindFn:
		return "fn"
	case KindClosure:
		return "closure"
	case KindNamed:
		return "named"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsIntegral reports whether the kind is a (possibly character) integer.
func (k Kind) IsIntegral() bool {
	switch k {
	case KindBool, KindChar8, KindChar16, KindChar32,
		KindInt8, KindUint8, KindInt16, KindUint16,
		KindInt32, KindUint32, KindInt64, KindUint64:
		return true
	default:
		return false
	}
}

// IsFloating reports whether the kind is real, imaginary or complex
// floating point.
func (k Kind) IsFloating() bool {
	switch k {
	case KindFloat32, KindFloat64, KindFloat80,
		KindImaginary32, KindImaginary64, KindImaginary80,
		KindComplex32, KindComplex64, KindComplex80:
		return true
	default:
		return false
	}
}

// IsComplex reports whether the kind is a complex pair.
func (k Kind) IsComplex() bool {
	return k == KindComplex32 || k == KindComplex64 || k == KindComplex80
}

// IsScalar reports whether values of the kind fit machine registers
// directly: integrals, floats (imaginary and complex included) and pointers.
func (k Kind) IsScalar() bool {
	return k.IsIntegral() || k.IsFloating() || k == KindPointer
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Elem    TypeID
	Count   uint32 // fixed-array length / vector lane count
	Payload uint32 // slot into the per-kind side tables
}

// Descriptor helpers ---------------------------------------------------------

// MakePointer describes a raw pointer to elem.
func MakePointer(elem TypeID) Type {
	return Type{Kind: KindPointer, Elem: elem}
}

// MakeReference describes a reference to elem.
func MakeReference(elem TypeID) Type {
	return Type{Kind: KindReference, Elem: elem}
}

// MakeFixedArray describes elem[count] with compile-time length.
func MakeFixedArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindFixedArray, Elem: elem, Count: count}
}

// MakeVector describes a SIMD vector of count lanes of elem.
func MakeVector(elem TypeID, count uint32) Type {
	return Type{Kind: KindVector, Elem: elem, Count: count}
}
