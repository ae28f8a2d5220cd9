package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive scalar types.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Bool    TypeID
	Char8   TypeID
	Char16  TypeID
	Char32  TypeID
	Int8    TypeID
	Uint8   TypeID
	Int16   TypeID
	Uint16  TypeID
	Int32   TypeID
	Uint32  TypeID
	Int64   TypeID
	Uint64  TypeID

	Float32     TypeID
	Float64     TypeID
	Float80     TypeID
	Imaginary32 TypeID
	Imaginary64 TypeID
	Imaginary80 TypeID
	Complex32   TypeID
	Complex64   TypeID
	Complex80   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Nominal types (structs, named tags) and function types live in side
// tables addressed through the descriptor payload.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	structs  []StructInfo
	fns      []FnInfo
	names    []string
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[typeKey]TypeID, 64),
	}
	in.structs = append(in.structs, StructInfo{}) // reserve 0 as invalid sentinel
	in.fns = append(in.fns, FnInfo{})
	in.names = append(in.names, "")
	b := &in.builtins
	b.Invalid = in.internRaw(Type{Kind: KindInvalid})
	b.Void = in.Intern(Type{Kind: KindVoid})
	b.Bool = in.Intern(Type{Kind: KindBool})
	b.Char8 = in.Intern(Type{Kind: KindChar8})
	b.Char16 = in.Intern(Type{Kind: KindChar16})
	b.Char32 = in.Intern(Type{Kind: KindChar32})
	b.Int8 = in.Intern(Type{Kind: KindInt8})
	b.Uint8 = in.Intern(Type{Kind: KindUint8})
	b.Int16 = in.Intern(Type{Kind: KindInt16})
	b.Uint16 = in.Intern(Type{Kind: KindUint16})
	b.Int32 = in.Intern(Type{Kind: KindInt32})
	b.Uint32 = in.Intern(Type{Kind: KindUint32})
	b.Int64 = in.Intern(Type{Kind: KindInt64})
	b.Uint64 = in.Intern(Type{Kind: KindUint64})
	b.Float32 = in.Intern(Type{Kind: KindFloat32})
	b.Float64 = in.Intern(Type{Kind: KindFloat64})
	b.Float80 = in.Intern(Type{Kind: KindFloat80})
	b.Imaginary32 = in.Intern(Type{Kind: KindImaginary32})
	b.Imaginary64 = in.Intern(Type{Kind: KindImaginary64})
	b.Imaginary80 = in.Intern(Type{Kind: KindImaginary80})
	b.Complex32 = in.Intern(Type{Kind: KindComplex32})
	b.Complex64 = in.Intern(Type{Kind: KindComplex64})
	b.Complex80 = in.Intern(Type{Kind: KindComplex80})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// internRaw adds the descriptor to the storage without consulting the map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	key := typeKey(t)
	in.index[key] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// KindOf returns the kind of a TypeID, KindInvalid when absent.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// BaseElemOf strips fixed-array layers and returns the underlying element
// type: int32[4][2] reduces to int32.
func (in *Interner) BaseElemOf(id TypeID) TypeID {
	for {
		tt, ok := in.Lookup(id)
		if !ok || tt.Kind != KindFixedArray || tt.Elem == NoTypeID {
			return id
		}
		id = tt.Elem
	}
}

type typeKey struct {
	Kind    Kind
	Elem    TypeID
	Count   uint32
	Payload uint32
}
