package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// StructInfo stores the record metadata the ABI core queries. Size and
// alignment are filled in by whoever lays the record out; ArgTypes is the
// calling-convention decomposition of the record into at most two
// register-class constituents.
type StructInfo struct {
	Name       string
	Size       uint64
	Align      uint32
	FieldCount int
	POD        bool // trivially copyable, no user-defined special members
	HasCtor    bool // declares a constructor (POD or not)
	ArgTypes   []TypeID
}

// RegisterStruct allocates a nominal struct type and returns its TypeID.
// Records are nominal: two registrations never unify.
func (in *Interner) RegisterStruct(info StructInfo) TypeID {
	slot := in.appendStructInfo(info)
	return in.internRaw(Type{Kind: KindStruct, Payload: slot})
}

// StructInfo returns metadata for the provided struct TypeID.
func (in *Interner) StructInfo(id TypeID) (*StructInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindStruct {
		return nil, false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.structs) {
		return nil, false
	}
	return &in.structs[tt.Payload], true
}

// SetStructArgTypes stores the resolved argument-type decomposition.
func (in *Interner) SetStructArgTypes(id TypeID, args []TypeID) {
	info, ok := in.StructInfo(id)
	if !ok {
		return
	}
	info.ArgTypes = slices.Clone(args)
}

// RegisterNamed allocates an opaque named tag type (for example the
// __va_list_tag aggregate) and returns its TypeID.
func (in *Interner) RegisterNamed(name string) TypeID {
	slot, err := safecast.Conv[uint32](len(in.names))
	if err != nil {
		panic(fmt.Errorf("named info overflow: %w", err))
	}
	in.names = append(in.names, name)
	return in.internRaw(Type{Kind: KindNamed, Payload: slot})
}

// NamedName returns the tag name of an opaque named type.
func (in *Interner) NamedName(id TypeID) (string, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindNamed {
		return "", false
	}
	if tt.Payload == 0 || int(tt.Payload) >= len(in.names) {
		return "", false
	}
	return in.names[tt.Payload], true
}

func (in *Interner) appendStructInfo(info StructInfo) uint32 {
	if in.structs == nil {
		in.structs = append(in.structs, StructInfo{})
	}
	in.structs = append(in.structs, StructInfo{
		Name:       info.Name,
		Size:       info.Size,
		Align:      info.Align,
		FieldCount: info.FieldCount,
		POD:        info.POD,
		HasCtor:    info.HasCtor,
		ArgTypes:   slices.Clone(info.ArgTypes),
	})
	slot, err := safecast.Conv[uint32](len(in.structs) - 1)
	if err != nil {
		panic(fmt.Errorf("struct info overflow: %w", err))
	}
	return slot
}
