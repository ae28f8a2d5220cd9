package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Param describes a single function parameter and its passing convention.
type Param struct {
	Type  TypeID
	ByRef bool // passed by reference
	Lazy  bool // copy-on-use: materialized through a niladic closure
}

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params     []Param
	Result     TypeID
	ReturnsRef bool // result is a reference, never classified for stack return
	Linkage    Linkage
	Variadic   bool
}

// RegisterFn creates or finds a function type.
func (in *Interner) RegisterFn(info FnInfo) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindFn {
			continue
		}
		if int(tt.Payload) >= len(in.fns) {
			continue
		}
		have := in.fns[tt.Payload]
		if have.Result == info.Result &&
			have.ReturnsRef == info.ReturnsRef &&
			have.Linkage == info.Linkage &&
			have.Variadic == info.Variadic &&
			slices.Equal(have.Params, info.Params) {
			return id
		}
	}
	slot := in.appendFnInfo(info)
	return in.internRaw(Type{Kind: KindFn, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID. Closures share the
// signature of the function type they wrap.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok {
		return nil, false
	}
	if tt.Kind == KindClosure {
		return in.FnInfo(tt.Elem)
	}
	if tt.Kind != KindFn {
		return nil, false
	}
	if int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

// MakeClosure wraps a function type into its closure/delegate type.
func (in *Interner) MakeClosure(fn TypeID) TypeID {
	return in.Intern(Type{Kind: KindClosure, Elem: fn})
}

func (in *Interner) appendFnInfo(info FnInfo) uint32 {
	in.fns = append(in.fns, FnInfo{
		Params:     slices.Clone(info.Params),
		Result:     info.Result,
		ReturnsRef: info.ReturnsRef,
		Linkage:    info.Linkage,
		Variadic:   info.Variadic,
	})
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return slot
}
