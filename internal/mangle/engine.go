// Package mangle hosts the two name-mangling engines and the dispatcher
// that selects one of them from the resolved OS family. The engines are
// opaque services to the rest of the compiler: callers hand over a symbol
// or record and get back a linker-visible string.
package mangle

import (
	"fmt"

	"ember/internal/target"
	"ember/internal/types"
)

// Symbol is the mangling view of a declaration: a name, its enclosing
// namespaces outermost-first, and the function type for callables
// (NoTypeID for data symbols).
type Symbol struct {
	Name      string
	Namespace []string
	Fn        types.TypeID
}

// Engine encodes symbols for one ABI mangling dialect.
type Engine interface {
	MangleSymbol(sym *Symbol) string
	MangleTypeInfo(record types.TypeID) string
}

// Dispatcher binds the engine chosen at initialization to the type model.
// The choice is made once; per-call dispatch is a plain method call.
type Dispatcher struct {
	engine Engine
	types  *types.Interner
}

// New selects the engine for the OS family: MSVC dialect on Windows, the
// Itanium dialect on every POSIX family. An OS outside the closed set is a
// build-configuration bug.
func New(os target.OS, in *types.Interner) *Dispatcher {
	var e Engine
	switch {
	case os == target.OSWindows:
		e = &msvcEngine{types: in}
	case os.IsPosix():
		e = &itaniumEngine{types: in}
	default:
		panic(fmt.Errorf("mangle: no engine for os %v", os))
	}
	return &Dispatcher{engine: e, types: in}
}

// MangleSymbol delegates verbatim to the selected engine.
func (d *Dispatcher) MangleSymbol(sym *Symbol) string {
	return d.engine.MangleSymbol(sym)
}

// MangleTypeInfo delegates verbatim to the selected engine.
func (d *Dispatcher) MangleTypeInfo(record types.TypeID) string {
	return d.engine.MangleTypeInfo(record)
}

// AdjustParameterType rewrites a parameter to the type the mangler must
// encode: by-ref parameters mangle as references, lazy parameters as a
// closure producing the value.
func (d *Dispatcher) AdjustParameterType(p types.Param) types.TypeID {
	t := p.Type
	if p.ByRef {
		return d.types.Intern(types.MakeReference(t))
	}
	if p.Lazy {
		fn := d.types.RegisterFn(types.FnInfo{Result: t, Linkage: types.LinkageNative})
		return d.types.MakeClosure(fn)
	}
	return t
}
