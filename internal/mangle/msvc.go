package mangle

import (
	"fmt"
	"strings"

	"ember/internal/types"
)

// msvcEngine encodes the Visual C++ dialect used by the Windows toolchain.
type msvcEngine struct {
	types *types.Interner
}

func (e *msvcEngine) MangleSymbol(sym *Symbol) string {
	var b strings.Builder
	b.WriteByte('?')
	b.WriteString(sym.Name)
	b.WriteByte('@')
	// Namespaces encode innermost-first.
	for i := len(sym.Namespace) - 1; i >= 0; i-- {
		b.WriteString(sym.Namespace[i])
		b.WriteByte('@')
	}
	b.WriteByte('@')
	if sym.Fn == types.NoTypeID {
		// Data symbol: global, no storage qualifier encoding.
		b.WriteString("3")
		return b.String()
	}
	info, ok := e.types.FnInfo(sym.Fn)
	if !ok {
		panic(fmt.Errorf("mangle: symbol %q has non-function type#%d", sym.Name, sym.Fn))
	}
	b.WriteString("YA") // free function, __cdecl
	e.writeType(&b, info.Result)
	if len(info.Params) == 0 {
		b.WriteString("XZ")
		return b.String()
	}
	for _, p := range info.Params {
		e.writeType(&b, p.Type)
	}
	b.WriteString("@Z")
	return b.String()
}

func (e *msvcEngine) MangleTypeInfo(record types.TypeID) string {
	name := e.recordName(record)
	return "??_R0?AU" + name + "@@@8"
}

func (e *msvcEngine) recordName(record types.TypeID) string {
	if info, ok := e.types.StructInfo(record); ok {
		return info.Name
	}
	if name, ok := e.types.NamedName(record); ok {
		return name
	}
	panic(fmt.Errorf("mangle: type#%d is not a record", record))
}

func (e *msvcEngine) writeType(b *strings.Builder, id types.TypeID) {
	tt := e.types.MustLookup(id)
	switch tt.Kind {
	case types.KindVoid:
		b.WriteByte('X')
	case types.KindBool:
		b.WriteString("_N")
	case types.KindChar8:
		b.WriteByte('D')
	case types.KindChar16:
		b.WriteString("_S")
	case types.KindChar32:
		b.WriteString("_U")
	case types.KindInt8:
		b.WriteByte('C')
	case types.KindUint8:
		b.WriteByte('E')
	case types.KindInt16:
		b.WriteByte('F')
	case types.KindUint16:
		b.WriteByte('G')
	case types.KindInt32:
		b.WriteByte('H')
	case types.KindUint32:
		b.WriteByte('I')
	case types.KindInt64:
		b.WriteString("_J")
	case types.KindUint64:
		b.WriteString("_K")
	case types.KindFloat32:
		b.WriteByte('M')
	case types.KindFloat64:
		b.WriteByte('N')
	case types.KindFloat80:
		b.WriteByte('O')
	case types.KindImaginary32, types.KindImaginary64, types.KindImaginary80,
		types.KindComplex32, types.KindComplex64, types.KindComplex80:
		// No native VC encoding; emitted as an opaque tagged struct.
		b.WriteByte('U')
		b.WriteString(tt.Kind.String())
		b.WriteString("@@")
	case types.KindPointer:
		b.WriteString("PA")
		e.writeType(b, tt.Elem)
	case types.KindReference:
		b.WriteString("AA")
		e.writeType(b, tt.Elem)
	case types.KindFixedArray, types.KindVector:
		b.WriteString("PA") // arrays decay in signatures
		e.writeType(b, tt.Elem)
	case types.KindStruct, types.KindNamed:
		b.WriteByte('U')
		b.WriteString(e.recordName(id))
		b.WriteString("@@")
	case types.KindFn, types.KindClosure:
		info, ok := e.types.FnInfo(id)
		if !ok {
			panic(fmt.Errorf("mangle: broken function type#%d", id))
		}
		b.WriteString("P6A")
		e.writeType(b, info.Result)
		if len(info.Params) == 0 {
			b.WriteByte('X')
		}
		for _, p := range info.Params {
			e.writeType(b, p.Type)
		}
		b.WriteString("@Z")
	default:
		panic(fmt.Errorf("mangle: msvc has no encoding for kind %v", tt.Kind))
	}
}
