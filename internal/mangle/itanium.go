package mangle

import (
	"fmt"
	"strconv"
	"strings"

	"ember/internal/types"
)

// itaniumEngine encodes the Itanium C++ ABI dialect used by every POSIX
// toolchain.
type itaniumEngine struct {
	types *types.Interner
}

func (e *itaniumEngine) MangleSymbol(sym *Symbol) string {
	var b strings.Builder
	b.WriteString("_Z")
	e.writeQualifiedName(&b, sym)
	if sym.Fn == types.NoTypeID {
		return b.String()
	}
	info, ok := e.types.FnInfo(sym.Fn)
	if !ok {
		panic(fmt.Errorf("mangle: symbol %q has non-function type#%d", sym.Name, sym.Fn))
	}
	if len(info.Params) == 0 {
		b.WriteByte('v')
	}
	for _, p := range info.Params {
		e.writeType(&b, p.Type)
	}
	return b.String()
}

func (e *itaniumEngine) MangleTypeInfo(record types.TypeID) string {
	name := e.recordName(record)
	return "_ZTI" + sourceName(name)
}

func (e *itaniumEngine) recordName(record types.TypeID) string {
	if info, ok := e.types.StructInfo(record); ok {
		return info.Name
	}
	if name, ok := e.types.NamedName(record); ok {
		return name
	}
	panic(fmt.Errorf("mangle: type#%d is not a record", record))
}

func (e *itaniumEngine) writeQualifiedName(b *strings.Builder, sym *Symbol) {
	if len(sym.Namespace) == 0 {
		b.WriteString(sourceName(sym.Name))
		return
	}
	b.WriteByte('N')
	for _, ns := range sym.Namespace {
		b.WriteString(sourceName(ns))
	}
	b.WriteString(sourceName(sym.Name))
	b.WriteByte('E')
}

func (e *itaniumEngine) writeType(b *strings.Builder, id types.TypeID) {
	tt := e.types.MustLookup(id)
	switch tt.Kind {
	case types.KindVoid:
		b.WriteByte('v')
	case types.KindBool:
		b.WriteByte('b')
	case types.KindChar8:
		b.WriteByte('c')
	case types.KindChar16:
		b.WriteString("Ds")
	case types.KindChar32:
		b.WriteString("Di")
	case types.KindInt8:
		b.WriteByte('a')
	case types.KindUint8:
		b.WriteByte('h')
	case types.KindInt16:
		b.WriteByte('s')
	case types.KindUint16:
		b.WriteByte('t')
	case types.KindInt32:
		b.WriteByte('i')
	case types.KindUint32:
		b.WriteByte('j')
	case types.KindInt64:
		b.WriteByte('x')
	case types.KindUint64:
		b.WriteByte('y')
	case types.KindFloat32:
		b.WriteByte('f')
	case types.KindFloat64:
		b.WriteByte('d')
	case types.KindFloat80:
		b.WriteByte('e')
	case types.KindImaginary32:
		b.WriteString("Gf")
	case types.KindImaginary64:
		b.WriteString("Gd")
	case types.KindImaginary80:
		b.WriteString("Ge")
	case types.KindComplex32:
		b.WriteString("Cf")
	case types.KindComplex64:
		b.WriteString("Cd")
	case types.KindComplex80:
		b.WriteString("Ce")
	case types.KindPointer:
		b.WriteByte('P')
		e.writeType(b, tt.Elem)
	case types.KindReference:
		b.WriteByte('R')
		e.writeType(b, tt.Elem)
	case types.KindFixedArray:
		b.WriteByte('A')
		b.WriteString(strconv.FormatUint(uint64(tt.Count), 10))
		b.WriteByte('_')
		e.writeType(b, tt.Elem)
	case types.KindVector:
		b.WriteString("Dv")
		b.WriteString(strconv.FormatUint(uint64(tt.Count), 10))
		b.WriteByte('_')
		e.writeType(b, tt.Elem)
	case types.KindStruct, types.KindNamed:
		b.WriteString(sourceName(e.recordName(id)))
	case types.KindFn, types.KindClosure:
		info, ok := e.types.FnInfo(id)
		if !ok {
			panic(fmt.Errorf("mangle: broken function type#%d", id))
		}
		b.WriteByte('F')
		e.writeType(b, info.Result)
		if len(info.Params) == 0 {
			b.WriteByte('v')
		}
		for _, p := range info.Params {
			e.writeType(b, p.Type)
		}
		b.WriteByte('E')
	default:
		panic(fmt.Errorf("mangle: itanium has no encoding for kind %v", tt.Kind))
	}
}

// sourceName is the Itanium length-prefixed identifier encoding.
func sourceName(name string) string {
	return strconv.Itoa(len(name)) + name
}
