package abi

import (
	"fmt"

	"ember/internal/target"
	"ember/internal/types"
)

// vaListTagName is the named aggregate behind the 64-bit System V va_list.
const vaListTagName = "__va_list_tag"

// ScopeResolver resolves a named type through the semantic scope. The ABI
// core needs it only to bind the va_list tag type on 64-bit POSIX targets.
type ScopeResolver interface {
	ResolveNamed(name string) (types.TypeID, error)
}

// VaListType returns the target's varargs cursor type. The first call
// derives and caches it; the cell is exactly-once so concurrent translation
// units observe a single committed value.
func (f *Facts) VaListType() types.TypeID {
	f.vaListOnce.Do(func() {
		f.vaList = f.deriveVaList()
	})
	return f.vaList
}

func (f *Facts) vaListNeedsScope() bool {
	return f.Desc.OS.IsPosix() && f.Desc.Is64bit
}

func (f *Facts) deriveVaList() types.TypeID {
	b := f.Types.Builtins()
	switch {
	case f.Desc.OS == target.OSWindows:
		return f.Types.Intern(types.MakePointer(b.Char8))
	case f.Desc.OS.IsPosix() && !f.Desc.Is64bit:
		return f.Types.Intern(types.MakePointer(b.Char8))
	case f.Desc.OS.IsPosix():
		// System V x86-64: pointer to the named one-element tag array.
		// The tag type needs symbol binding, so it must round-trip
		// through the semantic scope.
		if f.scope == nil {
			panic(fmt.Errorf("abi: va_list derivation on %v needs a scope resolver", f.Desc.OS))
		}
		tag, err := f.scope.ResolveNamed(vaListTagName)
		if err != nil {
			panic(fmt.Errorf("abi: resolving %s: %w", vaListTagName, err))
		}
		return f.Types.Intern(types.MakePointer(tag))
	default:
		panic(fmt.Errorf("abi: no va_list type for os %v", f.Desc.OS))
	}
}
