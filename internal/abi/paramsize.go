package abi

import (
	"ember/internal/target"
	"ember/internal/types"
)

// ParameterSize returns the stack-slot bytes a parameter of the given type
// occupies: the type size rounded up to the slot width. Zero-field records
// on 32-bit FreeBSD and OSX report sizeof 1 but pass zero bytes, so they
// take no slot at all.
func (f *Facts) ParameterSize(id types.TypeID) uint64 {
	if !f.Desc.Is64bit && (f.Desc.OS == target.OSFreeBSD || f.Desc.OS == target.OSOSX) {
		if sd, ok := f.Types.StructInfo(id); ok && sd.FieldCount == 0 {
			return 0
		}
	}
	sz := f.SizeOf(id)
	if f.Desc.Is64bit {
		return roundUp(sz, 8)
	}
	return roundUp(sz, 4)
}
