package abi

import (
	"ember/internal/target"
	"ember/internal/types"
)

// AlignOf returns the ABI alignment of a type on the configured target.
// Extended-precision kinds take the resolved extended-float alignment;
// 8-byte scalars are under-aligned on 32-bit POSIX targets; everything else
// falls through to natural alignment.
func (f *Facts) AlignOf(id types.TypeID) uint32 {
	switch f.Types.KindOf(id) {
	case types.KindFloat80, types.KindImaginary80, types.KindComplex80:
		return f.ExtendedFloatAlign
	case types.KindComplex32:
		if f.Desc.OS.IsPosix() {
			return 4
		}
	case types.KindInt64, types.KindUint64, types.KindFloat64,
		types.KindImaginary64, types.KindComplex64:
		if f.Desc.OS.IsPosix() {
			if f.Desc.Is64bit {
				return 8
			}
			return 4
		}
	}
	return f.naturalAlign(id)
}

// FieldAlignOf returns the alignment of a type when used as a struct field.
// Wide (16/32-byte) alignment is honored only where the target ABI mandates
// it, on 64-bit and Apple targets; everywhere else fields cap at 8.
func (f *Facts) FieldAlignOf(id types.TypeID) uint32 {
	a := f.AlignOf(id)
	if (f.Desc.Is64bit || f.Desc.OS == target.OSOSX) && (a == 16 || a == 32) {
		return a
	}
	if a < 8 {
		return a
	}
	return 8
}
