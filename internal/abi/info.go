package abi

import (
	"strconv"

	"ember/internal/target"
)

// InfoKind discriminates the value shape of a target info entry.
type InfoKind uint8

const (
	InfoString InfoKind = iota
	InfoInt
)

// Info is one entry of the target info registry.
type Info struct {
	Kind InfoKind
	Str  string
	Int  int
}

// Text renders the entry for display.
func (i Info) Text() string {
	if i.Kind == InfoInt {
		return strconv.Itoa(i.Int)
	}
	return i.Str
}

// GetTargetInfo answers target-info registry queries from later phases over
// the fixed key set. An unknown key is absence, not an error.
func (f *Facts) GetTargetInfo(key string) (Info, bool) {
	switch key {
	case "objectFormat":
		switch {
		case f.Desc.OS == target.OSWindows && f.Desc.ObjectFormatIsCoff:
			return Info{Str: "coff"}, true
		case f.Desc.OS == target.OSWindows:
			return Info{Str: "omf"}, true
		case f.Desc.OS == target.OSOSX:
			return Info{Str: "macho"}, true
		default:
			return Info{Str: "elf"}, true
		}
	case "floatAbi":
		return Info{Str: "hard"}, true
	case "cppRuntimeLibrary":
		if f.Desc.OS == target.OSWindows {
			if f.Desc.ObjectFormatIsCoff {
				return Info{Str: f.Desc.CRuntime}, true
			}
			return Info{Str: "snn"}, true
		}
		return Info{Str: ""}, true
	case "cppStd":
		return Info{Kind: InfoInt, Int: f.Desc.CppStd}, true
	default:
		return Info{}, false
	}
}

// TargetInfoKeys lists the registry's key set in display order.
func TargetInfoKeys() []string {
	return []string{"objectFormat", "floatAbi", "cppRuntimeLibrary", "cppStd"}
}
