package abi_test

import (
	"testing"

	"ember/internal/abi"
	"ember/internal/target"
)

func TestGetTargetInfo(t *testing.T) {
	omf := desc(target.OSWindows, false)
	omf.ObjectFormatIsCoff = false

	tests := []struct {
		d    target.Description
		key  string
		want string
	}{
		{desc(target.OSWindows, true), "objectFormat", "coff"},
		{omf, "objectFormat", "omf"},
		{desc(target.OSOSX, true), "objectFormat", "macho"},
		{desc(target.OSLinux, true), "objectFormat", "elf"},
		{desc(target.OSFreeBSD, false), "objectFormat", "elf"},
		{desc(target.OSLinux, true), "floatAbi", "hard"},
		{desc(target.OSWindows, true), "cppRuntimeLibrary", "msvcrt"},
		{omf, "cppRuntimeLibrary", "snn"},
		{desc(target.OSLinux, true), "cppRuntimeLibrary", ""},
	}
	for _, tt := range tests {
		f, _ := newFacts(t, tt.d)
		info, ok := f.GetTargetInfo(tt.key)
		if !ok {
			t.Fatalf("%s on %s: key missing", tt.key, tt.d.Triple)
		}
		if info.Kind != abi.InfoString || info.Str != tt.want {
			t.Fatalf("%s on %s: got %q, want %q", tt.key, tt.d.Triple, info.Text(), tt.want)
		}
	}
}

func TestGetTargetInfoCppStd(t *testing.T) {
	d := desc(target.OSLinux, true)
	d.CppStd = 201402
	f, _ := newFacts(t, d)
	info, ok := f.GetTargetInfo("cppStd")
	if !ok || info.Kind != abi.InfoInt || info.Int != 201402 {
		t.Fatalf("cppStd: got %+v ok=%v", info, ok)
	}
	if info.Text() != "201402" {
		t.Fatalf("cppStd text: got %q", info.Text())
	}
}

func TestGetTargetInfoUnknownKey(t *testing.T) {
	f, _ := newFacts(t, desc(target.OSLinux, true))
	if _, ok := f.GetTargetInfo("linkerFlavor"); ok {
		t.Fatal("unknown keys report absence")
	}
}

func TestTargetInfoKeysAllResolve(t *testing.T) {
	f, _ := newFacts(t, desc(target.OSWindows, false))
	for _, key := range abi.TargetInfoKeys() {
		if _, ok := f.GetTargetInfo(key); !ok {
			t.Fatalf("registry key %q does not resolve", key)
		}
	}
}
