package target

import "testing"

func TestParseTriple_Supported(t *testing.T) {
	tests := []struct {
		triple  string
		os      OS
		is64    bool
		coff    bool
		cpu     Feature
		runtime string
	}{
		{"x86_64-linux-gnu", OSLinux, true, false, FeatureSSE2, ""},
		{"x86_64-unknown-linux-gnu", OSLinux, true, false, FeatureSSE2, ""},
		{"i686-linux-gnu", OSLinux, false, false, FeatureNone, ""},
		{"x86_64-pc-windows-msvc", OSWindows, true, true, FeatureSSE2, "msvcrt"},
		{"i686-windows-omf", OSWindows, false, false, FeatureNone, ""},
		{"x86_64-apple-darwin", OSOSX, true, false, FeatureSSE2, ""},
		{"i686-apple-darwin", OSOSX, false, false, FeatureNone, ""},
		{"x86_64-freebsd", OSFreeBSD, true, false, FeatureSSE2, ""},
		{"x86_64-openbsd", OSOpenBSD, true, false, FeatureSSE2, ""},
		{"x86_64-dragonfly", OSDragonFlyBSD, true, false, FeatureSSE2, ""},
		{"x86_64-solaris", OSSolaris, true, false, FeatureSSE2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.triple, func(t *testing.T) {
			desc, err := ParseTriple(tt.triple)
			if err != nil {
				t.Fatalf("ParseTriple(%q): %v", tt.triple, err)
			}
			if desc.OS != tt.os {
				t.Fatalf("os: got %v, want %v", desc.OS, tt.os)
			}
			if desc.Is64bit != tt.is64 || desc.IsLP64 != tt.is64 {
				t.Fatalf("bitness: got is64=%v lp64=%v, want %v", desc.Is64bit, desc.IsLP64, tt.is64)
			}
			if desc.ObjectFormatIsCoff != tt.coff {
				t.Fatalf("coff: got %v, want %v", desc.ObjectFormatIsCoff, tt.coff)
			}
			if desc.CPU != tt.cpu {
				t.Fatalf("cpu: got %v, want %v", desc.CPU, tt.cpu)
			}
			if desc.CRuntime != tt.runtime {
				t.Fatalf("crt: got %q, want %q", desc.CRuntime, tt.runtime)
			}
			if desc.CppStd != DefaultCppStd {
				t.Fatalf("cppstd: got %d, want %d", desc.CppStd, DefaultCppStd)
			}
		})
	}
}

func TestParseTriple_Rejected(t *testing.T) {
	bad := []string{
		"",
		"x86_64",
		"riscv64-linux-gnu",
		"x86_64-plan9",
		"x86_64-windows-omf", // omf is 32-bit only
		"x86_64-linux-uclibc",
	}
	for _, triple := range bad {
		if _, err := ParseTriple(triple); err == nil {
			t.Fatalf("ParseTriple(%q): expected error, got none", triple)
		}
	}
}

func TestParseFeature(t *testing.T) {
	tests := []struct {
		in   string
		want Feature
	}{
		{"", FeatureNone},
		{"baseline", FeatureNone},
		{"sse", FeatureSSE},
		{"SSE2", FeatureSSE2},
		{"sse4.1", FeatureSSE4_1},
		{"sse41", FeatureSSE4_1},
		{"avx", FeatureAVX},
		{"avx2", FeatureAVX2},
		{"avx512", FeatureAVX512},
	}
	for _, tt := range tests {
		got, err := ParseFeature(tt.in)
		if err != nil {
			t.Fatalf("ParseFeature(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseFeature(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseFeature("neon"); err == nil {
		t.Fatal("ParseFeature(neon): expected error, got none")
	}
}

func TestFeatureOrdering(t *testing.T) {
	order := []Feature{FeatureNone, FeatureSSE, FeatureSSE2, FeatureSSE4_1, FeatureAVX, FeatureAVX2, FeatureAVX512}
	for i := 1; i < len(order); i++ {
		if order[i-1] >= order[i] {
			t.Fatalf("feature tiers must be strictly ordered: %v >= %v", order[i-1], order[i])
		}
	}
}
