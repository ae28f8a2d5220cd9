package target

import (
	"fmt"
	"strings"
)

// DefaultCppStd is assumed when the manifest does not pin a C++ standard.
const DefaultCppStd = 201703

// ParseFeature maps a manifest/flag spelling to a capability tier.
func ParseFeature(name string) (Feature, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "baseline", "none":
		return FeatureNone, nil
	case "sse":
		return FeatureSSE, nil
	case "sse2":
		return FeatureSSE2, nil
	case "sse4.1", "sse4_1", "sse41":
		return FeatureSSE4_1, nil
	case "avx":
		return FeatureAVX, nil
	case "avx2":
		return FeatureAVX2, nil
	case "avx512":
		return FeatureAVX512, nil
	default:
		return FeatureNone, fmt.Errorf("unknown cpu feature tier %q", name)
	}
}

// ParseTriple resolves an arch-vendor-os[-env] triple into a Description.
// The vendor component is accepted and ignored. Unknown components are
// resolution errors: the caller supplied the triple, so this is user input,
// not a configuration-fatal condition.
func ParseTriple(triple string) (Description, error) {
	parts := strings.Split(strings.TrimSpace(triple), "-")
	if len(parts) < 2 {
		return Description{}, fmt.Errorf("malformed target triple %q", triple)
	}

	desc := Description{Triple: strings.TrimSpace(triple), CppStd: DefaultCppStd}

	switch parts[0] {
	case "x86_64", "amd64":
		desc.Is64bit = true
		desc.IsLP64 = true
	case "i386", "i486", "i586", "i686", "x86":
		// 32-bit pointer model.
	default:
		return Description{}, fmt.Errorf("unsupported architecture %q in triple %q", parts[0], triple)
	}

	// Vendor is optional: "x86_64-linux-gnu" and "x86_64-unknown-linux-gnu"
	// both resolve. Scan for the OS component instead of fixing a position.
	rest := parts[1:]
	osIdx := -1
	for i, p := range rest {
		if osFromToken(p) != OSNone {
			osIdx = i
			break
		}
	}
	if osIdx < 0 {
		return Description{}, fmt.Errorf("unsupported os in triple %q", triple)
	}
	desc.OS = osFromToken(rest[osIdx])

	env := ""
	if osIdx+1 < len(rest) {
		env = strings.Join(rest[osIdx+1:], "-")
	}
	if err := applyEnv(&desc, env, triple); err != nil {
		return Description{}, err
	}

	// Feature floor: every 64-bit x86 target guarantees SSE2; 32-bit
	// baseline guarantees nothing.
	if desc.Is64bit {
		desc.CPU = FeatureSSE2
	}
	return desc, nil
}

func osFromToken(tok string) OS {
	switch tok {
	case "linux":
		return OSLinux
	case "windows", "win32", "win64":
		return OSWindows
	case "darwin", "macos", "macosx", "osx":
		return OSOSX
	case "freebsd":
		return OSFreeBSD
	case "openbsd":
		return OSOpenBSD
	case "dragonfly", "dragonflybsd":
		return OSDragonFlyBSD
	case "solaris":
		return OSSolaris
	default:
		return OSNone
	}
}

func applyEnv(desc *Description, env, triple string) error {
	if desc.OS == OSWindows {
		switch env {
		case "", "msvc", "coff":
			desc.ObjectFormatIsCoff = true
			desc.CRuntime = "msvcrt"
		case "omf":
			// Legacy linker path: OMF objects, bundled runtime.
			if desc.Is64bit {
				return fmt.Errorf("omf object format is 32-bit only (triple %q)", triple)
			}
			desc.ObjectFormatIsCoff = false
		default:
			return fmt.Errorf("unsupported windows environment %q in triple %q", env, triple)
		}
		return nil
	}
	switch env {
	case "", "gnu", "musl", "elf", "none":
		return nil
	default:
		return fmt.Errorf("unsupported environment %q in triple %q", env, triple)
	}
}
