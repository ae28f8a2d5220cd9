// Package export writes resolved machine descriptions to disk so external
// tooling (build planners, cross-inspection) can consume target facts
// without linking the compiler.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/abi"
	"ember/internal/target"
	"ember/internal/types"
)

// Current schema version - increment when Snapshot format changes.
const snapshotSchemaVersion uint16 = 1

// Snapshot is the serialized form of every fact the resolver derives for one
// target.
type Snapshot struct {
	Schema uint16
	Triple string

	PointerSize        uint32
	ClassInfoSize      uint32
	ExtendedFloatSize  uint32
	ExtendedFloatPad   uint32
	ExtendedFloatAlign uint32
	MaxStaticDataSize  uint64

	LongSize            uint32
	LongDoubleSize      uint32
	CriticalSectionSize uint32

	ReverseOverloadOrder bool
	ExceptionInterop     bool
	TwoDtorInVtable      bool
	ObjCInterop          bool

	ObjectFormat      string
	FloatABI          string
	CppRuntimeLibrary string
	CppStd            int
}

// Capture copies the resolved facts into their serialized form.
func Capture(f *abi.Facts) *Snapshot {
	s := &Snapshot{
		Schema: snapshotSchemaVersion,
		Triple: f.Desc.Triple,

		PointerSize:        f.PtrSize,
		ClassInfoSize:      f.ClassInfoSize,
		ExtendedFloatSize:  f.ExtendedFloatSize,
		ExtendedFloatPad:   f.ExtendedFloatPad,
		ExtendedFloatAlign: f.ExtendedFloatAlign,
		MaxStaticDataSize:  f.MaxStaticDataSize,

		LongSize:            f.C.LongSize,
		LongDoubleSize:      f.C.LongDoubleSize,
		CriticalSectionSize: f.C.CriticalSectionSize,

		ReverseOverloadOrder: f.Cpp.ReverseOverloadOrder,
		ExceptionInterop:     f.Cpp.ExceptionInterop,
		TwoDtorInVtable:      f.Cpp.TwoDtorInVtable,
		ObjCInterop:          f.ObjC.Interop,
	}
	for _, key := range abi.TargetInfoKeys() {
		info, ok := f.GetTargetInfo(key)
		if !ok {
			continue
		}
		switch key {
		case "objectFormat":
			s.ObjectFormat = info.Str
		case "floatAbi":
			s.FloatABI = info.Str
		case "cppRuntimeLibrary":
			s.CppRuntimeLibrary = info.Str
		case "cppStd":
			s.CppStd = info.Int
		}
	}
	return s
}

// Write serializes the snapshot to path atomically (temp file + rename).
func Write(path string, s *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.Remove(f.Name()); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", removeErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Read deserializes a snapshot, rejecting unknown schema versions.
func Read(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "failed to close %s: %v\n", path, closeErr)
		}
	}()
	var s Snapshot
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	if s.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("%s: snapshot schema %d, want %d", path, s.Schema, snapshotSchemaVersion)
	}
	return &s, nil
}

// Resolve builds a fully initialized Facts for a triple with a private type
// interner and a scope that binds the va_list tag type.
func Resolve(triple string) (*abi.Facts, error) {
	desc, err := target.ParseTriple(triple)
	if err != nil {
		return nil, err
	}
	return ResolveDescription(desc), nil
}

// ResolveDescription is Resolve for an already-parsed description (the CLI
// applies manifest overrides before resolving).
func ResolveDescription(desc target.Description) *abi.Facts {
	in := types.NewInterner()
	facts := abi.New(in)
	facts.Initialize(desc, tagScope{types: in})
	return facts
}

// tagScope is the minimal semantic scope: it materializes requested names
// as opaque tag types.
type tagScope struct {
	types *types.Interner
}

func (s tagScope) ResolveNamed(name string) (types.TypeID, error) {
	if strings.TrimSpace(name) == "" {
		return types.NoTypeID, fmt.Errorf("empty type name")
	}
	return s.types.RegisterNamed(name), nil
}

// FileName is the snapshot file for a triple inside an export directory.
func FileName(dir, triple string) string {
	return filepath.Join(dir, triple+".mp")
}
