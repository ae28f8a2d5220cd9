package abi_test

import (
	"testing"

	"ember/internal/target"
	"ember/internal/types"
)

func fnReturning(in *types.Interner, result types.TypeID, linkage types.Linkage) types.TypeID {
	return in.RegisterFn(types.FnInfo{Result: result, Linkage: linkage})
}

func podStruct(in *types.Interner, name string, size uint64, fields int, args ...types.TypeID) types.TypeID {
	return in.RegisterStruct(types.StructInfo{
		Name:       name,
		Size:       size,
		Align:      8,
		FieldCount: fields,
		POD:        true,
		ArgTypes:   args,
	})
}

func TestReturnByRefNeverOnStack(t *testing.T) {
	f, in := newFacts(t, desc(target.OSLinux, false))
	s := podStruct(in, "Big", 64, 8)
	fn := in.RegisterFn(types.FnInfo{Result: s, ReturnsRef: true, Linkage: types.LinkageC})
	if f.IsReturnOnStack(fn, false) {
		t.Fatal("ref returns are already pointers")
	}
}

func TestReturnOnStackWin64(t *testing.T) {
	f, in := newFacts(t, desc(target.OSWindows, true))
	b := in.Builtins()

	if !f.IsReturnOnStack(fnReturning(in, b.Complex32, types.LinkageNative), false) {
		t.Fatal("complex32 is a special case on win64")
	}
	if f.IsReturnOnStack(fnReturning(in, b.Int64, types.LinkageNative), false) {
		t.Fatal("int64 rides rax")
	}
	if f.IsReturnOnStack(fnReturning(in, b.Float64, types.LinkageNative), false) {
		t.Fatal("float64 rides xmm0")
	}

	small := podStruct(in, "Small8", 8, 1)
	if f.IsReturnOnStack(fnReturning(in, small, types.LinkageNative), false) {
		t.Fatal("8-byte pod record rides rax")
	}
	pair := podStruct(in, "Pair16", 16, 2)
	if !f.IsReturnOnStack(fnReturning(in, pair, types.LinkageNative), false) {
		t.Fatal("records over 8 bytes go to memory on win64")
	}
	empty := podStruct(in, "Empty", 1, 0)
	if !f.IsReturnOnStack(fnReturning(in, empty, types.LinkageNative), false) {
		t.Fatal("zero-field records go to memory on win64")
	}
	if !f.IsReturnOnStack(fnReturning(in, small, types.LinkageCpp), true) {
		t.Fatal("c++ member results always go to memory on win64")
	}

	arr := in.Intern(types.MakeFixedArray(b.Float32, 4))
	if f.IsReturnOnStack(fnReturning(in, arr, types.LinkageNative), false) {
		t.Fatal("float32[4] is 16 bytes and rides a register")
	}
	arr3 := in.Intern(types.MakeFixedArray(b.Int32, 3))
	if !f.IsReturnOnStack(fnReturning(in, arr3, types.LinkageNative), false) {
		t.Fatal("int32[3] is 12 bytes and goes to memory")
	}
	smallArr := in.Intern(types.MakeFixedArray(small, 4))
	if !f.IsReturnOnStack(fnReturning(in, smallArr, types.LinkageNative), false) {
		t.Fatal("an array of 8-byte records is 32 bytes and goes to memory")
	}
}

func TestReturnOnStackWin32CppReceiver(t *testing.T) {
	f, in := newFacts(t, desc(target.OSWindows, false))
	small := podStruct(in, "Small4", 4, 1)

	if !f.IsReturnOnStack(fnReturning(in, small, types.LinkageCpp), true) {
		t.Fatal("coff c++ member record results go to memory")
	}
	if f.IsReturnOnStack(fnReturning(in, small, types.LinkageCpp), false) {
		t.Fatal("free c++ functions use the general rules")
	}
}

func TestReturnOnStackWin32OmfCtor(t *testing.T) {
	omf := desc(target.OSWindows, false)
	omf.ObjectFormatIsCoff = false
	f, in := newFacts(t, omf)

	plain := podStruct(in, "Plain", 4, 1)
	ctor := in.RegisterStruct(types.StructInfo{
		Name: "WithCtor", Size: 4, Align: 4, FieldCount: 1, POD: true, HasCtor: true,
	})
	if f.IsReturnOnStack(fnReturning(in, plain, types.LinkageCpp), false) {
		t.Fatal("4-byte pod record rides eax")
	}
	if !f.IsReturnOnStack(fnReturning(in, ctor, types.LinkageCpp), true) {
		t.Fatal("constructed member results go to memory on omf")
	}
}

func TestReturnOnStackGeneralRecords(t *testing.T) {
	f, in := newFacts(t, desc(target.OSLinux, true))
	b := in.Builtins()

	if f.IsReturnOnStack(fnReturning(in, b.Int32, types.LinkageNative), false) {
		t.Fatal("int32 never goes to memory")
	}

	pair := podStruct(in, "Pair16", 16, 2, b.Int64, b.Int64)
	if f.IsReturnOnStack(fnReturning(in, pair, types.LinkageNative), false) {
		t.Fatal("16-byte pod pair rides the sysv register pair on 64-bit")
	}

	nonPod := in.RegisterStruct(types.StructInfo{
		Name: "NonPod", Size: 8, Align: 8, FieldCount: 1, POD: false,
	})
	if !f.IsReturnOnStack(fnReturning(in, nonPod, types.LinkageNative), false) {
		t.Fatal("non-pod records always go to memory")
	}

	opaque := in.RegisterStruct(types.StructInfo{
		Name: "Opaque", Size: 8, Align: 8, FieldCount: 1, POD: true,
	})
	if !f.IsReturnOnStack(fnReturning(in, opaque, types.LinkageNative), false) {
		t.Fatal("records without constituent data go to memory on 64-bit")
	}
}

func TestReturnOnStackPeeling(t *testing.T) {
	f, in := newFacts(t, desc(target.OSLinux, true))
	b := in.Builtins()

	// A record wrapping a single scalar reduces to the scalar, but the
	// size rule still measures the wrapper.
	inner := podStruct(in, "Inner", 8, 1, b.Int64)
	outer := podStruct(in, "Outer", 8, 1, inner)
	if f.IsReturnOnStack(fnReturning(in, outer, types.LinkageNative), false) {
		t.Fatal("nested 8-byte wrapper rides a register")
	}

	arr2 := in.Intern(types.MakeFixedArray(b.Int32, 2))
	if f.IsReturnOnStack(fnReturning(in, arr2, types.LinkageNative), false) {
		t.Fatal("int32[2] fits a register")
	}
	arr3 := in.Intern(types.MakeFixedArray(b.Int32, 3))
	if !f.IsReturnOnStack(fnReturning(in, arr3, types.LinkageNative), false) {
		t.Fatal("int32[3] is 12 bytes and goes to memory")
	}
}

func TestReturnOnStackLinux32ForeignLinkage(t *testing.T) {
	f, in := newFacts(t, desc(target.OSLinux, false))
	b := in.Builtins()

	small := podStruct(in, "Small4", 4, 1, b.Int32)
	if !f.IsReturnOnStack(fnReturning(in, small, types.LinkageC), false) {
		t.Fatal("the 32-bit c abi returns all aggregates in memory")
	}
	if f.IsReturnOnStack(fnReturning(in, small, types.LinkageNative), false) {
		t.Fatal("native linkage keeps small records in registers")
	}

	pair := podStruct(in, "Pair16", 16, 2, b.Int64, b.Int64)
	if !f.IsReturnOnStack(fnReturning(in, pair, types.LinkageNative), false) {
		t.Fatal("16-byte pairs go to memory on 32-bit targets")
	}
}

func TestReturnOnStackComplex(t *testing.T) {
	f, in := newFacts(t, desc(target.OSLinux, true))
	b := in.Builtins()

	if f.IsReturnOnStack(fnReturning(in, b.Complex32, types.LinkageC), false) {
		t.Fatal("complex float splits across a register pair under the c abi")
	}
	if !f.IsReturnOnStack(fnReturning(in, b.Complex64, types.LinkageC), false) {
		t.Fatal("complex double goes to memory under the c abi")
	}
	if !f.IsReturnOnStack(fnReturning(in, b.Complex80, types.LinkageC), false) {
		t.Fatal("complex real goes to memory under the c abi")
	}
	if f.IsReturnOnStack(fnReturning(in, b.Complex64, types.LinkageNative), false) {
		t.Fatal("native complex returns stay in registers")
	}
}

func TestIsReturnOnStackRejectsNonFunction(t *testing.T) {
	f, in := newFacts(t, desc(target.OSLinux, true))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a non-function type")
		}
	}()
	f.IsReturnOnStack(in.Builtins().Int32, false)
}
