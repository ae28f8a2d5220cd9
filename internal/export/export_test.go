package export_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ember/internal/export"
)

func TestResolveLinux64(t *testing.T) {
	facts, err := export.Resolve("x86_64-linux-gnu")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if facts.PtrSize != 8 || facts.ClassInfoSize != 152 {
		t.Fatalf("ptr=%d classinfo=%d", facts.PtrSize, facts.ClassInfoSize)
	}
	if facts.C.LongSize != 8 {
		t.Fatalf("long size: %d", facts.C.LongSize)
	}
	// The System V va_list tag must already be bound.
	if facts.VaListType() == 0 {
		t.Fatal("va_list unresolved")
	}
}

func TestResolveRejectsBadTriple(t *testing.T) {
	if _, err := export.Resolve("mips-linux-gnu"); err == nil {
		t.Fatal("expected error for unsupported arch")
	}
}

func TestCaptureFields(t *testing.T) {
	facts, err := export.Resolve("x86_64-windows-msvc")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	s := export.Capture(facts)
	if s.Triple != "x86_64-windows-msvc" {
		t.Fatalf("triple: %q", s.Triple)
	}
	if s.ObjectFormat != "coff" || s.FloatABI != "hard" || s.CppRuntimeLibrary != "msvcrt" {
		t.Fatalf("info fields: %+v", s)
	}
	if s.LongDoubleSize != 8 || s.CriticalSectionSize != 40 {
		t.Fatalf("c facts: %+v", s)
	}
	if !s.ReverseOverloadOrder || s.ExceptionInterop {
		t.Fatalf("cpp facts: %+v", s)
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	facts, err := export.Resolve("i686-freebsd")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := export.Capture(facts)

	path := export.FileName(t.TempDir(), "i686-freebsd")
	if err := export.Write(path, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := export.Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if *got != *want {
		t.Fatalf("roundtrip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestReadRejectsUnknownSchema(t *testing.T) {
	facts, err := export.Resolve("x86_64-linux-gnu")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	s := export.Capture(facts)
	s.Schema = 99

	path := export.FileName(t.TempDir(), "x86_64-linux-gnu")
	if err := export.Write(path, s); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := export.Read(path); err == nil {
		t.Fatal("expected schema version rejection")
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	facts, err := export.Resolve("x86_64-apple-darwin")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	path := export.FileName(dir, "x86_64-apple-darwin")
	if err := export.Write(path, export.Capture(facts)); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != filepath.Base(path) {
		t.Fatalf("directory contents: %v", entries)
	}
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	triples := []string{
		"x86_64-linux-gnu",
		"i686-windows-msvc",
		"x86_64-linux-gnu", // duplicate
		"",
		"x86_64-apple-darwin",
	}
	paths, err := export.ExportAll(context.Background(), dir, triples, 2)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := []string{
		export.FileName(dir, "i686-windows-msvc"),
		export.FileName(dir, "x86_64-apple-darwin"),
		export.FileName(dir, "x86_64-linux-gnu"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths: %v", paths)
	}
	for i, p := range paths {
		if p != want[i] {
			t.Fatalf("path[%d]: got %q, want %q", i, p, want[i])
		}
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		s, err := export.Read(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if export.FileName(dir, s.Triple) != p {
			t.Fatalf("snapshot triple %q does not match file %q", s.Triple, p)
		}
	}
}

func TestExportAllPropagatesFailure(t *testing.T) {
	_, err := export.ExportAll(context.Background(), t.TempDir(),
		[]string{"x86_64-linux-gnu", "sparc-solaris"}, 0)
	if err == nil {
		t.Fatal("expected failure for unsupported arch")
	}
}
