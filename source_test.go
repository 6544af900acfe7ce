package netelab

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/golangsnmp/netelab/internal/testutil"
)

func TestDirNonExistentPath(t *testing.T) {
	_, err := Dir("/this/path/does/not/exist/at/all")
	testutil.Error(t, err, "Dir with non-existent path should fail")
}

func TestDirNotADirectory(t *testing.T) {
	_, err := Dir("testdata/rtl/alu.v")
	testutil.Error(t, err, "Dir with a file path should fail")
}

func TestMustDirPanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustDir with non-existent path should panic")
		}
	}()
	MustDir("/this/path/does/not/exist")
}

func TestDirFilesSkipsOtherExtensions(t *testing.T) {
	files, err := MustDir("testdata/rtl").Files()
	testutil.NoError(t, err, "Files")
	testutil.SliceEqual(t, []string{filepath.Join("testdata", "rtl", "alu.v")}, files)
}

func TestDirOpen(t *testing.T) {
	src := MustDir("testdata/rtl")
	r, err := src.Open(filepath.Join("testdata", "rtl", "alu.v"))
	testutil.NoError(t, err, "Open listed file")
	data, err := io.ReadAll(r)
	_ = r.Close()
	testutil.NoError(t, err, "ReadAll")
	testutil.Contains(t, string(data), "module alu")

	_, err = src.Open(filepath.Join("testdata", "dup", "first.v"))
	testutil.True(t, err == fs.ErrNotExist, "foreign path should be fs.ErrNotExist, got %v", err)
}

func TestDirTreeNonExistentPath(t *testing.T) {
	_, err := DirTree("/this/path/does/not/exist/at/all")
	testutil.Error(t, err, "DirTree with non-existent path should fail")
}

func TestMustDirTreePanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustDirTree with non-existent path should panic")
		}
	}()
	MustDirTree("/this/path/does/not/exist")
}

func TestDirTreeFilesRecurse(t *testing.T) {
	files, err := MustDirTree("testdata/rtl").Files()
	testutil.NoError(t, err, "Files")
	testutil.SliceEqual(t, []string{
		filepath.Join("testdata", "rtl", "alu.v"),
		filepath.Join("testdata", "rtl", "lib", "mux4.v"),
	}, files)
}

func TestFSSource(t *testing.T) {
	memFS := fstest.MapFS{
		"rtl/top.v":  &fstest.MapFile{Data: []byte("module top;\nendmodule\n")},
		"rtl/top.sv": &fstest.MapFile{Data: []byte("module ignored;\nendmodule\n")},
	}
	src := FS("mem", memFS)

	files, err := src.Files()
	testutil.NoError(t, err, "Files")
	testutil.SliceEqual(t, []string{"mem:rtl/top.v"}, files)

	r, err := src.Open("mem:rtl/top.v")
	testutil.NoError(t, err, "Open")
	_ = r.Close()

	_, err = src.Open("rtl/top.v")
	testutil.True(t, err == fs.ErrNotExist, "path without FS name prefix should not resolve")
}

func TestFSSourceEmpty(t *testing.T) {
	files, err := FS("empty", fstest.MapFS{}).Files()
	testutil.NoError(t, err, "Files on empty FS")
	testutil.Len(t, files, 0, "empty FS should have no files")
}

func TestMultiSource(t *testing.T) {
	rtl := MustDir("testdata/rtl")
	lib := MustDir("testdata/rtl/lib")
	multi := Multi(rtl, lib)

	files, err := multi.Files()
	testutil.NoError(t, err, "Files")
	testutil.Len(t, files, 2)

	r, err := multi.Open(filepath.Join("testdata", "rtl", "lib", "mux4.v"))
	testutil.NoError(t, err, "Open from second source")
	_ = r.Close()

	_, err = multi.Open("nowhere.v")
	testutil.True(t, err == fs.ErrNotExist, "Multi.Open should return fs.ErrNotExist")
}

func TestWithExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	err := os.WriteFile(filepath.Join(tmpDir, "cell.vh"), []byte("module cell;\nendmodule\n"), 0o644)
	testutil.NoError(t, err, "write test file")

	files, err := MustDir(tmpDir).Files()
	testutil.NoError(t, err, "Files default")
	testutil.Len(t, files, 0, "default extensions should not find .vh files")

	files, err = MustDir(tmpDir, WithExtensions(".VH")).Files()
	testutil.NoError(t, err, "Files custom")
	testutil.Len(t, files, 1, "extension match is case-insensitive")
}

func TestFilesSource(t *testing.T) {
	alu := filepath.Join("testdata", "rtl", "alu.v")
	notes := filepath.Join("testdata", "rtl", "notes.txt")

	src, err := Files(alu, notes, alu)
	testutil.NoError(t, err, "Files")
	files, err := src.Files()
	testutil.NoError(t, err, "list")
	testutil.SliceEqual(t, []string{alu, notes}, files, "explicit files ignore extensions and repeat")

	_, err = Files("testdata/rtl")
	testutil.Error(t, err, "a directory is not a file")
	_, err = Files("testdata/missing.v")
	testutil.Error(t, err, "missing file")
}
