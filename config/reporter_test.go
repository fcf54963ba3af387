package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readZip(t *testing.T, name string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(name)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport_Close(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	stored := filepath.Join(dir, "out.dmmu")
	if err := os.WriteFile(stored, []byte("expanded"), 0644); err != nil {
		t.Fatal(err)
	}
	r.Store("result/out.dmmu", stored)
	r.Store("missing.log", filepath.Join(dir, "absent.log"))
	r.Store("dir", dir)
	r.StoreData("source/map.dmm", []byte("packed"))
	r.StoreData("source/map.dmm", []byte("packed again"))

	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readZip(t, conf.Destination)
	if files["result/out.dmmu"] != "expanded" {
		t.Errorf("stored file content = %q", files["result/out.dmmu"])
	}
	if files["source/map.dmm"] != "packed" {
		t.Errorf("stored data content = %q", files["source/map.dmm"])
	}
	if _, ok := files["missing.log"]; ok {
		t.Error("absent file should not be archived")
	}
	if _, ok := files["dir"]; ok {
		t.Error("directory should not be archived")
	}

	var versioned int
	for name, data := range files {
		if strings.HasPrefix(name, "source/map.dmm-") && data == "packed again" {
			versioned++
		}
	}
	if versioned != 1 {
		t.Errorf("expected versioned copy of repeated data entry, files: %v", files)
	}

	manifest := files["MANIFEST"]
	for _, want := range []string{"result/out.dmmu", "missing.log", "<data> : 6 bytes"} {
		if !strings.Contains(manifest, want) {
			t.Errorf("MANIFEST does not mention %q:\n%s", want, manifest)
		}
	}
}

func TestReport_StoreDataCopies(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	data := []byte("abc")
	r.StoreData("x", data)
	data[0] = 'z'
	if got := string(r.entries["x"].data); got != "abc" {
		t.Errorf("stored data = %q, want copy taken at call time", got)
	}
}

func TestReport_StoreConflict(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("final.log", "/tmp/a.log")
	r.Store("final.log", "/tmp/a.log")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on conflicting Store")
		}
	}()
	r.Store("final.log", "/tmp/b.log")
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", []byte("b"))
	if r.Name() != "" {
		t.Error("Name() on nil report should be empty")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
