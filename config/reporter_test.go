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
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	out := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		out[f.Name] = string(data)
	}
	return out
}

func TestReport_Archive(t *testing.T) {
	tmpDir := t.TempDir()

	conf := ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}

	stored := filepath.Join(tmpDir, "result.json")
	if err := os.WriteFile(stored, []byte(`{"css":"color: red;"}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	dir := filepath.Join(tmpDir, "results")
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	r.Store("result-10", stored)
	r.Store("result-9", stored)
	r.Store("results", dir)
	r.Store("missing", filepath.Join(tmpDir, "does-not-exist"))
	r.StoreData("schema.txt", []byte("color\n"))

	if got := strings.Join(r.Entries(), ","); got != "missing,result-9,result-10,results,schema.txt" {
		t.Errorf("Entries() = %s", got)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if r.Name() != conf.Destination {
		t.Errorf("Name() = %s, want %s", r.Name(), conf.Destination)
	}

	files := readZip(t, conf.Destination)
	if files["result-9"] != `{"css":"color: red;"}` {
		t.Errorf("result-9 = %q", files["result-9"])
	}
	if files["results/sub/a.txt"] != "a" {
		t.Errorf("results/sub/a.txt = %q", files["results/sub/a.txt"])
	}
	if files["schema.txt"] != "color\n" {
		t.Errorf("schema.txt = %q", files["schema.txt"])
	}
	if _, ok := files["missing"]; ok {
		t.Error("absent file must be skipped")
	}
	if !strings.Contains(files["MANIFEST"], "result-10") {
		t.Errorf("MANIFEST does not list result-10:\n%s", files["MANIFEST"])
	}
}

func TestReport_StoreSamePathTwice(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/tmp/a")
	r.Store("a", "/tmp/a")
	if len(r.Entries()) != 1 {
		t.Errorf("Entries() = %v", r.Entries())
	}
}

func TestReport_StoreOverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.Store("a", "/tmp/a")

	defer func() {
		if rec := recover(); rec == nil {
			t.Error("expected panic on overwrite")
		}
	}()
	r.Store("a", "/tmp/b")
}

func TestReport_StoreDataOverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("a", []byte("1"))

	defer func() {
		if rec := recover(); rec == nil {
			t.Error("expected panic on overwrite")
		}
	}()
	r.StoreData("a", []byte("2"))
}

func TestReport_Nil(t *testing.T) {
	var r *Report
	r.Store("a", "/tmp/a")
	r.StoreData("b", nil)
	if r.Entries() != nil {
		t.Error("nil report must have no entries")
	}
	if r.Name() != "" {
		t.Error("nil report must have no name")
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
