package zip

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestZipFiles(t *testing.T) {
	dir := t.TempDir()
	var sources []string
	for _, name := range []string{"report.json", "report.xlsx"} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("content of "+name), 0644); err != nil {
			t.Fatal(err)
		}
		sources = append(sources, path)
	}
	target, size, err := ZipFiles(sources)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(target, "report.zip") {
		t.Errorf("archive name %q", target)
	}
	if size <= 0 {
		t.Errorf("archive size %d", size)
	}
	reader, err := zip.OpenReader(target)
	if err != nil {
		t.Fatal(err)
	}
	defer reader.Close()
	if len(reader.File) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(reader.File))
	}
	if reader.File[0].Name != "report.json" {
		t.Errorf("entry name %q, paths should be flattened", reader.File[0].Name)
	}
}

func TestZipFilesEmpty(t *testing.T) {
	_, _, err := ZipFiles(nil)
	if err == nil {
		t.Fatal("expected error for empty source list")
	}
}
