package ingest

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDirLister_ListDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "A.PDF", "c.txt", ".hidden.pdf", "notes.pdf.bak"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0755); err != nil {
		t.Fatal(err)
	}

	files, stats, err := NewDirLister(true, nil).ListDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
		if f.Path != filepath.Join(dir, f.Name) {
			t.Fatalf("Path = %q, want it under %q", f.Path, dir)
		}
	}
	if want := []string{"A.PDF", "b.pdf"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	if stats.Scanned != 6 || stats.Matched != 2 || stats.Skipped != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestDirLister_KeepsHiddenWhenAsked(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".x.pdf"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	files, _, err := NewDirLister(false, nil).ListDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("files = %v, want the hidden pdf", files)
	}
}

func TestDirLister_Errors(t *testing.T) {
	l := NewDirLister(true, nil)
	if _, _, err := l.ListDirectory(context.Background(), " "); err == nil {
		t.Fatal("expected error for empty root")
	}
	if _, _, err := l.ListDirectory(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestAllowedExt(t *testing.T) {
	for ext, want := range map[string]bool{".pdf": true, "PDF": true, ".Pdf": true, ".docx": false, "": false} {
		if got := AllowedExt(ext); got != want {
			t.Fatalf("AllowedExt(%q) = %v, want %v", ext, got, want)
		}
	}
}
