package rename

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/joseph-ayodele/os-report/internal/common"
	"github.com/joseph-ayodele/os-report/internal/entity"
)

func TestConfirm(t *testing.T) {
	tests := map[string]bool{
		"s\n":       true,
		"SIM\n":     true,
		"  Yes  \n": true,
		"y":         true,
		"n\n":       false,
		"não\n":     false,
		"\n":        false,
		"":          false,
		"sim sim\n": false,
	}
	for in, want := range tests {
		var out bytes.Buffer
		got, err := Confirm(strings.NewReader(in), &out)
		if err != nil {
			t.Fatalf("Confirm(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("Confirm(%q) = %v, want %v", in, got, want)
		}
		if out.String() != Prompt {
			t.Fatalf("prompt = %q", out.String())
		}
	}
}

func TestTargetName(t *testing.T) {
	tests := []struct {
		name, id   string
		wantName   string
		wantAction Action
	}{
		{"os.pdf", "045123", "045123 - os.pdf", ActionIdentify},
		{"045123 - os.pdf", "045123", "045123 - os.pdf", ActionSkip},
		{"045123 -os.pdf", "045123", "045123 -os.pdf", ActionSkip},
		{"os.pdf", "N/A", "ERROR - os.pdf", ActionMarkError},
		{"os.pdf", "", "ERROR - os.pdf", ActionMarkError},
		{"ERROR - os.pdf", "N/A", "ERROR - os.pdf", ActionSkip},
		// A file marked in an earlier run gets the identifier in front.
		{"ERROR - os.pdf", "045123", "045123 - ERROR - os.pdf", ActionIdentify},
	}
	for _, tt := range tests {
		got, action := TargetName(tt.name, tt.id)
		if got != tt.wantName || action != tt.wantAction {
			t.Fatalf("TargetName(%q, %q) = %q, %v; want %q, %v", tt.name, tt.id, got, action, tt.wantName, tt.wantAction)
		}
	}
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("%PDF"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf", "b.pdf", "050000 - c.pdf", "ERROR - d.pdf", "e.pdf", "060000 - e.pdf")
	records := []entity.ReportRecord{
		{FileName: "a.pdf", Identifier: "045123"},
		{FileName: "b.pdf", Identifier: "N/A"},
		{FileName: "050000 - c.pdf", Identifier: "050000"},
		{FileName: "ERROR - d.pdf", Identifier: "N/A"},
		{FileName: "gone.pdf", Identifier: "070000"},
		{FileName: "e.pdf", Identifier: "060000"},
	}

	var out bytes.Buffer
	sum, err := NewRenamer(&out, nil).Apply(context.Background(), dir, records)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := Summary{Renamed: 1, MarkedError: 1, Skipped: 3, Failed: 1}
	if sum != want {
		t.Fatalf("summary = %+v, want %+v", sum, want)
	}

	got := strings.Join(listDir(t, dir), "|")
	wantFiles := "045123 - a.pdf|050000 - c.pdf|060000 - e.pdf|ERROR - b.pdf|ERROR - d.pdf|e.pdf"
	if got != wantFiles {
		t.Fatalf("files = %s, want %s", got, wantFiles)
	}
	if !strings.Contains(out.String(), "[OK] Renomeado: 'a.pdf' -> '045123 - a.pdf'") {
		t.Fatalf("missing progress line in %q", out.String())
	}
}

func TestRenameFile_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf", "b.pdf")
	err := renameFile(filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf"))
	if !errors.Is(err, common.ErrRename) || !errors.Is(err, os.ErrExist) {
		t.Fatalf("err = %v", err)
	}
}

func TestApply_Cancelled(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := NewRenamer(nil, nil).Apply(ctx, dir, []entity.ReportRecord{{FileName: "a.pdf", Identifier: "045123"}})
	if !errors.Is(err, context.Canceled) || sum != (Summary{}) {
		t.Fatalf("Apply = %+v, %v", sum, err)
	}
	if got := listDir(t, dir); len(got) != 1 || got[0] != "a.pdf" {
		t.Fatalf("files = %v", got)
	}
}

func TestSummaryString(t *testing.T) {
	s := Summary{Renamed: 2, MarkedError: 1}.String()
	if !strings.HasPrefix(s, "2 arquivos renomeados com sucesso, 1 marcados com erro") {
		t.Fatalf("String() = %q", s)
	}
}
