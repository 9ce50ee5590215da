package rules

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/joseph-ayodele/os-report/internal/common"
	"github.com/joseph-ayodele/os-report/internal/extract"
	"github.com/joseph-ayodele/os-report/internal/signature"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	set, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(set, Default()) {
		t.Fatalf("Load(\"\") = %+v, want defaults", set)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	data := `{
		"extraction": {"identifier_min": 1000, "identifier_max": 999999, "name": {"label": "Empregado"}},
		"signature": {"keywords": ["assinado eletronicamente"]}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := extract.DefaultRules()
	if set.Extraction.IdentifierMin != 1000 || set.Extraction.IdentifierMax != 999999 {
		t.Fatalf("bounds not applied: %+v", set.Extraction)
	}
	if set.Extraction.Name.Label != "Empregado" {
		t.Fatalf("name label = %q", set.Extraction.Name.Label)
	}
	if !reflect.DeepEqual(set.Extraction.Name.Terminators, def.Name.Terminators) {
		t.Fatalf("name terminators should keep defaults, got %v", set.Extraction.Name.Terminators)
	}
	if set.Extraction.SectionHeading != def.SectionHeading {
		t.Fatalf("section heading should keep default, got %q", set.Extraction.SectionHeading)
	}
	if !reflect.DeepEqual(set.Signature.Keywords, []string{"assinado eletronicamente"}) {
		t.Fatalf("keywords = %v", set.Signature.Keywords)
	}
	if !reflect.DeepEqual(set.Signature.AnnotationTypes, signature.DefaultConfig().AnnotationTypes) {
		t.Fatalf("annotation types should keep defaults, got %v", set.Signature.AnnotationTypes)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := "extraction:\n  identifier_max: 80000\n  role:\n    label: Cargo\n    terminators: [CTPS, CBO]\nsignature:\n  annotation_types: [Ink]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.Extraction.IdentifierMax != 80000 || set.Extraction.IdentifierMin != extract.DefaultRules().IdentifierMin {
		t.Fatalf("bounds = %d..%d", set.Extraction.IdentifierMin, set.Extraction.IdentifierMax)
	}
	if set.Extraction.Role.Label != "Cargo" || !reflect.DeepEqual(set.Extraction.Role.Terminators, []string{"CTPS", "CBO"}) {
		t.Fatalf("role = %+v", set.Extraction.Role)
	}
	if !reflect.DeepEqual(set.Signature.AnnotationTypes, []string{"Ink"}) {
		t.Fatalf("annotation types = %v", set.Signature.AnnotationTypes)
	}

	bad := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(bad, []byte("extraction: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":     `{"extraction": {"matricula_min": 1}}`,
		"wrong type":      `{"extraction": {"identifier_min": "40000"}}`,
		"empty keyword":   `{"signature": {"keywords": [""]}}`,
		"inverted bounds": `{"extraction": {"identifier_min": 9, "identifier_max": 1}}`,
		"not json":        `{`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			if err == nil {
				t.Fatal("expected error")
			}
			var appErr *common.AppError
			if !errors.As(err, &appErr) || appErr.Code != common.CodeRules {
				t.Fatalf("error %v should be an AppError with code %s", err, common.CodeRules)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want os.ErrNotExist", err)
	}
}
