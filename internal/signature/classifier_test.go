package signature

import (
	"testing"

	"github.com/joseph-ayodele/os-report/internal/document"
)

func straightDoc() document.Document {
	return document.Document{
		Path: "os.pdf",
		Pages: []document.Page{
			{Number: 1, Text: "ORDEM DE SERVIÇO\nDADOS DO FUNCIONÁRIO"},
			{
				Number:      2,
				Text:        "Declaro ciência das instruções.",
				Annotations: []string{"Link", "Text"},
				Drawings: []document.Drawing{
					{Segments: []document.PathOp{document.PathMove, document.PathLine, document.PathLine}},
					{Segments: []document.PathOp{document.PathRect}},
				},
			},
		},
	}
}

func TestClassifier_AllFalseEvidence(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)
	if c.Classify(straightDoc()) {
		t.Fatal("document without evidence classified as signed")
	}
	if c.Classify(document.Document{}) {
		t.Fatal("empty document classified as signed")
	}
}

func TestClassifier_EachSignalFlipsResult(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *document.Document)
		want   Evidence
	}{
		{"docusign keyword", func(d *document.Document) { d.Pages[1].Text += "\nDocuSign Envelope ID: 1234" }, EvidenceText},
		{"localized keyword upper case", func(d *document.Document) { d.Pages[0].Text += "\nDOCUMENTO ASSINADO DIGITALMENTE" }, EvidenceText},
		{"certificate authority", func(d *document.Document) { d.Pages[1].Text += " certificado ICP-Brasil" }, EvidenceText},
		{"ink annotation", func(d *document.Document) { d.Pages[1].Annotations = append(d.Pages[1].Annotations, "Ink") }, EvidenceAnnotation},
		{"stamp annotation", func(d *document.Document) { d.Pages[0].Annotations = []string{"Stamp"} }, EvidenceAnnotation},
		{"widget annotation", func(d *document.Document) { d.Pages[0].Annotations = []string{"Widget"} }, EvidenceAnnotation},
		{"curve segment", func(d *document.Document) {
			d.Pages[1].Drawings = append(d.Pages[1].Drawings, document.Drawing{Segments: []document.PathOp{document.PathMove, document.PathCurve}})
		}, EvidenceVectorCurve},
	}
	c := NewClassifier(DefaultConfig(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := straightDoc()
			tt.mutate(&d)
			if got := c.Detect(d); got != tt.want {
				t.Fatalf("Detect() = %v, want %v", got, tt.want)
			}
			if !c.Classify(d) {
				t.Fatal("Classify() = false, want true")
			}
		})
	}
}

func TestClassifier_TextPassRunsBeforeVisuals(t *testing.T) {
	d := straightDoc()
	d.Pages[0].Annotations = []string{"Ink"}
	d.Pages[1].Text += " signed by Maria"
	if got := NewClassifier(DefaultConfig(), nil).Detect(d); got != EvidenceText {
		t.Fatalf("Detect() = %v, want %v", got, EvidenceText)
	}
}

func TestClassifier_StraightVersusCurvedDrawing(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)
	base := document.Document{Pages: []document.Page{{
		Number:   1,
		Text:     "Assinatura do empregado: ____",
		Drawings: []document.Drawing{{Segments: []document.PathOp{document.PathMove, document.PathLine}}},
	}}}
	if c.Classify(base) {
		t.Fatal("straight-line drawing classified as signed")
	}
	curved := document.Document{Pages: []document.Page{{
		Number:   1,
		Text:     base.Pages[0].Text,
		Drawings: []document.Drawing{{Segments: []document.PathOp{document.PathMove, document.PathLine, document.PathCurve}}},
	}}}
	if !c.Classify(curved) {
		t.Fatal("curved drawing not classified as signed")
	}
}

func TestClassifier_CustomConfig(t *testing.T) {
	c := NewClassifier(Config{Keywords: []string{"  Rubrica "}, AnnotationTypes: []string{"FreeText"}}, nil)
	d := straightDoc()
	if c.Classify(d) {
		t.Fatal("unexpected signature")
	}
	d.Pages[0].Text += " RUBRICA"
	if got := c.Detect(d); got != EvidenceText {
		t.Fatalf("Detect() = %v, want %v", got, EvidenceText)
	}
	d = straightDoc()
	d.Pages[0].Annotations = []string{"Ink", "FreeText"}
	if got := c.Detect(d); got != EvidenceAnnotation {
		t.Fatalf("Detect() = %v, want %v", got, EvidenceAnnotation)
	}
}

func TestClassifier_PanicMeansNoSignature(t *testing.T) {
	c := NewClassifier(DefaultConfig(), nil)
	c.hasCurve = func(document.Drawing) bool { panic("corrupt path") }

	d := straightDoc()
	if got := c.Detect(d); got != EvidenceNone {
		t.Fatalf("Detect() = %v, want %v", got, EvidenceNone)
	}
	if c.Classify(d) {
		t.Fatal("Classify() = true after a failed inspection")
	}

	// Text evidence is found before the failing visual pass.
	d.Pages[0].Text += " DocuSign"
	if got := c.Detect(d); got != EvidenceText {
		t.Fatalf("Detect() = %v, want %v", got, EvidenceText)
	}
}

func TestEvidence_String(t *testing.T) {
	for ev, want := range map[Evidence]string{
		EvidenceNone:        "none",
		EvidenceText:        "text",
		EvidenceAnnotation:  "annotation",
		EvidenceVectorCurve: "vector_curve",
	} {
		if got := ev.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", ev, got, want)
		}
	}
}
