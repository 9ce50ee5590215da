package pipeline

import "github.com/joseph-ayodele/os-report/internal/extract"

// FieldExtractor is stage 2: text -> fields.
type FieldExtractor interface {
	Extract(text string) extract.Result
}

// FieldsStage runs the field extractor over the text of a read document.
type FieldsStage struct {
	Extractor FieldExtractor
}

func NewFieldsStage(fe FieldExtractor) *FieldsStage {
	return &FieldsStage{Extractor: fe}
}

func (s *FieldsStage) Run(out ReadOutcome) extract.Result {
	return s.Extractor.Extract(out.Text)
}
