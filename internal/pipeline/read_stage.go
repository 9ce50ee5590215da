package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/os-report/internal/document"
	"github.com/joseph-ayodele/os-report/internal/signature"
)

// SignatureDetector is the signature classifier as the read stage sees it.
type SignatureDetector interface {
	Detect(doc document.Document) signature.Evidence
}

// ReadOutcome is what the read stage keeps of a document once it is closed.
type ReadOutcome struct {
	Text     string
	Pages    int
	Evidence signature.Evidence
	Warnings []string
	Duration time.Duration
}

// ReadStage opens one document, collects the text of its first pages and
// classifies its signature. The handle is released before Run returns.
type ReadStage struct {
	Reader       document.Reader
	Signatures   SignatureDetector
	MaxTextPages int
	Logger       *slog.Logger
}

func NewReadStage(reader document.Reader, sigs SignatureDetector, maxTextPages int, logger *slog.Logger) *ReadStage {
	if logger == nil {
		logger = slog.Default()
	}
	if maxTextPages <= 0 {
		maxTextPages = 3
	}
	return &ReadStage{Reader: reader, Signatures: sigs, MaxTextPages: maxTextPages, Logger: logger}
}

// Run reads path. Any error means the document could not be read at all.
func (s *ReadStage) Run(ctx context.Context, path string) (ReadOutcome, error) {
	start := time.Now()
	doc, err := s.Reader.Open(ctx, path)
	if err != nil {
		return ReadOutcome{Duration: time.Since(start)}, err
	}
	out := ReadOutcome{
		Text:     doc.Text(s.MaxTextPages),
		Pages:    len(doc.Pages),
		Evidence: s.Signatures.Detect(doc),
		Warnings: doc.Warnings,
		Duration: time.Since(start),
	}
	return out, nil
}
