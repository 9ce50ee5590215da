package signature

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/joseph-ayodele/os-report/internal/document"
)

// Evidence names the signal that marked a document as signed.
type Evidence int

const (
	EvidenceNone Evidence = iota
	EvidenceText
	EvidenceAnnotation
	EvidenceVectorCurve
)

func (e Evidence) String() string {
	switch e {
	case EvidenceText:
		return "text"
	case EvidenceAnnotation:
		return "annotation"
	case EvidenceVectorCurve:
		return "vector_curve"
	}
	return "none"
}

// Config lists the signals that count as a signature.
type Config struct {
	Keywords        []string `json:"keywords"`
	AnnotationTypes []string `json:"annotation_types"`
}

// DefaultConfig covers tablet pens, e-signature vendors and ICP-Brasil certificates.
func DefaultConfig() Config {
	return Config{
		Keywords:        []string{"docusign", "assinado digitalmente", "signed by", "assinatura digital", "icp-brasil"},
		AnnotationTypes: []string{"Ink", "Stamp", "Widget"},
	}
}

// Classifier decides whether a document carries a signature.
type Classifier struct {
	keywords []string
	annots   map[string]struct{}
	hasCurve func(document.Drawing) bool
	logger   *slog.Logger
}

func NewClassifier(cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Classifier{
		annots:   make(map[string]struct{}, len(cfg.AnnotationTypes)),
		hasCurve: document.Drawing.HasCurve,
		logger:   logger,
	}
	lower := cases.Lower(language.BrazilianPortuguese)
	for _, k := range cfg.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			c.keywords = append(c.keywords, lower.String(k))
		}
	}
	for _, a := range cfg.AnnotationTypes {
		c.annots[a] = struct{}{}
	}
	return c
}

// Classify reports whether any page holds signature evidence.
func (c *Classifier) Classify(doc document.Document) bool {
	return c.Detect(doc) != EvidenceNone
}

// Detect returns the first signal found. The text pass runs over every page
// before any visual check; visuals are then checked page by page,
// annotations before drawings. A panic while inspecting the document
// yields EvidenceNone.
func (c *Classifier) Detect(doc document.Document) (ev Evidence) {
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Warn("signature classification failed", "path", doc.Path, "panic", rec)
			ev = EvidenceNone
		}
	}()

	if len(c.keywords) > 0 {
		lower := cases.Lower(language.BrazilianPortuguese)
		for _, p := range doc.Pages {
			text := lower.String(p.Text)
			for _, k := range c.keywords {
				if strings.Contains(text, k) {
					return EvidenceText
				}
			}
		}
	}

	for _, p := range doc.Pages {
		for _, a := range p.Annotations {
			if _, ok := c.annots[a]; ok {
				return EvidenceAnnotation
			}
		}
		for _, d := range p.Drawings {
			if c.hasCurve(d) {
				return EvidenceVectorCurve
			}
		}
	}
	return EvidenceNone
}
