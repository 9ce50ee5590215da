package document

import (
	"context"
	"strings"
)

// Reader opens a document and returns its pages fully loaded.
// Implementations must release every file handle before returning.
type Reader interface {
	Open(ctx context.Context, path string) (Document, error)
}

// PathOp is a path construction operator found in a page content stream.
type PathOp int

const (
	PathMove PathOp = iota
	PathLine
	PathCurve
	PathRect
	PathClose
)

func (op PathOp) String() string {
	switch op {
	case PathMove:
		return "move"
	case PathLine:
		return "line"
	case PathCurve:
		return "curve"
	case PathRect:
		return "rect"
	case PathClose:
		return "close"
	}
	return "unknown"
}

// Drawing is one painted path: the segments built before a paint operator.
type Drawing struct {
	Segments []PathOp
}

// HasCurve reports whether any segment is a Bézier curve.
func (d Drawing) HasCurve() bool {
	for _, s := range d.Segments {
		if s == PathCurve {
			return true
		}
	}
	return false
}

// Page is everything the extraction core sees of one page.
type Page struct {
	Number      int
	Text        string
	Annotations []string // annotation /Subtype names, e.g. "Ink"
	Drawings    []Drawing
}

// Document is a read-only, already-closed view of a source file.
type Document struct {
	Path  string
	Pages []Page
	// Warnings collects non-fatal read problems, e.g. unreadable annotations.
	Warnings []string
}

// Text concatenates the text of the first maxPages pages, each followed by a
// newline. maxPages <= 0 means every page.
func (d Document) Text(maxPages int) string {
	n := len(d.Pages)
	if maxPages > 0 && maxPages < n {
		n = maxPages
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(d.Pages[i].Text)
		b.WriteByte('\n')
	}
	return b.String()
}
