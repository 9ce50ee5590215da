package document

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// lineTolerance is how far (in points) two glyphs' baselines may differ and
// still count as the same line.
const lineTolerance = 1.0

// PDFReader loads page text with ledongthuc/pdf and annotations plus vector
// drawings with pdfcpu. Only a text failure within the first textPages pages
// fails the document. Later pages and visuals degrade to a warning.
type PDFReader struct {
	textPages int
	logger    *slog.Logger
}

// NewPDFReader returns a reader whose first textPages pages must yield text
// (0 means every page).
func NewPDFReader(textPages int, logger *slog.Logger) *PDFReader {
	if logger == nil {
		logger = slog.Default()
	}
	if textPages < 0 {
		textPages = 0
	}
	return &PDFReader{textPages: textPages, logger: logger}
}

// Open reads path and returns a fully loaded Document. No handle stays open.
func (r *PDFReader) Open(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	start := time.Now()

	texts, warnings, err := readPageTexts(path, r.textPages)
	if err != nil {
		r.logger.Debug("pdf text read failed", "path", path, "error", err)
		return Document{}, err
	}

	doc := Document{Path: path, Pages: make([]Page, len(texts)), Warnings: warnings}
	for i, t := range texts {
		doc.Pages[i] = Page{Number: i + 1, Text: NormalizeText(t)}
	}
	for _, w := range warnings {
		r.logger.Warn("pdf page text unreadable; keyword evidence reduced", "path", path, "warning", w)
	}

	if err := readVisuals(path, doc.Pages); err != nil {
		r.logger.Warn("pdf visual read failed; signature evidence limited to text", "path", path, "error", err)
		doc.Warnings = append(doc.Warnings, fmt.Sprintf("visuals: %v", err))
	}

	r.logger.Debug("pdf loaded",
		"path", path,
		"pages", len(doc.Pages),
		"warnings", len(doc.Warnings),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return doc, nil
}

// readPageTexts returns the text of every page, in page order. A page past
// textPages that cannot be read gets empty text and a warning.
func readPageTexts(path string, textPages int) (texts, warnings []string, err error) {
	// ledongthuc/pdf panics on some malformed cross-reference tables.
	defer func() {
		if rec := recover(); rec != nil {
			texts, warnings = nil, nil
			err = fmt.Errorf("pdf parse: %v", rec)
		}
	}()

	f, rd, err := pdf.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	n := rd.NumPage()
	texts = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		t, err := pageText(rd.Page(i))
		if err != nil {
			if textPages == 0 || i <= textPages {
				return nil, nil, fmt.Errorf("page %d: %w", i, err)
			}
			warnings = append(warnings, fmt.Sprintf("page %d text: %v", i, err))
			t = ""
		}
		texts = append(texts, t)
	}
	return texts, warnings, nil
}

// pageText lays out the page glyphs in content order, starting a new line
// whenever the baseline moves.
func pageText(p pdf.Page) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%v", rec)
		}
	}()
	if p.V.IsNull() {
		return "", nil
	}

	var b strings.Builder
	lastY := 0.0
	for i, g := range p.Content().Text {
		if i > 0 && math.Abs(g.Y-lastY) > lineTolerance {
			b.WriteByte('\n')
		}
		b.WriteString(g.S)
		lastY = g.Y
	}
	return b.String(), nil
}

// readVisuals fills Annotations and Drawings of pages using pdfcpu.
func readVisuals(path string, pages []Page) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdfcpu: %v", rec)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return fmt.Errorf("pdfcpu read: %w", err)
	}

	for i := range pages {
		pageNr := i + 1
		if pageNr > pctx.PageCount {
			break
		}
		annots, err := pageAnnotations(pctx, pageNr)
		if err != nil {
			return fmt.Errorf("page %d annotations: %w", pageNr, err)
		}
		pages[i].Annotations = annots
		pages[i].Drawings = pageDrawings(pctx, pageNr)
	}
	return nil
}

// pageAnnotations lists the /Subtype of every annotation on the page.
func pageAnnotations(pctx *model.Context, pageNr int) ([]string, error) {
	d, _, _, err := pctx.PageDict(pageNr, false)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	obj, found := d.Find("Annots")
	if !found || obj == nil {
		return nil, nil
	}
	arr, err := pctx.DereferenceArray(obj)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, o := range arr {
		ad, err := pctx.DereferenceDict(o)
		if err != nil || ad == nil {
			continue
		}
		if st := ad.NameEntry("Subtype"); st != nil {
			out = append(out, *st)
		}
	}
	return out, nil
}

func pageDrawings(pctx *model.Context, pageNr int) []Drawing {
	r, err := pdfcpu.ExtractPageContent(pctx, pageNr)
	if err != nil || r == nil {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return nil
	}
	return ParseDrawingsWithForms(data, pageForms(pctx, pageNr))
}

// pageForms returns the form resolver of the page resources, own or inherited.
func pageForms(pctx *model.Context, pageNr int) FormResolver {
	d, _, inh, err := pctx.PageDict(pageNr, false)
	if err != nil || d == nil {
		return nil
	}
	var res types.Dict
	if obj, found := d.Find("Resources"); found {
		res, _ = pctx.DereferenceDict(obj)
	}
	if res == nil && inh != nil {
		res = inh.Resources
	}
	if f := newXObjectForms(pctx, res); f != nil {
		return f
	}
	return nil
}

// xObjectForms resolves "Do" names against one /Resources dictionary.
type xObjectForms struct {
	pctx      *model.Context
	resources types.Dict
	xobjects  types.Dict
}

func newXObjectForms(pctx *model.Context, resources types.Dict) *xObjectForms {
	if resources == nil {
		return nil
	}
	obj, found := resources.Find("XObject")
	if !found {
		return nil
	}
	xo, err := pctx.DereferenceDict(obj)
	if err != nil || xo == nil {
		return nil
	}
	return &xObjectForms{pctx: pctx, resources: resources, xobjects: xo}
}

func (x *xObjectForms) Form(name string) ([]byte, FormResolver, bool) {
	obj, found := x.xobjects.Find(name)
	if !found || obj == nil {
		return nil, nil, false
	}
	sd, _, err := x.pctx.DereferenceStreamDict(obj)
	if err != nil || sd == nil {
		return nil, nil, false
	}
	if st := sd.Dict.Subtype(); st == nil || *st != "Form" {
		return nil, nil, false
	}
	if err := sd.Decode(); err != nil {
		return nil, nil, false
	}

	// A form without /Resources uses the resources it is painted with.
	var sub FormResolver
	if ro, found := sd.Dict.Find("Resources"); found {
		if rd, err := x.pctx.DereferenceDict(ro); err == nil && rd != nil {
			if f := newXObjectForms(x.pctx, rd); f != nil {
				sub = f
			}
		}
	} else {
		sub = x
	}
	return sd.Content, sub, true
}
