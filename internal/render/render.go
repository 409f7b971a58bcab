// Package render lays a ContentBundle out as a paginated PDF.
//
// Rendering is a single synchronous pass. Each call owns its own document
// buffer, so a Renderer is safe for concurrent use. Output is byte-identical
// for identical bundles: document dates come from the bundle, never the wall
// clock.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"draftgen/internal/model"
)

// ErrRenderFailure is returned when a bundle cannot be laid out within the
// fixed page constraints. Retrying with the same bundle fails again.
var ErrRenderFailure = errors.New("render failure")

const (
	expectedSections = 8
	expectedArticles = 6

	// DefaultMaxPages bounds the layout of a single draft.
	DefaultMaxPages = 50

	articlesHeading = "RUMUSAN PASAL-PASAL"
	footerNote      = "Catatan: Naskah ini merupakan draf awal dan masih memerlukan harmonisasi."
	creator         = "draftgen"

	dateLayout     = "02 January 2006"
	filenameLayout = "20060102_150405"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithMaxPages caps the number of pages a draft may occupy. The layout always
// starts a new page for the sections and for the articles, so any cap below
// three makes every Render fail with ErrRenderFailure. Non-positive values
// keep the default.
func WithMaxPages(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxPages = n
		}
	}
}

// Renderer produces PDF documents from content bundles.
type Renderer struct {
	maxPages int
}

// New returns a Renderer with the fixed A4 layout.
func New(opts ...Option) *Renderer {
	r := &Renderer{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays out b and returns the complete document, or an error wrapping
// ErrRenderFailure. No partial document is ever returned.
func (r *Renderer) Render(b *model.ContentBundle) (*model.RenderedDocument, error) {
	if err := checkBundle(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}

	w := newWriter(b, r.maxPages)
	w.cover(b)
	w.sections(b.Sections)
	w.articles(b.Articles)
	w.footer()

	data, pages, err := w.finish()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailure, err)
	}
	return &model.RenderedDocument{
		Bytes:       data,
		Filename:    FileName(b),
		ContentType: model.PDFContentType,
		Pages:       pages,
	}, nil
}

// FileName suggests a filesystem-safe name for the rendered bundle:
// draft_RUU_<category>_<YYYYMMDD_HHMMSS>.pdf.
func FileName(b *model.ContentBundle) string {
	name := fmt.Sprintf("draft_%s_%s_%s.pdf",
		model.DocumentToken, b.Category, b.Metadata.GeneratedAt.Format(filenameLayout))
	return strings.ReplaceAll(name, " ", "_")
}

func checkBundle(b *model.ContentBundle) error {
	if b == nil {
		return errors.New("nil bundle")
	}
	if len(b.Sections) != expectedSections {
		return fmt.Errorf("expected %d sections, got %d", expectedSections, len(b.Sections))
	}
	if len(b.Articles) != expectedArticles {
		return fmt.Errorf("expected %d articles, got %d", expectedArticles, len(b.Articles))
	}
	return nil
}

// writer wraps one fpdf document for the duration of a Render call.
type writer struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	maxPages int
	overflow bool
}

func newWriter(b *model.ContentBundle, maxPages int) *writer {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: A4Size.Width, Ht: A4Size.Height},
	})
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(true, Margin)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(b.Metadata.GeneratedAt)
	pdf.SetModificationDate(b.Metadata.GeneratedAt)
	pdf.SetTitle(b.Title, true)
	pdf.SetSubject(b.Metadata.GenerationID, true)
	pdf.SetCreator(creator, true)

	w := &writer{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		maxPages: maxPages,
	}
	pdf.SetAcceptPageBreakFunc(func() bool {
		if pdf.PageNo() >= w.maxPages {
			w.overflow = true
			return false
		}
		return true
	})
	pdf.AddPage()
	return w
}

func (w *writer) use(s Style, fontStyle string) {
	w.pdf.SetFont(fontFamily, fontStyle, s.Size)
	w.pdf.SetTextColor(s.Color[0], s.Color[1], s.Color[2])
}

func (w *writer) paragraph(s Style, text string) {
	if s.SpaceBefore > 0 {
		w.pdf.Ln(s.SpaceBefore)
	}
	w.use(s, s.fontStyle())
	w.pdf.MultiCell(0, s.Leading, w.tr(text), "", s.Align, false)
	if s.SpaceAfter > 0 {
		w.pdf.Ln(s.SpaceAfter)
	}
}

// emphasized writes one flowing line whose leading part is bold.
func (w *writer) emphasized(s Style, before, bold, after string) {
	if before != "" {
		w.use(s, "")
		w.pdf.Write(s.Leading, w.tr(before))
	}
	w.use(s, "B")
	w.pdf.Write(s.Leading, w.tr(bold))
	if after != "" {
		w.use(s, "")
		w.pdf.Write(s.Leading, w.tr(after))
	}
	w.pdf.Ln(s.Leading)
}

// newPage starts a forced page break unless that would exceed the page cap.
func (w *writer) newPage() {
	if w.pdf.PageNo() >= w.maxPages {
		w.overflow = true
		return
	}
	w.pdf.AddPage()
}

func (w *writer) space(h float64) {
	w.pdf.Ln(h)
}

func (w *writer) cover(b *model.ContentBundle) {
	w.paragraph(Heading, b.Title)
	w.space(6)
	w.emphasized(Body, "Sektor: ", b.Category, "")
	w.paragraph(Body, "Tanggal: "+b.Metadata.GeneratedAt.Format(dateLayout))
	w.paragraph(Meta, "ID Dokumen: "+b.Metadata.GenerationID)
	w.space(12)
	w.paragraph(Body, b.Metadata.Synopsis)
	w.newPage()
}

func (w *writer) sections(sections []model.Section) {
	for _, s := range sections {
		w.paragraph(Subheading, s.Title)
		for _, item := range s.Items {
			w.paragraph(Body, "• "+item)
		}
		w.space(8)
	}
	w.newPage()
}

func (w *writer) articles(articles []model.Article) {
	w.paragraph(Subheading, articlesHeading)
	for _, a := range articles {
		w.emphasized(Body, "", a.Number, " – "+a.Heading)
		for _, clause := range a.Clauses {
			w.paragraph(Body, "- "+clause)
		}
		w.space(6)
	}
}

func (w *writer) footer() {
	w.space(16)
	w.paragraph(Small, footerNote)
}

func (w *writer) finish() ([]byte, int, error) {
	if w.overflow || w.pdf.PageNo() > w.maxPages {
		return nil, 0, fmt.Errorf("content exceeds %d pages", w.maxPages)
	}
	if err := w.pdf.Error(); err != nil {
		return nil, 0, err
	}
	pages := w.pdf.PageNo()
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pages, nil
}
