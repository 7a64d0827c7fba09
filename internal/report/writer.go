package report

import (
	"bytes"
	"fmt"
	"time"

	"audit-checklist/internal/apperr"

	"github.com/go-pdf/fpdf"
)

// A4 portrait, in points.
const (
	margin       = 50.0
	bottomMargin = 60.0
	// PageBreakY is the cursor position past which the next block starts on
	// a new page.
	PageBreakY = 700.0

	lineHeight = 14.0
	author     = "Sistema de Auditoria com IA"
)

type writer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newWriter(title, subject string, generatedAt time.Time) *writer {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(title, true)
	pdf.SetAuthor(author, true)
	pdf.SetSubject(subject, true)
	pdf.AliasNbPages("{nb}")

	w := &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-40)
		pdf.SetFont("Helvetica", "", 8)
		w.color(black)
		footer := fmt.Sprintf("Relatório gerado pelo %s | Página %d de {nb}", author, pdf.PageNo())
		pdf.CellFormat(0, 10, w.tr(footer), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return w
}

func (w *writer) color(c rgb) {
	w.pdf.SetTextColor(c.r, c.g, c.b)
}

// breakIfNeeded applies the fixed pagination policy.
func (w *writer) breakIfNeeded() {
	if w.pdf.GetY() > PageBreakY {
		w.pdf.AddPage()
	}
}

func (w *writer) centered(text, style string, size float64) {
	w.pdf.SetFont("Helvetica", style, size)
	w.color(black)
	w.pdf.CellFormat(0, size+4, w.tr(text), "", 1, "C", false, 0, "")
}

func (w *writer) heading(text string, size float64) {
	w.breakIfNeeded()
	w.pdf.SetFont("Helvetica", "B", size)
	w.color(black)
	w.pdf.CellFormat(0, size+4, w.tr(text), "", 1, "L", false, 0, "")
	w.pdf.Ln(4)
}

func (w *writer) paragraph(text, style string, size float64, c rgb) {
	w.pdf.SetFont("Helvetica", style, size)
	w.color(c)
	w.pdf.MultiCell(0, size+3, w.tr(text), "", "L", false)
	w.color(black)
}

func (w *writer) indented(indent float64, text, style string, size float64) {
	w.pdf.SetX(margin + indent)
	w.pdf.SetFont("Helvetica", style, size)
	w.color(black)
	w.pdf.MultiCell(0, size+3, w.tr(text), "", "L", false)
}

func (w *writer) rule(x1, x2 float64, c rgb) {
	y := w.pdf.GetY()
	w.pdf.SetDrawColor(c.r, c.g, c.b)
	w.pdf.Line(x1, y, x2, y)
	w.pdf.SetDrawColor(0, 0, 0)
}

func (w *writer) space(h float64) {
	w.pdf.Ln(h)
}

func (w *writer) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, apperr.Wrap(apperr.KindRenderFailure, err, "failed to render report")
	}
	return buf.Bytes(), nil
}
