package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/ebenezer-app/ebenezer/internal/ledger"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

const (
	pdfTitle  = "Ebenezer - Movimenti"
	pdfFont   = "Helvetica"
	pdfMargin = 15.0
	rowHeight = 7.0
)

// columnWidths are fractions of the content width, in Columns order. They sum to 1.
var columnWidths = []float64{0.12, 0.10, 0.13, 0.12, 0.27, 0.13, 0.13}

// PDF renders movements and their totals as an A4 table followed by a summary block.
// now is printed as the export date and pinned as document metadata, so identical
// inputs produce identical bytes.
func PDF(ms []*movement.Movement, s ledger.Summary, now time.Time) ([]byte, error) {
	doc := renderPDF(ms, s, now)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	return buf.Bytes(), nil
}

type pdfWriter struct {
	doc    *fpdf.Fpdf
	tr     func(string) string
	widths []float64
}

func renderPDF(ms []*movement.Movement, s ledger.Summary, now time.Time) *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(now)
	doc.SetModificationDate(now)
	doc.SetTitle(pdfTitle, true)
	doc.SetCreator("Ebenezer", true)

	pageW, _ := doc.GetPageSize()
	contentW := pageW - 2*pdfMargin

	w := &pdfWriter{
		doc:    doc,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
		widths: make([]float64, len(columnWidths)),
	}
	for i, f := range columnWidths {
		w.widths[i] = contentW * f
	}

	doc.AddPage()

	doc.SetFont(pdfFont, "B", 16)
	doc.CellFormat(contentW, 10, w.tr(pdfTitle), "", 1, "L", false, 0, "")
	doc.SetFont(pdfFont, "", 10)
	doc.CellFormat(contentW, 6, w.tr("Esportato il "+FormatDate(now)), "", 1, "L", false, 0, "")
	doc.Ln(4)

	w.header()

	doc.SetFont(pdfFont, "", 9)

	for _, m := range ms {
		if w.needsBreak(rowHeight) {
			doc.AddPage()
			w.header()
			doc.SetFont(pdfFont, "", 9)
		}

		w.row(Row(m))
	}

	w.summary(s, contentW)

	return doc
}

func (w *pdfWriter) header() {
	w.doc.SetFont(pdfFont, "B", 9)
	w.doc.SetFillColor(230, 230, 230)

	for i, col := range Columns {
		w.doc.CellFormat(w.widths[i], rowHeight, w.tr(col), "1", 0, align(i), true, 0, "")
	}

	w.doc.Ln(-1)
}

func (w *pdfWriter) row(fields []string) {
	for i, f := range fields {
		text := w.fit(w.tr(f), w.widths[i]-2)
		w.doc.CellFormat(w.widths[i], rowHeight, text, "1", 0, align(i), false, 0, "")
	}

	w.doc.Ln(-1)
}

func (w *pdfWriter) summary(s ledger.Summary, contentW float64) {
	if w.needsBreak(rowHeight * 5) {
		w.doc.AddPage()
	}

	w.doc.Ln(6)
	w.doc.SetFont(pdfFont, "B", 12)
	w.doc.CellFormat(contentW, 8, "Riepilogo", "", 1, "L", false, 0, "")

	for _, line := range summaryLines(s) {
		style := ""
		if line.bold {
			style = "B"
		}

		w.doc.SetFont(pdfFont, style, 10)
		text := fmt.Sprintf("%s: %s", line.label, movement.FormatAmount(line.amount))
		w.doc.CellFormat(contentW, 6, w.tr(text), "", 1, "L", false, 0, "")
	}
}

func (w *pdfWriter) needsBreak(h float64) bool {
	_, pageH := w.doc.GetPageSize()
	_, _, _, bottom := w.doc.GetMargins()

	return w.doc.GetY()+h > pageH-bottom
}

// fit shortens text with an ellipsis until it fits in width.
// text is already translated to the single-byte font encoding, so trimming bytes is safe.
func (w *pdfWriter) fit(text string, width float64) string {
	if w.doc.GetStringWidth(text) <= width {
		return text
	}

	for len(text) > 0 && w.doc.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}

	return text + "..."
}

func align(col int) string {
	if col == len(Columns)-1 {
		return "R"
	}

	return "L"
}
