package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebenezer-app/ebenezer/internal/ledger"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

var exportedAt = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func pdfMovements(n int) []*movement.Movement {
	ms := make([]*movement.Movement, n)
	for i := range ms {
		ms[i] = &movement.Movement{
			Type:          movement.TypeUscita,
			Sector:        movement.SectorBar,
			PaymentMethod: movement.PaymentSumup,
			Category:      movement.CategoryForniture,
			Description:   fmt.Sprintf("Caffè e cornetti, ordine numero %d con descrizione molto lunga", i),
			Amount:        int64(100 + i),
			Date:          time.Date(2026, 1, 1+i%28, 0, 0, 0, 0, time.UTC),
		}
	}

	return ms
}

// contentStream renders without compression so text operators can be inspected.
func contentStream(t *testing.T, ms []*movement.Movement) (string, int) {
	t.Helper()

	doc := renderPDF(ms, ledger.Summarize(ms), exportedAt)
	doc.SetCompression(false)

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))

	return buf.String(), doc.PageCount()
}

func TestPDF_Header(t *testing.T) {
	ms := pdfMovements(3)

	out, err := PDF(ms, ledger.Summarize(ms), exportedAt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPDF_Deterministic(t *testing.T) {
	ms := pdfMovements(5)
	sum := ledger.Summarize(ms)

	a, err := PDF(ms, sum, exportedAt)
	require.NoError(t, err)

	b, err := PDF(ms, sum, exportedAt)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPDF_Empty(t *testing.T) {
	out, err := PDF(nil, ledger.Summarize(nil), exportedAt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.Equal(t, 1, renderPDF(nil, ledger.Summarize(nil), exportedAt).PageCount())
}

func TestPDF_EmptyContent(t *testing.T) {
	out, pages := contentStream(t, nil)

	assert.Equal(t, 1, pages)
	assert.Contains(t, out, "(Ebenezer - Movimenti)")
	assert.Contains(t, out, "(Esportato il 14/10/2026)")

	for _, col := range Columns {
		assert.Equal(t, 1, strings.Count(out, "("+col+")"), col)
	}

	assert.Equal(t, 1, strings.Count(out, "(Riepilogo)"))
	// "€" is 0x80 in the cp1252 font encoding.
	assert.Contains(t, out, "(Totale Entrate: \x800.00)")
	assert.Contains(t, out, "(Totale Uscite: \x800.00)")
	assert.Contains(t, out, "(Saldo: \x800.00)")
}

func TestPDF_SummaryTotals(t *testing.T) {
	ms := []*movement.Movement{
		{Type: movement.TypeEntrata, Amount: 10000, Category: movement.CategoryDonazioni, Description: "Offerta", Date: exportedAt},
		{Type: movement.TypeUscita, Amount: 3050, Category: movement.CategoryAffitto, Description: "Affitto", Date: exportedAt},
	}

	out, _ := contentStream(t, ms)

	assert.Contains(t, out, "(Totale Entrate: \x80100.00)")
	assert.Contains(t, out, "(Totale Uscite: \x8030.50)")
	assert.Contains(t, out, "(Saldo: \x8069.50)")
	assert.Contains(t, out, "(\x8030.50)")
}

func TestPDF_PaginatesLongLedgers(t *testing.T) {
	ms := pdfMovements(120)

	doc := renderPDF(ms, ledger.Summarize(ms), exportedAt)
	require.NoError(t, doc.Error())
	assert.Greater(t, doc.PageCount(), 1)

	out, pages := contentStream(t, ms)

	// The header repeats on every page holding rows; the summary may sit alone on the last one.
	headers := strings.Count(out, "(Descrizione)")
	assert.Greater(t, headers, 1)
	assert.GreaterOrEqual(t, headers, pages-1)
	assert.LessOrEqual(t, headers, pages)
	assert.Equal(t, headers, strings.Count(out, "(Importo)"))
	assert.Equal(t, 1, strings.Count(out, "(Riepilogo)"))
}

func TestFit(t *testing.T) {
	doc := renderPDF(nil, ledger.Summarize(nil), exportedAt)
	w := &pdfWriter{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	assert.Equal(t, "breve", w.fit("breve", 50))

	long := w.fit("una descrizione decisamente troppo lunga per la colonna", 20)
	assert.True(t, len(long) < len("una descrizione decisamente troppo lunga per la colonna"))
	assert.LessOrEqual(t, doc.GetStringWidth(long), 20.0)
	assert.Contains(t, long, "...")
}
