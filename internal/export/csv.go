package export

import (
	"bytes"
	"strings"

	"github.com/ebenezer-app/ebenezer/internal/encoding"
	"github.com/ebenezer-app/ebenezer/internal/ledger"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

// Delimiter separates CSV fields. A semicolon keeps amounts and quoted text
// unambiguous in spreadsheets configured for European locales.
const Delimiter = ';'

// Columns is the header of both the CSV and the PDF table.
var Columns = []string{"Data", "Tipo", "Settore", "Pagamento", "Descrizione", "Categoria", "Importo"}

// Summary row labels, shared with the importer so it can skip them.
const (
	LabelTotaleEntrate = "Totale Entrate"
	LabelTotaleUscite  = "Totale Uscite"
	LabelSaldo         = "Saldo"
)

// CSV renders movements and their totals as a BOM-prefixed, semicolon-delimited document
// where every field is quoted.
func CSV(ms []*movement.Movement, s ledger.Summary) ([]byte, error) {
	var buf bytes.Buffer

	writeRecord(&buf, Columns)

	for _, m := range ms {
		writeRecord(&buf, Row(m))
	}

	buf.WriteByte('\n')

	for _, line := range summaryLines(s) {
		record := make([]string, len(Columns))
		record[0] = line.label
		record[len(record)-1] = movement.FormatAmount(line.amount)
		writeRecord(&buf, record)
	}

	return encoding.WithBOM(buf.Bytes())
}

// Row renders one movement in column order.
func Row(m *movement.Movement) []string {
	return []string{
		FormatDate(m.Date),
		m.Type.Label(),
		m.Sector.Label(),
		m.PaymentMethod.Label(),
		m.Description,
		m.Category.Label(),
		movement.FormatAmount(m.Amount),
	}
}

func writeRecord(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(Delimiter)
		}

		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}

	buf.WriteByte('\n')
}

type summaryLine struct {
	label  string
	amount int64
	bold   bool
}

func summaryLines(s ledger.Summary) []summaryLine {
	return []summaryLine{
		{label: LabelTotaleEntrate, amount: s.TotalEntrate},
		{label: LabelTotaleUscite, amount: s.TotalUscite},
		{label: LabelSaldo, amount: s.Saldo, bold: true},
	}
}
