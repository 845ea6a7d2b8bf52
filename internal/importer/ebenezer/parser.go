package ebenezer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/ebenezer-app/ebenezer/internal/encoding"
	"github.com/ebenezer-app/ebenezer/internal/export"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

var ErrNoHeader = errors.New("intestazione non trovata: il file non è un'esportazione Ebenezer")

// Parser reads CSV files produced by the Ebenezer exporter and turns every
// data row back into create params.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]movement.CreateParams, error) {
	utf8r, err := enc.Decoder(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = export.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(rows)
	if !ok {
		return nil, ErrNoHeader
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

type colIndex map[string]int

// findHeader returns the column positions of the first row that names every export column.
func findHeader(rows [][]string) (colIndex, int, bool) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		if hasAll(cols) {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func hasAll(cols colIndex) bool {
	for _, name := range export.Columns {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows converts data rows. headerRowNum is the 0-based index of the header,
// used to report 1-based line numbers.
func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]movement.CreateParams, error) {
	var params []movement.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		if skip(row) {
			continue
		}

		p, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		params = append(params, p)
	}

	return params, nil
}

func parseRow(cols colIndex, row []string) (movement.CreateParams, error) {
	get := func(name string) string {
		return cellValue(row, cols[name])
	}

	date, err := time.Parse(export.DateLayout, get("Data"))
	if err != nil {
		return movement.CreateParams{}, fmt.Errorf("parse date %q: %w", get("Data"), err)
	}

	amount, err := movement.ParseAmount(get("Importo"))
	if err != nil {
		return movement.CreateParams{}, fmt.Errorf("parse amount %q: %w", get("Importo"), err)
	}

	return movement.CreateParams{
		Type:          movement.ParseType(get("Tipo")),
		Sector:        movement.ParseSector(get("Settore")),
		PaymentMethod: movement.ParsePaymentMethod(get("Pagamento")),
		Category:      movement.ParseCategory(get("Categoria")),
		Description:   get("Descrizione"),
		Amount:        amount,
		Date:          date,
	}, nil
}

// skip reports blank separator lines and the trailing summary rows.
func skip(row []string) bool {
	first := cellValue(row, 0)

	switch first {
	case export.LabelTotaleEntrate, export.LabelTotaleUscite, export.LabelSaldo:
		return true
	}

	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
