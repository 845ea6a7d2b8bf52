package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ebenezer-app/ebenezer/internal/ledger"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

// Format is an export file format; its value doubles as the file extension.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

var ErrUnknownFormat = errors.New("formato di esportazione sconosciuto")

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	}

	return "application/octet-stream"
}

// Document is a rendered export ready to be written to disk or served.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Overview is a user's ledger together with its derived totals.
type Overview struct {
	Movements []*movement.Movement
	Summary   ledger.Summary
}

// Service renders the ledger of a user into exportable documents.
type Service struct {
	movements *movement.Service
}

// NewService creates a new export Service.
func NewService(movements *movement.Service) *Service {
	return &Service{movements: movements}
}

// Overview fetches the user's movements and summarizes them.
func (s *Service) Overview(ctx context.Context, userID uuid.UUID) (*Overview, error) {
	ms, err := s.movements.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}

	return &Overview{Movements: ms, Summary: ledger.Summarize(ms)}, nil
}

// Export renders the user's ledger in format f. now is the export moment and
// determines the filename and the export date printed in the document.
func (s *Service) Export(ctx context.Context, userID uuid.UUID, f Format, now time.Time) (*Document, error) {
	if f != FormatCSV && f != FormatPDF {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}

	ov, err := s.Overview(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := Render(f, ov.Movements, ov.Summary, now)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "ledger exported",
		"user_id", userID,
		"format", f,
		"movements", len(ov.Movements),
		"bytes", len(data))

	return &Document{
		Filename:    Filename(f, now),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

// Render serializes already-fetched movements in format f.
func Render(f Format, ms []*movement.Movement, sum ledger.Summary, now time.Time) ([]byte, error) {
	switch f {
	case FormatCSV:
		return CSV(ms, sum)
	case FormatPDF:
		return PDF(ms, sum, now)
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

// WriteFile stores doc under dir, creating dir when missing, and returns the file path.
func WriteFile(dir string, doc *Document) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}

	return path, nil
}
