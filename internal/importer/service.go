package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ebenezer-app/ebenezer/internal/importer/ebenezer"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

var ErrEmptyImport = errors.New("nessun movimento da importare")

type Service struct {
	movements *movement.Service
	importers map[Source]Importer
}

func NewService(movements *movement.Service) *Service {
	return &Service{
		movements: movements,
		importers: map[Source]Importer{
			SourceEbenezer: ebenezer.NewParser(),
		},
	}
}

// Parse decodes r with the importer registered for src without storing anything.
func (s *Service) Parse(src Source, r io.Reader) ([]movement.CreateParams, error) {
	imp, ok := s.importers[src]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %s", src)
	}

	return imp.Parse(r)
}

// Import parses r and stores every movement for userID in a single batch.
// Either all rows are stored or none is.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, src Source, r io.Reader) ([]*movement.Movement, error) {
	params, err := s.Parse(src, r)
	if err != nil {
		return nil, err
	}

	if len(params) == 0 {
		return nil, ErrEmptyImport
	}

	ms, err := s.movements.CreateBatch(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "movements imported", "user_id", userID, "source", src, "count", len(ms))

	return ms, nil
}
