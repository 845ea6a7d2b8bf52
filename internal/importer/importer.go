package importer

import (
	"io"

	"github.com/ebenezer-app/ebenezer/internal/movement"
)

// Source identifies the program that produced an import file.
type Source string

const (
	SourceEbenezer Source = "ebenezer"
)

type Importer interface {
	Parse(r io.Reader) ([]movement.CreateParams, error)
}
