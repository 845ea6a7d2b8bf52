// Package encoding handles the byte-level encoding of exported and re-imported ledger files.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// BOM is the UTF-8 byte order mark spreadsheet tools look for to pick UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const sniffLen = 4096

// WithBOM returns b encoded as UTF-8 with a leading byte order mark.
func WithBOM(b []byte) ([]byte, error) {
	out, err := unicode.UTF8BOM.NewEncoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("encode utf-8 bom: %w", err)
	}

	return out, nil
}

// Decoder returns a reader producing UTF-8 from r.
//
// A UTF-8 BOM is stripped and UTF-16 BOMs are decoded. Content that is already
// valid UTF-8 passes through. Anything else is guessed with chardet and falls
// back to Windows-1252, which is what spreadsheets re-save CSVs as on Windows.
func Decoder(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, BOM):
		_, _ = br.Discard(len(BOM))
		return br, nil
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return decodeWith(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return decodeWith(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	case utf8.Valid(trimPartialRune(head, len(head) == sniffLen)):
		return br, nil
	}

	enc := guess(head)
	if enc == nil {
		return br, nil
	}

	return decodeWith(br, enc), nil
}

// trimPartialRune drops a multibyte sequence cut off at the end of a truncated peek.
func trimPartialRune(head []byte, truncated bool) []byte {
	if !truncated {
		return head
	}

	for i := len(head) - 1; i >= 0 && i >= len(head)-utf8.UTFMax; i-- {
		if utf8.RuneStart(head[i]) {
			if !utf8.FullRune(head[i:]) {
				return head[:i]
			}

			break
		}
	}

	return head
}

// guess returns nil when the content should pass through as UTF-8.
func guess(head []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return charmap.Windows1252
	}

	switch result.Charset {
	case "UTF-8":
		return nil
	case "ISO-8859-9":
		return charmap.ISO8859_9
	}

	return charmap.Windows1252
}

func decodeWith(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}
