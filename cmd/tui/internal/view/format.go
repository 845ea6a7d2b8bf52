package view

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ebenezer-app/ebenezer/internal/export"
	"github.com/ebenezer-app/ebenezer/internal/ledger"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

const dbTimeout = 5 * time.Second

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// ParseDate reads an optional DD/MM/YYYY date. Empty input means today.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	return time.Parse(export.DateLayout, s)
}

const barWidth = 20

// CategoryBar renders the share of expenses spent on one category, e.g.
// "Affitto      ██████░░░░  61%  €30.50".
func CategoryBar(s ledger.Summary, c ledger.CategoryTotal, width int) string {
	share := s.CategoryShare(c.Category)

	filled := share * width / 100
	if filled == 0 && c.Amount > 0 {
		filled = 1
	}

	var b strings.Builder
	b.WriteString(padRight(c.Category.Label(), 14))
	b.WriteString(strings.Repeat("█", filled))
	b.WriteString(strings.Repeat("░", width-filled))
	b.WriteString(" ")
	b.WriteString(padLeft(strconv.Itoa(share)+"%", 4))
	b.WriteString("  ")
	b.WriteString(movement.FormatAmount(c.Amount))

	return b.String()
}

func padRight(s string, n int) string {
	if l := len([]rune(s)); l < n {
		return s + strings.Repeat(" ", n-l)
	}

	return s
}

func padLeft(s string, n int) string {
	if l := len([]rune(s)); l < n {
		return strings.Repeat(" ", n-l) + s
	}

	return s
}
