// Package ledger derives aggregate figures from a list of movements.
// Nothing here is persisted; summaries are recomputed from the current list.
package ledger

import (
	"cmp"
	"slices"

	"github.com/ebenezer-app/ebenezer/internal/movement"
)

// Summary holds the totals of a movement list. All amounts are in cents.
type Summary struct {
	TotalEntrate int64
	TotalUscite  int64
	Saldo        int64
	// Categories sums expenses only, and has an entry only for categories that occur.
	Categories map[movement.Category]int64
}

// CategoryTotal is one entry of Summary.SortedCategories.
type CategoryTotal struct {
	Category movement.Category
	Amount   int64
}

// Summarize computes totals and per-category expense sums in a single pass.
func Summarize(ms []*movement.Movement) Summary {
	s := Summary{Categories: make(map[movement.Category]int64)}

	for _, m := range ms {
		switch m.Type {
		case movement.TypeEntrata:
			s.TotalEntrate += m.Amount
		case movement.TypeUscita:
			s.TotalUscite += m.Amount
			s.Categories[m.Category] += m.Amount
		}
	}

	s.Saldo = s.TotalEntrate - s.TotalUscite

	return s
}

// SortedCategories returns the category sums by amount descending, ties broken by key.
func (s Summary) SortedCategories() []CategoryTotal {
	out := make([]CategoryTotal, 0, len(s.Categories))
	for c, amount := range s.Categories {
		out = append(out, CategoryTotal{Category: c, Amount: amount})
	}

	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.Amount, a.Amount); c != 0 {
			return c
		}

		return cmp.Compare(a.Category, b.Category)
	})

	return out
}

// CategoryShare returns the rounded percentage of total expenses spent in c.
func (s Summary) CategoryShare(c movement.Category) int {
	if s.TotalUscite == 0 {
		return 0
	}

	return int((s.Categories[c]*100 + s.TotalUscite/2) / s.TotalUscite)
}
