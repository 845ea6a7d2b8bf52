package movement

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every rendered amount.
const CurrencySymbol = "€"

var ErrInvalidAmount = errors.New("importo non valido")

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// ParseAmount parses a user-entered amount into cents.
// It accepts "12.34", "12,34", "€12.34" and European thousands grouping such as "1.234,56".
// Zero, negative, sub-cent and exponent forms are rejected, as is anything that
// does not fit in int64 cents.
func ParseAmount(s string) (int64, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), CurrencySymbol))
	if clean == "" || strings.ContainsAny(clean, "eE") {
		return 0, ErrInvalidAmount
	}

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	cents := d.Mul(hundred)
	if !cents.IsInteger() || !cents.IsPositive() || cents.GreaterThan(maxCents) {
		return 0, ErrInvalidAmount
	}

	return cents.IntPart(), nil
}

// FormatAmount renders cents as "€12.34". Negative values render as "€-12.34".
func FormatAmount(cents int64) string {
	return CurrencySymbol + decimal.New(cents, -2).StringFixed(2)
}
