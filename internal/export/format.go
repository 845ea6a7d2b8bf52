package export

import (
	"fmt"
	"time"
)

// DateLayout is the Italian day/month/year rendering used in exported rows.
const DateLayout = "02/01/2006"

// FormatDate renders a movement date as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Filename returns the download name for an export taken at now, e.g.
// "ebenezer_movimenti_2026-10-14.csv".
func Filename(f Format, now time.Time) string {
	return fmt.Sprintf("ebenezer_movimenti_%s.%s", now.Format(time.DateOnly), f)
}
