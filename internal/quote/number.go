package quote

import (
	"fmt"
	"time"
)

// Number derives the quote number for a document generated at now. The
// date is taken in UTC.
// The sequence suffix is fixed, so two documents issued on the same day
// share a number.
func Number(now time.Time) string {
	return fmt.Sprintf("Q%s-%03d", now.UTC().Format("20060102"), 1)
}
