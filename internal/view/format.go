package view

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five markup-significant characters. Templates escape
// on their own; use this for text written into markup by hand.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02")
}

// NextReviewLabel describes when a card is due relative to now, counting in
// whole days rounded up.
func NextReviewLabel(next *time.Time, now time.Time) string {
	if next == nil {
		return "today"
	}
	days := int(math.Ceil(next.Sub(now).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return "overdue"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}
