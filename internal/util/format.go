package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder is shown for values the catalog does not know.
const Placeholder = "—"

// FormatDateLong formats a date string (YYYY-MM-DD) as "Saturday 5 April 2025".
func FormatDateLong(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return Placeholder
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday 2 January 2006")
}

// FormatRating formats a rating with one decimal, or "—" if nil.
func FormatRating(rating *float64) string {
	if rating == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*rating, 'f', 1, 64)
}

// FormatMinutes formats a playtime as "60 min".
func FormatMinutes(minutes *int) string {
	if minutes == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d min", *minutes)
}

// FormatRange formats an inclusive integer range as "2–4".
func FormatRange(lo, hi int) string {
	return fmt.Sprintf("%d–%d", lo, hi)
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
