package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Span is a coarse integer range picked from a pill. Open spans have no
// upper limit.
type Span struct {
	Min  int
	Max  int
	Open bool
}

// ParseSpan turns a pill token into a Span. Accepted forms are "min-max",
// "min+" and "min-max+" (the trailing plus opens the range). The empty token
// and "all" mean no span; so does anything unparseable.
func ParseSpan(token string) (*Span, bool) {
	token = strings.TrimSpace(token)
	if token == "" || token == All {
		return nil, false
	}

	open := strings.HasSuffix(token, "+")
	token = strings.TrimSuffix(token, "+")

	lowStr, highStr, hasHigh := strings.Cut(token, "-")
	low, err := strconv.Atoi(strings.TrimSpace(lowStr))
	if err != nil {
		return nil, false
	}

	span := &Span{Min: low, Max: low, Open: open}
	if hasHigh {
		high, err := strconv.Atoi(strings.TrimSpace(highStr))
		if err != nil {
			return nil, false
		}
		span.Max = high
	}
	return span, true
}

// Overlaps reports whether [lo, hi] shares at least one value with s.
func (s Span) Overlaps(lo, hi int) bool {
	if hi < s.Min {
		return false
	}
	if !s.Open && lo > s.Max {
		return false
	}
	return true
}

// Contains reports whether v lies inside s, bounds included.
func (s Span) Contains(v int) bool {
	return s.Overlaps(v, v)
}

func (s Span) String() string {
	switch {
	case s.Open:
		return fmt.Sprintf("%d+", s.Min)
	case s.Min == s.Max:
		return strconv.Itoa(s.Min)
	default:
		return fmt.Sprintf("%d-%d", s.Min, s.Max)
	}
}

// Pill choice tokens offered by the UI. The first entry is always "all".
var (
	AgePills      = []string{All, "6", "8", "10", "12", "14", "16", "18"}
	PlayersPills  = []string{All, "1-2", "2-4", "3-4", "5-6", "6+"}
	DurationPills = []string{All, "0-30", "30-60", "60-90", "90-120", "120+"}
)

// ParseAge turns an age pill token into a minimum age.
func ParseAge(token string) *int {
	token = strings.TrimSpace(token)
	if token == "" || token == All {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(token, "+"))
	if err != nil {
		return nil
	}
	return &n
}
