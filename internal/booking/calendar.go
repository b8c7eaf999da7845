package booking

import (
	"time"
)

// DateLayout is the format of State.Date.
const DateLayout = "2006-01-02"

// Month is the month displayed by the date step.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Add moves m by delta months in either direction.
func (m Month) Add(delta int) Month {
	return MonthOf(m.first().AddDate(0, delta, 0))
}

// Days returns the number of days in m.
func (m Month) Days() int {
	return m.first().AddDate(0, 1, -1).Day()
}

// Day returns the date of day d in m.
func (m Month) Day(d int) (time.Time, bool) {
	if d < 1 || d > m.Days() {
		return time.Time{}, false
	}
	return time.Date(m.Year, m.Month, d, 0, 0, 0, 0, time.UTC), true
}

func (m Month) String() string {
	return m.first().Format("January 2006")
}

func (m Month) first() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// CalendarDay is one cell of the month grid. Blank padding cells have Day 0.
type CalendarDay struct {
	Day   int
	Past  bool
	Today bool
}

// Week is a Monday-first row of seven cells.
type Week [7]CalendarDay

// Calendar lays m out as Monday-first weeks. Days before now are marked past
// and cannot be picked.
func Calendar(m Month, now time.Time) []Week {
	start := today(now)
	offset := (int(m.first().Weekday()) + 6) % 7

	var weeks []Week
	var w Week
	col := offset
	for d := 1; d <= m.Days(); d++ {
		date, _ := m.Day(d)
		w[col] = CalendarDay{
			Day:   d,
			Past:  date.Before(start),
			Today: date.Equal(start),
		}
		col++
		if col == 7 {
			weeks = append(weeks, w)
			w = Week{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, w)
	}
	return weeks
}
