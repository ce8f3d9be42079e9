package forecast

import (
	"strings"
	"time"
)

var relativeDays = map[string]int{
	"today":    0,
	"now":      0,
	"tonight":  0,
	"thisday":  0,
	"tomorrow": 1,
	"nextday":  1,
}

// Monday is 0.
var weekdayIndex = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

// CivilDate drops the clock and zone of t, keeping its calendar date as
// midnight UTC.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ResolveDate maps a date keyword to a calendar day relative to today.
// An empty or unrecognized keyword means today. A weekday means the next
// such day, or today when today is that weekday. An ISO "2006-01-02" date is
// taken as is.
func ResolveDate(keyword string, today time.Time) time.Time {
	base := CivilDate(today)
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return base
	}

	if n, ok := relativeDays[kw]; ok {
		return base.AddDate(0, 0, n)
	}

	if target, ok := weekdayIndex[kw]; ok {
		cur := (int(base.Weekday()) + 6) % 7
		return base.AddDate(0, 0, ((target-cur)%7+7)%7)
	}

	if d, err := time.Parse(time.DateOnly, kw); err == nil {
		return d
	}
	return base
}

// ClosestDay returns the index of the day dated target, or else the index
// with the fewest days between it and target. Ties go to the earlier index.
// days must not be empty.
func ClosestDay(days []Day, target time.Time) int {
	target = CivilDate(target)
	best, bestDist := 0, -1
	for i, d := range days {
		dist := daysBetween(CivilDate(d.Date), target)
		if dist == 0 {
			return i
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func daysBetween(a, b time.Time) int {
	n := int(a.Sub(b).Hours() / 24)
	if n < 0 {
		n = -n
	}
	return n
}
