package compose

import (
	"fmt"
	"strconv"
	"time"
)

const wallClockLayout = "2006-01-02T15:04"

// HumanDate renders a date as "24th of November".
func HumanDate(d time.Time) string {
	day := d.Day()
	return fmt.Sprintf("%d%s of %s", day, ordinalSuffix(day), d.Month())
}

func ordinalSuffix(day int) string {
	if n := day % 100; n >= 11 && n <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// HumanTime renders a local wall clock time such as "2025-11-24T06:53" as
// "6:53 AM". Values that do not parse are returned unchanged.
func HumanTime(iso string) string {
	t, err := time.Parse(wallClockLayout, iso)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, iso); err != nil {
			return iso
		}
	}
	return t.Format("3:04 PM")
}

// num prints a reading with as many decimals as it carries: 11, 6.3.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
