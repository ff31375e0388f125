package clock

import (
	"strconv"
	"time"
)

// Format renders t as "January 2nd 2006 - 3:04:05 pm".
func Format(t time.Time) string {
	day := t.Day()
	return t.Format("January ") + strconv.Itoa(day) + ordinal(day) + t.Format(" 2006 - 3:04:05 pm")
}

func ordinal(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
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
