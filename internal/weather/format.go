package weather

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// NoCoordinates is displayed when latitude or longitude is missing.
	NoCoordinates = "No coordinates"
	// NotAvailable marks a slot without a matching forecast entry.
	NotAvailable = "N/A"
	// Blank is displayed when anything goes wrong while fetching or decoding.
	Blank = ""

	slotTolerance = 0.5 // hours either side of the target offset
)

var (
	errEmptySeries    = errors.New("forecast has no entries")
	errMissingDetails = errors.New("forecast entry has no instant details")
)

// Slots holds the three forecast entries shown on the page. A nil slot has no match.
type Slots struct {
	Now    *Entry
	Plus3h *Entry
	Plus6h *Entry
}

// SelectSlots treats the first entry as "now" and picks the first entries whose
// offset from it lies within half an hour of +3h and +6h.
func SelectSlots(series []Entry) (Slots, error) {
	if len(series) == 0 {
		return Slots{}, errEmptySeries
	}
	now := &series[0]
	return Slots{
		Now:    now,
		Plus3h: findOffset(series, now.Time, 3),
		Plus6h: findOffset(series, now.Time, 6),
	}, nil
}

func findOffset(series []Entry, now time.Time, hours float64) *Entry {
	for i := range series {
		diff := series[i].Time.Sub(now).Hours()
		if diff >= hours-slotTolerance && diff <= hours+slotTolerance {
			return &series[i]
		}
	}
	return nil
}

// Summarize renders "Now: .. | +3h: .. | +6h: ..".
func Summarize(series []Entry) (string, error) {
	slots, err := SelectSlots(series)
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, 3)
	for _, s := range []struct {
		label string
		entry *Entry
	}{
		{"Now", slots.Now},
		{"+3h", slots.Plus3h},
		{"+6h", slots.Plus6h},
	} {
		text, err := FormatEntry(s.entry)
		if err != nil {
			return "", err
		}
		parts = append(parts, s.label+": "+text)
	}
	return strings.Join(parts, " | "), nil
}

// FormatEntry renders a single slot, e.g. "12°C (feels like 10°C), partlycloudy day, Rain: 20%".
func FormatEntry(e *Entry) (string, error) {
	if e == nil {
		return NotAvailable, nil
	}
	if e.Data == nil || e.Data.Instant == nil || e.Data.Instant.Details == nil ||
		e.Data.Instant.Details.AirTemperature == nil {
		return "", errMissingDetails
	}
	details := e.Data.Instant.Details

	var b strings.Builder
	b.WriteString(round(*details.AirTemperature))
	b.WriteString("°C")

	if details.FeelsLikeTemperature != nil {
		b.WriteString(" (feels like ")
		b.WriteString(round(*details.FeelsLikeTemperature))
		b.WriteString("°C)")
	}

	if next := e.Data.next(); next != nil {
		if next.Summary != nil && next.Summary.SymbolCode != "" {
			b.WriteString(", ")
			b.WriteString(strings.ReplaceAll(next.Summary.SymbolCode, "_", " "))
		}
		if next.Details != nil && next.Details.ProbabilityOfPrecipitation != nil {
			b.WriteString(", Rain: ")
			b.WriteString(strconv.FormatFloat(*next.Details.ProbabilityOfPrecipitation, 'f', -1, 64))
			b.WriteString("%")
		}
	}

	return b.String(), nil
}

// round rounds half up, so -2.5 becomes -2 and never prints "-0".
func round(v float64) string {
	r := math.Floor(v + 0.5)
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}
