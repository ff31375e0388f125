package weather

import "time"

// Forecast mirrors the parts of the met.no locationforecast "compact" body that are read.
// Every optional field is a pointer so that absence is explicit.
type Forecast struct {
	Properties *Properties `json:"properties"`
}

type Properties struct {
	Timeseries []Entry `json:"timeseries"`
}

// Entry is one forecast instant.
type Entry struct {
	Time time.Time  `json:"time"`
	Data *EntryData `json:"data"`
}

type EntryData struct {
	Instant     *Instant  `json:"instant"`
	Next1Hours  *Interval `json:"next_1_hours"`
	Next6Hours  *Interval `json:"next_6_hours"`
	Next12Hours *Interval `json:"next_12_hours"`
}

type Instant struct {
	Details *InstantDetails `json:"details"`
}

type InstantDetails struct {
	AirTemperature       *float64 `json:"air_temperature"`
	FeelsLikeTemperature *float64 `json:"feels_like_temperature"`
}

// Interval is a next_N_hours summary block.
type Interval struct {
	Summary *IntervalSummary `json:"summary"`
	Details *IntervalDetails `json:"details"`
}

type IntervalSummary struct {
	SymbolCode string `json:"symbol_code"`
}

type IntervalDetails struct {
	ProbabilityOfPrecipitation *float64 `json:"probability_of_precipitation"`
}

// next returns the first present summary block, preferring the shortest interval.
func (d *EntryData) next() *Interval {
	switch {
	case d.Next1Hours != nil:
		return d.Next1Hours
	case d.Next6Hours != nil:
		return d.Next6Hours
	default:
		return d.Next12Hours
	}
}
