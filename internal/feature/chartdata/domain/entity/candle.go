// Package entity defines the domain models for the chartdata feature.
package entity

import "time"

// RawRecord is one input row after column extraction: the source epoch
// plus the four price fields. A nil price means the source cell was empty.
type RawRecord struct {
	Time  int64 // epoch seconds, UTC
	Open  *float64
	High  *float64
	Low   *float64
	Close *float64
}

// Candle is the working unit threaded through the pipeline. Prices are
// mutable only via the gap adjustment pass; everything else is set once.
type Candle struct {
	EpochUTC       int64     // UTC epoch from the source time column
	LocalTime      time.Time // civil date-time in the display zone
	DisplayEpoch   int64     // LocalTime's civil fields re-read as a UTC instant
	Open           float64
	High           float64
	Low            float64
	Close          float64
	IsRegularHours bool
	Hour           int // scratch, dropped before output
	Minute         int // scratch, dropped before output
}

// MinuteOfDay returns the candle's local wall-clock minute of day.
func (c Candle) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// ChartCandle is the public projection of a Candle returned to clients.
// Scratch fields (hour, minute, local time) are stripped.
type ChartCandle struct {
	Time           int64   `json:"time"` // display epoch
	Open           float64 `json:"open"`
	High           float64 `json:"high"`
	Low            float64 `json:"low"`
	Close          float64 `json:"close"`
	IsRegularHours bool    `json:"is_regular_hours"`
}

// DateRange is the local-representation time span of a result.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary describes one processed sequence.
type Summary struct {
	TotalRows int       `json:"total_rows"`
	DateRange DateRange `json:"date_range"`
	Columns   []string  `json:"columns"`
}

// ChartResult is the success/failure envelope produced by the pipeline.
// On failure Data is always empty; partial results are never returned.
type ChartResult struct {
	Success bool          `json:"success"`
	Data    []ChartCandle `json:"data"`
	Summary *Summary      `json:"summary,omitempty"`
	Error   string        `json:"error,omitempty"`
}
