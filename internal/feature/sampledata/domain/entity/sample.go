// Package entity defines the domain models for the sampledata feature.
package entity

// SampleCandle is one synthetic OHLC observation used to exercise the
// chart frontend without a real upload. No session classification is
// attached; sample data is plain price history.
type SampleCandle struct {
	Time  int64 // epoch seconds
	Open  float64
	High  float64
	Low   float64
	Close float64
}
