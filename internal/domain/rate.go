package domain

import "time"

// RateKey is the fixed identity of the metal rate singleton
const RateKey = "default-rates"

const (
	DefaultGoldRate   = 6250
	DefaultSilverRate = 78
)

// MetalRate holds per gram prices. Previous* are the values that were current
// immediately before the latest write.
type MetalRate struct {
	Key            string    `json:"-"`
	Gold           float64   `json:"gold"`
	Silver         float64   `json:"silver"`
	LastUpdated    time.Time `json:"lastUpdated"`
	PreviousGold   float64   `json:"previousGold"`
	PreviousSilver float64   `json:"previousSilver"`
}

// NextRate builds the document that replaces current (nil on first write)
func NextRate(current *MetalRate, gold, silver float64, now time.Time) MetalRate {
	next := MetalRate{
		Key:            RateKey,
		Gold:           gold,
		Silver:         silver,
		LastUpdated:    now,
		PreviousGold:   gold,
		PreviousSilver: silver,
	}
	if current != nil {
		next.PreviousGold = current.Gold
		next.PreviousSilver = current.Silver
	}
	return next
}

// GoldTrend returns 1, -1 or 0 comparing the current gold rate with the previous one
func (r MetalRate) GoldTrend() int {
	return trend(r.Gold, r.PreviousGold)
}

func (r MetalRate) SilverTrend() int {
	return trend(r.Silver, r.PreviousSilver)
}

func trend(cur, prev float64) int {
	switch {
	case cur > prev:
		return 1
	case cur < prev:
		return -1
	}
	return 0
}
