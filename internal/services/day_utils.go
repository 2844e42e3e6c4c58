package services

import (
	"math"
	"time"
)

const (
	moodTrendLabelLayout = "Jan 2"
	fullDay              = 24 * time.Hour
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, dayOfMonth := localized.Date()
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, location)
}

// NarrowWeekday renders the single-letter weekday used on the usage chart.
func NarrowWeekday(value time.Time, location *time.Location) string {
	if location == nil {
		location = time.UTC
	}
	return value.In(location).Weekday().String()[:1]
}

func roundToTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
