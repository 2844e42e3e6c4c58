package models

import "time"

// Mood is ordered from Low to Great.
type Mood string

const (
	MoodLow     Mood = "Low"
	MoodNeutral Mood = "Neutral"
	MoodGood    Mood = "Good"
	MoodGreat   Mood = "Great"
)

const (
	MinRating     = 1
	MaxRating     = 10
	DefaultRating = 5
)

// Score projects the mood onto 1..4. Unknown values score as Neutral.
func (mood Mood) Score() int {
	switch mood {
	case MoodLow:
		return 1
	case MoodNeutral:
		return 2
	case MoodGood:
		return 3
	case MoodGreat:
		return 4
	default:
		return 2
	}
}

func (mood Mood) Valid() bool {
	switch mood {
	case MoodLow, MoodNeutral, MoodGood, MoodGreat:
		return true
	default:
		return false
	}
}

type Session struct {
	ID              string    `json:"id"`
	ProductID       string    `json:"product_id"`
	DateTimeUsed    time.Time `json:"date_time_used"`
	DoseAmount      string    `json:"dose_amount"`
	Setting         string    `json:"setting"`
	Method          string    `json:"method"`
	OnsetMinutes    *int      `json:"onset_minutes,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	IntensityRating int       `json:"intensity_rating"`
	OverallRating   int       `json:"overall_rating"`
	MoodBefore      Mood      `json:"mood_before"`
	MoodAfter       Mood      `json:"mood_after"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
