package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/stashlog/internal/models"
)

const (
	WeeklyUsageDays      = 7
	MoodTrendLength      = 10
	TopCompoundLimit     = 5
	TopCompoundMinRating = 8
	MinDashboardSessions = 3
)

type WeeklyUsage struct {
	Counts [WeeklyUsageDays]int    `json:"counts"`
	Labels [WeeklyUsageDays]string `json:"labels"`
}

func (usage WeeklyUsage) Total() int {
	total := 0
	for _, count := range usage.Counts {
		total += count
	}
	return total
}

type MoodPoint struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Before int       `json:"before"`
	After  int       `json:"after"`
}

type CompoundCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CategoryStat struct {
	Category   models.Category `json:"category"`
	Count      int             `json:"count"`
	Percentage float64         `json:"percentage"`
}

// BuildWeeklyUsage buckets sessions by whole 24h periods before now; the last
// bucket is today. Sessions less than a day ahead of now land in today.
func BuildWeeklyUsage(sessions []models.Session, now time.Time, location *time.Location) WeeklyUsage {
	usage := WeeklyUsage{}

	for _, session := range sessions {
		elapsed := now.Sub(session.DateTimeUsed)
		if elapsed < 0 {
			if -elapsed < fullDay {
				usage.Counts[WeeklyUsageDays-1]++
			}
			continue
		}
		diffDays := int(elapsed / fullDay)
		if diffDays < WeeklyUsageDays {
			usage.Counts[WeeklyUsageDays-1-diffDays]++
		}
	}

	for offset := 0; offset < WeeklyUsageDays; offset++ {
		date := now.AddDate(0, 0, offset-(WeeklyUsageDays-1))
		usage.Labels[offset] = NarrowWeekday(date, location)
	}
	return usage
}

// BuildMoodTrend returns the latest sessions in chronological order.
func BuildMoodTrend(sessions []models.Session, location *time.Location) []MoodPoint {
	if location == nil {
		location = time.UTC
	}

	ordered := make([]models.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DateTimeUsed.Before(ordered[j].DateTimeUsed)
	})
	if len(ordered) > MoodTrendLength {
		ordered = ordered[len(ordered)-MoodTrendLength:]
	}

	points := make([]MoodPoint, 0, len(ordered))
	for _, session := range ordered {
		points = append(points, MoodPoint{
			Date:   session.DateTimeUsed,
			Label:  session.DateTimeUsed.In(location).Format(moodTrendLabelLayout),
			Before: session.MoodBefore.Score(),
			After:  session.MoodAfter.Score(),
		})
	}
	return points
}

// RankTopCompounds counts terpene names on products of highly rated sessions.
func RankTopCompounds(products []models.Product, sessions []models.Session) []CompoundCount {
	index := indexProducts(products)
	positions := make(map[string]int)
	counts := make([]CompoundCount, 0)

	for _, session := range sessions {
		if session.OverallRating < TopCompoundMinRating {
			continue
		}
		product, ok := index[session.ProductID]
		if !ok {
			continue
		}
		for _, terpene := range product.Terpenes {
			position, seen := positions[terpene.Name]
			if !seen {
				position = len(counts)
				positions[terpene.Name] = position
				counts = append(counts, CompoundCount{Name: terpene.Name})
			}
			counts[position].Count++
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > TopCompoundLimit {
		counts = counts[:TopCompoundLimit]
	}
	return counts
}

// BuildCategoryBreakdown shares are relative to sessions with a known product.
func BuildCategoryBreakdown(products []models.Product, sessions []models.Session) []CategoryStat {
	index := indexProducts(products)
	positions := make(map[models.Category]int)
	stats := make([]CategoryStat, 0)
	total := 0

	for _, session := range sessions {
		product, ok := index[session.ProductID]
		if !ok {
			continue
		}
		position, seen := positions[product.Category]
		if !seen {
			position = len(stats)
			positions[product.Category] = position
			stats = append(stats, CategoryStat{Category: product.Category})
		}
		stats[position].Count++
		total++
	}

	for i := range stats {
		stats[i].Percentage = roundToTenth(float64(stats[i].Count) / float64(total) * 100)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	return stats
}
