package services

import (
	"context"
	"time"

	"github.com/terraincognita07/stashlog/internal/models"
)

type AnalyticsSnapshotReader interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

type AnalyticsService struct {
	store    AnalyticsSnapshotReader
	location *time.Location
}

// Dashboard is only populated when Ready is true.
type Dashboard struct {
	Ready           bool             `json:"ready"`
	MinSessions     int              `json:"min_sessions"`
	TotalSessions   int              `json:"total_sessions"`
	AverageRating   float64          `json:"average_rating,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	TagStats        []TagStat        `json:"tag_stats,omitempty"`
	WeeklyUsage     *WeeklyUsage     `json:"weekly_usage,omitempty"`
	MoodTrend       []MoodPoint      `json:"mood_trend,omitempty"`
	TopCompounds    []CompoundCount  `json:"top_compounds,omitempty"`
	Categories      []CategoryStat   `json:"categories,omitempty"`
}

func NewAnalyticsService(store AnalyticsSnapshotReader, location *time.Location) *AnalyticsService {
	if location == nil {
		location = time.UTC
	}
	return &AnalyticsService{store: store, location: location}
}

func (service *AnalyticsService) BuildDashboard(ctx context.Context, now time.Time) (Dashboard, error) {
	snapshot, err := service.store.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(snapshot.Products, snapshot.Sessions, now, service.location), nil
}

func BuildDashboard(products []models.Product, sessions []models.Session, now time.Time, location *time.Location) Dashboard {
	dashboard := Dashboard{
		MinSessions:   MinDashboardSessions,
		TotalSessions: len(sessions),
	}
	if len(sessions) < MinDashboardSessions {
		return dashboard
	}

	weekly := BuildWeeklyUsage(sessions, now, location)
	dashboard.Ready = true
	dashboard.AverageRating = OverallAverageRating(sessions)
	dashboard.Recommendations = BuildRecommendations(products, sessions)
	dashboard.TagStats = RankTagEffectiveness(products, sessions)
	dashboard.WeeklyUsage = &weekly
	dashboard.MoodTrend = BuildMoodTrend(sessions, location)
	dashboard.TopCompounds = RankTopCompounds(products, sessions)
	dashboard.Categories = BuildCategoryBreakdown(products, sessions)
	return dashboard
}
