package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/stashlog/internal/models"
)

func TestBuildDashboardGatesBelowMinimumSessions(t *testing.T) {
	products := []models.Product{testProduct("p1", models.CategoryFlower, "Sleep")}
	sessions := []models.Session{
		testSession("s1", "p1", 9, hoursAgo(1)),
		testSession("s2", "p1", 9, hoursAgo(2)),
	}

	dashboard := BuildDashboard(products, sessions, testNow, time.UTC)
	if dashboard.Ready {
		t.Fatalf("expected dashboard not ready with 2 sessions")
	}
	if dashboard.TotalSessions != 2 || dashboard.MinSessions != MinDashboardSessions {
		t.Fatalf("unexpected gate counters: %#v", dashboard)
	}
	if dashboard.WeeklyUsage != nil || dashboard.TagStats != nil || dashboard.Recommendations != nil || dashboard.AverageRating != 0 {
		t.Fatalf("expected no computed views, got %#v", dashboard)
	}
}

func TestBuildDashboardGateCountsOrphanSessions(t *testing.T) {
	sessions := []models.Session{
		testSession("s1", "p1", 9, hoursAgo(1)),
		testSession("s2", "gone", 6, hoursAgo(2)),
		testSession("s3", "gone", 6, hoursAgo(3)),
	}

	dashboard := BuildDashboard([]models.Product{testProduct("p1", models.CategoryVape, "Focus")}, sessions, testNow, time.UTC)
	if !dashboard.Ready {
		t.Fatalf("expected dashboard ready with 3 raw sessions")
	}
	if dashboard.AverageRating != 7 {
		t.Fatalf("expected average 7, got %v", dashboard.AverageRating)
	}
	if len(dashboard.Categories) != 1 || dashboard.Categories[0].Count != 1 || dashboard.Categories[0].Percentage != 100 {
		t.Fatalf("expected orphans excluded from categories, got %#v", dashboard.Categories)
	}
	if dashboard.WeeklyUsage == nil || dashboard.WeeklyUsage.Total() != 3 {
		t.Fatalf("expected all sessions in weekly usage, got %#v", dashboard.WeeklyUsage)
	}
	if len(dashboard.MoodTrend) != 3 {
		t.Fatalf("expected 3 mood points, got %d", len(dashboard.MoodTrend))
	}
}

func TestAnalyticsServiceBuildDashboardFromStore(t *testing.T) {
	store, _ := newTestStashStore(t)
	ctx := context.Background()
	_ = store.SaveProduct(ctx, withTerpenes(testProduct("p1", models.CategoryEdible, "Sleep"), "Linalool"))
	for i, rating := range []int{9, 8, 10} {
		_ = store.SaveSession(ctx, testSession(string(rune('a'+i)), "p1", rating, hoursAgo(i+1)))
	}

	service := NewAnalyticsService(store, nil)
	dashboard, err := service.BuildDashboard(ctx, testNow)
	if err != nil {
		t.Fatalf("BuildDashboard() unexpected error: %v", err)
	}
	if !dashboard.Ready || dashboard.AverageRating != 9 {
		t.Fatalf("unexpected dashboard header: %#v", dashboard)
	}
	if len(dashboard.Recommendations) != 1 || dashboard.Recommendations[0].Tag != "Sleep" {
		t.Fatalf("unexpected recommendations: %#v", dashboard.Recommendations)
	}
	if len(dashboard.TopCompounds) != 1 || dashboard.TopCompounds[0].Count != 3 {
		t.Fatalf("unexpected compounds: %#v", dashboard.TopCompounds)
	}
}

func TestAnalyticsServicePropagatesStoreErrors(t *testing.T) {
	readErr := errors.New("unreadable")
	service := NewAnalyticsService(&stubSnapshotReader{err: readErr}, time.UTC)

	if _, err := service.BuildDashboard(context.Background(), testNow); !errors.Is(err, readErr) {
		t.Fatalf("expected %v, got %v", readErr, err)
	}
}
