package services

import (
	"context"
	"strconv"
	"time"

	"github.com/terraincognita07/stashlog/internal/models"
)

const exportTimestampLayout = "2006-01-02 15:04"

var ExportCSVHeaders = []string{
	"Date",
	"Product",
	"Brand",
	"Category",
	"Dose",
	"Setting",
	"Method",
	"Onset (min)",
	"Duration (min)",
	"Intensity",
	"Overall",
	"Mood before",
	"Mood after",
	"Notes",
}

type ExportSnapshotReader interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

type ExportService struct {
	store    ExportSnapshotReader
	location *time.Location
}

type ExportDocument struct {
	ExportedAt time.Time          `json:"exported_at"`
	Products   []models.Product   `json:"products"`
	Sessions   []models.Session   `json:"sessions"`
	Profile    models.UserProfile `json:"profile"`
}

type ExportSummary struct {
	TotalProducts int    `json:"total_products"`
	TotalSessions int    `json:"total_sessions"`
	HasData       bool   `json:"has_data"`
	DateFrom      string `json:"date_from,omitempty"`
	DateTo        string `json:"date_to,omitempty"`
}

func NewExportService(store ExportSnapshotReader, location *time.Location) *ExportService {
	if location == nil {
		location = time.UTC
	}
	return &ExportService{store: store, location: location}
}

func (service *ExportService) BuildDocument(ctx context.Context, now time.Time) (ExportDocument, error) {
	snapshot, err := service.store.Snapshot(ctx)
	if err != nil {
		return ExportDocument{}, err
	}
	return ExportDocument{
		ExportedAt: now.In(service.location),
		Products:   snapshot.Products,
		Sessions:   snapshot.Sessions,
		Profile:    snapshot.Profile,
	}, nil
}

func (service *ExportService) BuildSummary(ctx context.Context) (ExportSummary, error) {
	snapshot, err := service.store.Snapshot(ctx)
	if err != nil {
		return ExportSummary{}, err
	}

	summary := ExportSummary{
		TotalProducts: len(snapshot.Products),
		TotalSessions: len(snapshot.Sessions),
		HasData:       len(snapshot.Products) > 0 || len(snapshot.Sessions) > 0,
	}
	if len(snapshot.Sessions) == 0 {
		return summary, nil
	}

	first := snapshot.Sessions[0].DateTimeUsed
	last := first
	for _, session := range snapshot.Sessions[1:] {
		if session.DateTimeUsed.Before(first) {
			first = session.DateTimeUsed
		}
		if session.DateTimeUsed.After(last) {
			last = session.DateTimeUsed
		}
	}
	summary.DateFrom = DateAtLocation(first, service.location).Format("2006-01-02")
	summary.DateTo = DateAtLocation(last, service.location).Format("2006-01-02")
	return summary, nil
}

// BuildCSVRows renders sessions newest first. Sessions of deleted products
// keep their row with empty product columns.
func (service *ExportService) BuildCSVRows(ctx context.Context) ([][]string, error) {
	snapshot, err := service.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make([]models.Session, len(snapshot.Sessions))
	copy(sessions, snapshot.Sessions)
	sortSessionsNewestFirst(sessions)

	index := indexProducts(snapshot.Products)
	rows := make([][]string, 0, len(sessions))
	for _, session := range sessions {
		product := index[session.ProductID]
		rows = append(rows, []string{
			session.DateTimeUsed.In(service.location).Format(exportTimestampLayout),
			product.DisplayName(),
			product.BrandName,
			string(product.Category),
			session.DoseAmount,
			session.Setting,
			session.Method,
			optionalMinutes(session.OnsetMinutes),
			optionalMinutes(session.DurationMinutes),
			strconv.Itoa(session.IntensityRating),
			strconv.Itoa(session.OverallRating),
			string(session.MoodBefore),
			string(session.MoodAfter),
			session.Notes,
		})
	}
	return rows, nil
}

func optionalMinutes(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
