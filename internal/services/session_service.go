package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/stashlog/internal/models"
)

const (
	DefaultDoseAmount = "Standard"
	DefaultSetting    = "Home"
	DefaultMethod     = "Unknown"
)

var (
	ErrSessionProductRequired = errors.New("product id is required")
	ErrRatingOutOfRange       = errors.New("rating must be between 1 and 10")
	ErrInvalidMood            = errors.New("invalid mood")
)

type SessionStore interface {
	GetProduct(ctx context.Context, id string) (models.Product, error)
	ListSessions(ctx context.Context, productID string) ([]models.Session, error)
	SaveSession(ctx context.Context, session models.Session) error
}

type SessionService struct {
	store SessionStore
	newID func() string
}

func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store, newID: uuid.NewString}
}

func (service *SessionService) List(ctx context.Context, productID string) ([]models.Session, error) {
	return service.store.ListSessions(ctx, strings.TrimSpace(productID))
}

// Log appends a new session. The product does not have to exist.
func (service *SessionService) Log(ctx context.Context, draft models.Session, now time.Time) (models.Session, error) {
	session := draft
	session.ProductID = strings.TrimSpace(session.ProductID)
	if session.ProductID == "" {
		return models.Session{}, ErrSessionProductRequired
	}

	var err error
	if session.OverallRating, err = normalizeRating(session.OverallRating); err != nil {
		return models.Session{}, err
	}
	if session.IntensityRating, err = normalizeRating(session.IntensityRating); err != nil {
		return models.Session{}, err
	}
	if session.MoodBefore, err = normalizeMood(session.MoodBefore, models.MoodNeutral); err != nil {
		return models.Session{}, err
	}
	if session.MoodAfter, err = normalizeMood(session.MoodAfter, models.MoodGood); err != nil {
		return models.Session{}, err
	}

	session.DoseAmount = defaultString(session.DoseAmount, DefaultDoseAmount)
	session.Setting = defaultString(session.Setting, DefaultSetting)
	session.Notes = strings.TrimSpace(session.Notes)
	if strings.TrimSpace(session.Method) == "" {
		session.Method, err = service.defaultMethod(ctx, session.ProductID)
		if err != nil {
			return models.Session{}, err
		}
	} else {
		session.Method = strings.TrimSpace(session.Method)
	}

	if session.DateTimeUsed.IsZero() {
		session.DateTimeUsed = now
	}
	session.ID = service.newID()
	session.CreatedAt = now

	if err := service.store.SaveSession(ctx, session); err != nil {
		return models.Session{}, err
	}
	return session, nil
}

func (service *SessionService) defaultMethod(ctx context.Context, productID string) (string, error) {
	product, err := service.store.GetProduct(ctx, productID)
	if errors.Is(err, ErrProductNotFound) {
		return DefaultMethod, nil
	}
	if err != nil {
		return "", err
	}
	return DefaultMethodFor(product), nil
}

// DefaultMethodFor suggests how a product is usually consumed.
func DefaultMethodFor(product models.Product) string {
	switch {
	case product.FormFactor == "Flower":
		return "Smoked"
	case product.Category == models.CategoryEdible:
		return "Eaten"
	default:
		return "Vaped"
	}
}

func normalizeRating(value int) (int, error) {
	if value == 0 {
		return models.DefaultRating, nil
	}
	if value < models.MinRating || value > models.MaxRating {
		return 0, ErrRatingOutOfRange
	}
	return value, nil
}

func normalizeMood(value models.Mood, fallback models.Mood) (models.Mood, error) {
	trimmed := models.Mood(strings.TrimSpace(string(value)))
	if trimmed == "" {
		return fallback, nil
	}
	if !trimmed.Valid() {
		return "", ErrInvalidMood
	}
	return trimmed, nil
}

func defaultString(value string, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
