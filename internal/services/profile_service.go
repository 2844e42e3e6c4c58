package services

import (
	"context"
	"strings"

	"github.com/terraincognita07/stashlog/internal/models"
)

type ProfileStore interface {
	GetUserProfile(ctx context.Context) (models.UserProfile, error)
	SaveUserProfile(ctx context.Context, profile models.UserProfile) error
}

type ProfileService struct {
	store ProfileStore
}

func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

func (service *ProfileService) Get(ctx context.Context) (models.UserProfile, error) {
	return service.store.GetUserProfile(ctx)
}

// Save overwrites the whole profile after normalizing preferences.
func (service *ProfileService) Save(ctx context.Context, profile models.UserProfile) (models.UserProfile, error) {
	normalized := NormalizeUserProfile(profile)
	if err := service.store.SaveUserProfile(ctx, normalized); err != nil {
		return models.UserProfile{}, err
	}
	return normalized, nil
}

func NormalizeUserProfile(profile models.UserProfile) models.UserProfile {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Email = strings.TrimSpace(profile.Email)

	switch profile.Preferences.DosageUnit {
	case models.DosageUnitMilligram, models.DosageUnitGram:
	default:
		profile.Preferences.DosageUnit = models.DosageUnitMilligram
	}

	switch profile.Preferences.DateFormat {
	case models.DateFormatMonthFirst, models.DateFormatDayFirst:
	default:
		profile.Preferences.DateFormat = models.DateFormatMonthFirst
	}
	return profile
}
