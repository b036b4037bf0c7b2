package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eventdesk/internal/models"
)

// SettingsErrorMessage is shown when the settings form fails validation.
const SettingsErrorMessage = "Fill in both fields."

// ErrInvalidSettings signals a settings submission with a missing field.
var ErrInvalidSettings = errors.New("invalid site settings")

type SettingsStore interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Update(ctx context.Context, siteName, siteDescription string) error
}

type SettingsService struct {
	settings SettingsStore
}

func NewSettingsService(settings SettingsStore) *SettingsService {
	return &SettingsService{settings: settings}
}

// Get returns the site settings, falling back to defaults when the singleton
// row is missing.
func (s *SettingsService) Get(ctx context.Context) (*models.SiteSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	if settings == nil {
		return &models.SiteSettings{SiteName: "Event Manager", SiteDescription: ""}, nil
	}
	return settings, nil
}

// Update requires both fields to be non-empty after trimming
func (s *SettingsService) Update(ctx context.Context, siteName, siteDescription string) error {
	siteName = strings.TrimSpace(siteName)
	siteDescription = strings.TrimSpace(siteDescription)

	if siteName == "" || siteDescription == "" {
		return ErrInvalidSettings
	}

	if err := s.settings.Update(ctx, siteName, siteDescription); err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	return nil
}
