package repository

import (
	"context"
	"database/sql"

	"eventdesk/internal/database"
	"eventdesk/internal/models"
)

type SettingsRepository struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*models.SiteSettings, error) {
	settings := &models.SiteSettings{}
	query := `
		SELECT site_name, site_description
		FROM site_settings
		WHERE settings_id = 1`

	err := r.db.QueryRowContext(ctx, query).Scan(
		&settings.SiteName,
		&settings.SiteDescription,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return settings, err
}

func (r *SettingsRepository) Update(ctx context.Context, siteName, siteDescription string) error {
	query := `
		UPDATE site_settings
		SET site_name = $1, site_description = $2
		WHERE settings_id = 1`

	_, err := r.db.ExecContext(ctx, query, siteName, siteDescription)
	return err
}
