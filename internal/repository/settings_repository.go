package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"studiolens/api/internal/models"
)

// SettingsRepository reads the single site settings document. The document is
// written by the content editor; this service only consumes the integrations
// section.
type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func (r *SettingsRepository) Get(ctx context.Context) (models.SiteSettings, error) {
	const query = `SELECT doc FROM site_settings WHERE id = 1`

	var doc []byte
	if err := r.pool.QueryRow(ctx, query).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SiteSettings{}, nil
		}
		return models.SiteSettings{}, err
	}

	var settings models.SiteSettings
	if err := json.Unmarshal(doc, &settings); err != nil {
		return models.SiteSettings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return settings, nil
}
