package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/models"
)

// settingRepository implements [SettingRepository] on system_settings.
type settingRepository struct {
	repo
}

func scanSetting(s rowScanner) (models.SystemSetting, error) {
	var (
		st        models.SystemSetting
		updatedAt sql.NullTime
	)
	if err := s.Scan(&st.Key, &st.Value, &st.Description, &st.UpdatedBy, &updatedAt); err != nil {
		return models.SystemSetting{}, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		st.UpdatedAt = &t
	}
	return st, nil
}

func (r *settingRepository) ListSettings(ctx context.Context) ([]models.SystemSetting, error) {
	log := logger.FromContext(ctx)

	rows, err := r.q.QueryContext(ctx, listSettings)
	if err != nil {
		log.Err(err).Str("func", "settingRepository.ListSettings").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	settings := make([]models.SystemSetting, 0, 4)
	for rows.Next() {
		st, err := scanSetting(rows)
		if err != nil {
			log.Err(err).Str("func", "settingRepository.ListSettings").Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		settings = append(settings, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return settings, nil
}

func (r *settingRepository) GetSetting(ctx context.Context, key string) (models.SystemSetting, error) {
	st, err := scanSetting(r.q.QueryRowContext(ctx, getSetting, key))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SystemSetting{}, ErrNoSettingWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "settingRepository.GetSetting").Str("key", key).Msg("failed to read setting")
		return models.SystemSetting{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return st, nil
}

func (r *settingRepository) UpdateSetting(ctx context.Context, key, value, updatedBy string, at time.Time) error {
	log := logger.FromContext(ctx)

	res, err := r.q.ExecContext(ctx, updateSetting, value, updatedBy, at.UTC(), key)
	if err != nil {
		log.Err(err).Str("func", "settingRepository.UpdateSetting").Str("key", key).Msg("failed to update setting")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoSettingWasFound
	}

	return nil
}
