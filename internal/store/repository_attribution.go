package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/models"
)

// attributionRepository implements [AttributionRepository] on
// prediction_history and generated_reports. Both tables are insert-only.
type attributionRepository struct {
	repo
}

func (r *attributionRepository) SavePrediction(ctx context.Context, record models.PredictionRecord) (int64, error) {
	var id int64
	err := r.q.QueryRowContext(ctx, savePrediction,
		record.UserID,
		nullableID(record.SessionID),
		record.Username,
		record.Location,
		record.PredictionDate,
		record.PredictedItems,
		record.Timestamp.UTC(),
	).Scan(&id)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "attributionRepository.SavePrediction").
			Int64("user_id", record.UserID).
			Msg("failed to save prediction")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return id, nil
}

func (r *attributionRepository) SaveReport(ctx context.Context, record models.ReportRecord) (int64, error) {
	var id int64
	err := r.q.QueryRowContext(ctx, saveReport,
		record.UserID,
		nullableID(record.SessionID),
		record.Username,
		record.ReportType,
		record.Location,
		record.FilePath,
		record.GeneratedAt.UTC(),
	).Scan(&id)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "attributionRepository.SaveReport").
			Int64("user_id", record.UserID).
			Msg("failed to save report")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return id, nil
}

// ListPredictions returns the newest predictions first.
func (r *attributionRepository) ListPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.q.QueryContext(ctx, listPredictions, limit)
	if err != nil {
		log.Err(err).Str("func", "attributionRepository.ListPredictions").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.PredictionRecord, 0, 8)
	for rows.Next() {
		var (
			rec       models.PredictionRecord
			sessionID sql.NullInt64
		)
		err := rows.Scan(&rec.ID, &rec.UserID, &sessionID, &rec.Username, &rec.Location,
			&rec.PredictionDate, &rec.PredictedItems, &rec.Timestamp)
		if err != nil {
			log.Err(err).Str("func", "attributionRepository.ListPredictions").Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if sessionID.Valid {
			id := sessionID.Int64
			rec.SessionID = &id
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// ListReports returns the newest reports first.
func (r *attributionRepository) ListReports(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.q.QueryContext(ctx, listReports, limit)
	if err != nil {
		log.Err(err).Str("func", "attributionRepository.ListReports").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.ReportRecord, 0, 8)
	for rows.Next() {
		var (
			rec       models.ReportRecord
			sessionID sql.NullInt64
		)
		err := rows.Scan(&rec.ID, &rec.UserID, &sessionID, &rec.Username, &rec.ReportType,
			&rec.Location, &rec.FilePath, &rec.GeneratedAt)
		if err != nil {
			log.Err(err).Str("func", "attributionRepository.ListReports").Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if sessionID.Valid {
			id := sessionID.Int64
			rec.SessionID = &id
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
