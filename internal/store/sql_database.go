package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/migrations"
)

// DB is the single store handle opened in main and closed at shutdown.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the backend named by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case migrations.DialectSQLite, "":
		return NewConnectSQLite(ctx, cfg, log)
	case migrations.DialectPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate applies the embedded migrations of the handle's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// Dialect returns migrations.DialectSQLite or migrations.DialectPostgres.
func (db *DB) Dialect() string {
	return db.dialect
}

// Classifier exposes the driver error classifier.
func (db *DB) Classifier() ErrorClassificator {
	return db.errorClassificator
}

// Repositories returns repositories running directly on the pool, one
// statement per implicit transaction.
func (db *DB) Repositories() Repositories {
	return newRepositories(db.DB, db.dialect, db.errorClassificator)
}

// InTx implements [Transactor].
func (db *DB) InTx(ctx context.Context, fn func(repos Repositories) error) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*DB.InTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(newRepositories(tx, db.dialect, db.errorClassificator)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*DB.InTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
