package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/migrations"
	"github.com/MKhiriev/crimewatch-access/models"
)

// userRepository implements [UserRepository] on the users table.
type userRepository struct {
	repo
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (models.User, error) {
	var (
		u         models.User
		role      string
		lastDate  sql.NullString
		lastLogin sql.NullTime
	)

	err := s.Scan(
		&u.UserID,
		&u.Username,
		&u.PasswordHash,
		&role,
		&u.FullName,
		&u.Email,
		&u.Active,
		&u.DailyPredictionCount,
		&lastDate,
		&u.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		return models.User{}, err
	}

	u.Role = models.Role(role)
	u.LastPredictionDate = lastDate.String
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}

	return u, nil
}

// CreateUser inserts a user and returns it with the assigned id.
//
// Error handling:
//   - unique violation on username → [ErrLoginAlreadyExists].
//   - any other driver error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.CreatedAt = user.CreatedAt.UTC()
	row := r.q.QueryRowContext(ctx, createUser,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		user.FullName,
		user.Email,
		user.Active,
		user.CreatedAt,
	)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Str("username", user.Username).Msg("error inserting user")
		if r.classifier.IsUniqueViolation(err) {
			return models.User{}, ErrLoginAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	// SQLite reports constraint violations of INSERT ... RETURNING on the
	// first step, which happens in Scan.
	if err := row.Scan(&user.UserID); err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("error: scanning error")
		if r.classifier.IsUniqueViolation(err) {
			return models.User{}, ErrLoginAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	user.DailyPredictionCount = 0
	user.LastPredictionDate = ""
	user.LastLogin = nil

	return user, nil
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "userRepository.FindUserByUsername", findUserByUsername, username)
}

func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "userRepository.FindUserByID", findUserByID, userID)
}

// LockUserQuota appends FOR UPDATE on PostgreSQL. On SQLite the immediate
// transaction already holds the database write lock.
func (r *userRepository) LockUserQuota(ctx context.Context, userID int64) (models.User, error) {
	query := lockUserQuota
	if r.dialect == migrations.DialectPostgres {
		query += " FOR UPDATE"
	}
	return r.findOne(ctx, "userRepository.LockUserQuota", query, userID)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	u, err := scanUser(r.q.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Any("key", arg).
			Str("class", r.classifier.Classify(err).String()).
			Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return u, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.q.QueryContext(ctx, listUsers)
	if err != nil {
		log.Err(err).Str("func", "userRepository.ListUsers").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 8)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Err(err).Str("func", "userRepository.ListUsers").Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	return r.update(ctx, "userRepository.UpdateLastLogin", updateLastLogin, at.UTC(), userID)
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	return r.update(ctx, "userRepository.UpdatePasswordHash", updatePasswordHash, hash, userID)
}

func (r *userRepository) UpdateRole(ctx context.Context, userID int64, role models.Role) error {
	return r.update(ctx, "userRepository.UpdateRole", updateRole, string(role), userID)
}

func (r *userRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	return r.update(ctx, "userRepository.SetActive", updateActive, active, userID)
}

func (r *userRepository) UpdateQuotaCounter(ctx context.Context, userID int64, count int, date string) error {
	return r.update(ctx, "userRepository.UpdateQuotaCounter", updateQuotaCounter, count, date, userID)
}

// update runs a single-row UPDATE; the user id is always the last argument.
func (r *userRepository) update(ctx context.Context, funcName, query string, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Warn().Str("func", funcName).Any("user_id", args[len(args)-1]).Msg("user not found")
		return ErrNoUserWasFound
	}

	return nil
}
