package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/crimewatch-access/internal/crypto"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/metrics"
	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/models"
)

// systemUsername is the audit snapshot for changes made by the process
// itself, such as seeding the default accounts.
const systemUsername = "system"

// defaultUsers are provisioned on first start. Password equals username.
var defaultUsers = []models.NewUser{
	{Username: "admin", Password: "admin", Role: models.RoleAdmin, FullName: "System Administrator", Email: "admin@zrp.gov.zw"},
	{Username: "analyst", Password: "analyst", Role: models.RoleDataAnalyst, FullName: "Crime Data Analyst", Email: "analyst@zrp.gov.zw"},
	{Username: "user", Password: "user", Role: models.RoleStandardUser, FullName: "Police Officer", Email: "user@zrp.gov.zw"},
}

// credentialService verifies passwords and administers accounts. Every
// write, including a failed login, is audited in the transaction that
// carries it.
type credentialService struct {
	store   Store
	hasher  crypto.PasswordHasher
	now     Clock
	metrics *metrics.Recorder
	logger  *logger.Logger
}

func NewCredentialService(db Store, hasher crypto.PasswordHasher, clock Clock, recorder *metrics.Recorder, logger *logger.Logger) CredentialService {
	return &credentialService{
		store:   db,
		hasher:  hasher,
		now:     clock,
		metrics: recorder,
		logger:  logger,
	}
}

// Authenticate looks the user up by exact username.
//
// On success last_login is updated, a hash in a non-preferred scheme is
// replaced by one in the configured scheme and a Login entry is written, all
// in one transaction. A failure still commits its LoginFailed entry.
func (s *credentialService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	var (
		user    models.User
		outcome error
	)

	err := s.store.InTx(ctx, func(repos store.Repositories) error {
		now := s.now()

		u, err := repos.Users.FindUserByUsername(ctx, username)
		switch {
		case errors.Is(err, store.ErrNoUserWasFound):
			outcome = ErrUserNotFound
		case err != nil:
			return err
		case !u.Active:
			outcome = ErrUserInactive
		case !s.hasher.Verify(password, u.PasswordHash):
			outcome = ErrBadCredential
		}

		if outcome != nil {
			entry := models.AuditEntry{Username: username, Action: models.AuditLoginFailed, Details: outcome.Error()}
			if err == nil {
				entry.UserID = &u.UserID
			}
			_, err := appendAudit(ctx, repos, entry, now)
			return err
		}

		if s.hasher.NeedsRehash(u.PasswordHash) {
			if err := s.rehash(ctx, repos, &u, password); err != nil {
				return err
			}
		}

		if err := repos.Users.UpdateLastLogin(ctx, u.UserID, now); err != nil {
			return err
		}
		u.LastLogin = &now

		if _, err := appendAudit(ctx, repos, auditEntry(u.Principal(), models.AuditLogin, ""), now); err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "credentialService.Authenticate").Str("username", username).Msg("authentication failed on storage")
		return models.User{}, storageErr(err)
	}

	s.metrics.AuthAttempt(authOutcome(outcome))
	if outcome != nil {
		log.Info().Str("func", "credentialService.Authenticate").Str("username", username).Str("outcome", outcome.Error()).Msg("login rejected")
		return models.User{}, outcome
	}

	return user, nil
}

// rehash upgrades u's stored hash. A hashing failure keeps the old hash and
// does not fail the login.
func (s *credentialService) rehash(ctx context.Context, repos store.Repositories, u *models.User, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "credentialService.rehash").Int64("user_id", u.UserID).Msg("could not rehash password")
		return nil
	}

	if err := repos.Users.UpdatePasswordHash(ctx, u.UserID, hash); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().
		Str("func", "credentialService.rehash").
		Int64("user_id", u.UserID).
		Str("from", crypto.Detect(u.PasswordHash)).
		Str("to", s.hasher.Scheme()).
		Msg("password hash migrated")
	u.PasswordHash = hash
	return nil
}

func authOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrUserNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrUserInactive):
		return metrics.OutcomeInactive
	default:
		return metrics.OutcomeBadCredential
	}
}

func (s *credentialService) Guest() models.Principal {
	return models.Guest()
}

func (s *credentialService) VerifyPassword(plaintext, storedHash string) bool {
	return s.hasher.Verify(plaintext, storedHash)
}

func (s *credentialService) HashPassword(plaintext string) (string, error) {
	return s.hasher.Hash(plaintext)
}

// CreateUser provisions an account. Requires ManageUsers.
func (s *credentialService) CreateUser(ctx context.Context, actor models.Principal, newUser models.NewUser) (models.User, error) {
	log := logger.FromContext(ctx)

	newUser.Username = strings.TrimSpace(newUser.Username)
	if newUser.Username == "" || newUser.Password == "" || !newUser.Role.Valid() {
		log.Error().Str("func", "credentialService.CreateUser").Str("username", newUser.Username).Str("role", newUser.Role.String()).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hash, err := s.hasher.Hash(newUser.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	var (
		created models.User
		outcome error
	)
	err = s.store.InTx(ctx, func(repos store.Repositories) error {
		now := s.now()

		_, permitted, err := authorize(ctx, repos, actor, models.ActionManageUsers, now)
		if err != nil {
			return err
		}
		if !permitted {
			outcome = ErrForbidden
			return nil
		}

		created, err = repos.Users.CreateUser(ctx, models.User{
			Username:     newUser.Username,
			PasswordHash: hash,
			Role:         newUser.Role,
			FullName:     newUser.FullName,
			Email:        newUser.Email,
			Active:       true,
			CreatedAt:    now,
		})
		if err != nil {
			return err
		}

		details := fmt.Sprintf("created %s with role %s", created.Username, created.Role)
		_, err = appendAudit(ctx, repos, auditEntry(actor, models.AuditUserCreated, details), now)
		return err
	})
	if errors.Is(err, store.ErrLoginAlreadyExists) {
		return models.User{}, ErrUsernameTaken
	}
	if err != nil {
		log.Err(err).Str("func", "credentialService.CreateUser").Str("username", newUser.Username).Msg("user creation ended with error")
		return models.User{}, storageErr(err)
	}
	if outcome != nil {
		return models.User{}, outcome
	}

	return created, nil
}

// ChangePassword is allowed for the account owner and for ManageUsers.
func (s *credentialService) ChangePassword(ctx context.Context, actor models.Principal, userID int64, password string) error {
	if password == "" {
		return ErrInvalidDataProvided
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	self := !actor.IsGuest() && actor.ID() == userID
	return s.mutateUser(ctx, "credentialService.ChangePassword", actor, userID, self,
		func(repos store.Repositories, target models.User) (string, string, error) {
			if err := repos.Users.UpdatePasswordHash(ctx, target.UserID, hash); err != nil {
				return "", "", err
			}
			return models.AuditPasswordChanged, "password changed for " + target.Username, nil
		})
}

// ChangeRole requires ManageUsers. Guest is not an assignable role.
func (s *credentialService) ChangeRole(ctx context.Context, actor models.Principal, userID int64, role models.Role) error {
	if !role.Valid() {
		return ErrInvalidDataProvided
	}

	return s.mutateUser(ctx, "credentialService.ChangeRole", actor, userID, false,
		func(repos store.Repositories, target models.User) (string, string, error) {
			if err := repos.Users.UpdateRole(ctx, target.UserID, role); err != nil {
				return "", "", err
			}
			return models.AuditRoleChanged, fmt.Sprintf("%s: %s -> %s", target.Username, target.Role, role), nil
		})
}

// SetActive toggles the account flag. Deactivation is the only way to retire
// an account; its history stays in place.
func (s *credentialService) SetActive(ctx context.Context, actor models.Principal, userID int64, active bool) error {
	return s.mutateUser(ctx, "credentialService.SetActive", actor, userID, false,
		func(repos store.Repositories, target models.User) (string, string, error) {
			if err := repos.Users.SetActive(ctx, target.UserID, active); err != nil {
				return "", "", err
			}
			action := models.AuditUserDeactivated
			if active {
				action = models.AuditUserActivated
			}
			return action, target.Username, nil
		})
}

// mutateUser runs change on userID inside one transaction and audits the
// result. Unless allowed is set, actor must hold ManageUsers. Either way the
// actor's own account must exist and be active.
func (s *credentialService) mutateUser(
	ctx context.Context,
	funcName string,
	actor models.Principal,
	userID int64,
	allowed bool,
	change func(repos store.Repositories, target models.User) (action, details string, err error),
) error {
	var outcome error

	err := s.store.InTx(ctx, func(repos store.Repositories) error {
		now := s.now()

		if allowed {
			self, _, ok, err := resolveActor(ctx, repos, actor)
			if err != nil {
				return err
			}
			if !ok {
				details := fmt.Sprintf("%s: account missing or inactive", funcName)
				if _, err := appendAudit(ctx, repos, auditEntry(deniedActor(actor, self), models.AuditAccessDenied, details), now); err != nil {
					return err
				}
				outcome = ErrUserInactive
				return nil
			}
		} else {
			_, permitted, err := authorize(ctx, repos, actor, models.ActionManageUsers, now)
			if err != nil {
				return err
			}
			if !permitted {
				outcome = ErrForbidden
				return nil
			}
		}

		target, err := repos.Users.FindUserByID(ctx, userID)
		if errors.Is(err, store.ErrNoUserWasFound) {
			outcome = ErrUserNotFound
			return nil
		}
		if err != nil {
			return err
		}

		action, details, err := change(repos, target)
		if err != nil {
			return err
		}

		_, err = appendAudit(ctx, repos, auditEntry(actor, action, details), now)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Int64("user_id", userID).Msg("user update failed")
		return storageErr(err)
	}

	return outcome
}

// ListUsers requires ManageUsers.
func (s *credentialService) ListUsers(ctx context.Context, actor models.Principal) ([]models.User, error) {
	var (
		users   []models.User
		outcome error
	)

	err := s.store.InTx(ctx, func(repos store.Repositories) error {
		_, permitted, err := authorize(ctx, repos, actor, models.ActionManageUsers, s.now())
		if err != nil {
			return err
		}
		if !permitted {
			outcome = ErrForbidden
			return nil
		}

		users, err = repos.Users.ListUsers(ctx)
		return err
	})
	if err != nil {
		return nil, storageErr(err)
	}
	if outcome != nil {
		return nil, outcome
	}

	return users, nil
}

// EnsureDefaultUsers creates the missing default accounts when "admin" is
// absent. It returns how many accounts were created.
func (s *credentialService) EnsureDefaultUsers(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	_, err := s.store.Repositories().Users.FindUserByUsername(ctx, "admin")
	if err == nil {
		return 0, nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return 0, storageErr(err)
	}

	created := 0
	err = s.store.InTx(ctx, func(repos store.Repositories) error {
		now := s.now()

		for _, du := range defaultUsers {
			_, err := repos.Users.FindUserByUsername(ctx, du.Username)
			if err == nil {
				continue
			}
			if !errors.Is(err, store.ErrNoUserWasFound) {
				return err
			}

			hash, err := s.hasher.Hash(du.Password)
			if err != nil {
				return fmt.Errorf("hashing password: %w", err)
			}

			u, err := repos.Users.CreateUser(ctx, models.User{
				Username:     du.Username,
				PasswordHash: hash,
				Role:         du.Role,
				FullName:     du.FullName,
				Email:        du.Email,
				Active:       true,
				CreatedAt:    now,
			})
			if err != nil {
				return err
			}

			entry := models.AuditEntry{
				Username: systemUsername,
				Action:   models.AuditUserCreated,
				Details:  fmt.Sprintf("seeded %s with role %s", u.Username, u.Role),
			}
			if _, err := appendAudit(ctx, repos, entry, now); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "credentialService.EnsureDefaultUsers").Msg("seeding default users failed")
		return 0, storageErr(err)
	}

	log.Info().Str("func", "credentialService.EnsureDefaultUsers").Int("created", created).Msg("default users seeded")
	return created, nil
}
