package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/policy"
	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/models"
)

// appendAudit writes entry through repos, which is normally bound to the
// transaction carrying the effect being audited. The timestamp never goes
// below the newest one already stored for the same username, so a clock
// stepping back keeps per-user order intact.
func appendAudit(ctx context.Context, repos store.Repositories, entry models.AuditEntry, now time.Time) (int64, error) {
	entry.Timestamp = now.UTC()

	last, ok, err := repos.Audit.LastTimestamp(ctx, entry.Username)
	if err != nil {
		return 0, err
	}
	if ok && entry.Timestamp.Before(last) {
		entry.Timestamp = last.UTC()
	}

	return repos.Audit.Append(ctx, entry)
}

// resolveActor re-reads the principal's account. A guest resolves to the
// Guest role. A missing or inactive account resolves to ok == false.
func resolveActor(ctx context.Context, repos store.Repositories, p models.Principal) (user models.User, role models.Role, ok bool, err error) {
	if p.IsGuest() {
		return models.User{}, models.RoleGuest, true, nil
	}

	user, err = repos.Users.FindUserByID(ctx, *p.UserID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, "", false, nil
	}
	if err != nil {
		return models.User{}, "", false, err
	}
	if !user.Active {
		return user, user.Role, false, nil
	}

	return user, user.Role, true, nil
}

// authorize checks action against the stored role of p. On denial it writes
// an AccessDenied entry and reports permitted == false; the caller commits
// that entry and returns ErrForbidden.
func authorize(ctx context.Context, repos store.Repositories, p models.Principal, action models.Action, now time.Time) (user models.User, permitted bool, err error) {
	user, role, ok, err := resolveActor(ctx, repos, p)
	if err != nil {
		return models.User{}, false, err
	}

	if ok && policy.IsPermitted(role, action) {
		return user, true, nil
	}

	details := fmt.Sprintf("action=%s role=%s", action, role)
	if !ok {
		details = fmt.Sprintf("action=%s account missing or inactive", action)
	}
	if _, err := appendAudit(ctx, repos, auditEntry(deniedActor(p, user), models.AuditAccessDenied, details), now); err != nil {
		return models.User{}, false, err
	}

	return user, false, nil
}

// deniedActor is the identity a denial is audited under. When the account row
// does not exist the user id is dropped, since audit_log.user_id must name a
// stored user; the username snapshot still says who asked.
func deniedActor(p models.Principal, user models.User) models.Principal {
	if p.UserID != nil && user.UserID == 0 {
		p.UserID = nil
	}
	return p
}

// checkSession reports, as outcome, why sessionID cannot carry work for user:
// ErrSessionNotFound, ErrSessionAlreadyClosed, or ErrForbidden when the
// session belongs to someone else. A nil id is not checked.
func checkSession(ctx context.Context, repos store.Repositories, sessionID *int64, user models.User) (outcome error, err error) {
	if sessionID == nil {
		return nil, nil
	}

	sess, err := repos.Sessions.FindSession(ctx, *sessionID)
	if errors.Is(err, store.ErrNoSessionWasFound) {
		return ErrSessionNotFound, nil
	}
	if err != nil {
		return nil, err
	}
	if sess.State() != models.SessionOpen {
		return ErrSessionAlreadyClosed, nil
	}
	if sess.UserID == nil || *sess.UserID != user.UserID {
		return ErrForbidden, nil
	}

	return nil, nil
}

// auditEntry builds an entry for p, using the guest snapshot name when p has
// no username.
func auditEntry(p models.Principal, action, details string) models.AuditEntry {
	e := models.NewAuditEntry(p, action, details)
	if e.Username == "" {
		e.Username = models.GuestUsername
	}
	return e
}

// readIntSetting returns def when the key is missing or not an integer.
func readIntSetting(ctx context.Context, repo store.SettingRepository, key string, def int) (int, error) {
	st, err := repo.GetSetting(ctx, key)
	if errors.Is(err, store.ErrNoSettingWasFound) {
		return def, nil
	}
	if err != nil {
		return 0, err
	}

	v, err := strconv.Atoi(st.Value)
	if err != nil {
		return def, nil
	}
	return v, nil
}

func isNoUser(err error) bool {
	return errors.Is(err, store.ErrNoUserWasFound)
}
