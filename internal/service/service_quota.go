package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/metrics"
	"github.com/MKhiriev/crimewatch-access/internal/policy"
	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/models"
)

// dateLayout keys the quota epoch.
const dateLayout = "2006-01-02"

// quotaService is the daily usage ledger.
//
// The read of the counter and its conditional increment run under a per-user
// lock and inside one transaction; the row is locked with FOR UPDATE on
// PostgreSQL, and SQLite transactions take the write lock at BEGIN. Two calls
// for the same user therefore never both see the last free slot.
type quotaService struct {
	store   Store
	locks   *keyedMutex
	loc     *time.Location
	now     Clock
	metrics *metrics.Recorder
	logger  *logger.Logger
}

// NewQuotaService builds the ledger. loc selects the calendar whose date
// change starts a new epoch; nil means time.Local.
func NewQuotaService(db Store, loc *time.Location, clock Clock, recorder *metrics.Recorder, logger *logger.Logger) QuotaService {
	if loc == nil {
		loc = time.Local
	}
	return &quotaService{
		store:   db,
		locks:   newKeyedMutex(),
		loc:     loc,
		now:     clock,
		metrics: recorder,
		logger:  logger,
	}
}

// CheckAndConsume decides whether principal may perform action now.
//
//  1. The role is re-read from storage; a missing or inactive account and a
//     role without the action yield Forbidden. The counter is not touched.
//  2. Actions other than Predict are not metered and are Allowed(unlimited).
//  3. A counter dated before today is reset to 0 for today.
//  4. Unlimited roles increment the counter for reporting and are allowed.
//  5. Otherwise count >= quota is QuotaExceeded with the counter unchanged,
//     and anything below is incremented and Allowed(quota - count).
//
// Allowed consumption is audited under the action name; denials as
// AccessDenied or QuotaExceeded. Each entry commits with the counter write.
func (s *quotaService) CheckAndConsume(ctx context.Context, principal models.Principal, action models.Action) (models.QuotaDecision, error) {
	log := logger.FromContext(ctx)

	if !principal.IsGuest() {
		unlock := s.locks.Lock(*principal.UserID)
		defer unlock()
	}

	var decision models.QuotaDecision
	err := s.store.InTx(ctx, func(repos store.Repositories) (err error) {
		decision, err = s.decide(ctx, repos, principal, action)
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "quotaService.CheckAndConsume").
			Str("username", principal.Username).
			Str("action", string(action)).
			Msg("quota check failed on storage")
		return models.QuotaDecision{}, storageErr(err)
	}

	s.metrics.QuotaDecision(string(action), decision.Outcome.String())
	log.Debug().
		Str("func", "quotaService.CheckAndConsume").
		Str("username", principal.Username).
		Str("action", string(action)).
		Str("outcome", decision.Outcome.String()).
		Int("remaining", decision.Remaining).
		Msg("quota decision")

	return decision, nil
}

func (s *quotaService) decide(ctx context.Context, repos store.Repositories, p models.Principal, action models.Action) (models.QuotaDecision, error) {
	now := s.now()

	var (
		user models.User
		role = models.RoleGuest
	)
	if !p.IsGuest() {
		u, err := repos.Users.LockUserQuota(ctx, *p.UserID)
		switch {
		case err == nil && u.Active:
			user, role = u, u.Role
		case err == nil || isNoUser(err):
			return s.deny(ctx, repos, deniedActor(p, u), action, fmt.Sprintf("action=%s account missing or inactive", action), now)
		default:
			return models.QuotaDecision{}, err
		}
		// audit under the stored username
		p.Username = user.Username
	}

	if !policy.IsPermitted(role, action) {
		return s.deny(ctx, repos, p, action, fmt.Sprintf("action=%s role=%s", action, role), now)
	}

	if !policy.IsMetered(action) {
		if _, err := appendAudit(ctx, repos, auditEntry(p, string(action), ""), now); err != nil {
			return models.QuotaDecision{}, err
		}
		return models.QuotaDecision{Outcome: models.QuotaAllowed, Action: action, Unlimited: true}, nil
	}

	standardQuota, err := readIntSetting(ctx, repos.Settings, models.SettingStandardUserDailyQuota, models.DefaultStandardUserDailyQuota)
	if err != nil {
		return models.QuotaDecision{}, err
	}
	quota := policy.DailyQuota(role, standardQuota)

	today := now.In(s.loc).Format(dateLayout)
	count := user.DailyPredictionCount
	if user.LastPredictionDate != today {
		count = 0
	}

	if !quota.Unlimited && count >= quota.Limit {
		details := fmt.Sprintf("action=%s used=%d limit=%d", action, count, quota.Limit)
		if _, err := appendAudit(ctx, repos, auditEntry(p, models.AuditQuotaExceeded, details), now); err != nil {
			return models.QuotaDecision{}, err
		}
		return models.QuotaDecision{Outcome: models.QuotaExceeded, Action: action, Used: count}, nil
	}

	count++
	if err := repos.Users.UpdateQuotaCounter(ctx, user.UserID, count, today); err != nil {
		return models.QuotaDecision{}, err
	}

	decision := models.QuotaDecision{Outcome: models.QuotaAllowed, Action: action, Used: count}
	details := fmt.Sprintf("used=%d unlimited", count)
	if quota.Unlimited {
		decision.Unlimited = true
	} else {
		decision.Remaining = quota.Limit - count
		details = fmt.Sprintf("used=%d remaining=%d", count, decision.Remaining)
	}

	if _, err := appendAudit(ctx, repos, auditEntry(p, string(action), details), now); err != nil {
		return models.QuotaDecision{}, err
	}

	return decision, nil
}

func (s *quotaService) deny(ctx context.Context, repos store.Repositories, p models.Principal, action models.Action, details string, now time.Time) (models.QuotaDecision, error) {
	if _, err := appendAudit(ctx, repos, auditEntry(p, models.AuditAccessDenied, details), now); err != nil {
		return models.QuotaDecision{}, err
	}
	return models.QuotaDecision{Outcome: models.QuotaForbidden, Action: action}, nil
}
