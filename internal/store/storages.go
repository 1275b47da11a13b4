package store

// Repositories groups every repository bound to one [Querier].
type Repositories struct {
	Users       UserRepository
	Sessions    SessionRepository
	Audit       AuditRepository
	Settings    SettingRepository
	Attribution AttributionRepository
}

// repo is the state shared by all repository implementations.
type repo struct {
	q          Querier
	dialect    string
	classifier ErrorClassificator
}

func newRepositories(q Querier, dialect string, classifier ErrorClassificator) Repositories {
	base := repo{q: q, dialect: dialect, classifier: classifier}
	return Repositories{
		Users:       &userRepository{repo: base},
		Sessions:    &sessionRepository{repo: base},
		Audit:       &auditRepository{repo: base},
		Settings:    &settingRepository{repo: base},
		Attribution: &attributionRepository{repo: base},
	}
}
