package store

// Placeholders are numbered in order of first appearance: SQLite assigns
// $N parameters by position, PostgreSQL by number, and both then agree.
const (
	userColumns = `id, username, password_hash, role, full_name, email, is_active,
		daily_prediction_count, last_prediction_date, created_date, last_login`

	createUser = `INSERT INTO users (username, password_hash, role, full_name, email, is_active, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;`

	findUserByUsername = `SELECT ` + userColumns + `
		FROM users
		WHERE username = $1;`

	findUserByID = `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1;`

	// lockUserQuota gets " FOR UPDATE" appended on PostgreSQL.
	lockUserQuota = `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	listUsers = `SELECT ` + userColumns + `
		FROM users
		ORDER BY id;`

	updateLastLogin = `UPDATE users SET last_login = $1 WHERE id = $2;`

	updatePasswordHash = `UPDATE users SET password_hash = $1 WHERE id = $2;`

	updateRole = `UPDATE users SET role = $1 WHERE id = $2;`

	updateActive = `UPDATE users SET is_active = $1 WHERE id = $2;`

	updateQuotaCounter = `UPDATE users
		SET daily_prediction_count = $1, last_prediction_date = $2
		WHERE id = $3;`

	sessionColumns = `s.id, s.user_id, COALESCE(u.username, ''), s.login_time, s.logout_time, s.session_duration`

	openSession = `INSERT INTO user_sessions (user_id, login_time)
		VALUES ($1, $2)
		RETURNING id;`

	findSession = `SELECT ` + sessionColumns + `
		FROM user_sessions s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.id = $1;`

	closeSession = `UPDATE user_sessions
		SET logout_time = $1, session_duration = $2
		WHERE id = $3 AND logout_time IS NULL;`

	listOpenSessions = `SELECT ` + sessionColumns + `
		FROM user_sessions s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.logout_time IS NULL
		ORDER BY s.login_time, s.id;`

	listOpenSessionsBefore = `SELECT ` + sessionColumns + `
		FROM user_sessions s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.logout_time IS NULL AND s.login_time < $1
		ORDER BY s.login_time, s.id;`

	listRecentSessions = `SELECT ` + sessionColumns + `
		FROM user_sessions s
		LEFT JOIN users u ON u.id = s.user_id
		ORDER BY s.login_time DESC, s.id DESC
		LIMIT $1;`

	appendAudit = `INSERT INTO audit_logs (user_id, username, action, details, timestamp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`

	lastAuditTimestamp = `SELECT timestamp
		FROM audit_logs
		WHERE username = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1;`

	purgeAudit = `DELETE FROM audit_logs WHERE timestamp < $1;`

	settingColumns = `setting_key, setting_value, description, COALESCE(updated_by, ''), updated_date`

	listSettings = `SELECT ` + settingColumns + `
		FROM system_settings
		ORDER BY setting_key;`

	getSetting = `SELECT ` + settingColumns + `
		FROM system_settings
		WHERE setting_key = $1;`

	updateSetting = `UPDATE system_settings
		SET setting_value = $1, updated_by = $2, updated_date = $3
		WHERE setting_key = $4;`

	savePrediction = `INSERT INTO prediction_history
			(user_id, session_id, username, location, prediction_date, predicted_crimes, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;`

	listPredictions = `SELECT id, user_id, session_id, username, location, prediction_date, predicted_crimes, timestamp
		FROM prediction_history
		ORDER BY timestamp DESC, id DESC
		LIMIT $1;`

	saveReport = `INSERT INTO generated_reports
			(user_id, session_id, username, report_type, location, file_path, generation_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;`

	listReports = `SELECT id, user_id, session_id, username, report_type, location, file_path, generation_date
		FROM generated_reports
		ORDER BY generation_date DESC, id DESC
		LIMIT $1;`
)
