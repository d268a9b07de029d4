package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/seapgd/docket-core/internal/accesslog/entity"
)

// AccessLogRepo provides data access for the access_logs audit table.
type AccessLogRepo struct {
	db *sqlx.DB
}

func NewAccessLogRepo(db *sqlx.DB) *AccessLogRepo { return &AccessLogRepo{db: db} }

// EnsureTable creates the access_logs table if not exists (idempotent).
func (r *AccessLogRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS access_logs (
  id BIGSERIAL PRIMARY KEY,
  user_id BIGINT,
  matricula TEXT NOT NULL,
  login_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  logout_time TIMESTAMPTZ,
  ip_address TEXT NOT NULL DEFAULT '',
  user_agent TEXT NOT NULL DEFAULT '',
  session_active BOOLEAN NOT NULL DEFAULT true,
  login_success BOOLEAN NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_access_logs_matricula ON access_logs(matricula);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// RecordAttempt inserts one audit row; userID is nil for unknown matriculas.
// Failed attempts start with session_active=false.
func (r *AccessLogRepo) RecordAttempt(ctx context.Context, userID *int64, matricula, ip, userAgent string, success bool) error {
	const q = `INSERT INTO access_logs (user_id, matricula, ip_address, user_agent, login_success, session_active)
		VALUES ($1, $2, $3, $4, $5, $5)`
	_, err := r.db.ExecContext(ctx, q, userID, matricula, ip, userAgent, success)
	return err
}

// CloseSessions stamps logout on every open session for the matricula and
// returns the number of rows closed.
func (r *AccessLogRepo) CloseSessions(ctx context.Context, matricula string) (int64, error) {
	const q = `UPDATE access_logs
		SET logout_time=NOW(), session_active=false, updated_at=NOW()
		WHERE matricula=$1 AND session_active = true`
	res, err := r.db.ExecContext(ctx, q, matricula)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListRecent returns the latest entries joined with user names, newest first.
func (r *AccessLogRepo) ListRecent(ctx context.Context, limit int) ([]entity.AccessLogWithUser, error) {
	const q = `SELECT al.id, al.user_id, al.matricula, al.login_time, al.logout_time,
		al.ip_address, al.user_agent, al.session_active, al.login_success,
		al.created_at, al.updated_at, u.name AS user_name
	FROM access_logs al
	LEFT JOIN users u ON al.user_id = u.id
	ORDER BY al.login_time DESC
	LIMIT $1`
	rows := []entity.AccessLogWithUser{}
	if err := r.db.SelectContext(ctx, &rows, q, limit); err != nil {
		return nil, err
	}
	return rows, nil
}
