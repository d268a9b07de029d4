package admin

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repo runs the full-table reads, restores and bulk deletes the
// administrative endpoints need.
type Repo struct {
	db *sqlx.DB
}

func NewRepo(db *sqlx.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListUsers(ctx context.Context) ([]UserRow, error) {
	var rows []UserRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM users ORDER BY id`)
	return rows, err
}

func (r *Repo) ListAssignees(ctx context.Context) ([]AssigneeRow, error) {
	var rows []AssigneeRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM document_assignees ORDER BY id`)
	return rows, err
}

func (r *Repo) ListDocTypes(ctx context.Context) ([]DocTypeRow, error) {
	var rows []DocTypeRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM document_types ORDER BY id`)
	return rows, err
}

func (r *Repo) ListDocuments(ctx context.Context) ([]DocumentRow, error) {
	var rows []DocumentRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM documents ORDER BY id`)
	return rows, err
}

func (r *Repo) ListAccessLogs(ctx context.Context) ([]AccessLogRow, error) {
	var rows []AccessLogRow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM access_logs ORDER BY id`)
	return rows, err
}

func (r *Repo) Begin(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, nil)
}

// ClearAll empties every table inside tx, documents first so foreign keys
// never dangle mid-restore.
func (r *Repo) ClearAll(ctx context.Context, tx *sqlx.Tx) error {
	for _, table := range []string{"access_logs", "documents", "document_types", "document_assignees", "users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("limpar %s: %w", table, err)
		}
	}
	return nil
}

func (r *Repo) InsertUser(ctx context.Context, tx *sqlx.Tx, row UserRow) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO users (id, name, email, role, matricula, password_hash, is_active, created_at, updated_at)
		VALUES (:id, :name, :email, :role, :matricula, :password_hash, :is_active, :created_at, :updated_at)`, row)
	return err
}

func (r *Repo) InsertAssignee(ctx context.Context, tx *sqlx.Tx, row AssigneeRow) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO document_assignees (id, first_name, last_name, department, position, is_active, created_at, updated_at)
		VALUES (:id, :first_name, :last_name, :department, :position, :is_active, :created_at, :updated_at)`, row)
	return err
}

func (r *Repo) InsertDocType(ctx context.Context, tx *sqlx.Tx, row DocTypeRow) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO document_types (id, name, color, is_active, created_at, updated_at)
		VALUES (:id, :name, :color, :is_active, :created_at, :updated_at)`, row)
	return err
}

func (r *Repo) InsertDocument(ctx context.Context, tx *sqlx.Tx, row DocumentRow) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO documents (id, title, type, status, assigned_to, document_assignee_id, deadline,
			description, priority, completion_date, process_number, prisoner_name, created_at, updated_at)
		VALUES (:id, :title, :type, :status, :assigned_to, :document_assignee_id, :deadline,
			:description, :priority, :completion_date, :process_number, :prisoner_name, :created_at, :updated_at)`, row)
	return err
}

func (r *Repo) InsertAccessLog(ctx context.Context, tx *sqlx.Tx, row AccessLogRow) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO access_logs (id, user_id, matricula, login_time, logout_time, ip_address,
			user_agent, session_active, login_success, created_at, updated_at)
		VALUES (:id, :user_id, :matricula, :login_time, :logout_time, :ip_address,
			:user_agent, :session_active, :login_success, :created_at, :updated_at)`, row)
	return err
}

// ResyncSequences realigns each serial sequence with the restored ids so the
// next organic insert does not collide.
func (r *Repo) ResyncSequences(ctx context.Context, tx *sqlx.Tx) error {
	for _, table := range []string{"users", "document_assignees", "document_types", "documents", "access_logs"} {
		q := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)`,
			table, table)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ajustar sequência de %s: %w", table, err)
		}
	}
	return nil
}

func (r *Repo) deleteWhere(ctx context.Context, query string) (int64, error) {
	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repo) ClearDocuments(ctx context.Context) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM documents`)
}

func (r *Repo) ClearDocTypes(ctx context.Context) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM document_types`)
}

func (r *Repo) ClearAssignees(ctx context.Context) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM document_assignees`)
}

func (r *Repo) ClearAccessLogs(ctx context.Context) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM access_logs`)
}

// ClearNonAdminUsers keeps administrator accounts so the system stays reachable.
func (r *Repo) ClearNonAdminUsers(ctx context.Context) (int64, error) {
	return r.deleteWhere(ctx, `DELETE FROM users WHERE role != 'admin'`)
}
