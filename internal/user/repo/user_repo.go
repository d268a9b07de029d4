package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/seapgd/docket-core/internal/user/entity"
)

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the users table if not exists (idempotent).
// Matricula uniqueness is enforced by an explicit pre-insert lookup in the
// service layer, not a constraint, so conflicts surface as 400s.
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT,
  role TEXT NOT NULL DEFAULT 'user',
  matricula TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  is_active BOOLEAN NOT NULL DEFAULT true,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_users_matricula ON users(matricula);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const userColumns = `id, name, email, role, matricula, password_hash, is_active, created_at, updated_at`

// ListActive returns active users ordered by name.
func (r *UserRepo) ListActive(ctx context.Context) ([]entity.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE is_active = true ORDER BY name`
	rows := []entity.User{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID fetches a full user row or sql.ErrNoRows.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// GetActiveByMatricula fetches the active user for a badge number, for login.
func (r *UserRepo) GetActiveByMatricula(ctx context.Context, matricula string) (*entity.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE matricula=$1 AND is_active = true`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, matricula); err != nil {
		return nil, err
	}
	return &row, nil
}

// MatriculaTaken reports whether another row (id != excludeID) already holds
// the matricula. Pass excludeID=0 for inserts.
func (r *UserRepo) MatriculaTaken(ctx context.Context, matricula string, excludeID int64) (bool, error) {
	const q = `SELECT id FROM users WHERE matricula=$1 AND id != $2 LIMIT 1`
	var id int64
	err := r.db.GetContext(ctx, &id, q, matricula, excludeID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a new user row and returns it.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	const q = `INSERT INTO users (name, email, role, matricula, password_hash)
		VALUES ($1, $2, $3, $4, $5) RETURNING ` + userColumns
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, u.Name, u.Email, u.Role, u.Matricula, u.PasswordHash); err != nil {
		return nil, err
	}
	return &row, nil
}

// Update rewrites name/email/role and, when non-nil, matricula and password
// hash. Returns the updated row or sql.ErrNoRows.
func (r *UserRepo) Update(ctx context.Context, id int64, name string, email *string, role string, matricula *string, passwordHash *string) (*entity.User, error) {
	sets := []string{"name=$1", "email=$2", "role=$3", "updated_at=NOW()"}
	args := []any{name, email, role}
	if matricula != nil {
		args = append(args, *matricula)
		sets = append(sets, fmt.Sprintf("matricula=$%d", len(args)))
	}
	if passwordHash != nil {
		args = append(args, *passwordHash)
		sets = append(sets, fmt.Sprintf("password_hash=$%d", len(args)))
	}
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE users SET %s WHERE id=$%d RETURNING `+userColumns, strings.Join(sets, ", "), len(args))
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, args...); err != nil {
		return nil, err
	}
	return &row, nil
}

// SetActive toggles the is_active flag and returns the row.
func (r *UserRepo) SetActive(ctx context.Context, id int64, active bool) (*entity.User, error) {
	const q = `UPDATE users SET is_active=$2, updated_at=NOW() WHERE id=$1 RETURNING ` + userColumns
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, id, active); err != nil {
		return nil, err
	}
	return &row, nil
}

// CountOpenDocuments counts non-archived documents assigned to the user,
// used as the delete guard.
func (r *UserRepo) CountOpenDocuments(ctx context.Context, id int64) (int, error) {
	const q = `SELECT COUNT(*) FROM documents WHERE assigned_to=$1 AND status != 'Arquivado'`
	var n int
	if err := r.db.GetContext(ctx, &n, q, id); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes the row. Returns sql.ErrNoRows when nothing matched.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
