package repo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/seapgd/docket-core/internal/doctype/entity"
)

// DocTypeRepo provides data access for the document_types table.
type DocTypeRepo struct {
	db *sqlx.DB
}

func NewDocTypeRepo(db *sqlx.DB) *DocTypeRepo { return &DocTypeRepo{db: db} }

// EnsureTable creates the document_types table if not exists (idempotent).
func (r *DocTypeRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS document_types (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  color TEXT NOT NULL DEFAULT '#3B82F6',
  is_active BOOLEAN NOT NULL DEFAULT true,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const typeColumns = `id, name, color, is_active, created_at, updated_at`

// List returns every type, active or not, ordered by name.
func (r *DocTypeRepo) List(ctx context.Context) ([]entity.DocType, error) {
	const q = `SELECT ` + typeColumns + ` FROM document_types ORDER BY name`
	rows := []entity.DocType{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new type and returns the stored row.
func (r *DocTypeRepo) Create(ctx context.Context, name, color string) (*entity.DocType, error) {
	const q = `INSERT INTO document_types (name, color) VALUES ($1, $2) RETURNING ` + typeColumns
	var row entity.DocType
	if err := r.db.GetContext(ctx, &row, q, name, color); err != nil {
		return nil, err
	}
	return &row, nil
}

// Update rewrites name and color and returns the row or sql.ErrNoRows.
func (r *DocTypeRepo) Update(ctx context.Context, id int64, name, color string) (*entity.DocType, error) {
	const q = `UPDATE document_types SET name=$2, color=$3, updated_at=NOW() WHERE id=$1 RETURNING ` + typeColumns
	var row entity.DocType
	if err := r.db.GetContext(ctx, &row, q, id, name, color); err != nil {
		return nil, err
	}
	return &row, nil
}

// SetActive toggles the is_active flag and returns the row.
func (r *DocTypeRepo) SetActive(ctx context.Context, id int64, active bool) (*entity.DocType, error) {
	const q = `UPDATE document_types SET is_active=$2, updated_at=NOW() WHERE id=$1 RETURNING ` + typeColumns
	var row entity.DocType
	if err := r.db.GetContext(ctx, &row, q, id, active); err != nil {
		return nil, err
	}
	return &row, nil
}

// CountDocumentsUsing counts documents whose free-text type matches this
// type's name. Documents reference types by name, so the guard joins on it.
func (r *DocTypeRepo) CountDocumentsUsing(ctx context.Context, id int64) (int, error) {
	const q = `SELECT COUNT(*) FROM documents WHERE type = (SELECT name FROM document_types WHERE id=$1)`
	var n int
	if err := r.db.GetContext(ctx, &n, q, id); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes the row. Returns sql.ErrNoRows when nothing matched.
func (r *DocTypeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM document_types WHERE id=$1`, id)
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
