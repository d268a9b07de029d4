package repo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/seapgd/docket-core/internal/assignee/entity"
)

// AssigneeRepo provides data access for the document_assignees table.
type AssigneeRepo struct {
	db *sqlx.DB
}

func NewAssigneeRepo(db *sqlx.DB) *AssigneeRepo { return &AssigneeRepo{db: db} }

// EnsureTable creates the document_assignees table if not exists (idempotent).
func (r *AssigneeRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS document_assignees (
  id BIGSERIAL PRIMARY KEY,
  first_name TEXT NOT NULL,
  last_name TEXT NOT NULL,
  department TEXT,
  position TEXT,
  is_active BOOLEAN NOT NULL DEFAULT true,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const assigneeColumns = `id, first_name, last_name, department, position, is_active, created_at, updated_at`

// ListActive returns active assignees ordered by name.
func (r *AssigneeRepo) ListActive(ctx context.Context) ([]entity.Assignee, error) {
	const q = `SELECT ` + assigneeColumns + ` FROM document_assignees WHERE is_active = true ORDER BY first_name, last_name`
	rows := []entity.Assignee{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID fetches one row or sql.ErrNoRows.
func (r *AssigneeRepo) GetByID(ctx context.Context, id int64) (*entity.Assignee, error) {
	const q = `SELECT ` + assigneeColumns + ` FROM document_assignees WHERE id=$1`
	var row entity.Assignee
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new assignee and returns the stored row.
func (r *AssigneeRepo) Create(ctx context.Context, a *entity.Assignee) (*entity.Assignee, error) {
	const q = `INSERT INTO document_assignees (first_name, last_name, department, position)
		VALUES ($1, $2, $3, $4) RETURNING ` + assigneeColumns
	var row entity.Assignee
	if err := r.db.GetContext(ctx, &row, q, a.FirstName, a.LastName, a.Department, a.Position); err != nil {
		return nil, err
	}
	return &row, nil
}

// Update rewrites the editable fields and returns the row or sql.ErrNoRows.
func (r *AssigneeRepo) Update(ctx context.Context, id int64, firstName, lastName string, department, position *string) (*entity.Assignee, error) {
	const q = `UPDATE document_assignees
		SET first_name=$2, last_name=$3, department=$4, position=$5, updated_at=NOW()
		WHERE id=$1 RETURNING ` + assigneeColumns
	var row entity.Assignee
	if err := r.db.GetContext(ctx, &row, q, id, firstName, lastName, department, position); err != nil {
		return nil, err
	}
	return &row, nil
}

// SetActive toggles the is_active flag and returns the row.
func (r *AssigneeRepo) SetActive(ctx context.Context, id int64, active bool) (*entity.Assignee, error) {
	const q = `UPDATE document_assignees SET is_active=$2, updated_at=NOW() WHERE id=$1 RETURNING ` + assigneeColumns
	var row entity.Assignee
	if err := r.db.GetContext(ctx, &row, q, id, active); err != nil {
		return nil, err
	}
	return &row, nil
}

// CountOpenDocuments counts non-archived documents referencing the assignee.
func (r *AssigneeRepo) CountOpenDocuments(ctx context.Context, id int64) (int, error) {
	const q = `SELECT COUNT(*) FROM documents WHERE document_assignee_id=$1 AND status != 'Arquivado'`
	var n int
	if err := r.db.GetContext(ctx, &n, q, id); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes the row. Returns sql.ErrNoRows when nothing matched.
func (r *AssigneeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM document_assignees WHERE id=$1`, id)
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
