package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/seapgd/docket-core/internal/document/entity"
)

// DocumentRepo provides data access for the documents table.
type DocumentRepo struct {
	db *sqlx.DB
}

func NewDocumentRepo(db *sqlx.DB) *DocumentRepo { return &DocumentRepo{db: db} }

// EnsureTable creates the documents table if not exists (idempotent).
// assigned_to / document_assignee_id carry no foreign keys; referential
// integrity is guarded by pre-delete checks only.
func (r *DocumentRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS documents (
  id BIGSERIAL PRIMARY KEY,
  title TEXT NOT NULL,
  type TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Em Andamento',
  assigned_to BIGINT,
  document_assignee_id BIGINT,
  deadline TIMESTAMPTZ,
  description TEXT,
  priority TEXT NOT NULL DEFAULT 'normal',
  completion_date TIMESTAMPTZ,
  process_number TEXT,
  prisoner_name TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
CREATE INDEX IF NOT EXISTS idx_documents_assigned_to ON documents(assigned_to);
CREATE INDEX IF NOT EXISTS idx_documents_assignee ON documents(document_assignee_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

const documentColumns = `id, title, type, status, assigned_to, document_assignee_id, deadline,
	description, priority, completion_date, process_number, prisoner_name, created_at, updated_at`

// ListWithNames returns every document (archived included) joined with the
// responsible display names, newest first.
func (r *DocumentRepo) ListWithNames(ctx context.Context) ([]entity.DocumentWithNames, error) {
	const q = `SELECT d.id, d.title, d.type, d.status, d.assigned_to, d.document_assignee_id,
		d.deadline, d.description, d.priority, d.completion_date, d.process_number,
		d.prisoner_name, d.created_at, d.updated_at,
		u.name AS assigned_user_name,
		CASE WHEN da.id IS NULL THEN NULL ELSE da.first_name || ' ' || da.last_name END AS assigned_assignee_name,
		da.department AS assignee_department,
		da.position AS assignee_position
	FROM documents d
	LEFT JOIN users u ON d.assigned_to = u.id
	LEFT JOIN document_assignees da ON d.document_assignee_id = da.id
	ORDER BY d.created_at DESC`
	rows := []entity.DocumentWithNames{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActive returns all non-archived documents.
func (r *DocumentRepo) ListActive(ctx context.Context) ([]entity.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE status != 'Arquivado'`
	rows := []entity.Document{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListArchived returns all archived documents.
func (r *DocumentRepo) ListArchived(ctx context.Context) ([]entity.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE status = 'Arquivado'`
	rows := []entity.Document{}
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID fetches one row or sql.ErrNoRows.
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id=$1`
	var row entity.Document
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new document (status defaults to Em Andamento) and
// returns the stored row.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) (*entity.Document, error) {
	const q = `INSERT INTO documents
		(title, type, assigned_to, document_assignee_id, deadline, description, priority, process_number, prisoner_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING ` + documentColumns
	var row entity.Document
	err := r.db.GetContext(ctx, &row, q,
		d.Title, d.Type, d.AssignedTo, d.DocumentAssigneeID, d.Deadline,
		d.Description, d.Priority, d.ProcessNumber, d.PrisonerName)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Replace rewrites every editable column, status and completion date
// included. The caller is responsible for computing both. Returns the row or
// sql.ErrNoRows.
func (r *DocumentRepo) Replace(ctx context.Context, d *entity.Document) (*entity.Document, error) {
	const q = `UPDATE documents SET
		title=$2, type=$3, assigned_to=$4, document_assignee_id=$5, deadline=$6,
		description=$7, priority=$8, status=$9, completion_date=$10,
		process_number=$11, prisoner_name=$12, updated_at=NOW()
		WHERE id=$1 RETURNING ` + documentColumns
	var row entity.Document
	err := r.db.GetContext(ctx, &row, q,
		d.ID, d.Title, d.Type, d.AssignedTo, d.DocumentAssigneeID, d.Deadline,
		d.Description, d.Priority, d.Status, d.CompletionDate, d.ProcessNumber, d.PrisonerName)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SetStatus updates status and completion date only. Returns the row or
// sql.ErrNoRows.
func (r *DocumentRepo) SetStatus(ctx context.Context, id int64, status string, completionDate *time.Time) (*entity.Document, error) {
	const q = `UPDATE documents SET status=$2, completion_date=$3, updated_at=NOW()
		WHERE id=$1 RETURNING ` + documentColumns
	var row entity.Document
	if err := r.db.GetContext(ctx, &row, q, id, status, completionDate); err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the row. Returns sql.ErrNoRows when nothing matched.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id=$1`, id)
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
