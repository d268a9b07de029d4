package assignee

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var assigneeColumns = []string{
	"id", "first_name", "last_name", "department", "position",
	"is_active", "created_at", "updated_at",
}

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(sqlx.NewDb(db, "sqlmock"), nil), mock
}

func assigneeRow(id int64, first, last string) *sqlmock.Rows {
	created := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(assigneeColumns).
		AddRow(id, first, last, nil, nil, true, created, created)
}

func TestDeleteGuardedByDocuments(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE document_assignee_id=\$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	_, err := svc.Delete(context.Background(), 7)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Msg, "2 documento(s)")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnreferencedAssignee(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE document_assignee_id=\$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT (.+) FROM document_assignees WHERE id=\$1`).
		WithArgs(int64(7)).
		WillReturnRows(assigneeRow(7, "João", "Silva"))
	mock.ExpectExec(`DELETE FROM document_assignees WHERE id=\$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	row, err := svc.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "João Silva", row.FullName())
	assert.NoError(t, mock.ExpectationsWereMet())
}
