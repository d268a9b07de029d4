package document

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seapgd/docket-core/internal/document/entity"
)

var docColumns = []string{
	"id", "title", "type", "status", "assigned_to", "document_assignee_id", "deadline",
	"description", "priority", "completion_date", "process_number", "prisoner_name",
	"created_at", "updated_at",
}

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(sqlx.NewDb(db, "sqlmock"), nil), mock
}

func docRow(id int64, status string, completionDate *time.Time) *sqlmock.Rows {
	created := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(docColumns).AddRow(
		id, "Alvará de Soltura", "Alvará", status, nil, nil, nil,
		nil, entity.PriorityNormal, completionDate, nil, nil, created, created)
}

func TestSetStatusStampsCompletionDate(t *testing.T) {
	svc, mock := newMockService(t)
	stamped := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return stamped })

	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE id=\$1`).
		WithArgs(int64(7)).
		WillReturnRows(docRow(7, entity.StatusInProgress, nil))
	mock.ExpectQuery(`UPDATE documents SET status=\$2, completion_date=\$3`).
		WithArgs(int64(7), entity.StatusCompleted, stamped).
		WillReturnRows(docRow(7, entity.StatusCompleted, &stamped))

	row, err := svc.SetStatus(context.Background(), 7, entity.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, row.CompletionDate)
	assert.Equal(t, stamped, *row.CompletionDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusUnarchivePreservesCompletionDate(t *testing.T) {
	svc, mock := newMockService(t)
	completed := time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE id=\$1`).
		WithArgs(int64(3)).
		WillReturnRows(docRow(3, entity.StatusArchived, &completed))
	mock.ExpectQuery(`UPDATE documents SET status=\$2, completion_date=\$3`).
		WithArgs(int64(3), entity.StatusCompleted, completed).
		WillReturnRows(docRow(3, entity.StatusCompleted, &completed))

	row, err := svc.SetStatus(context.Background(), 3, entity.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, row.CompletionDate)
	assert.Equal(t, completed, *row.CompletionDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusReopenPreservesCompletionDate(t *testing.T) {
	svc, mock := newMockService(t)
	completed := time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE id=\$1`).
		WithArgs(int64(3)).
		WillReturnRows(docRow(3, entity.StatusCompleted, &completed))
	mock.ExpectQuery(`UPDATE documents SET status=\$2, completion_date=\$3`).
		WithArgs(int64(3), entity.StatusInProgress, completed).
		WillReturnRows(docRow(3, entity.StatusInProgress, &completed))

	_, err := svc.SetStatus(context.Background(), 3, entity.StatusInProgress)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusRejectsInvalidTransition(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE id=\$1`).
		WithArgs(int64(5)).
		WillReturnRows(docRow(5, entity.StatusInProgress, nil))

	_, err := svc.SetStatus(context.Background(), 5, entity.StatusArchived)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newMockService(t)
	_, err := svc.SetStatus(context.Background(), 5, "Pendente")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSetStatusNotFound(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE id=\$1`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.SetStatus(context.Background(), 99, entity.StatusCompleted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRejectsInvalidPriority(t *testing.T) {
	svc, _ := newMockService(t)
	_, err := svc.Create(context.Background(), &entity.Document{
		Title: "Ofício 12", Type: "Ofício", Priority: "urgente",
	})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestReplaceKeepsStatusWhenAbsent(t *testing.T) {
	svc, mock := newMockService(t)
	completed := time.Date(2026, time.January, 20, 15, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT (.+) FROM documents WHERE id=\$1`).
		WithArgs(int64(4)).
		WillReturnRows(docRow(4, entity.StatusCompleted, &completed))
	mock.ExpectQuery(`UPDATE documents SET`).
		WithArgs(int64(4), "Alvará de Soltura", "Alvará", nil, nil, nil,
			nil, entity.PriorityNormal, entity.StatusCompleted, completed, nil, nil).
		WillReturnRows(docRow(4, entity.StatusCompleted, &completed))

	row, err := svc.Replace(context.Background(), 4, &entity.Document{
		Title: "Alvará de Soltura", Type: "Alvará",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, row.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
