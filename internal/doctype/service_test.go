package doctype

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seapgd/docket-core/internal/doctype/entity"
)

var typeColumns = []string{"id", "name", "color", "is_active", "created_at", "updated_at"}

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewService(sqlx.NewDb(db, "sqlmock"), nil), mock
}

func TestCreateDefaultsColor(t *testing.T) {
	svc, mock := newMockService(t)
	created := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO document_types \(name, color\)`).
		WithArgs("Alvará", entity.DefaultColor).
		WillReturnRows(sqlmock.NewRows(typeColumns).
			AddRow(int64(1), "Alvará", entity.DefaultColor, true, created, created))

	row, err := svc.Create(context.Background(), "Alvará", "")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultColor, row.Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGuardedByDocuments(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE type =`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	err := svc.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnusedType(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE type =`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`DELETE FROM document_types WHERE id=\$1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.Delete(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
