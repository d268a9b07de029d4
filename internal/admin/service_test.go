package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accesslogrepo "github.com/seapgd/docket-core/internal/accesslog/repo"
)

var stamp = time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewService(NewRepo(sqlxDB), accesslogrepo.NewAccessLogRepo(sqlxDB)), mock
}

func userRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "email", "role", "matricula", "password_hash",
		"is_active", "created_at", "updated_at",
	})
	for i, n := range names {
		rows.AddRow(int64(i+1), n, nil, "user", "1000"+n, "hash", true, stamp, stamp)
	}
	return rows
}

func emptyRows(cols ...string) *sqlmock.Rows { return sqlmock.NewRows(cols) }

func expectExportQueries(mock sqlmock.Sqlmock, users *sqlmock.Rows) {
	mock.ExpectQuery(`SELECT \* FROM users ORDER BY id`).WillReturnRows(users)
	mock.ExpectQuery(`SELECT \* FROM document_assignees ORDER BY id`).
		WillReturnRows(emptyRows("id", "first_name", "last_name", "department", "position", "is_active", "created_at", "updated_at"))
	mock.ExpectQuery(`SELECT \* FROM document_types ORDER BY id`).
		WillReturnRows(emptyRows("id", "name", "color", "is_active", "created_at", "updated_at"))
	mock.ExpectQuery(`SELECT \* FROM documents ORDER BY id`).
		WillReturnRows(emptyRows("id", "title", "type", "status", "assigned_to", "document_assignee_id",
			"deadline", "description", "priority", "completion_date", "process_number", "prisoner_name",
			"created_at", "updated_at"))
	mock.ExpectQuery(`SELECT \* FROM access_logs ORDER BY id`).
		WillReturnRows(emptyRows("id", "user_id", "matricula", "login_time", "logout_time", "ip_address",
			"user_agent", "session_active", "login_success", "created_at", "updated_at"))
}

func TestExportEnvelope(t *testing.T) {
	svc, mock := newMockService(t)
	svc.now = func() time.Time { return stamp }
	expectExportQueries(mock, userRows("Maria", "Chefe"))

	b, err := svc.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SystemName, b.Metadata.SystemName)
	assert.Equal(t, BackupVersion, b.Metadata.Version)
	assert.NotEmpty(t, b.Metadata.BackupID)
	assert.Equal(t, stamp.UTC(), b.Metadata.ExportDate)
	assert.Equal(t, 2, b.Metadata.TotalRecords.Users)
	assert.Zero(t, b.Metadata.TotalRecords.Documents)
	assert.Len(t, b.Data.Users, 2)
	assert.Equal(t, "hash", b.Data.Users[0].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func sampleBackup() *Backup {
	return &Backup{
		Data: BackupData{
			Users: []UserRow{{
				ID: 1, Name: "Maria", Role: "admin", Matricula: "12345",
				PasswordHash: "hash", IsActive: true, CreatedAt: stamp, UpdatedAt: stamp,
			}},
			DocumentTypes: []DocTypeRow{{
				ID: 1, Name: "Alvará", Color: "#3B82F6", IsActive: true, CreatedAt: stamp, UpdatedAt: stamp,
			}},
		},
	}
}

func TestImportRunsInSingleTransaction(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	for range [5]int{} {
		mock.ExpectExec(`DELETE FROM`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO document_types`).WillReturnResult(sqlmock.NewResult(1, 1))
	for range [5]int{} {
		mock.ExpectExec(`SELECT setval`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	counts, err := svc.Import(context.Background(), sampleBackup(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Users)
	assert.Equal(t, 1, counts.DocumentTypes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportRollsBackOnFailure(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	for range [5]int{} {
		mock.ExpectExec(`DELETE FROM`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(`INSERT INTO users`).WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	_, err := svc.Import(context.Background(), sampleBackup(), true)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImportWithoutClearSkipsDeletes(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO users`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO document_types`).WillReturnResult(sqlmock.NewResult(1, 1))
	for range [5]int{} {
		mock.ExpectExec(`SELECT setval`).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	_, err := svc.Import(context.Background(), sampleBackup(), false)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearUsersPreservesAdmins(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectExec(`DELETE FROM users WHERE role != 'admin'`).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := svc.ClearUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
