package user

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seapgd/docket-core/internal/user/entity"
)

var userColumns = []string{
	"id", "name", "email", "role", "matricula", "password_hash",
	"is_active", "created_at", "updated_at",
}

type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hash:" + pw, nil }
func (plainHasher) Verify(hash, pw string) bool    { return hash == "hash:"+pw }

func newMockService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserService(sqlx.NewDb(db, "sqlmock"), nil, plainHasher{}), mock
}

func userRow(id int64, name, matricula string) *sqlmock.Rows {
	created := time.Date(2026, time.February, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(userColumns).AddRow(
		id, name, nil, entity.RoleUser, matricula, "hash:segredo", true, created, created)
}

func TestCreateRejectsDuplicateMatricula(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT id FROM users WHERE matricula=\$1 AND id != \$2`).
		WithArgs("12345", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	_, err := svc.Create(context.Background(), "Maria Souza", nil, "", "12345", "segredo")
	assert.ErrorIs(t, err, ErrMatriculaTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateHashesPasswordAndDefaultsRole(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT id FROM users WHERE matricula=\$1 AND id != \$2`).
		WithArgs("12345", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Maria Souza", nil, entity.RoleUser, "12345", "hash:segredo").
		WillReturnRows(userRow(1, "Maria Souza", "12345"))

	row, err := svc.Create(context.Background(), "Maria Souza", nil, "", "12345", "segredo")
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", row.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequiresCredentials(t *testing.T) {
	svc, _ := newMockService(t)
	_, err := svc.Create(context.Background(), "Maria", nil, "", "  ", "segredo")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = svc.Create(context.Background(), "Maria", nil, "", "12345", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestUpdateMatriculaPreCheckExcludesSelf(t *testing.T) {
	svc, mock := newMockService(t)
	matricula := "54321"

	mock.ExpectQuery(`SELECT id FROM users WHERE matricula=\$1 AND id != \$2`).
		WithArgs("54321", int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`UPDATE users SET`).
		WithArgs("Maria Souza", nil, entity.RoleUser, "54321", int64(2)).
		WillReturnRows(userRow(2, "Maria Souza", "54321"))

	row, err := svc.Update(context.Background(), 2, "Maria Souza", nil, entity.RoleUser, &matricula, nil)
	require.NoError(t, err)
	assert.Equal(t, "54321", row.Matricula)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBlankPasswordKeepsHash(t *testing.T) {
	svc, mock := newMockService(t)
	blank := "   "

	// no password_hash column in the SET list
	mock.ExpectQuery(`UPDATE users SET name=\$1, email=\$2, role=\$3, updated_at=NOW\(\) WHERE id=\$4`).
		WithArgs("Maria Souza", nil, entity.RoleUser, int64(2)).
		WillReturnRows(userRow(2, "Maria Souza", "12345"))

	_, err := svc.Update(context.Background(), 2, "Maria Souza", nil, entity.RoleUser, nil, &blank)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGuardedByAssignedDocuments(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE assigned_to=\$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	_, err := svc.Delete(context.Background(), 4)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, conflict.Msg, "3 documento(s)")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRemovesUnreferencedUser(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE assigned_to=\$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id=\$1`).
		WithArgs(int64(4)).
		WillReturnRows(userRow(4, "Maria Souza", "12345"))
	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	row, err := svc.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Maria Souza", row.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
