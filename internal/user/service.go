package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jmoiron/sqlx"
	"github.com/seapgd/docket-core/internal/user/entity"
	userrepo "github.com/seapgd/docket-core/internal/user/repo"
)

// PasswordHasher defines the minimal hashing interface (abstract so we can
// swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

var (
	ErrNotFound           = errors.New("usuário não encontrado")
	ErrMatriculaTaken     = errors.New("matrícula já cadastrada no sistema")
	ErrDocumentsAssigned  = errors.New("documentos atribuídos ao usuário")
	ErrMissingCredentials = errors.New("matrícula e senha são obrigatórias")
)

// ConflictError carries the quantified delete-guard message.
type ConflictError struct{ Msg string }

func (e *ConflictError) Error() string { return e.Msg }

// UserService orchestrates login-user lifecycle flows.
type UserService struct {
	repo   *userrepo.UserRepo
	hasher PasswordHasher
}

func NewUserService(db *sqlx.DB, r *userrepo.UserRepo, hasher PasswordHasher) *UserService {
	if r == nil {
		r = userrepo.NewUserRepo(db)
	}
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &UserService{repo: r, hasher: hasher}
}

func (s *UserService) Repo() *userrepo.UserRepo { return s.repo }

// List returns the active users ordered by name.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.repo.ListActive(ctx)
}

// Create inserts a user after the matricula pre-check; the password is
// stored bcrypt-hashed.
func (s *UserService) Create(ctx context.Context, name string, email *string, role, matricula, password string) (*entity.User, error) {
	matricula = strings.TrimSpace(matricula)
	if matricula == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if role == "" {
		role = entity.RoleUser
	}
	taken, err := s.repo.MatriculaTaken(ctx, matricula, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrMatriculaTaken
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &entity.User{
		Name:         name,
		Email:        email,
		Role:         role,
		Matricula:    matricula,
		PasswordHash: hash,
	})
}

// Update rewrites name/email/role, optionally the matricula (pre-checked
// against other rows) and optionally the password (blank means keep).
func (s *UserService) Update(ctx context.Context, id int64, name string, email *string, role string, matricula *string, password *string) (*entity.User, error) {
	if matricula != nil {
		taken, err := s.repo.MatriculaTaken(ctx, *matricula, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrMatriculaTaken
		}
	}
	var newHash *string
	if password != nil && strings.TrimSpace(*password) != "" {
		h, err := s.hasher.Hash(*password)
		if err != nil {
			return nil, err
		}
		newHash = &h
	}
	row, err := s.repo.Update(ctx, id, name, email, role, matricula, newHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

// SetActive toggles the is_active flag.
func (s *UserService) SetActive(ctx context.Context, id int64, active bool) (*entity.User, error) {
	row, err := s.repo.SetActive(ctx, id, active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

// Delete hard-deletes a user unless non-archived documents still reference
// it; in that case a quantified conflict is returned and nothing is removed.
func (s *UserService) Delete(ctx context.Context, id int64) (*entity.User, error) {
	n, err := s.repo.CountOpenDocuments(ctx, id)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, &ConflictError{Msg: fmt.Sprintf(
			"Não é possível excluir este usuário pois há %d documento(s) atribuído(s) a ele. Reatribua ou arquive os documentos primeiro.", n)}
	}
	row, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}
