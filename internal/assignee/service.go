package assignee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/seapgd/docket-core/internal/assignee/entity"
	assigneerepo "github.com/seapgd/docket-core/internal/assignee/repo"
)

var ErrNotFound = errors.New("responsável não encontrado")

// ConflictError carries the quantified delete-guard message.
type ConflictError struct{ Msg string }

func (e *ConflictError) Error() string { return e.Msg }

// Service encapsulates assignee business logic.
type Service struct {
	repo *assigneerepo.AssigneeRepo
}

func NewService(db *sqlx.DB, r *assigneerepo.AssigneeRepo) *Service {
	if r == nil {
		r = assigneerepo.NewAssigneeRepo(db)
	}
	return &Service{repo: r}
}

func (s *Service) Repo() *assigneerepo.AssigneeRepo { return s.repo }

// List returns the active assignees ordered by name.
func (s *Service) List(ctx context.Context) ([]entity.Assignee, error) {
	return s.repo.ListActive(ctx)
}

// Create inserts a new assignee.
func (s *Service) Create(ctx context.Context, firstName, lastName string, department, position *string) (*entity.Assignee, error) {
	return s.repo.Create(ctx, &entity.Assignee{
		FirstName:  firstName,
		LastName:   lastName,
		Department: department,
		Position:   position,
	})
}

// Update rewrites the editable fields.
func (s *Service) Update(ctx context.Context, id int64, firstName, lastName string, department, position *string) (*entity.Assignee, error) {
	row, err := s.repo.Update(ctx, id, firstName, lastName, department, position)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

// SetActive toggles the is_active flag.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*entity.Assignee, error) {
	row, err := s.repo.SetActive(ctx, id, active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

// Delete hard-deletes an assignee unless non-archived documents still
// reference it.
func (s *Service) Delete(ctx context.Context, id int64) (*entity.Assignee, error) {
	n, err := s.repo.CountOpenDocuments(ctx, id)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, &ConflictError{Msg: fmt.Sprintf(
			"Não é possível excluir este responsável pois há %d documento(s) atribuído(s) a ele. Reatribua ou arquive os documentos primeiro.", n)}
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
