package doctype

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/seapgd/docket-core/internal/doctype/entity"
	typerepo "github.com/seapgd/docket-core/internal/doctype/repo"
)

var (
	ErrNotFound = errors.New("tipo de documento não encontrado")
	ErrInUse    = errors.New("Não é possível excluir este tipo pois há documentos associados a ele")
)

// Service encapsulates document-type business logic.
type Service struct {
	repo *typerepo.DocTypeRepo
}

func NewService(db *sqlx.DB, r *typerepo.DocTypeRepo) *Service {
	if r == nil {
		r = typerepo.NewDocTypeRepo(db)
	}
	return &Service{repo: r}
}

func (s *Service) Repo() *typerepo.DocTypeRepo { return s.repo }

// List returns every type, active or not, ordered by name.
func (s *Service) List(ctx context.Context) ([]entity.DocType, error) {
	return s.repo.List(ctx)
}

// Create inserts a type, defaulting the color when absent.
func (s *Service) Create(ctx context.Context, name, color string) (*entity.DocType, error) {
	if color == "" {
		color = entity.DefaultColor
	}
	return s.repo.Create(ctx, name, color)
}

// Update rewrites name and color.
func (s *Service) Update(ctx context.Context, id int64, name, color string) (*entity.DocType, error) {
	row, err := s.repo.Update(ctx, id, name, color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

// SetActive toggles the is_active flag.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*entity.DocType, error) {
	row, err := s.repo.SetActive(ctx, id, active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

// Delete hard-deletes a type unless documents still carry its name.
func (s *Service) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.CountDocumentsUsing(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
	}
	err = s.repo.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
