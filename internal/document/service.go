package document

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/seapgd/docket-core/internal/document/entity"
	docrepo "github.com/seapgd/docket-core/internal/document/repo"
)

var (
	ErrNotFound          = errors.New("documento não encontrado")
	ErrInvalidStatus     = errors.New("status inválido")
	ErrInvalidTransition = errors.New("transição de status não permitida")
	ErrInvalidPriority   = errors.New("prioridade inválida")
)

// Service encapsulates document lifecycle rules: the status chain
// Em Andamento -> Concluído -> Arquivado (with unarchive back to Concluído)
// and completion-date bookkeeping.
type Service struct {
	repo *docrepo.DocumentRepo
	now  func() time.Time
}

func NewService(db *sqlx.DB, r *docrepo.DocumentRepo) *Service {
	if r == nil {
		r = docrepo.NewDocumentRepo(db)
	}
	return &Service{repo: r, now: time.Now}
}

func (s *Service) Repo() *docrepo.DocumentRepo { return s.repo }

// WithClock overrides the service clock; tests use it to pin time.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List returns every document joined with responsible names, newest first.
func (s *Service) List(ctx context.Context) ([]entity.DocumentWithNames, error) {
	return s.repo.ListWithNames(ctx)
}

func validPriority(p string) bool {
	return p == entity.PriorityLow || p == entity.PriorityNormal || p == entity.PriorityHigh
}

// Create inserts a document with status Em Andamento.
func (s *Service) Create(ctx context.Context, d *entity.Document) (*entity.Document, error) {
	if d.Priority == "" {
		d.Priority = entity.PriorityNormal
	}
	if !validPriority(d.Priority) {
		return nil, ErrInvalidPriority
	}
	return s.repo.Create(ctx, d)
}

// completionDateFor applies the completion-date rule for a transition:
// entering Concluído from Em Andamento stamps now; every other move keeps
// whatever was previously set. Unarchiving in particular never clears it.
func (s *Service) completionDateFor(cur *entity.Document, newStatus string) *time.Time {
	if newStatus == entity.StatusCompleted && cur.Status == entity.StatusInProgress {
		t := s.now()
		return &t
	}
	return cur.CompletionDate
}

// Replace performs the full PUT update. A provided status must follow the
// transition chain; an absent status keeps the current one.
func (s *Service) Replace(ctx context.Context, id int64, d *entity.Document, status *string) (*entity.Document, error) {
	if d.Priority == "" {
		d.Priority = entity.PriorityNormal
	}
	if !validPriority(d.Priority) {
		return nil, ErrInvalidPriority
	}
	cur, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	d.ID = id
	d.Status = cur.Status
	d.CompletionDate = cur.CompletionDate
	if status != nil {
		if !entity.ValidStatus(*status) {
			return nil, ErrInvalidStatus
		}
		if !entity.ValidTransition(cur.Status, *status) {
			return nil, ErrInvalidTransition
		}
		d.CompletionDate = s.completionDateFor(cur, *status)
		d.Status = *status
	}

	row, err := s.repo.Replace(ctx, d)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

// SetStatus performs the PATCH status transition.
func (s *Service) SetStatus(ctx context.Context, id int64, status string) (*entity.Document, error) {
	if !entity.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	cur, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !entity.ValidTransition(cur.Status, status) {
		return nil, ErrInvalidTransition
	}
	row, err := s.repo.SetStatus(ctx, id, status, s.completionDateFor(cur, status))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return row, err
}

// Delete removes a document and returns the deleted row for the echo message.
func (s *Service) Delete(ctx context.Context, id int64) (*entity.Document, error) {
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
