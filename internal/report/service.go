package report

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	assigneerepo "github.com/seapgd/docket-core/internal/assignee/repo"
	docrepo "github.com/seapgd/docket-core/internal/document/repo"
	userrepo "github.com/seapgd/docket-core/internal/user/repo"
)

// Service loads the snapshot and runs the aggregation engine. Any read
// failure aborts the whole report; there is no partial result.
type Service struct {
	docs      *docrepo.DocumentRepo
	users     *userrepo.UserRepo
	assignees *assigneerepo.AssigneeRepo
	now       func() time.Time
}

func NewService(db *sqlx.DB) *Service {
	return &Service{
		docs:      docrepo.NewDocumentRepo(db),
		users:     userrepo.NewUserRepo(db),
		assignees: assigneerepo.NewAssigneeRepo(db),
		now:       time.Now,
	}
}

// WithClock overrides the service clock; tests use it to pin time.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Productivity reads the current snapshot and builds the report.
func (s *Service) Productivity(ctx context.Context) (*ProductivityReport, error) {
	active, err := s.docs.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	archived, err := s.docs.ListArchived(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	assignees, err := s.assignees.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return BuildReport(s.now(), active, archived, users, assignees), nil
}
