package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/seapgd/docket-core/internal/accesslog/entity"
	accesslogrepo "github.com/seapgd/docket-core/internal/accesslog/repo"
	"github.com/seapgd/docket-core/pkg/utilities"
)

// Service implements backup export/restore and the destructive maintenance
// operations. Everything here is admin-only at the router.
type Service struct {
	repo *Repo
	logs *accesslogrepo.AccessLogRepo
	now  func() time.Time
}

func NewService(repo *Repo, logs *accesslogrepo.AccessLogRepo) *Service {
	return &Service{repo: repo, logs: logs, now: time.Now}
}

// Export dumps every table into a self-describing envelope.
func (s *Service) Export(ctx context.Context) (*Backup, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar usuários: %w", err)
	}
	assignees, err := s.repo.ListAssignees(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar responsáveis: %w", err)
	}
	types, err := s.repo.ListDocTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar tipos: %w", err)
	}
	docs, err := s.repo.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar documentos: %w", err)
	}
	logs, err := s.repo.ListAccessLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar logs de acesso: %w", err)
	}

	return &Backup{
		Metadata: BackupMetadata{
			ExportDate: s.now().UTC(),
			SystemName: SystemName,
			Version:    BackupVersion,
			BackupID:   utilities.NewSnowflakeID(),
			TotalRecords: RecordCounts{
				Users:             len(users),
				DocumentAssignees: len(assignees),
				DocumentTypes:     len(types),
				Documents:         len(docs),
				AccessLogs:        len(logs),
			},
		},
		Data: BackupData{
			Users:             users,
			DocumentAssignees: assignees,
			DocumentTypes:     types,
			Documents:         docs,
			AccessLogs:        logs,
		},
	}, nil
}

// Import restores a backup inside a single transaction. With clearFirst the
// current contents are wiped before the restore; any failure rolls the whole
// import back, leaving the database untouched.
func (s *Service) Import(ctx context.Context, b *Backup, clearFirst bool) (RecordCounts, error) {
	var counts RecordCounts

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return counts, fmt.Errorf("iniciar transação: %w", err)
	}
	defer tx.Rollback()

	if clearFirst {
		if err := s.repo.ClearAll(ctx, tx); err != nil {
			return counts, err
		}
	}

	for _, row := range b.Data.Users {
		if err := s.repo.InsertUser(ctx, tx, row); err != nil {
			return counts, fmt.Errorf("restaurar usuário %d: %w", row.ID, err)
		}
		counts.Users++
	}
	for _, row := range b.Data.DocumentAssignees {
		if err := s.repo.InsertAssignee(ctx, tx, row); err != nil {
			return counts, fmt.Errorf("restaurar responsável %d: %w", row.ID, err)
		}
		counts.DocumentAssignees++
	}
	for _, row := range b.Data.DocumentTypes {
		if err := s.repo.InsertDocType(ctx, tx, row); err != nil {
			return counts, fmt.Errorf("restaurar tipo %d: %w", row.ID, err)
		}
		counts.DocumentTypes++
	}
	for _, row := range b.Data.Documents {
		if err := s.repo.InsertDocument(ctx, tx, row); err != nil {
			return counts, fmt.Errorf("restaurar documento %d: %w", row.ID, err)
		}
		counts.Documents++
	}
	for _, row := range b.Data.AccessLogs {
		if err := s.repo.InsertAccessLog(ctx, tx, row); err != nil {
			return counts, fmt.Errorf("restaurar log de acesso %d: %w", row.ID, err)
		}
		counts.AccessLogs++
	}

	if err := s.repo.ResyncSequences(ctx, tx); err != nil {
		return counts, err
	}
	if err := tx.Commit(); err != nil {
		return counts, fmt.Errorf("confirmar transação: %w", err)
	}
	return counts, nil
}

func (s *Service) ClearDocuments(ctx context.Context) (int64, error) {
	return s.repo.ClearDocuments(ctx)
}

func (s *Service) ClearDocTypes(ctx context.Context) (int64, error) {
	return s.repo.ClearDocTypes(ctx)
}

func (s *Service) ClearAssignees(ctx context.Context) (int64, error) {
	return s.repo.ClearAssignees(ctx)
}

func (s *Service) ClearAccessLogs(ctx context.Context) (int64, error) {
	return s.repo.ClearAccessLogs(ctx)
}

func (s *Service) ClearUsers(ctx context.Context) (int64, error) {
	return s.repo.ClearNonAdminUsers(ctx)
}

// ResetSystem wipes every table, administrators included, in one transaction.
func (s *Service) ResetSystem(ctx context.Context) error {
	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transação: %w", err)
	}
	defer tx.Rollback()

	if err := s.repo.ClearAll(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Service) RecentAccessLogs(ctx context.Context) ([]entity.AccessLogWithUser, error) {
	return s.logs.ListRecent(ctx, 100)
}
