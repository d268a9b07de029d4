package admin

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	accesslogrepo "github.com/seapgd/docket-core/internal/accesslog/repo"
	"github.com/seapgd/docket-core/internal/httpapi"
)

// Handler exposes the /api/admin endpoints. Everything here is mounted
// behind the admin-only middleware.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	svc := NewService(NewRepo(db), accesslogrepo.NewAccessLogRepo(db))
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Service() *Service { return h.svc }

func (h *Handler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	backup, err := h.svc.Export(r.Context())
	if err != nil {
		h.logger.Errorw("export backup", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao exportar backup")
		return
	}
	filename := fmt.Sprintf("backup-seap-%s.json", backup.Metadata.ExportDate.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	httpapi.WriteJSON(w, http.StatusOK, backup)
}

type importRequest struct {
	Backup            *Backup `json:"backup" validate:"required"`
	ClearBeforeImport *bool   `json:"clearBeforeImport"`
}

func (h *Handler) ImportBackup(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Backup inválido ou ausente")
		return
	}
	clearFirst := true
	if req.ClearBeforeImport != nil {
		clearFirst = *req.ClearBeforeImport
	}
	counts, err := h.svc.Import(r.Context(), req.Backup, clearFirst)
	if err != nil {
		h.logger.Errorw("import backup", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao importar backup. Nenhuma alteração foi aplicada.")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Backup importado com sucesso",
		"imported": counts,
	})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request, what string, fn func() (int64, error)) {
	n, err := fn()
	if err != nil {
		h.logger.Errorw("clear records", "target", what, "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao limpar "+what)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("%d registro(s) de %s removido(s)", n, what),
		"deleted": n,
	})
}

func (h *Handler) ClearDocuments(w http.ResponseWriter, r *http.Request) {
	h.clear(w, r, "documentos", func() (int64, error) { return h.svc.ClearDocuments(r.Context()) })
}

func (h *Handler) ClearDocTypes(w http.ResponseWriter, r *http.Request) {
	h.clear(w, r, "tipos de documento", func() (int64, error) { return h.svc.ClearDocTypes(r.Context()) })
}

func (h *Handler) ClearAssignees(w http.ResponseWriter, r *http.Request) {
	h.clear(w, r, "responsáveis", func() (int64, error) { return h.svc.ClearAssignees(r.Context()) })
}

func (h *Handler) ClearAccessLogs(w http.ResponseWriter, r *http.Request) {
	h.clear(w, r, "logs de acesso", func() (int64, error) { return h.svc.ClearAccessLogs(r.Context()) })
}

func (h *Handler) ClearUsers(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.ClearUsers(r.Context())
	if err != nil {
		h.logger.Errorw("clear users", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao limpar usuários")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("%d usuário(s) removido(s). Administradores foram preservados.", n),
		"deleted": n,
	})
}

func (h *Handler) ResetSystem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ResetSystem(r.Context()); err != nil {
		h.logger.Errorw("reset system", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao resetar o sistema")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Sistema resetado com sucesso",
	})
}

func (h *Handler) AccessLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.svc.RecentAccessLogs(r.Context())
	if err != nil {
		h.logger.Errorw("list access logs", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao listar logs de acesso")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, logs)
}
