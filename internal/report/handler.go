package report

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/seapgd/docket-core/internal/httpapi"
)

// Handler exposes the /api/reports endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db), logger: logger}
}

func (h *Handler) Service() *Service { return h.svc }

func (h *Handler) Productivity(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Productivity(r.Context())
	if err != nil {
		h.logger.Errorw("productivity report", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to generate productivity report")
		return
	}
	// the report reflects the present moment and must never be cached
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	httpapi.WriteJSON(w, http.StatusOK, rep)
}

func (h *Handler) ProductivityExcel(w http.ResponseWriter, r *http.Request) {
	rep, err := h.svc.Productivity(r.Context())
	if err != nil {
		h.logger.Errorw("productivity report", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to generate productivity report")
		return
	}
	data, err := ToExcel(rep)
	if err != nil {
		h.logger.Errorw("productivity export", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to export productivity report")
		return
	}
	filename := fmt.Sprintf("relatorio-produtividade-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
