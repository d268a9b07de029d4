package assignee

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/seapgd/docket-core/internal/httpapi"
)

// Handler exposes the /api/document-assignees endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db, nil), logger: logger}
}

func (h *Handler) Service() *Service { return h.svc }

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("list assignees", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao buscar responsáveis por documentos")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rows)
}

// UpsertRequest is the shared POST/PUT payload.
type UpsertRequest struct {
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	row, err := h.svc.Create(r.Context(), req.FirstName, req.LastName, req.Department, req.Position)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao criar responsável")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, row)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.PathID(w, r)
	if !ok {
		return
	}
	var req UpsertRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	row, err := h.svc.Update(r.Context(), id, req.FirstName, req.LastName, req.Department, req.Position)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao atualizar responsável")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, row)
}

// ToggleRequest is the PATCH .../toggle-status payload.
type ToggleRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (h *Handler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.PathID(w, r)
	if !ok {
		return
	}
	var req ToggleRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	row, err := h.svc.SetActive(r.Context(), id, *req.IsActive)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao atualizar status do responsável")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, row)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.PathID(w, r)
	if !ok {
		return
	}
	row, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao excluir responsável")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Responsável %s foi excluído com sucesso.", row.FullName()),
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var conflict *ConflictError
	switch {
	case errors.Is(err, ErrNotFound):
		httpapi.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
	case errors.As(err, &conflict):
		httpapi.WriteError(w, http.StatusBadRequest, conflict.Msg)
	default:
		h.logger.Errorw("assignee operation failed", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
