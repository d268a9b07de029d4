package doctype

import (
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/seapgd/docket-core/internal/httpapi"
)

// Handler exposes the /api/document-types endpoints.
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
		h.logger.Errorw("list document types", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao buscar tipos de documentos")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rows)
}

// CreateRequest is the POST payload; color falls back to the default blue.
type CreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	row, err := h.svc.Create(r.Context(), req.Name, req.Color)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao criar tipo de documento")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, row)
}

// UpdateRequest is the PUT payload.
type UpdateRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.PathID(w, r)
	if !ok {
		return
	}
	var req UpdateRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	row, err := h.svc.Update(r.Context(), id, req.Name, req.Color)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao atualizar tipo de documento")
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
		h.writeServiceError(w, err, "Erro ao atualizar status do tipo")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, row)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.PathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, err, "Erro ao excluir tipo de documento")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpapi.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrInUse):
		httpapi.WriteError(w, http.StatusBadRequest, ErrInUse.Error())
	default:
		h.logger.Errorw("document type operation failed", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
