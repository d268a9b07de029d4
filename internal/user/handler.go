package user

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/seapgd/docket-core/internal/httpapi"
)

// Handler exposes the /api/users endpoints.
type Handler struct {
	svc    *UserService
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewUserService(db, nil, nil), logger: logger}
}

func (h *Handler) Service() *UserService { return h.svc }

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("list users", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao buscar usuários")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rows)
}

// CreateRequest is the POST /api/users payload.
type CreateRequest struct {
	Name      string  `json:"name" validate:"required"`
	Email     *string `json:"email"`
	Role      string  `json:"role"`
	Matricula string  `json:"matricula" validate:"required"`
	Password  string  `json:"password" validate:"required"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	row, err := h.svc.Create(r.Context(), req.Name, req.Email, req.Role, req.Matricula, req.Password)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao criar usuário")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, row)
}

// UpdateRequest is the PUT /api/users/:id payload; matricula and password
// are optional and blank passwords are ignored.
type UpdateRequest struct {
	Name      string  `json:"name" validate:"required"`
	Email     *string `json:"email"`
	Role      string  `json:"role" validate:"required"`
	Matricula *string `json:"matricula"`
	Password  *string `json:"password"`
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
	row, err := h.svc.Update(r.Context(), id, req.Name, req.Email, req.Role, req.Matricula, req.Password)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao atualizar usuário")
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
		h.writeServiceError(w, err, "Erro ao atualizar status do usuário")
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
		h.writeServiceError(w, err, "Erro ao excluir usuário")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Usuário %s foi excluído com sucesso.", row.Name),
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	var conflict *ConflictError
	switch {
	case errors.Is(err, ErrNotFound):
		httpapi.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrMatriculaTaken), errors.Is(err, ErrMissingCredentials):
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &conflict):
		httpapi.WriteError(w, http.StatusBadRequest, conflict.Msg)
	default:
		h.logger.Errorw("user operation failed", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
