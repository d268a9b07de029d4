package document

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/seapgd/docket-core/internal/document/entity"
	"github.com/seapgd/docket-core/internal/httpapi"
)

// Handler exposes the /api/documents endpoints.
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
		h.logger.Errorw("list documents", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao buscar documentos")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rows)
}

// UpsertRequest is the shared POST/PUT payload. Deadlines arrive as date or
// RFC3339 strings from the dashboard forms. Status is honored on PUT only.
type UpsertRequest struct {
	Title              string  `json:"title" validate:"required"`
	Type               string  `json:"type" validate:"required"`
	AssignedTo         *int64  `json:"assigned_to"`
	DocumentAssigneeID *int64  `json:"document_assignee_id"`
	Deadline           *string `json:"deadline"`
	Description        *string `json:"description"`
	Priority           string  `json:"priority"`
	Status             *string `json:"status"`
	ProcessNumber      *string `json:"process_number"`
	PrisonerName       *string `json:"prisoner_name"`
}

func (req *UpsertRequest) toEntity() (*entity.Document, error) {
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return nil, err
	}
	return &entity.Document{
		Title:              req.Title,
		Type:               req.Type,
		AssignedTo:         req.AssignedTo,
		DocumentAssigneeID: req.DocumentAssigneeID,
		Deadline:           deadline,
		Description:        req.Description,
		Priority:           req.Priority,
		ProcessNumber:      req.ProcessNumber,
		PrisonerName:       req.PrisonerName,
	}, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t, nil
		}
	}
	return nil, httpapi.ErrInvalidPayload
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	doc, err := req.toEntity()
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	row, err := h.svc.Create(r.Context(), doc)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao criar documento")
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
	doc, err := req.toEntity()
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	row, err := h.svc.Replace(r.Context(), id, doc, req.Status)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao atualizar documento")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, row)
}

// StatusRequest is the PATCH .../status payload.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httpapi.PathID(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	row, err := h.svc.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeServiceError(w, err, "Erro ao atualizar documento")
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
		h.writeServiceError(w, err, "Erro ao excluir documento")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Documento %q foi excluído com sucesso.", row.Title),
	})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpapi.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrInvalidPriority):
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Errorw("document operation failed", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
