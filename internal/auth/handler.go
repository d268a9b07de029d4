package auth

import (
	"errors"
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/seapgd/docket-core/internal/httpapi"
)

// Handler exposes the /api/auth endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(db *sqlx.DB, sessions *Sessions, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: NewService(db, sessions, LegacyConfigFromEnv()), logger: logger}
}

// LoginRequest is the matricula+password payload.
type LoginRequest struct {
	Matricula string `json:"matricula" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	u, token, err := h.svc.Login(r.Context(), req.Matricula, req.Password, httpapi.ClientIP(r), r.UserAgent())
	if err != nil {
		var unknown *UnknownMatriculaError
		var wrongPw *WrongPasswordError
		if errors.As(err, &unknown) || errors.As(err, &wrongPw) {
			httpapi.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Errorw("login failed", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    u.Public(),
		"token":   token,
		"message": "Login realizado com sucesso",
	})
}

// LegacyLoginRequest is the shared-secret payload.
type LegacyLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

func (h *Handler) LoginLegacy(w http.ResponseWriter, r *http.Request) {
	var req LegacyLoginRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	userType, token, err := h.svc.LoginLegacy(req.Password)
	if err != nil {
		if errors.Is(err, ErrLegacyPassword) {
			httpapi.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.logger.Errorw("legacy login failed", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"userType": userType,
		"token":    token,
	})
}

// LogoutRequest optionally names the matricula whose sessions close.
type LogoutRequest struct {
	Matricula string `json:"matricula"`
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	// body is optional; a missing or empty one is a bare logout
	_ = httpapi.Decode(r, &req)
	if err := h.svc.Logout(r.Context(), req.Matricula); err != nil {
		h.logger.Errorw("logout failed", "err", err)
		httpapi.WriteError(w, http.StatusInternalServerError, "Erro ao fazer logout")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
