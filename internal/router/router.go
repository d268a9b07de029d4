package router

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/seapgd/docket-core/internal/admin"
	"github.com/seapgd/docket-core/internal/assignee"
	"github.com/seapgd/docket-core/internal/auth"
	"github.com/seapgd/docket-core/internal/doctype"
	"github.com/seapgd/docket-core/internal/document"
	"github.com/seapgd/docket-core/internal/report"
	"github.com/seapgd/docket-core/internal/user"
	"github.com/seapgd/docket-core/pkg/utilities"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"request_id", w.Header().Get("X-Request-Id"),
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// RequestIDMiddleware tags every response with a ksuid so log lines can be
// correlated with client reports.
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = utilities.NewKSUID()
			}
			w.Header().Set("X-Request-Id", id)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
// It is intentionally simple and conservative so it works with most setups.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self';")
			}
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
// Authenticated routes sit behind the session middleware; /api/admin
// additionally requires the admin role.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB, sessions *auth.Sessions) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	authHandler := auth.NewHandler(db, sessions, logger)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/login-legacy", authHandler.LoginLegacy)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)

	session := auth.RequireSession(sessions)
	protect := func(h http.HandlerFunc) http.Handler { return session(h) }
	protectAdmin := func(h http.HandlerFunc) http.Handler { return session(auth.RequireAdmin(h)) }

	docHandler := document.NewHandler(db, logger)
	mux.Handle("GET /api/documents", protect(docHandler.List))
	mux.Handle("POST /api/documents", protect(docHandler.Create))
	mux.Handle("PUT /api/documents/{id}", protect(docHandler.Update))
	mux.Handle("PATCH /api/documents/{id}/status", protect(docHandler.SetStatus))
	mux.Handle("DELETE /api/documents/{id}", protect(docHandler.Delete))

	userHandler := user.NewHandler(db, logger)
	mux.Handle("GET /api/users", protect(userHandler.List))
	mux.Handle("POST /api/users", protect(userHandler.Create))
	mux.Handle("PUT /api/users/{id}", protect(userHandler.Update))
	mux.Handle("PATCH /api/users/{id}/toggle-status", protect(userHandler.ToggleStatus))
	mux.Handle("DELETE /api/users/{id}", protect(userHandler.Delete))

	typeHandler := doctype.NewHandler(db, logger)
	mux.Handle("GET /api/document-types", protect(typeHandler.List))
	mux.Handle("POST /api/document-types", protect(typeHandler.Create))
	mux.Handle("PUT /api/document-types/{id}", protect(typeHandler.Update))
	mux.Handle("PATCH /api/document-types/{id}/toggle-status", protect(typeHandler.ToggleStatus))
	mux.Handle("DELETE /api/document-types/{id}", protect(typeHandler.Delete))

	assigneeHandler := assignee.NewHandler(db, logger)
	mux.Handle("GET /api/document-assignees", protect(assigneeHandler.List))
	mux.Handle("POST /api/document-assignees", protect(assigneeHandler.Create))
	mux.Handle("PUT /api/document-assignees/{id}", protect(assigneeHandler.Update))
	mux.Handle("PATCH /api/document-assignees/{id}/toggle-status", protect(assigneeHandler.ToggleStatus))
	mux.Handle("DELETE /api/document-assignees/{id}", protect(assigneeHandler.Delete))

	reportHandler := report.NewHandler(db, logger)
	mux.Handle("GET /api/reports/productivity", protect(reportHandler.Productivity))
	mux.Handle("GET /api/reports/productivity/export", protect(reportHandler.ProductivityExcel))

	adminHandler := admin.NewHandler(db, logger)
	mux.Handle("GET /api/admin/access-logs", protectAdmin(adminHandler.AccessLogs))
	mux.Handle("GET /api/admin/export-backup", protectAdmin(adminHandler.ExportBackup))
	mux.Handle("POST /api/admin/import-backup", protectAdmin(adminHandler.ImportBackup))
	mux.Handle("DELETE /api/admin/clear-documents", protectAdmin(adminHandler.ClearDocuments))
	mux.Handle("DELETE /api/admin/clear-document-types", protectAdmin(adminHandler.ClearDocTypes))
	mux.Handle("DELETE /api/admin/clear-document-assignees", protectAdmin(adminHandler.ClearAssignees))
	mux.Handle("DELETE /api/admin/clear-access-logs", protectAdmin(adminHandler.ClearAccessLogs))
	mux.Handle("DELETE /api/admin/clear-users", protectAdmin(adminHandler.ClearUsers))
	mux.Handle("DELETE /api/admin/reset-system", protectAdmin(adminHandler.ResetSystem))

	handler := LoggingMiddleware(logger)(RequestIDMiddleware()(SecurityHeadersMiddleware()(mux)))
	return handler
}
