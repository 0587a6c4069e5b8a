// Package http exposes the deck runtime over a small JSON API: command
// endpoints on the write side, the audit trail and flow graph on the read
// side.
package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/machingclee/scriptdeck/internal/cqrs"
)

// actorHeader carries the caller identity recorded on audit rows.
const actorHeader = "X-Actor-Id"

// NewRouter assembles the API routes and wraps them with the identity and
// logging middleware.
func NewRouter(commands *CommandsHandler, audit *AuditHandler, notifications *NotificationsHandler, flow *FlowHandler, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/folders", commands.CreateFolder)
	mux.HandleFunc("POST /api/v1/folders/{id}/rename", commands.RenameFolder)
	mux.HandleFunc("POST /api/v1/scripts", commands.CreateScript)
	mux.HandleFunc("PUT /api/v1/scripts/{id}", commands.UpdateScript)
	mux.HandleFunc("POST /api/v1/scripts/{id}/annotate", commands.AnnotateScript)
	mux.HandleFunc("POST /api/v1/scripts/{id}/move", commands.MoveScript)
	mux.HandleFunc("POST /api/v1/scripts/{id}/runs", commands.RecordRun)
	mux.HandleFunc("POST /api/v1/workspaces", commands.CreateWorkspace)
	mux.HandleFunc("POST /api/v1/workspaces/{id}/pins", commands.PinScript)
	mux.HandleFunc("PUT /api/v1/ai-profile", commands.UpdateAIProfile)
	mux.Handle("GET /api/v1/audit", audit)
	mux.Handle("GET /api/v1/notifications", notifications)
	mux.Handle("GET /api/v1/flow", flow)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return withActor(withLogging(mux, logger))
}

// withActor copies the caller identity header into the request context so
// the auditor can stamp it on every row of the invocation.
func withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor := r.Header.Get(actorHeader); actor != "" {
			r = r.WithContext(cqrs.WithActorID(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}

func withLogging(next http.Handler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request handled")
	})
}
