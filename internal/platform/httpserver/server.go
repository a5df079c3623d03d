package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	sessionauthority "aegis/contexts/identity-access/session-authority"
	tokenauthority "aegis/contexts/identity-access/token-authority"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "aegis/internal/platform/httpserver/docs"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	sessions sessionauthority.Module
	tokens   tokenauthority.Module
}

func New(
	sessions sessionauthority.Module,
	tokens tokenauthority.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		sessions: sessions,
		tokens:   tokens,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routed mux, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/iam/v1/roles", s.handleCreateRole)
	s.mux.HandleFunc("GET /api/iam/v1/roles", s.handleListRoles)
	s.mux.HandleFunc("GET /api/iam/v1/roles/{role_id}", s.handleGetRole)
	s.mux.HandleFunc("PATCH /api/iam/v1/roles/{role_id}", s.handleUpdateRole)
	s.mux.HandleFunc("DELETE /api/iam/v1/roles/{role_id}", s.handleDeleteRole)
	s.mux.HandleFunc("POST /api/iam/v1/roles/{role_id}/policies/attach", s.handleAttachPolicy)
	s.mux.HandleFunc("POST /api/iam/v1/roles/{role_id}/policies/detach", s.handleDetachPolicy)
	s.mux.HandleFunc("GET /api/iam/v1/roles/{role_id}/policies", s.handleListRolePolicies)
	s.mux.HandleFunc("POST /api/iam/v1/roles/{role_id}/assume", s.handleAssumeRole)
	s.mux.HandleFunc("POST /api/iam/v1/policies", s.handleCreatePolicy)
	s.mux.HandleFunc("POST /api/iam/v1/policies/validate", s.handleValidatePolicy)
	s.mux.HandleFunc("POST /api/iam/v1/authorize", s.handleAuthorize)
	s.mux.HandleFunc("GET /api/iam/v1/sessions", s.handleListSessions)
	s.mux.HandleFunc("GET /api/iam/v1/sessions/{session_id}", s.handleGetSession)
	s.mux.HandleFunc("POST /api/iam/v1/sessions/{session_id}/revoke", s.handleRevokeSession)
	s.mux.HandleFunc("POST /api/iam/v1/sessions/cleanup", s.handleCleanupSessions)

	s.mux.HandleFunc("POST /api/iam/v1/auth/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/iam/v1/auth/login/iam", s.handleIAMLogin)
	s.mux.HandleFunc("POST /api/iam/v1/auth/refresh", s.handleRefresh)
	s.mux.HandleFunc("POST /api/iam/v1/auth/logout", s.handleLogout)
	s.mux.HandleFunc("POST /api/iam/v1/auth/revoke-all", s.handleRevokeAll)
	s.mux.HandleFunc("POST /api/iam/v1/auth/verify", s.handleVerifyAccess)
	s.mux.HandleFunc("POST /api/iam/v1/auth/verify-refresh", s.handleVerifyRefresh)
	s.mux.HandleFunc("GET /api/iam/v1/auth/blacklist/stats", s.handleBlacklistStats)
	s.mux.HandleFunc("POST /api/iam/v1/auth/blacklist/cleanup", s.handleBlacklistCleanup)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
