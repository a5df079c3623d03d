package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	sessionerrors "aegis/contexts/identity-access/session-authority/domain/errors"
	sessionhttp "aegis/contexts/identity-access/session-authority/transport/http"
)

func writeSessionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, sessionhttp.ErrorResponse{Code: code, Message: message})
}

func writeSessionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sessionerrors.ErrValidation):
		writeSessionError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, sessionerrors.ErrNotFound):
		writeSessionError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, sessionerrors.ErrConflict):
		writeSessionError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, sessionerrors.ErrExpired):
		writeSessionError(w, http.StatusGone, "session_expired", err.Error())
	case errors.Is(err, sessionerrors.ErrAssumeRoleDenied):
		writeSessionError(w, http.StatusForbidden, "assume_role_denied", err.Error())
	default:
		writeSessionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.CreateRoleHandler(r.Context(), req)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	accountID := strings.TrimSpace(r.URL.Query().Get("account_id"))
	resp, err := s.sessions.Handler.ListRolesHandler(r.Context(), accountID)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRole(w http.ResponseWriter, r *http.Request) {
	resp, err := s.sessions.Handler.GetRoleHandler(r.Context(), r.PathValue("role_id"))
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.UpdateRoleHandler(r.Context(), r.PathValue("role_id"), req)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Handler.DeleteRoleHandler(r.Context(), r.PathValue("role_id")); err != nil {
		writeSessionDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.CreatePolicyHandler(r.Context(), req)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAttachPolicy(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.AttachPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.AttachPolicyHandler(r.Context(), r.PathValue("role_id"), req)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDetachPolicy(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.AttachPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.sessions.Handler.DetachPolicyHandler(r.Context(), r.PathValue("role_id"), req); err != nil {
		writeSessionDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRolePolicies(w http.ResponseWriter, r *http.Request) {
	resp, err := s.sessions.Handler.ListRolePoliciesHandler(r.Context(), r.PathValue("role_id"))
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAssumeRole(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.AssumeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.AssumeRoleHandler(r.Context(), r.PathValue("role_id"), req)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	accountID := strings.TrimSpace(r.URL.Query().Get("account_id"))
	resp, err := s.sessions.Handler.ListSessionsHandler(r.Context(), accountID)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.sessions.Handler.GetSessionHandler(r.Context(), r.PathValue("session_id"))
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevokeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Handler.RevokeSessionHandler(r.Context(), r.PathValue("session_id")); err != nil {
		writeSessionDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCleanupSessions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.sessions.Handler.CleanupSessionsHandler(r.Context())
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleValidatePolicy(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.ValidatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	writeJSON(w, http.StatusOK, s.sessions.Handler.ValidateTrustPolicyHandler(r.Context(), req))
}

func (s *Server) handleAuthorize(w http.ResponseWriter, r *http.Request) {
	var req sessionhttp.AuthorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSessionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.sessions.Handler.AuthorizeHandler(r.Context(), req)
	if err != nil {
		writeSessionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
