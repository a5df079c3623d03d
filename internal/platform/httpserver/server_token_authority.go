package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	tokenerrors "aegis/contexts/identity-access/token-authority/domain/errors"
	tokenhttp "aegis/contexts/identity-access/token-authority/transport/http"
)

func writeTokenError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, tokenhttp.ErrorResponse{Code: code, Message: message})
}

func writeTokenDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tokenerrors.ErrValidation):
		writeTokenError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, tokenerrors.ErrInvalidCredentials):
		writeTokenError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, tokenerrors.ErrRevoked),
		errors.Is(err, tokenerrors.ErrTokenType),
		errors.Is(err, tokenerrors.ErrInvalidSignature):
		writeTokenError(w, http.StatusUnauthorized, "invalid_token", err.Error())
	case errors.Is(err, tokenerrors.ErrInactiveUser):
		writeTokenError(w, http.StatusForbidden, "inactive_user", err.Error())
	case errors.Is(err, tokenerrors.ErrNotFound):
		writeTokenError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, tokenerrors.ErrRevocationUnavailable):
		writeTokenError(w, http.StatusServiceUnavailable, "revocation_unavailable", err.Error())
	default:
		writeTokenError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req tokenhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tokens.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleIAMLogin(w http.ResponseWriter, r *http.Request) {
	var req tokenhttp.IAMLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tokens.Handler.IAMLoginHandler(r.Context(), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req tokenhttp.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tokens.Handler.RefreshHandler(r.Context(), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req tokenhttp.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tokens.Handler.LogoutHandler(r.Context(), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevokeAll(w http.ResponseWriter, r *http.Request) {
	var req tokenhttp.RevokeAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tokens.Handler.RevokeAllHandler(r.Context(), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// bearerToken pulls the token out of the Authorization header when the
// request body carries none.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}

func decodeVerifyRequest(r *http.Request) tokenhttp.VerifyRequest {
	var req tokenhttp.VerifyRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Token == "" {
		req.Token = bearerToken(r)
	}
	return req
}

func (s *Server) handleVerifyAccess(w http.ResponseWriter, r *http.Request) {
	req := decodeVerifyRequest(r)
	resp, err := s.tokens.Handler.VerifyAccessHandler(r.Context(), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyRefresh(w http.ResponseWriter, r *http.Request) {
	req := decodeVerifyRequest(r)
	resp, err := s.tokens.Handler.VerifyRefreshHandler(r.Context(), req)
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBlacklistStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tokens.Handler.BlacklistStatsHandler(r.Context()))
}

func (s *Server) handleBlacklistCleanup(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tokens.Handler.CleanupHandler(r.Context())
	if err != nil {
		writeTokenDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
