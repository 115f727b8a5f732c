package api

import (
	"net/http"

	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

type grantAccessRequest struct {
	UserID *int64 `json:"userID"`
}

// handleListAccess returns all elevated access grants.
func (s *Server) handleListAccess(w http.ResponseWriter, r *http.Request) {
	grants, err := s.access.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err, "list access grants")
		return
	}
	writeJSON(w, http.StatusOK, grants)
}

// handleGrantAccess marks a user as having elevated access.
func (s *Server) handleGrantAccess(w http.ResponseWriter, r *http.Request) {
	var req grantAccessRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == nil {
		writeBadRequest(w, "userID is required")
		return
	}

	if err := s.access.Grant(r.Context(), *req.UserID); err != nil {
		s.writeDomainError(w, err, "grant access")
		return
	}

	s.logger.Info("access granted", "user_id", *req.UserID)
	writeJSON(w, http.StatusCreated, monitoring.Access{UserID: *req.UserID})
}

// handleRevokeAccess removes a user's elevated access grant.
func (s *Server) handleRevokeAccess(w http.ResponseWriter, r *http.Request) {
	userID, ok := idFromRequest(w, r, "userID")
	if !ok {
		return
	}

	if err := s.access.Revoke(r.Context(), userID); err != nil {
		s.writeDomainError(w, err, "revoke access")
		return
	}

	s.logger.Info("access revoked", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}
