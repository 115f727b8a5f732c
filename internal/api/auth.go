package api

import (
	"errors"
	"net/http"

	"github.com/vrisa-dev/vrisa-core/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Access string     `json:"access"`
	User   *auth.User `json:"user"`
}

// handleLogin authenticates an email/password pair and issues an access token.
//
// Unknown email and wrong password produce byte-identical 401 responses so
// the endpoint cannot be used to enumerate registered addresses.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email and password are required")
		return
	}

	user, err := s.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeUnauthorized(w, auth.ErrInvalidCredentials.Error())
			return
		}
		s.writeDomainError(w, err, "login user lookup")
		return
	}

	ok, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !ok {
		writeUnauthorized(w, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("issue token failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, loginResponse{
		Access: token,
		User:   user,
	})
}
