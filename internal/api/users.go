package api

import (
	"net/http"

	"github.com/vrisa-dev/vrisa-core/internal/auth"
)

const minPasswordLength = 8

type createUserRequest struct {
	FirstName string `json:"firstName"`
	FLastName string `json:"fLastName"`
	SLastName string `json:"sLastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Password  string `json:"password"`
}

type updateUserRequest struct {
	FirstName *string `json:"firstName"`
	FLastName *string `json:"fLastName"`
	SLastName *string `json:"sLastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Role      *string `json:"role"`
	Password  *string `json:"password"`
}

// handleListUsers returns all user accounts ordered by ID.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userRepo.List(r.Context())
	if err != nil {
		s.writeDomainError(w, err, "list users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// handleCreateUser registers a new user account.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.FirstName == "" || req.FLastName == "" || req.Email == "" || req.Phone == "" || req.Password == "" {
		writeBadRequest(w, "firstName, fLastName, email, phone, and password are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeBadRequest(w, "password must be at least 8 characters")
		return
	}
	if req.Role == "" {
		req.Role = "citizen"
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("hash password failed", "error", err)
		writeInternalError(w, "internal server error")
		return
	}

	user := &auth.User{
		FirstName:    req.FirstName,
		FLastName:    req.FLastName,
		SLastName:    req.SLastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(r.Context(), user); err != nil {
		s.writeDomainError(w, err, "create user")
		return
	}

	s.logger.Info("user created", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, user)
}

// handleGetUser returns one user account.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	user, err := s.userRepo.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleUpdateUser modifies a user's profile and, when a password is
// supplied, replaces the stored hash.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.userRepo.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get user")
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.FLastName != nil {
		user.FLastName = *req.FLastName
	}
	if req.SLastName != nil {
		user.SLastName = *req.SLastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	// Validate and hash the new password before touching the store, so a
	// rejected password leaves the profile untouched too.
	var hash auth.PasswordHash
	if req.Password != nil {
		if len(*req.Password) < minPasswordLength {
			writeBadRequest(w, "password must be at least 8 characters")
			return
		}
		hash, err = auth.HashPassword(*req.Password)
		if err != nil {
			s.logger.Error("hash password failed", "error", err)
			writeInternalError(w, "internal server error")
			return
		}
	}

	if err := s.userRepo.Update(r.Context(), user); err != nil {
		s.writeDomainError(w, err, "update user")
		return
	}

	if req.Password != nil {
		if err := s.userRepo.UpdatePassword(r.Context(), id, hash); err != nil {
			s.writeDomainError(w, err, "update password")
			return
		}
	}

	writeJSON(w, http.StatusOK, user)
}

// handleDeleteUser removes a user account. Registrations and access grants
// are removed by cascade.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	if err := s.userRepo.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err, "delete user")
		return
	}

	s.logger.Info("user deleted", "user_id", id)
	w.WriteHeader(http.StatusNoContent)
}
