package api

import (
	"net/http"

	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

type instituteRegistrationRequest struct {
	UserID      *int64 `json:"userID"`
	InstituteID *int64 `json:"instituteID"`
}

type stationRegistrationRequest struct {
	UserID    *int64 `json:"userID"`
	StationID *int64 `json:"stationID"`
}

// handleListInstituteRegistrations returns institute subscriptions,
// filterable by userID and instituteID.
func (s *Server) handleListInstituteRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := s.registrations.ListInstitute(r.Context(), r.URL.Query())
	if err != nil {
		s.writeDomainError(w, err, "list institute registrations")
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// handleCreateInstituteRegistration subscribes a user to an institute.
// Registering twice for the same institute is a conflict.
func (s *Server) handleCreateInstituteRegistration(w http.ResponseWriter, r *http.Request) {
	var req instituteRegistrationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == nil || req.InstituteID == nil {
		writeBadRequest(w, "userID and instituteID are required")
		return
	}

	reg := &monitoring.UserInstituteRegistration{UserID: *req.UserID, InstituteID: *req.InstituteID}
	if err := s.registrations.CreateInstitute(r.Context(), reg); err != nil {
		s.writeDomainError(w, err, "create institute registration")
		return
	}

	writeJSON(w, http.StatusCreated, reg)
}

// handleGetInstituteRegistration returns one institute subscription.
func (s *Server) handleGetInstituteRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	reg, err := s.registrations.GetInstituteByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get institute registration")
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// handleDeleteInstituteRegistration removes an institute subscription.
func (s *Server) handleDeleteInstituteRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	if err := s.registrations.DeleteInstitute(r.Context(), id); err != nil {
		s.writeDomainError(w, err, "delete institute registration")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListStationRegistrations returns station subscriptions, filterable
// by userID and stationID.
func (s *Server) handleListStationRegistrations(w http.ResponseWriter, r *http.Request) {
	regs, err := s.registrations.ListStation(r.Context(), r.URL.Query())
	if err != nil {
		s.writeDomainError(w, err, "list station registrations")
		return
	}
	writeJSON(w, http.StatusOK, regs)
}

// handleCreateStationRegistration subscribes a user to a single station.
// Registering twice for the same station is a conflict.
func (s *Server) handleCreateStationRegistration(w http.ResponseWriter, r *http.Request) {
	var req stationRegistrationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == nil || req.StationID == nil {
		writeBadRequest(w, "userID and stationID are required")
		return
	}

	reg := &monitoring.UserStationRegistration{UserID: *req.UserID, StationID: *req.StationID}
	if err := s.registrations.CreateStation(r.Context(), reg); err != nil {
		s.writeDomainError(w, err, "create station registration")
		return
	}

	writeJSON(w, http.StatusCreated, reg)
}

// handleGetStationRegistration returns one station subscription.
func (s *Server) handleGetStationRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	reg, err := s.registrations.GetStationByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get station registration")
		return
	}
	writeJSON(w, http.StatusOK, reg)
}

// handleDeleteStationRegistration removes a station subscription.
func (s *Server) handleDeleteStationRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	if err := s.registrations.DeleteStation(r.Context(), id); err != nil {
		s.writeDomainError(w, err, "delete station registration")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
