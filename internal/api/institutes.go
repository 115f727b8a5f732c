package api

import (
	"net/http"

	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

type instituteRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Logo    *string `json:"logo"`
}

// handleListInstitutes returns all institutes, optionally narrowed by the
// search parameter matching name or address.
func (s *Server) handleListInstitutes(w http.ResponseWriter, r *http.Request) {
	institutes, err := s.institutes.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		s.writeDomainError(w, err, "list institutes")
		return
	}
	writeJSON(w, http.StatusOK, institutes)
}

// handleCreateInstitute registers a new institute.
func (s *Server) handleCreateInstitute(w http.ResponseWriter, r *http.Request) {
	var req instituteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == nil || *req.Name == "" || req.Address == nil || *req.Address == "" {
		writeBadRequest(w, "name and address are required")
		return
	}

	inst := &monitoring.Institute{Name: *req.Name, Address: *req.Address}
	if req.Logo != nil {
		inst.Logo = *req.Logo
	}

	if err := s.institutes.Create(r.Context(), inst); err != nil {
		s.writeDomainError(w, err, "create institute")
		return
	}

	s.logger.Info("institute created", "institute_id", inst.ID)
	writeJSON(w, http.StatusCreated, inst)
}

// handleGetInstitute returns one institute.
func (s *Server) handleGetInstitute(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	inst, err := s.institutes.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get institute")
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

// handleUpdateInstitute modifies an institute's fields.
func (s *Server) handleUpdateInstitute(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	var req instituteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inst, err := s.institutes.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get institute")
		return
	}

	if req.Name != nil {
		inst.Name = *req.Name
	}
	if req.Address != nil {
		inst.Address = *req.Address
	}
	if req.Logo != nil {
		inst.Logo = *req.Logo
	}

	if err := s.institutes.Update(r.Context(), inst); err != nil {
		s.writeDomainError(w, err, "update institute")
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

// handleDeleteInstitute removes an institute and everything it owns.
func (s *Server) handleDeleteInstitute(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	if err := s.institutes.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err, "delete institute")
		return
	}

	s.logger.Info("institute deleted", "institute_id", id)
	w.WriteHeader(http.StatusNoContent)
}
