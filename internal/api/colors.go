package api

import (
	"net/http"

	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

type colorRequest struct {
	InstituteID *int64  `json:"instituteID"`
	Color       *string `json:"color"`
}

// handleListColors returns palette colors, filterable by instituteID.
func (s *Server) handleListColors(w http.ResponseWriter, r *http.Request) {
	colors, err := s.colors.List(r.Context(), r.URL.Query())
	if err != nil {
		s.writeDomainError(w, err, "list colors")
		return
	}
	writeJSON(w, http.StatusOK, colors)
}

// handleCreateColor adds a palette color to an institute.
func (s *Server) handleCreateColor(w http.ResponseWriter, r *http.Request) {
	var req colorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.InstituteID == nil || req.Color == nil || *req.Color == "" {
		writeBadRequest(w, "instituteID and color are required")
		return
	}

	c := &monitoring.Color{InstituteID: *req.InstituteID, Color: *req.Color}
	if err := s.colors.Create(r.Context(), c); err != nil {
		s.writeDomainError(w, err, "create color")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// handleGetColor returns one palette color.
func (s *Server) handleGetColor(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	c, err := s.colors.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get color")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleUpdateColor modifies a palette color.
func (s *Server) handleUpdateColor(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	var req colorRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := s.colors.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get color")
		return
	}

	if req.InstituteID != nil {
		c.InstituteID = *req.InstituteID
	}
	if req.Color != nil {
		c.Color = *req.Color
	}

	if err := s.colors.Update(r.Context(), c); err != nil {
		s.writeDomainError(w, err, "update color")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleDeleteColor removes a palette color.
func (s *Server) handleDeleteColor(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	if err := s.colors.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err, "delete color")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
