package api

import (
	"net/http"

	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

type stationRequest struct {
	InstituteID *int64   `json:"instituteID"`
	Name        *string  `json:"name"`
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	Description *string  `json:"description"`
}

// handleListStations returns stations, filterable by instituteID.
func (s *Server) handleListStations(w http.ResponseWriter, r *http.Request) {
	stations, err := s.stations.List(r.Context(), r.URL.Query())
	if err != nil {
		s.writeDomainError(w, err, "list stations")
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

// handleCreateStation registers a new measurement station. The coordinate
// pair is required; a station without a location cannot be mapped.
func (s *Server) handleCreateStation(w http.ResponseWriter, r *http.Request) {
	var req stationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.InstituteID == nil || req.Name == nil || *req.Name == "" {
		writeBadRequest(w, "instituteID and name are required")
		return
	}
	if req.Longitude == nil || req.Latitude == nil {
		writeBadRequest(w, "longitude and latitude are required")
		return
	}

	st := &monitoring.Station{
		InstituteID: *req.InstituteID,
		Name:        *req.Name,
		Longitude:   *req.Longitude,
		Latitude:    *req.Latitude,
	}
	if req.Description != nil {
		st.Description = *req.Description
	}

	if err := s.stations.Create(r.Context(), st); err != nil {
		s.writeDomainError(w, err, "create station")
		return
	}

	s.logger.Info("station created", "station_id", st.ID, "institute_id", st.InstituteID)
	writeJSON(w, http.StatusCreated, st)
}

// handleGetStation returns one station.
func (s *Server) handleGetStation(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	st, err := s.stations.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get station")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleUpdateStation modifies a station's fields.
func (s *Server) handleUpdateStation(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	var req stationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	st, err := s.stations.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get station")
		return
	}

	if req.InstituteID != nil {
		st.InstituteID = *req.InstituteID
	}
	if req.Name != nil {
		st.Name = *req.Name
	}
	if req.Longitude != nil {
		st.Longitude = *req.Longitude
	}
	if req.Latitude != nil {
		st.Latitude = *req.Latitude
	}
	if req.Description != nil {
		st.Description = *req.Description
	}

	if err := s.stations.Update(r.Context(), st); err != nil {
		s.writeDomainError(w, err, "update station")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleDeleteStation removes a station and its devices, alerts, and
// registrations.
func (s *Server) handleDeleteStation(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	if err := s.stations.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err, "delete station")
		return
	}

	s.logger.Info("station deleted", "station_id", id)
	w.WriteHeader(http.StatusNoContent)
}
