package api

import (
	"net/http"
	"time"

	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

type alertRequest struct {
	DeviceID        *int64   `json:"deviceID"`
	StationID       *int64   `json:"stationID"`
	Date            *string  `json:"date"`
	PollutantValue  *float64 `json:"pollutantValue"`
	PollutantLevels *string  `json:"pollutantLevels"`
}

// handleListAlerts returns alerts, filterable by stationID, deviceID, and
// the from/to date window.
func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.alerts.List(r.Context(), r.URL.Query())
	if err != nil {
		s.writeDomainError(w, err, "list alerts")
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// handleCreateAlert records a new pollution alert. A missing date is
// stamped at submission time.
func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var req alertRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.DeviceID == nil || req.StationID == nil {
		writeBadRequest(w, "deviceID and stationID are required")
		return
	}
	if req.PollutantValue == nil || req.PollutantLevels == nil || *req.PollutantLevels == "" {
		writeBadRequest(w, "pollutantValue and pollutantLevels are required")
		return
	}

	date := time.Now().UTC().Format(time.RFC3339)
	if req.Date != nil && *req.Date != "" {
		normalized, err := monitoring.NormalizeDate(*req.Date)
		if err != nil {
			writeBadRequest(w, "date must be RFC 3339")
			return
		}
		date = normalized
	}

	alert := &monitoring.Alert{
		DeviceID:        *req.DeviceID,
		StationID:       *req.StationID,
		Date:            date,
		PollutantValue:  *req.PollutantValue,
		PollutantLevels: *req.PollutantLevels,
	}

	if err := s.alerts.Create(r.Context(), alert); err != nil {
		s.writeDomainError(w, err, "create alert")
		return
	}

	s.logger.Info("alert created",
		"alert_id", alert.ID,
		"station_id", alert.StationID,
		"device_id", alert.DeviceID,
	)
	writeJSON(w, http.StatusCreated, alert)
}

// handleGetAlert returns one alert.
func (s *Server) handleGetAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	alert, err := s.alerts.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get alert")
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

// handleUpdateAlert modifies an alert's fields.
func (s *Server) handleUpdateAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	var req alertRequest
	if !decodeBody(w, r, &req) {
		return
	}

	alert, err := s.alerts.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get alert")
		return
	}

	if req.DeviceID != nil {
		alert.DeviceID = *req.DeviceID
	}
	if req.StationID != nil {
		alert.StationID = *req.StationID
	}
	if req.Date != nil {
		normalized, err := monitoring.NormalizeDate(*req.Date)
		if err != nil {
			writeBadRequest(w, "date must be RFC 3339")
			return
		}
		alert.Date = normalized
	}
	if req.PollutantValue != nil {
		alert.PollutantValue = *req.PollutantValue
	}
	if req.PollutantLevels != nil {
		alert.PollutantLevels = *req.PollutantLevels
	}

	if err := s.alerts.Update(r.Context(), alert); err != nil {
		s.writeDomainError(w, err, "update alert")
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

// handleDeleteAlert removes an alert.
func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	if err := s.alerts.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err, "delete alert")
		return
	}

	s.logger.Info("alert deleted", "alert_id", id)
	w.WriteHeader(http.StatusNoContent)
}
