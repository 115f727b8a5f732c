package api

import (
	"net/http"

	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

type deviceRequest struct {
	StationID       *int64  `json:"stationID"`
	TypeName        *string `json:"typeName"`
	TypeDescription *string `json:"typeDescription"`
}

// handleListDevices returns devices, filterable by stationID.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := s.devices.List(r.Context(), r.URL.Query())
	if err != nil {
		s.writeDomainError(w, err, "list devices")
		return
	}
	writeJSON(w, http.StatusOK, devices)
}

// handleCreateDevice registers a new sensor at a station.
func (s *Server) handleCreateDevice(w http.ResponseWriter, r *http.Request) {
	var req deviceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.StationID == nil || req.TypeName == nil || *req.TypeName == "" {
		writeBadRequest(w, "stationID and typeName are required")
		return
	}

	dev := &monitoring.Device{
		StationID: *req.StationID,
		TypeName:  *req.TypeName,
	}
	if req.TypeDescription != nil {
		dev.TypeDescription = *req.TypeDescription
	}

	if err := s.devices.Create(r.Context(), dev); err != nil {
		s.writeDomainError(w, err, "create device")
		return
	}

	s.logger.Info("device created", "device_id", dev.ID, "station_id", dev.StationID)
	writeJSON(w, http.StatusCreated, dev)
}

// handleGetDevice returns one device.
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	dev, err := s.devices.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get device")
		return
	}
	writeJSON(w, http.StatusOK, dev)
}

// handleUpdateDevice modifies a device's fields.
func (s *Server) handleUpdateDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	var req deviceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	dev, err := s.devices.GetByID(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, err, "get device")
		return
	}

	if req.StationID != nil {
		dev.StationID = *req.StationID
	}
	if req.TypeName != nil {
		dev.TypeName = *req.TypeName
	}
	if req.TypeDescription != nil {
		dev.TypeDescription = *req.TypeDescription
	}

	if err := s.devices.Update(r.Context(), dev); err != nil {
		s.writeDomainError(w, err, "update device")
		return
	}
	writeJSON(w, http.StatusOK, dev)
}

// handleDeleteDevice removes a device and its alerts.
func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromRequest(w, r, "id")
	if !ok {
		return
	}

	if err := s.devices.Delete(r.Context(), id); err != nil {
		s.writeDomainError(w, err, "delete device")
		return
	}

	s.logger.Info("device deleted", "device_id", id)
	w.WriteHeader(http.StatusNoContent)
}
