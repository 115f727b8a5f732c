package monitoring

// Institute is an environmental monitoring organization. Deleting an
// institute cascades to its colors, stations, and registrations.
type Institute struct {
	ID      int64  `json:"instituteID"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Logo    string `json:"logo,omitempty"`
}

// Color is a palette entry an institute uses to render pollutant levels.
type Color struct {
	ID          int64  `json:"colorID"`
	InstituteID int64  `json:"instituteID"`
	Color       string `json:"color"`
}

// Station is a fixed measurement site operated by an institute.
type Station struct {
	ID          int64   `json:"stationID"`
	InstituteID int64   `json:"instituteID"`
	Name        string  `json:"name"`
	Longitude   float64 `json:"longitude"`
	Latitude    float64 `json:"latitude"`
	Description string  `json:"description,omitempty"`
}

// Device is a sensor installed at a station.
type Device struct {
	ID              int64  `json:"deviceID"`
	StationID       int64  `json:"stationID"`
	TypeName        string `json:"typeName"`
	TypeDescription string `json:"typeDescription,omitempty"`
}

// Alert is a pollution reading that crossed a reporting threshold.
// Date carries the measurement timestamp in RFC 3339 form.
type Alert struct {
	ID              int64   `json:"alertID"`
	DeviceID        int64   `json:"deviceID"`
	StationID       int64   `json:"stationID"`
	Date            string  `json:"date"`
	PollutantValue  float64 `json:"pollutantValue"`
	PollutantLevels string  `json:"pollutantLevels"`
}

// Access marks a user account as having elevated platform access.
type Access struct {
	UserID int64 `json:"userID"`
}

// UserInstituteRegistration subscribes a user to an institute's alerts.
// A user registers with a given institute at most once.
type UserInstituteRegistration struct {
	ID          int64 `json:"id"`
	UserID      int64 `json:"userID"`
	InstituteID int64 `json:"instituteID"`
}

// UserStationRegistration subscribes a user to a single station's alerts.
// A user registers with a given station at most once.
type UserStationRegistration struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"userID"`
	StationID int64 `json:"stationID"`
}
