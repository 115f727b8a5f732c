package mqtt

import (
	"errors"
	"testing"
)

func TestTopics_Builders(t *testing.T) {
	topics := Topics{}

	if got := topics.AllAlerts(); got != "vrisa/alerts/+/+" {
		t.Errorf("AllAlerts() = %q", got)
	}
	if got := topics.DeviceAlerts(5, 12); got != "vrisa/alerts/5/12" {
		t.Errorf("DeviceAlerts(5, 12) = %q", got)
	}
	if got := topics.SystemStatus(); got != "vrisa/system/status" {
		t.Errorf("SystemStatus() = %q", got)
	}
}

func TestParseAlertTopic(t *testing.T) {
	tests := []struct {
		name        string
		topic       string
		wantStation int64
		wantDevice  int64
		wantErr     bool
	}{
		{"valid", "vrisa/alerts/5/12", 5, 12, false},
		{"wrong prefix", "sensors/alerts/5/12", 0, 0, true},
		{"missing device", "vrisa/alerts/5", 0, 0, true},
		{"extra levels", "vrisa/alerts/5/12/extra", 0, 0, true},
		{"non-numeric station", "vrisa/alerts/north/12", 0, 0, true},
		{"non-numeric device", "vrisa/alerts/5/pm25", 0, 0, true},
		{"empty", "", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stationID, deviceID, err := ParseAlertTopic(tt.topic)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTopic) {
					t.Errorf("ParseAlertTopic(%q) error = %v, want ErrInvalidTopic", tt.topic, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAlertTopic(%q) error = %v", tt.topic, err)
			}
			if stationID != tt.wantStation || deviceID != tt.wantDevice {
				t.Errorf("ParseAlertTopic(%q) = %d, %d; want %d, %d",
					tt.topic, stationID, deviceID, tt.wantStation, tt.wantDevice)
			}
		})
	}
}
