package mqtt

import (
	"fmt"
	"strconv"
	"strings"
)

// Topic prefixes for the platform's MQTT namespace.
//
// Alert topics carry the station and device in the path so subscribers can
// narrow by either level: vrisa/alerts/{stationID}/{deviceID}
const (
	// TopicPrefixAlerts is the base for device alert publications.
	TopicPrefixAlerts = "vrisa/alerts"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "vrisa/system"
)

// Topics provides builders for platform MQTT topics.
// Using these helpers keeps topic naming consistent across the codebase.
type Topics struct{}

// AllAlerts returns the wildcard subscription matching every device alert.
//
// Example: vrisa/alerts/+/+
func (Topics) AllAlerts() string {
	return TopicPrefixAlerts + "/+/+"
}

// DeviceAlerts returns the publish topic for one device's alerts.
//
// Example: vrisa/alerts/5/12
func (Topics) DeviceAlerts(stationID, deviceID int64) string {
	return fmt.Sprintf("%s/%d/%d", TopicPrefixAlerts, stationID, deviceID)
}

// SystemStatus returns the topic carrying the service's online/offline status.
//
// Example: vrisa/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}

// ParseAlertTopic extracts the station and device IDs from an alert topic.
// It returns ErrInvalidTopic when the topic does not match the alert scheme.
func ParseAlertTopic(topic string) (stationID, deviceID int64, err error) {
	rest, ok := strings.CutPrefix(topic, TopicPrefixAlerts+"/")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidTopic, topic)
	}

	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidTopic, topic)
	}

	stationID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad station id %q", ErrInvalidTopic, parts[0])
	}
	deviceID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad device id %q", ErrInvalidTopic, parts[1])
	}

	return stationID, deviceID, nil
}
