package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/logging"
	"github.com/vrisa-dev/vrisa-core/internal/infrastructure/mqtt"
	"github.com/vrisa-dev/vrisa-core/internal/monitoring"
)

// Errors returned by the bridge.
var (
	// ErrInvalidPayload indicates a device published a message that does
	// not parse as an alert reading.
	ErrInvalidPayload = errors.New("ingest: invalid alert payload")

	// ErrUnknownSource indicates the topic referenced a station or device
	// that is not registered in the platform.
	ErrUnknownSource = errors.New("ingest: unknown station or device")
)

// handlerTimeout bounds how long a single message may hold a DB connection.
const handlerTimeout = 10 * time.Second

// subscriber is the part of the MQTT client the bridge needs.
type subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
}

// sampleWriter mirrors pollutant readings into a time-series store.
type sampleWriter interface {
	WritePollutantSample(stationID, deviceID int64, level string, value float64, at time.Time)
}

// alertPayload is the wire format devices publish.
type alertPayload struct {
	Date            string   `json:"date"`
	PollutantValue  *float64 `json:"pollutantValue"`
	PollutantLevels string   `json:"pollutantLevels"`
}

// Bridge subscribes to the alert feed and persists incoming readings.
type Bridge struct {
	broker  subscriber
	alerts  monitoring.AlertRepository
	mirror  sampleWriter
	logger  *logging.Logger
	qos     byte
	topic   string
	started bool
}

// NewBridge creates an alert ingestion bridge. The mirror may be nil when
// the InfluxDB integration is disabled.
func NewBridge(broker subscriber, alerts monitoring.AlertRepository, mirror sampleWriter, logger *logging.Logger, qos byte) *Bridge {
	return &Bridge{
		broker: broker,
		alerts: alerts,
		mirror: mirror,
		logger: logger,
		qos:    qos,
		topic:  mqtt.Topics{}.AllAlerts(),
	}
}

// Start subscribes to the alert feed. Messages arrive on broker-managed
// goroutines; the subscription survives broker reconnects.
func (b *Bridge) Start() error {
	if b.started {
		return nil
	}

	if err := b.broker.Subscribe(b.topic, b.qos, b.handleMessage); err != nil {
		return fmt.Errorf("subscribing to alert feed: %w", err)
	}

	b.started = true
	b.logger.Info("alert ingestion bridge started", "topic", b.topic)
	return nil
}

// Stop unsubscribes from the alert feed.
func (b *Bridge) Stop() error {
	if !b.started {
		return nil
	}
	b.started = false

	if err := b.broker.Unsubscribe(b.topic); err != nil {
		return fmt.Errorf("unsubscribing from alert feed: %w", err)
	}
	return nil
}

// handleMessage validates and persists one published reading.
func (b *Bridge) handleMessage(topic string, payload []byte) error {
	stationID, deviceID, err := mqtt.ParseAlertTopic(topic)
	if err != nil {
		return err
	}

	alert, err := parsePayload(stationID, deviceID, payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	if err := b.alerts.Create(ctx, alert); err != nil {
		if errors.Is(err, monitoring.ErrMissingParent) {
			return fmt.Errorf("%w: station %d device %d", ErrUnknownSource, stationID, deviceID)
		}
		return fmt.Errorf("storing alert: %w", err)
	}

	b.logger.Info("alert ingested",
		"alert_id", alert.ID,
		"station_id", stationID,
		"device_id", deviceID,
		"level", alert.PollutantLevels,
	)

	if b.mirror != nil {
		at, err := time.Parse(time.RFC3339, alert.Date)
		if err != nil {
			at = time.Now().UTC()
		}
		b.mirror.WritePollutantSample(stationID, deviceID, alert.PollutantLevels, alert.PollutantValue, at)
	}

	return nil
}

// parsePayload decodes and validates a device's published reading.
func parsePayload(stationID, deviceID int64, payload []byte) (*monitoring.Alert, error) {
	var p alertPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	if p.PollutantValue == nil {
		return nil, fmt.Errorf("%w: pollutantValue is required", ErrInvalidPayload)
	}
	if p.PollutantLevels == "" {
		return nil, fmt.Errorf("%w: pollutantLevels is required", ErrInvalidPayload)
	}

	date := p.Date
	if date == "" {
		date = time.Now().UTC().Format(time.RFC3339)
	} else {
		normalized, err := monitoring.NormalizeDate(date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrInvalidPayload, p.Date)
		}
		date = normalized
	}

	return &monitoring.Alert{
		DeviceID:        deviceID,
		StationID:       stationID,
		Date:            date,
		PollutantValue:  *p.PollutantValue,
		PollutantLevels: p.PollutantLevels,
	}, nil
}
