// Package mqtt wraps paho.mqtt.golang for the alert ingestion broker.
//
// Field devices publish pollution alerts to vrisa/alerts/{stationID}/{deviceID};
// this package manages the broker connection, subscription tracking with
// automatic restoration on reconnect, and panic-safe message dispatch.
package mqtt
