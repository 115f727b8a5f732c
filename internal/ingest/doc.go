// Package ingest bridges the MQTT alert feed into the platform.
//
// Field devices publish pollution readings to vrisa/alerts/{stationID}/{deviceID};
// the bridge validates each payload, stores it as an alert, and optionally
// mirrors the reading into InfluxDB.
package ingest
