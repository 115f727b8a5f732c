// Package influxdb mirrors pollutant readings into InfluxDB for time-series
// analysis and dashboarding. The mirror is optional; when disabled in config
// nothing connects and alert handling proceeds unchanged.
package influxdb
