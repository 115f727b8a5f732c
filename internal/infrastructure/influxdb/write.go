package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WritePollutantSample mirrors one alert's pollutant reading.
//
// The sample is tagged by station, device, and reported level so dashboards
// can slice by any of them. The write is non-blocking; data is batched and
// sent asynchronously, and a disconnected mirror drops the sample silently.
func (c *Client) WritePollutantSample(stationID, deviceID int64, level string, value float64, at time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"pollutant_samples",
		map[string]string{
			"station_id": strconv.FormatInt(stationID, 10),
			"device_id":  strconv.FormatInt(deviceID, 10),
			"level":      level,
		},
		map[string]interface{}{
			"value": value,
		},
		at,
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
// Use this for measurements that don't fit the helper methods.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
