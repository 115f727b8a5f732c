package monitoring

import "time"

// NormalizeDate parses an RFC 3339 timestamp and re-renders it in UTC.
//
// Alert dates are stored as strings and range-filtered lexically, which is
// only chronological when every stored value shares the UTC offset. All
// write paths must pass supplied dates through here before storing them.
func NormalizeDate(value string) (string, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(time.RFC3339), nil
}
