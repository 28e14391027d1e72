package domain

import (
	"bytes"
	"fmt"
	"time"
)

// Timestamp is a time.Time that tolerates the backend's datetime encodings.
//
// The backend emits ISO 8601 timestamps that are not always RFC 3339: values
// may carry fractional seconds without a timezone offset ("2024-05-01T12:00:00.123456").
// encoding/json's time.Time rejects those, so every wire type uses Timestamp
// instead.
type Timestamp struct {
	time.Time
}

// layouts tried in order when decoding. RFC 3339 first since it is what a
// well-configured backend sends.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Time.Format(time.RFC3339) + `"`), nil
}
