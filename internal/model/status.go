// Package model defines the payloads the service serializes.
package model

import (
	"fmt"
	"time"
)

// StatusOK is the only value StatusResponse.Status ever takes.
const StatusOK = "OK"

// TimestampLayout renders UTC instants with millisecond precision,
// e.g. 2026-10-18T12:00:00.123Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp is a point in time serialized with TimestampLayout.
type Timestamp time.Time

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// String formats the timestamp in UTC using TimestampLayout.
func (t Timestamp) String() string {
	return time.Time(t).UTC().Format(TimestampLayout)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON accepts any RFC 3339 date-time, including TimestampLayout.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("timestamp must be a JSON string, got %s", data)
	}
	parsed, err := time.Parse(time.RFC3339Nano, string(data[1:len(data)-1]))
	if err != nil {
		return fmt.Errorf("parse timestamp: %w", err)
	}
	*t = Timestamp(parsed)
	return nil
}

// StatusResponse is the body of GET /status.
// A fresh value is built for every request and never stored.
type StatusResponse struct {
	Status    string    `json:"status" example:"OK"`
	Timestamp Timestamp `json:"timestamp" swaggertype:"string" format:"date-time" example:"2026-10-18T12:00:00.123Z"`
}

// NewStatusResponse returns an OK status stamped with now.
func NewStatusResponse(now time.Time) StatusResponse {
	return StatusResponse{
		Status:    StatusOK,
		Timestamp: Timestamp(now),
	}
}
