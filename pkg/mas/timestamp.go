package mas

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the MAS wire format. It carries no zone; MAS times are UTC.
const TimestampLayout = "2006-01-02T15:04:05"

// Timestamp is a UTC time that decodes from the MAS zone-less format.
type Timestamp struct {
	time.Time
}

// NewTimestamp returns t as a UTC Timestamp.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC()}
}

// UnmarshalJSON accepts the zone-less wire format and RFC 3339.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// MarshalJSON writes RFC 3339 in UTC, which MAS accepts in request bodies.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// MarshalYAML renders the wire format for CLI output.
func (t Timestamp) MarshalYAML() (interface{}, error) {
	return t.UTC().Format(TimestampLayout), nil
}

// String renders the wire format.
func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses the MAS wire format, or RFC 3339 when a zone is present.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)

	if parsed, err := time.ParseInLocation(TimestampLayout, s, time.UTC); err == nil {
		return Timestamp{Time: parsed}, nil
	}

	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp %q: %w", s, err)
	}

	return Timestamp{Time: parsed.UTC()}, nil
}
