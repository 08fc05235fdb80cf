package domain

import (
	"bytes"
	"fmt"
	"time"
)

// LocalDateTimeLayout is the upstream segment timestamp format.
// Values are airport-local wall clock times and carry no offset.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// LocalDateTime is a wall clock timestamp without a zone.
// The wrapped time is stored in UTC purely as a carrier for the fields.
type LocalDateTime struct {
	time.Time
}

// ParseLocalDateTime parses an upstream timestamp.
// A trailing offset or "Z" is accepted and dropped, keeping the wall clock.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	if t, err := time.Parse(LocalDateTimeLayout, s); err == nil {
		return LocalDateTime{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return LocalDateTime{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}, nil
	}
	if t, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return LocalDateTime{Time: t}, nil
	}
	return LocalDateTime{}, fmt.Errorf("unable to parse datetime %q", s)
}

// MustParseLocalDateTime is ParseLocalDateTime for known-good literals.
func MustParseLocalDateTime(s string) LocalDateTime {
	t, err := ParseLocalDateTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

// String formats the timestamp in the upstream layout.
func (t LocalDateTime) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LocalDateTimeLayout)
}

// MarshalJSON implements json.Marshaler.
func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + t.Format(LocalDateTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*t = LocalDateTime{}
		return nil
	}
	parsed, err := ParseLocalDateTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
