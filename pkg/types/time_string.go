package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString is returned when a value is not a valid HH:MM time of day
var ErrInvalidTimeString = errors.New("invalid time string format")

const (
	layoutShort = "15:04"
	layoutLong  = "15:04:05"

	minutesPerDay = 24 * 60
)

// TimeString is a time of day in "HH:MM" form, e.g. "09:00".
// The zero value means "not set".
type TimeString string

// NewTimeString builds a TimeString from the clock part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layoutShort))
}

// NewTimeStringFromString parses "HH:MM" (or "HH:MM:SS" as returned by Postgres TIME columns)
func NewTimeStringFromString(s string) (TimeString, error) {
	if t, err := time.Parse(layoutShort, s); err == nil {
		return NewTimeString(t), nil
	}
	if t, err := time.Parse(layoutLong, s); err == nil {
		return NewTimeString(t), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// String returns the "HH:MM" representation
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero reports whether the value is unset
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks the "HH:MM" format
func (ts TimeString) Validate() error {
	_, err := ts.minutes()
	return err
}

// Minutes returns minutes since midnight
func (ts TimeString) Minutes() (int, error) {
	return ts.minutes()
}

// AddMinutes returns the time shifted by m minutes; crossing midnight is an error
func (ts TimeString) AddMinutes(m int) (TimeString, error) {
	current, err := ts.minutes()
	if err != nil {
		return "", err
	}

	total := current + m
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d minutes leaves the day", ErrInvalidTimeString, ts, m)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether ts is strictly earlier than other.
// Invalid values compare as not-before.
func (ts TimeString) IsBefore(other TimeString) bool {
	a, errA := ts.minutes()
	b, errB := other.minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether ts is strictly later than other
func (ts TimeString) IsAfter(other TimeString) bool {
	a, errA := ts.minutes()
	b, errB := other.minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Scan implements sql.Scanner for TIME / TEXT columns
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case []byte:
		parsed, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

// Value implements driver.Valuer
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

func (ts TimeString) minutes() (int, error) {
	t, err := time.Parse(layoutShort, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t.Hour()*60 + t.Minute(), nil
}
