package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a value is not a valid YYYY-MM-DD calendar date
var ErrInvalidDate = errors.New("invalid date format")

const dateLayout = "2006-01-02"

// Date is an ISO calendar date "YYYY-MM-DD" without time or zone.
// The zero value means "not set".
type Date string

// NewDate takes the calendar part of t in t's location
func NewDate(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// ParseDate parses "YYYY-MM-DD"
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t), nil
}

// String returns the "YYYY-MM-DD" representation
func (d Date) String() string {
	return string(d)
}

// IsZero reports whether the value is unset
func (d Date) IsZero() bool {
	return d == ""
}

// Validate checks the "YYYY-MM-DD" format
func (d Date) Validate() error {
	_, err := d.Time()
	return err
}

// Time returns midnight UTC of the date
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}
	return t, nil
}

// Weekday returns the day of week, or an error for an invalid date
func (d Date) Weekday() (time.Weekday, error) {
	t, err := d.Time()
	if err != nil {
		return time.Sunday, err
	}
	return t.Weekday(), nil
}

// IsBefore reports whether d is strictly earlier than other; invalid values compare as not-before
func (d Date) IsBefore(other Date) bool {
	a, errA := d.Time()
	b, errB := other.Time()
	if errA != nil || errB != nil {
		return false
	}
	return a.Before(b)
}

// Scan implements sql.Scanner for DATE / TEXT columns
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidDate, src)
	}
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return string(d), nil
}
