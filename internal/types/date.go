// Package types implements value types shared by the ledger and its storage.
package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time-of-day semantics.
//
// Every Date is normalised to midnight UTC so that two Dates for
// the same day are always equal.
type Date time.Time

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date on which t occurs in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// ParseDate parses a "YYYY-MM-DD" string. RFC3339 timestamps are accepted
// too, only the date in the timestamp's own offset is kept.
func ParseDate(s string) (Date, error) {
	layout := time.RFC3339
	if len(s) == len(dateLayout) {
		layout = dateLayout
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("'%s' is not a valid date, use the YYYY-MM-DD format", s)
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(dateLayout)
}

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

func (d Date) Before(o Date) bool {
	return time.Time(d).Before(time.Time(o))
}

func (d Date) After(o Date) bool {
	return time.Time(d).After(time.Time(o))
}

func (d Date) Equal(o Date) bool {
	return time.Time(d).Equal(time.Time(o))
}

// Compare returns -1, 0 or 1 when d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	return time.Time(d).Compare(time.Time(o))
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return DateOf(time.Time(d).AddDate(0, 0, n))
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// Empty strings and null leave the Date untouched.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// UnmarshalParam implements gin's BindUnmarshaler so that
// a Date can be bound from query and URI parameters.
func (d *Date) UnmarshalParam(param string) error {
	if param == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(param)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// GormDataType is the column type used by gorm when migrating.
func (Date) GormDataType() string {
	return "date"
}

// Value stores the date as YYYY-MM-DD text, which keeps
// comparisons in SQL lexicographic and inclusive.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements the sql.Scanner interface.
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	}

	return fmt.Errorf("cannot scan %T into a Date", value)
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}

	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}

	*d = DateOf(parsed)
	return nil
}
