package job

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Type is the employment type of a posting. Its value is the exact label
// persisted and sent over the wire.
type Type string

const (
	FullTime   Type = "Full-time"
	PartTime   Type = "Part-time"
	Contract   Type = "Contract"
	Internship Type = "Internship"
)

var types = []Type{FullTime, PartTime, Contract, Internship}

var (
	ErrInvalidType = errors.New("invalid job type")
	ErrInvalidDate = errors.New("invalid application deadline")
)

type Job struct {
	ID                  int64
	Title               string
	Company             string
	Location            string
	JobType             Type
	SalaryRange         string
	Description         string
	Requirements        string
	Responsibilities    string
	ApplicationDeadline time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func Types() []Type {
	out := make([]Type, len(types))
	copy(out, types)
	return out
}

func ParseType(label string) (Type, error) {
	for _, t := range types {
		if string(t) == label {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, label)
}

func (t Type) Valid() bool {
	_, err := ParseType(string(t))
	return err == nil
}

func (t Type) String() string {
	return string(t)
}

const DateLayout = "2006-01-02"

// dateTimeLayouts cover a time of minutes or seconds (optionally with a
// fraction), followed by no zone, Z, or an offset with or without a colon.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
}

// ParseDeadline turns an ISO-8601 date or date-time into a calendar date at
// midnight UTC. For date-times the date as written is kept, not converted.
func ParseDeadline(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Date drops the clock part of t, keeping t's own calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
