package entities

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire and storage layout of availability dates.
const DateLayout = "2006-01-02"

var timeOfDayPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

var (
	ErrAvailabilityIncomplete = errors.New("availability requires from/to date and from/to time")
	ErrInvalidTimeOfDay       = errors.New("time must use 24-hour HH:mm format")
	ErrAvailabilityRange      = errors.New("availability end date is before start date")
)

// Availability is a work window: a date range plus a daily time range.
// A zero ToDate means the window is open-ended.
type Availability struct {
	FromDate time.Time `json:"from_date"`
	ToDate   time.Time `json:"to_date"`
	FromTime string    `json:"from_time"`
	ToTime   string    `json:"to_time"`
}

// ValidTimeOfDay reports whether s is a 24-hour HH:mm string.
func ValidTimeOfDay(s string) bool {
	return timeOfDayPattern.MatchString(s)
}

// ParseDate parses a YYYY-MM-DD date. Empty input yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func (a Availability) IsZero() bool {
	return a.FromDate.IsZero() && a.ToDate.IsZero() && a.FromTime == "" && a.ToTime == ""
}

// ValidateComplete requires every field, as proposals carrying a schedule do.
func (a Availability) ValidateComplete() error {
	if a.FromDate.IsZero() || a.ToDate.IsZero() || a.FromTime == "" || a.ToTime == "" {
		return ErrAvailabilityIncomplete
	}
	return a.validateValues()
}

// ValidateOpenEnded requires the start date and both times; the end date is optional.
func (a Availability) ValidateOpenEnded() error {
	if a.FromDate.IsZero() || a.FromTime == "" || a.ToTime == "" {
		return ErrAvailabilityIncomplete
	}
	return a.validateValues()
}

func (a Availability) validateValues() error {
	if !ValidTimeOfDay(a.FromTime) || !ValidTimeOfDay(a.ToTime) {
		return ErrInvalidTimeOfDay
	}
	if !a.ToDate.IsZero() && a.ToDate.Before(a.FromDate) {
		return ErrAvailabilityRange
	}
	return nil
}

// Covers reports whether day falls inside the date range.
func (a Availability) Covers(day time.Time) bool {
	d := day.UTC().Truncate(24 * time.Hour)
	if !a.FromDate.IsZero() && d.Before(a.FromDate) {
		return false
	}
	if !a.ToDate.IsZero() && d.After(a.ToDate) {
		return false
	}
	return true
}
