package timeutil

import (
	"fmt"
	"time"

	"github.com/studyflowhq/studyflow/internal/constants"
)

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of
// minutes from midnight. The format is strict: two digits, a colon, two
// digits, with hours 00-23 and minutes 00-59.
func ParseTimeToMinutes(timeStr string) (int, error) {
	if len(timeStr) != 5 || timeStr[2] != ':' {
		return 0, fmt.Errorf("invalid time format %q: expected HH:MM", timeStr)
	}
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q: %w", timeStr, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesToTimeString formats minutes-from-midnight as a zero-padded HH:MM
// string. Values outside [0, 1440) are rejected rather than wrapped: a
// computed time past midnight means the schedule itself is wrong, and
// wrapping would silently corrupt it.
func MinutesToTimeString(minutes int) (string, error) {
	if minutes < 0 || minutes >= constants.MinutesPerDay {
		return "", fmt.Errorf("minutes %d out of range [0, %d)", minutes, constants.MinutesPerDay)
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// DurationMinutes returns end minus start in minutes. It errors if either
// time is malformed or end is not after start.
func DurationMinutes(start, end string) (int, error) {
	startMin, err := ParseTimeToMinutes(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ParseTimeToMinutes(end)
	if err != nil {
		return 0, err
	}
	if endMin <= startMin {
		return 0, fmt.Errorf("end time %s is not after start time %s", end, start)
	}
	return endMin - startMin, nil
}

// AddMinutes shifts a time string forward by the given number of minutes.
// The result must stay within the same day.
func AddMinutes(timeStr string, minutes int) (string, error) {
	base, err := ParseTimeToMinutes(timeStr)
	if err != nil {
		return "", err
	}
	return MinutesToTimeString(base + minutes)
}

// IsValidTimeFormat checks if the string matches the standard time format.
func IsValidTimeFormat(timeStr string) bool {
	_, err := ParseTimeToMinutes(timeStr)
	return err == nil
}

// IsValidDateFormat checks if the string matches the standard date format.
func IsValidDateFormat(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// Today returns today's date string (YYYY-MM-DD) in the specified timezone.
func Today(timezone string) (string, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc).Format(constants.DateFormat), nil
}
