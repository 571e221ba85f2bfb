package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/tutr/internal/constants"
)

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// AtClock returns day's date at the given HH:MM in day's location, seconds zeroed.
func AtClock(day time.Time, timeStr string) (time.Time, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CurrentMonth returns t's billing month (YYYY-MM).
func CurrentMonth(t time.Time) string {
	return t.Format(constants.MonthFormat)
}

// Format12h converts "16:05" to "4:05 PM". Malformed input is returned unchanged.
func Format12h(timeStr string) string {
	t, err := ParseTime(timeStr)
	if err != nil {
		return timeStr
	}
	return t.Format("3:04 PM")
}
