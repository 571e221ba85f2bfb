package reminders

import "time"

const week = 7

// NextOccurrence returns the next date on weekday at hour:minute, in now's
// location. Today never counts: if weekday is today the result is one week
// out, even when the class has not started yet.
func NextOccurrence(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	daysUntil := int(weekday) - int(now.Weekday())
	if daysUntil <= 0 {
		daysUntil += week
	}
	day := now.AddDate(0, 0, daysUntil)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
}

// FireTime is the instant leadMin minutes before start.
func FireTime(start time.Time, leadMin int) time.Time {
	return start.Add(-time.Duration(leadMin) * time.Minute)
}

// NextFireTime combines NextOccurrence and FireTime and pushes the result a
// week at a time until it lies strictly after now. It returns the fire
// instant and the class start it belongs to.
func NextFireTime(now time.Time, weekday time.Weekday, hour, minute, leadMin int) (fire, start time.Time) {
	start = NextOccurrence(now, weekday, hour, minute)
	fire = FireTime(start, leadMin)
	for !fire.After(now) {
		start = start.AddDate(0, 0, week)
		fire = FireTime(start, leadMin)
	}
	return fire, start
}
