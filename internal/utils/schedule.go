package utils

import (
	"sort"
	"time"

	"github.com/julianstephens/tutr/internal/models"
)

// Occurrence is one concrete meeting of a class.
type Occurrence struct {
	Class models.Class
	Start time.Time
	End   time.Time
}

// FilterClassesByDay returns the classes meeting on day's weekday, ordered by start time.
func FilterClassesByDay(classes []models.Class, day time.Time) []models.Class {
	var out []models.Class
	for _, c := range classes {
		if c.OccursOn(day.Weekday()) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// TodayOccurrences lists today's classes with concrete start and end times.
func TodayOccurrences(classes []models.Class, now time.Time) []Occurrence {
	return occurrencesOn(classes, now)
}

// UpcomingOccurrences lists every class meeting in the window [from, from+days),
// skipping meetings that already started. Results are ordered by start.
func UpcomingOccurrences(classes []models.Class, from time.Time, days int) []Occurrence {
	var out []Occurrence
	day := StartOfDay(from)
	for i := 0; i < days; i++ {
		for _, occ := range occurrencesOn(classes, day.AddDate(0, 0, i)) {
			if occ.Start.Before(from) {
				continue
			}
			out = append(out, occ)
		}
	}
	return out
}

func occurrencesOn(classes []models.Class, day time.Time) []Occurrence {
	var out []Occurrence
	for _, c := range FilterClassesByDay(classes, day) {
		start, err := AtClock(day, c.StartTime)
		if err != nil {
			continue
		}
		end, err := AtClock(day, c.EndTime)
		if err != nil {
			end = start
		}
		out = append(out, Occurrence{Class: c, Start: start, End: end})
	}
	return out
}
