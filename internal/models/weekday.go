package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

var weekdayNames = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tues":      time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thur":      time.Thursday,
	"thurs":     time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekday accepts a full or abbreviated weekday name (any case) or a
// number where 0 is Sunday and 6 is Saturday.
func ParseWeekday(s string) (time.Weekday, error) {
	part := strings.TrimSpace(strings.ToLower(s))
	if wd, ok := weekdayNames[part]; ok {
		return wd, nil
	}
	num, err := strconv.Atoi(part)
	if err == nil && num >= 0 && num <= 6 {
		return time.Weekday(num), nil
	}
	return 0, fmt.Errorf("invalid weekday: %s", s)
}

// WeekdayName returns the lowercase full name used in exports ("monday").
func WeekdayName(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

// Weekdays is the set of days a class recurs on. It serializes as lowercase
// weekday names so exports stay readable and match older backups.
type Weekdays []time.Weekday

// Contains reports whether wd is in the set.
func (w Weekdays) Contains(wd time.Weekday) bool {
	for _, d := range w {
		if d == wd {
			return true
		}
	}
	return false
}

// Normalize returns a sorted copy with duplicates removed.
func (w Weekdays) Normalize() Weekdays {
	seen := make(map[time.Weekday]bool, len(w))
	out := make(Weekdays, 0, len(w))
	for _, d := range w {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Names returns the lowercase names in set order.
func (w Weekdays) Names() []string {
	names := make([]string, len(w))
	for i, d := range w {
		names[i] = WeekdayName(d)
	}
	return names
}

// Short renders the set as "Mon,Wed".
func (w Weekdays) Short() string {
	parts := make([]string, len(w))
	for i, d := range w {
		parts[i] = d.String()[:3]
	}
	return strings.Join(parts, ",")
}

func (w Weekdays) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Names())
}

func (w *Weekdays) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("weekdays must be a list: %w", err)
	}
	days := make(Weekdays, 0, len(raw))
	for _, r := range raw {
		var name string
		if err := json.Unmarshal(r, &name); err != nil {
			var num int
			if err := json.Unmarshal(r, &num); err != nil {
				return fmt.Errorf("invalid weekday value %s", string(r))
			}
			name = strconv.Itoa(num)
		}
		wd, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		days = append(days, wd)
	}
	*w = days
	return nil
}

func (w Weekdays) MarshalYAML() (interface{}, error) {
	return w.Names(), nil
}

func (w *Weekdays) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if err := value.Decode(&names); err != nil {
		return fmt.Errorf("weekdays must be a list: %w", err)
	}
	days := make(Weekdays, 0, len(names))
	for _, name := range names {
		wd, err := ParseWeekday(name)
		if err != nil {
			return err
		}
		days = append(days, wd)
	}
	*w = days
	return nil
}
