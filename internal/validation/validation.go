// Package validation finds problems in the weekly timetable that the
// per-row model checks cannot see: classes that clash, duplicated classes
// and reminders that would fire twice.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/tutr/internal/models"
	"github.com/julianstephens/tutr/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingClasses ConflictType = "overlapping_classes"
	ConflictDuplicateClass     ConflictType = "duplicate_class"
	ConflictDuplicateReminder  ConflictType = "duplicate_reminder"
	ConflictInvalidTime        ConflictType = "invalid_time"
)

// Conflict represents a detected conflict in the timetable
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // class subjects involved
	Days        models.Weekdays
	IDs         []string // ids of the rows involved, used by auto-fix
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateClasses checks the whole timetable.
func (v *Validator) ValidateClasses(classes []models.Class, reminders []models.Reminder) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	// Same subject for the same student twice
	type classKey struct{ student, subject string }
	byKey := make(map[classKey][]models.Class)
	var keys []classKey
	for _, c := range classes {
		k := classKey{c.StudentID, strings.ToLower(strings.TrimSpace(c.Subject))}
		if _, seen := byKey[k]; !seen {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], c)
	}
	for _, k := range keys {
		dupes := byKey[k]
		if len(dupes) < 2 || !anyDaysShared(dupes) {
			continue
		}
		ids := make([]string, len(dupes))
		for i, c := range dupes {
			ids[i] = c.ID
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateClass,
			Description: fmt.Sprintf("Duplicate class: \"%s\" is scheduled %d times for the same student", dupes[0].Subject, len(dupes)),
			Items:       []string{dupes[0].Subject},
			IDs:         ids,
		})
	}

	for _, c := range classes {
		if !utils.ValidateTimeFormat(c.StartTime) || !utils.ValidateTimeFormat(c.EndTime) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Class \"%s\" has an invalid time range: %s-%s", c.Subject, c.StartTime, c.EndTime),
				Items:       []string{c.Subject},
				IDs:         []string{c.ID},
			})
			continue
		}
		if c.EndTime <= c.StartTime {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Class \"%s\" ends (%s) before it starts (%s)", c.Subject, c.EndTime, c.StartTime),
				Items:       []string{c.Subject},
				IDs:         []string{c.ID},
			})
		}
	}

	sorted := append([]models.Class(nil), classes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})
	// O(n²), a tutor's week holds a few dozen classes at most.
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if c, ok := overlap(sorted[i], sorted[j]); ok {
				result.Conflicts = append(result.Conflicts, c)
			}
		}
	}

	// Two enabled reminders with the same lead on one class fire together.
	type remKey struct {
		class string
		lead  int
	}
	remIDs := make(map[remKey][]string)
	var remKeys []remKey
	for _, r := range reminders {
		if !r.Enabled {
			continue
		}
		k := remKey{r.ClassID, r.LeadMin}
		if _, seen := remIDs[k]; !seen {
			remKeys = append(remKeys, k)
		}
		remIDs[k] = append(remIDs[k], r.ID)
	}
	subjects := make(map[string]string, len(classes))
	for _, c := range classes {
		subjects[c.ID] = c.Subject
	}
	for _, k := range remKeys {
		ids := remIDs[k]
		if len(ids) < 2 {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateReminder,
			Description: fmt.Sprintf("Duplicate reminders: %d reminders fire %d min before \"%s\"", len(ids), k.lead, subjects[k.class]),
			Items:       []string{subjects[k.class]},
			IDs:         ids,
		})
	}

	return result
}

// ValidateClass returns the existing classes that clash with candidate.
// The candidate itself is skipped by id, so edits can be checked in place.
func (v *Validator) ValidateClass(candidate models.Class, existing []models.Class) []Conflict {
	var out []Conflict
	for _, c := range existing {
		if c.ID == candidate.ID {
			continue
		}
		if conflict, ok := overlap(candidate, c); ok {
			out = append(out, conflict)
		}
	}
	return out
}

func overlap(a, b models.Class) (Conflict, bool) {
	if !timesOverlap(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
		return Conflict{}, false
	}
	shared := sharedDays(a.Days, b.Days)
	if len(shared) == 0 {
		return Conflict{}, false
	}
	return Conflict{
		Type: ConflictOverlappingClasses,
		Description: fmt.Sprintf("Classes overlap on %s: \"%s\" (%s-%s) and \"%s\" (%s-%s)",
			shared.Short(), a.Subject, a.StartTime, a.EndTime, b.Subject, b.StartTime, b.EndTime),
		Items: []string{a.Subject, b.Subject},
		Days:  shared,
		IDs:   []string{a.ID, b.ID},
	}, true
}

func sharedDays(a, b models.Weekdays) models.Weekdays {
	var out models.Weekdays
	for _, d := range a {
		if b.Contains(d) && !out.Contains(d) {
			out = append(out, d)
		}
	}
	return out.Normalize()
}

func anyDaysShared(classes []models.Class) bool {
	for i := 0; i < len(classes); i++ {
		for j := i + 1; j < len(classes); j++ {
			if len(sharedDays(classes[i].Days, classes[j].Days)) > 0 {
				return true
			}
		}
	}
	return false
}

// timesOverlap checks if two HH:MM ranges overlap. Touching ranges
// (one ends as the other starts) do not.
func timesOverlap(start1, end1, start2, end2 string) bool {
	s1, err := utils.ParseTimeToMinutes(start1)
	if err != nil {
		return false
	}
	e1, err := utils.ParseTimeToMinutes(end1)
	if err != nil {
		return false
	}
	s2, err := utils.ParseTimeToMinutes(start2)
	if err != nil {
		return false
	}
	e2, err := utils.ParseTimeToMinutes(end2)
	if err != nil {
		return false
	}
	return s1 < e2 && s2 < e1
}

// AutoFixDuplicateReminders keeps the first reminder (by id) of every
// duplicate group and deletes the rest through deleteFunc.
func AutoFixDuplicateReminders(conflicts []Conflict, deleteFunc func(id string) error) []FixAction {
	actions := []FixAction{}
	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateReminder || len(conflict.IDs) <= 1 {
			continue
		}
		ids := append([]string(nil), conflict.IDs...)
		sort.Strings(ids)
		keep := ids[0]

		var deleted, failed []string
		for _, id := range ids[1:] {
			if err := deleteFunc(id); err != nil {
				failed = append(failed, id)
				continue
			}
			deleted = append(deleted, id)
		}

		switch {
		case len(deleted) > 0:
			msg := fmt.Sprintf("Removed %d duplicate reminder(s) for \"%s\" (kept ID: %s, removed: %v)", len(deleted), strings.Join(conflict.Items, ", "), keep, deleted)
			if len(failed) > 0 {
				msg += fmt.Sprintf(" (failed to remove: %v)", failed)
			}
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		case len(failed) > 0:
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove duplicate reminders for \"%s\": %v", strings.Join(conflict.Items, ", "), failed),
				SourceConflict: conflict,
			})
		}
	}
	return actions
}
