package model

import "slices"

type Faculty struct {
	ID         string `csv:"id" json:"id"`
	Name       string `csv:"name" json:"name"`
	Department string `csv:"department" json:"department"`
	Email      string `csv:"email" json:"email"`

	MaxTeachingHours int      `csv:"max_teaching_hours" json:"max_teaching_hours"`
	PreferredDays    []string `csv:"-" json:"preferred_days"`
	PreferredTimes   []string `csv:"-" json:"preferred_times"`
	// UnavailableSlots lists hard blackout times per day.
	UnavailableSlots map[string][]string `csv:"-" json:"unavailable_slots"`

	ConsecutiveClassPreference bool `csv:"consecutive_class_preference" json:"consecutive_class_preference"`
	BreakDuration              int  `csv:"break_duration_required" json:"break_duration_required"`

	// Running assignment state, mirrors the entries currently applied.
	CurrentTeachingHours int                 `csv:"-" json:"-"`
	AssignedSlots        map[string][]string `csv:"-" json:"-"`
}

// ResetAssignments clears all tracked assignments.
func (f *Faculty) ResetAssignments() {
	f.CurrentTeachingHours = 0
	f.AssignedSlots = make(map[string][]string)
}

// IsAvailable checks blackout slots, existing assignments, and the
// aggregate hour cap for duration hours starting at (day, time).
func (f *Faculty) IsAvailable(day string, time string, duration int) bool {
	start := TimeIndex(time)
	if start < 0 {
		return false
	}
	for i := 0; i < duration; i++ {
		if start+i >= len(Times) {
			return false
		}
		t := Times[start+i]
		if slices.Contains(f.UnavailableSlots[day], t) {
			return false
		}
		if slices.Contains(f.AssignedSlots[day], t) {
			return false
		}
	}
	if f.CurrentTeachingHours+duration > f.MaxTeachingHours {
		return false
	}
	return true
}

// AssignSlot records duration hours starting at (day, time).
func (f *Faculty) AssignSlot(day string, time string, duration int) {
	if f.AssignedSlots == nil {
		f.AssignedSlots = make(map[string][]string)
	}
	start := TimeIndex(time)
	if start < 0 {
		return
	}
	for i := 0; i < duration; i++ {
		if start+i < len(Times) {
			f.AssignedSlots[day] = append(f.AssignedSlots[day], Times[start+i])
		}
	}
	f.CurrentTeachingHours += duration
}

// ReleaseSlot undoes a previous AssignSlot with the same arguments.
func (f *Faculty) ReleaseSlot(day string, time string, duration int) {
	start := TimeIndex(time)
	if start < 0 {
		return
	}
	for i := 0; i < duration; i++ {
		if start+i >= len(Times) {
			continue
		}
		t := Times[start+i]
		if idx := slices.Index(f.AssignedSlots[day], t); idx >= 0 {
			f.AssignedSlots[day] = slices.Delete(f.AssignedSlots[day], idx, idx+1)
		}
	}
	f.CurrentTeachingHours -= duration
	if f.CurrentTeachingHours < 0 {
		f.CurrentTeachingHours = 0
	}
}

// PreferenceScore rates a slot against the faculty's day and time
// preferences. Capped at 2.0.
func (f *Faculty) PreferenceScore(day string, time string) float64 {
	score := 1.0
	if len(f.PreferredDays) > 0 && slices.Contains(f.PreferredDays, day) {
		score *= 1.2
	}
	if len(f.PreferredTimes) > 0 && slices.Contains(f.PreferredTimes, time) {
		score *= 1.2
	}
	if score > 2.0 {
		score = 2.0
	}
	return score
}
