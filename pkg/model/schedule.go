package model

import "strings"

// ScheduleEntry is one finalized assignment. Course, Room, and Faculty
// point at the shared pool objects, never copies; identity is how the
// conflict detector groups double bookings.
type ScheduleEntry struct {
	Course   *Course
	Room     *Room
	Faculty  *Faculty
	Day      string
	Time     string
	Duration int

	ConflictScore      float64
	PreferenceScore    float64
	ResourceEfficiency float64
}

// Schedule is the result every pipeline stage consumes and returns.
type Schedule struct {
	Entries   []*ScheduleEntry
	Conflicts []string

	TotalConflicts      int
	AccuracyScore       float64
	RoomUtilization     float64
	FacultySatisfaction float64
}

func NewSchedule() *Schedule {
	return &Schedule{
		Entries:   []*ScheduleEntry{},
		Conflicts: []string{},
	}
}

func (s *Schedule) AddEntry(entry *ScheduleEntry) {
	s.Entries = append(s.Entries, entry)
}

func (s *Schedule) RemoveEntry(entry *ScheduleEntry) {
	for i, e := range s.Entries {
		if e == entry {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return
		}
	}
}

// Matrix arranges entries by day and time for display.
func (s *Schedule) Matrix() map[string]map[string][]*ScheduleEntry {
	matrix := make(map[string]map[string][]*ScheduleEntry, len(Days))
	for _, day := range Days {
		matrix[day] = make(map[string][]*ScheduleEntry, len(Times))
		for _, t := range Times {
			matrix[day][t] = nil
		}
	}
	for _, entry := range s.Entries {
		if byTime, ok := matrix[entry.Day]; ok {
			if _, ok := byTime[entry.Time]; ok {
				byTime[entry.Time] = append(byTime[entry.Time], entry)
			}
		}
	}
	return matrix
}

// CalculateMetrics refreshes the aggregate quality numbers. Room
// utilization is filled in separately by the resource optimizer.
func (s *Schedule) CalculateMetrics() {
	if len(s.Entries) == 0 {
		return
	}

	s.TotalConflicts = len(s.Conflicts)

	total := len(s.Entries)
	successful := total - s.TotalConflicts
	if successful < 0 {
		successful = 0
	}
	s.AccuracyScore = float64(successful) / float64(total) * 100

	sum := 0.0
	for _, entry := range s.Entries {
		sum += entry.PreferenceScore
	}
	s.FacultySatisfaction = sum / float64(total) * 100
}

// ConflictsByType buckets the free-text conflict strings by keyword.
func (s *Schedule) ConflictsByType() map[string]int {
	types := map[string]int{
		"room_double_booking":       0,
		"faculty_double_booking":    0,
		"capacity_exceeded":         0,
		"equipment_missing":         0,
		"time_constraint_violation": 0,
	}
	for _, conflict := range s.Conflicts {
		lower := strings.ToLower(conflict)
		switch {
		case strings.Contains(lower, "room") && strings.Contains(lower, "double"):
			types["room_double_booking"]++
		case strings.Contains(lower, "faculty") && strings.Contains(lower, "double"):
			types["faculty_double_booking"]++
		case strings.Contains(lower, "capacity"):
			types["capacity_exceeded"]++
		case strings.Contains(lower, "equipment"):
			types["equipment_missing"]++
		default:
			types["time_constraint_violation"]++
		}
	}
	return types
}
