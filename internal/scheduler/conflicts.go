package scheduler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

type ConflictKind string

const (
	RoomDoubleBooking       ConflictKind = "room_double_booking"
	FacultyDoubleBooking    ConflictKind = "faculty_double_booking"
	CapacityExceeded        ConflictKind = "capacity_exceeded"
	EquipmentMissing        ConflictKind = "equipment_missing"
	TimeConstraintViolation ConflictKind = "time_constraint_violation"
	FacultyOverload         ConflictKind = "faculty_overload"
	RoomTypeMismatch        ConflictKind = "room_type_mismatch"
	PreferenceViolation     ConflictKind = "preference_violation"
)

// ConflictKinds lists every kind in severity order.
var ConflictKinds = []ConflictKind{
	RoomDoubleBooking,
	FacultyDoubleBooking,
	CapacityExceeded,
	EquipmentMissing,
	TimeConstraintViolation,
	FacultyOverload,
	RoomTypeMismatch,
	PreferenceViolation,
}

// ConflictRecord describes one detected violation. Only the fields
// relevant to the kind are populated.
type ConflictRecord struct {
	Kind        ConflictKind `json:"kind"`
	Severity    string       `json:"severity"`
	Description string       `json:"description"`

	RoomID     string   `json:"room_id,omitempty"`
	FacultyID  string   `json:"faculty_id,omitempty"`
	CourseCode string   `json:"course_code,omitempty"`
	Day        string   `json:"day,omitempty"`
	Time       string   `json:"time,omitempty"`
	Courses    []string `json:"conflicting_courses,omitempty"`
	Missing    []string `json:"missing_equipment,omitempty"`
	Violations []string `json:"violations,omitempty"`

	RequiredCapacity int     `json:"required_capacity,omitempty"`
	RoomCapacity     int     `json:"room_capacity,omitempty"`
	Excess           int     `json:"excess,omitempty"`
	AssignedHours    int     `json:"assigned_hours,omitempty"`
	MaxHours         int     `json:"max_hours,omitempty"`
	Overload         int     `json:"overload,omitempty"`
	PreferenceScore  float64 `json:"preference_score,omitempty"`
}

// ConflictReport maps each kind to its records.
type ConflictReport map[ConflictKind][]ConflictRecord

// ConflictSummary aggregates a report for display.
type ConflictSummary struct {
	TotalConflicts int                  `json:"total_conflicts"`
	BySeverity     map[string]int       `json:"by_severity"`
	ByKind         map[ConflictKind]int `json:"by_kind"`

	MostConflictedCourses []EntityConflictCount `json:"most_conflicted_courses"`
	MostConflictedFaculty []EntityConflictCount `json:"most_conflicted_faculty"`
	MostConflictedRooms   []EntityConflictCount `json:"most_conflicted_rooms"`

	ResolutionSuggestions []string `json:"resolution_suggestions"`
}

type EntityConflictCount struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

var conflictWeights = map[ConflictKind]float64{
	RoomDoubleBooking:       1.0,
	FacultyDoubleBooking:    1.0,
	CapacityExceeded:        0.9,
	EquipmentMissing:        0.8,
	TimeConstraintViolation: 0.7,
	FacultyOverload:         0.6,
	RoomTypeMismatch:        0.5,
	PreferenceViolation:     0.3,
}

// ConflictDetector is a pure analyzer: it reads a finished schedule and
// classifies its violations without touching any entity state.
type ConflictDetector struct{}

func NewConflictDetector() *ConflictDetector {
	return &ConflictDetector{}
}

// Detect runs every check and returns all findings grouped by kind.
func (d *ConflictDetector) Detect(schedule *model.Schedule) ConflictReport {
	report := make(ConflictReport, len(ConflictKinds))
	for _, kind := range ConflictKinds {
		report[kind] = []ConflictRecord{}
	}

	report[RoomDoubleBooking] = d.roomDoubleBookings(schedule)
	report[FacultyDoubleBooking] = d.facultyDoubleBookings(schedule)
	report[CapacityExceeded] = d.capacityConflicts(schedule)
	report[EquipmentMissing] = d.equipmentConflicts(schedule)
	report[TimeConstraintViolation] = d.timeConflicts(schedule)
	report[FacultyOverload] = d.overloadConflicts(schedule)
	report[RoomTypeMismatch] = d.roomTypeConflicts(schedule)
	report[PreferenceViolation] = d.preferenceConflicts(schedule)
	return report
}

type slotKey struct {
	id   string
	day  string
	time string
}

func (d *ConflictDetector) roomDoubleBookings(schedule *model.Schedule) []ConflictRecord {
	groups := make(map[slotKey][]*model.ScheduleEntry)
	var order []slotKey
	for _, entry := range schedule.Entries {
		key := slotKey{id: entry.Room.ID, day: entry.Day, time: entry.Time}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], entry)
	}

	var records []ConflictRecord
	for _, key := range order {
		entries := groups[key]
		if len(entries) < 2 {
			continue
		}
		codes := make([]string, 0, len(entries))
		for _, entry := range entries {
			codes = append(codes, entry.Course.Code)
		}
		records = append(records, ConflictRecord{
			Kind:        RoomDoubleBooking,
			Severity:    "high",
			RoomID:      key.id,
			Day:         key.day,
			Time:        key.time,
			Courses:     codes,
			Description: fmt.Sprintf("Room %s double booked on %s at %s", key.id, key.day, key.time),
		})
	}
	return records
}

func (d *ConflictDetector) facultyDoubleBookings(schedule *model.Schedule) []ConflictRecord {
	groups := make(map[slotKey][]*model.ScheduleEntry)
	var order []slotKey
	for _, entry := range schedule.Entries {
		key := slotKey{id: entry.Faculty.ID, day: entry.Day, time: entry.Time}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], entry)
	}

	var records []ConflictRecord
	for _, key := range order {
		entries := groups[key]
		if len(entries) < 2 {
			continue
		}
		codes := make([]string, 0, len(entries))
		for _, entry := range entries {
			codes = append(codes, entry.Course.Code)
		}
		records = append(records, ConflictRecord{
			Kind:        FacultyDoubleBooking,
			Severity:    "high",
			FacultyID:   key.id,
			Day:         key.day,
			Time:        key.time,
			Courses:     codes,
			Description: fmt.Sprintf("Faculty %s double booked on %s at %s", key.id, key.day, key.time),
		})
	}
	return records
}

func (d *ConflictDetector) capacityConflicts(schedule *model.Schedule) []ConflictRecord {
	var records []ConflictRecord
	for _, entry := range schedule.Entries {
		if entry.Course.Capacity <= entry.Room.Capacity {
			continue
		}
		records = append(records, ConflictRecord{
			Kind:             CapacityExceeded,
			Severity:         "medium",
			CourseCode:       entry.Course.Code,
			RoomID:           entry.Room.ID,
			RequiredCapacity: entry.Course.Capacity,
			RoomCapacity:     entry.Room.Capacity,
			Excess:           entry.Course.Capacity - entry.Room.Capacity,
			Description: fmt.Sprintf("Course %s requires %d seats but room %s only has %d",
				entry.Course.Code, entry.Course.Capacity, entry.Room.ID, entry.Room.Capacity),
		})
	}
	return records
}

func (d *ConflictDetector) equipmentConflicts(schedule *model.Schedule) []ConflictRecord {
	var records []ConflictRecord
	for _, entry := range schedule.Entries {
		var missing []string
		for _, eq := range entry.Course.RequiredEquipment {
			if !entry.Room.HasEquipment([]string{eq}) {
				missing = append(missing, eq)
			}
		}
		if len(missing) == 0 {
			continue
		}
		records = append(records, ConflictRecord{
			Kind:       EquipmentMissing,
			Severity:   "medium",
			CourseCode: entry.Course.Code,
			RoomID:     entry.Room.ID,
			Missing:    missing,
			Description: fmt.Sprintf("Course %s requires equipment %s not available in room %s",
				entry.Course.Code, strings.Join(missing, ", "), entry.Room.ID),
		})
	}
	return records
}

func (d *ConflictDetector) timeConflicts(schedule *model.Schedule) []ConflictRecord {
	var records []ConflictRecord
	for _, entry := range schedule.Entries {
		var violations []string
		if len(entry.Course.PreferredDays) > 0 && !contains(entry.Course.PreferredDays, entry.Day) {
			violations = append(violations, fmt.Sprintf("Day %s not in preferred days", entry.Day))
		}
		if len(entry.Course.PreferredTimes) > 0 && !contains(entry.Course.PreferredTimes, entry.Time) {
			violations = append(violations, fmt.Sprintf("Time %s not in preferred times", entry.Time))
		}
		if contains(entry.Faculty.UnavailableSlots[entry.Day], entry.Time) {
			violations = append(violations, fmt.Sprintf("Faculty unavailable at %s %s", entry.Day, entry.Time))
		}
		if len(violations) == 0 {
			continue
		}
		records = append(records, ConflictRecord{
			Kind:        TimeConstraintViolation,
			Severity:    "low",
			CourseCode:  entry.Course.Code,
			FacultyID:   entry.Faculty.ID,
			Day:         entry.Day,
			Time:        entry.Time,
			Violations:  violations,
			Description: fmt.Sprintf("Time constraint violations for %s: %s", entry.Course.Code, strings.Join(violations, "; ")),
		})
	}
	return records
}

// overloadConflicts reports each overloaded faculty once, regardless of
// how many entries contribute to the overload.
func (d *ConflictDetector) overloadConflicts(schedule *model.Schedule) []ConflictRecord {
	hours := make(map[string]int)
	byID := make(map[string]*model.Faculty)
	var order []string
	for _, entry := range schedule.Entries {
		id := entry.Faculty.ID
		if _, seen := hours[id]; !seen {
			order = append(order, id)
			byID[id] = entry.Faculty
		}
		hours[id] += entry.Duration
	}

	var records []ConflictRecord
	for _, id := range order {
		faculty := byID[id]
		total := hours[id]
		if total <= faculty.MaxTeachingHours {
			continue
		}
		records = append(records, ConflictRecord{
			Kind:          FacultyOverload,
			Severity:      "medium",
			FacultyID:     id,
			AssignedHours: total,
			MaxHours:      faculty.MaxTeachingHours,
			Overload:      total - faculty.MaxTeachingHours,
			Description: fmt.Sprintf("Faculty %s assigned %d hours exceeding limit of %d",
				id, total, faculty.MaxTeachingHours),
		})
	}
	return records
}

func (d *ConflictDetector) roomTypeConflicts(schedule *model.Schedule) []ConflictRecord {
	var records []ConflictRecord
	for _, entry := range schedule.Entries {
		required := entry.Course.RoomTypeRequired
		if required == "" || string(entry.Room.Type) == required {
			continue
		}
		records = append(records, ConflictRecord{
			Kind:       RoomTypeMismatch,
			Severity:   "medium",
			CourseCode: entry.Course.Code,
			RoomID:     entry.Room.ID,
			Description: fmt.Sprintf("Course %s requires %s but assigned to %s",
				entry.Course.Code, required, entry.Room.Type),
		})
	}
	return records
}

func (d *ConflictDetector) preferenceConflicts(schedule *model.Schedule) []ConflictRecord {
	var records []ConflictRecord
	for _, entry := range schedule.Entries {
		var violations []string
		if len(entry.Faculty.PreferredDays) > 0 && !contains(entry.Faculty.PreferredDays, entry.Day) {
			violations = append(violations, "Faculty day preference not met")
		}
		if len(entry.Faculty.PreferredTimes) > 0 && !contains(entry.Faculty.PreferredTimes, entry.Time) {
			violations = append(violations, "Faculty time preference not met")
		}

		// Heuristic threshold, not a hard rule.
		score := entry.Course.ConstraintScore(entry.Day, entry.Time)
		if score < 0.8 {
			violations = append(violations, "Course preferences not well satisfied")
		}

		if len(violations) == 0 {
			continue
		}
		records = append(records, ConflictRecord{
			Kind:            PreferenceViolation,
			Severity:        "low",
			CourseCode:      entry.Course.Code,
			FacultyID:       entry.Faculty.ID,
			Violations:      violations,
			PreferenceScore: score,
			Description:     fmt.Sprintf("Preference violations for %s: %s", entry.Course.Code, strings.Join(violations, "; ")),
		})
	}
	return records
}

// Score condenses a report into a single 0-100 number, higher is better.
func (d *ConflictDetector) Score(report ConflictReport, entryCount int) float64 {
	totalWeight := 0.0
	weighted := 0.0
	for kind, records := range report {
		if len(records) == 0 {
			continue
		}
		weight := conflictWeights[kind]
		totalWeight += weight
		weighted += float64(len(records)) * weight
	}
	if totalWeight == 0 {
		return 100.0
	}

	maxPossible := float64(entryCount)
	if maxPossible <= 0 {
		maxPossible = 100
	}
	ratio := weighted / maxPossible
	if ratio > 1.0 {
		ratio = 1.0
	}
	return (1.0 - ratio) * 100
}

// Summarize ranks the most conflicted entities and attaches the fixed
// resolution suggestion for each non-empty kind.
func (d *ConflictDetector) Summarize(report ConflictReport) ConflictSummary {
	summary := ConflictSummary{
		BySeverity: map[string]int{"high": 0, "medium": 0, "low": 0},
		ByKind:     make(map[ConflictKind]int, len(report)),
	}

	courseCounts := make(map[string]int)
	facultyCounts := make(map[string]int)
	roomCounts := make(map[string]int)

	for _, kind := range ConflictKinds {
		records := report[kind]
		summary.ByKind[kind] = len(records)
		summary.TotalConflicts += len(records)
		for _, record := range records {
			summary.BySeverity[record.Severity]++
			if record.CourseCode != "" {
				courseCounts[record.CourseCode]++
			}
			if record.FacultyID != "" {
				facultyCounts[record.FacultyID]++
			}
			if record.RoomID != "" {
				roomCounts[record.RoomID]++
			}
		}
	}

	summary.MostConflictedCourses = topCounts(courseCounts, 5)
	summary.MostConflictedFaculty = topCounts(facultyCounts, 5)
	summary.MostConflictedRooms = topCounts(roomCounts, 5)
	summary.ResolutionSuggestions = suggestions(report)
	return summary
}

func topCounts(counts map[string]int, n int) []EntityConflictCount {
	ranked := make([]EntityConflictCount, 0, len(counts))
	for id, count := range counts {
		ranked = append(ranked, EntityConflictCount{ID: id, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].ID < ranked[j].ID
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// suggestions are fixed strings keyed by which kinds are non-empty, not
// derived from the records themselves.
func suggestions(report ConflictReport) []string {
	out := []string{}
	if len(report[RoomDoubleBooking]) > 0 {
		out = append(out, "Consider adding more rooms or spreading classes across more time slots")
	}
	if len(report[FacultyDoubleBooking]) > 0 {
		out = append(out, "Review faculty assignments or hire additional faculty")
	}
	if len(report[CapacityExceeded]) > 0 {
		out = append(out, "Move large courses to bigger rooms or split into multiple sections")
	}
	if len(report[EquipmentMissing]) > 0 {
		out = append(out, "Install required equipment or reassign courses to equipped rooms")
	}
	if len(report[FacultyOverload]) > 0 {
		out = append(out, "Redistribute teaching load or hire additional faculty")
	}
	if len(report[RoomTypeMismatch]) > 0 {
		out = append(out, "Convert rooms to required types or reassign courses")
	}
	return out
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
