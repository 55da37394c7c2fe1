package model

import "slices"

type CourseType string

const (
	Lecture  CourseType = "lecture"
	Lab      CourseType = "lab"
	Seminar  CourseType = "seminar"
	Tutorial CourseType = "tutorial"
)

// Course is immutable once loaded; all scheduling state lives in the
// rooms and faculty it gets assigned to.
type Course struct {
	ID         string     `csv:"id" json:"id"`
	Name       string     `csv:"name" json:"name"`
	Code       string     `csv:"code" json:"code"`
	Duration   int        `csv:"duration" json:"duration"`
	Type       CourseType `csv:"course_type" json:"course_type"`
	Capacity   int        `csv:"capacity" json:"capacity"`
	FacultyID  string     `csv:"faculty_id" json:"faculty_id"`
	Department string     `csv:"department" json:"department"`
	Semester   int        `csv:"semester" json:"semester"`
	Credits    int        `csv:"credits" json:"credits"`

	PreferredDays     []string `csv:"-" json:"preferred_days"`
	PreferredTimes    []string `csv:"-" json:"preferred_times"`
	RequiredEquipment []string `csv:"-" json:"required_equipment"`
	RoomTypeRequired  string   `csv:"room_type_required" json:"room_type_required"`
	ConsecutiveHours  bool     `csv:"consecutive_hours" json:"consecutive_hours"`

	FacultyPreferenceWeight float64 `csv:"faculty_preference_score" json:"faculty_preference_score"`
	RoomPreferenceWeight    float64 `csv:"room_preference_score" json:"room_preference_score"`
	TimePreferenceWeight    float64 `csv:"time_preference_score" json:"time_preference_score"`
}

// ConstraintScore rates how well a slot matches the course's own
// preferences. Multiplicative penalty, no side effects.
func (c *Course) ConstraintScore(day string, time string) float64 {
	score := 1.0
	if len(c.PreferredDays) > 0 && !slices.Contains(c.PreferredDays, day) {
		score *= 0.7
	}
	if len(c.PreferredTimes) > 0 && !slices.Contains(c.PreferredTimes, time) {
		score *= 0.8
	}
	return score
}
