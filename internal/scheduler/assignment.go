package scheduler

import (
	"github.com/classgrid/SmartClassGrid/pkg/model"
)

// Assignment is a candidate (day, time, room) placement for a course,
// the unit every constraint evaluates.
type Assignment struct {
	Course   *model.Course
	Room     *model.Room
	Faculty  *model.Faculty
	Day      string
	Time     string
	Duration int
}

// validAssignment applies the hard placement filters shared by the greedy
// scheduler and the backtracking optimizer: capacity, room type,
// equipment, and room/faculty availability for the full duration.
func validAssignment(a Assignment) bool {
	if a.Room.Capacity < a.Course.Capacity {
		return false
	}
	if a.Course.RoomTypeRequired != "" && string(a.Room.Type) != a.Course.RoomTypeRequired {
		return false
	}
	if !a.Room.HasEquipment(a.Course.RequiredEquipment) {
		return false
	}
	if !a.Room.IsAvailable(a.Day, a.Time, a.Duration) {
		return false
	}
	if !a.Faculty.IsAvailable(a.Day, a.Time, a.Duration) {
		return false
	}
	return true
}

// assignmentScore is the greedy quality score: course and faculty
// preference alignment, a capacity-ratio band, and room quality.
func assignmentScore(a Assignment) float64 {
	score := a.Course.ConstraintScore(a.Day, a.Time)
	score *= a.Faculty.PreferenceScore(a.Day, a.Time)

	ratio := float64(a.Course.Capacity) / float64(a.Room.Capacity)
	if ratio >= 0.7 && ratio <= 1.0 {
		score *= 1.2
	} else if ratio < 0.5 {
		score *= 0.8
	}

	score *= (a.Room.AcousticsRating + a.Room.LightingRating) / 2
	return score
}

func capacityRatio(course *model.Course, room *model.Room) float64 {
	return float64(course.Capacity) / float64(room.Capacity)
}
