package scheduler

import (
	"slices"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

type ConstraintType string

const (
	// Hard constraints invalidate a schedule when violated.
	Hard ConstraintType = "hard"
	// Soft constraints lower quality but keep the schedule valid.
	Soft ConstraintType = "soft"
	// Preference constraints are pure optimization targets.
	Preference ConstraintType = "preference"
)

// EvalContext carries the surrounding schedule for constraints that need
// more than the assignment itself.
type EvalContext struct {
	Schedule *model.Schedule
	Entry    *model.ScheduleEntry
}

// Constraint scores an assignment. Evaluate returns whether the
// constraint is satisfied and a quality score in [0, 2].
type Constraint interface {
	Type() ConstraintType
	Weight() float64
	Description() string
	Evaluate(a Assignment, ctx *EvalContext) (bool, float64)
}

// DefaultConstraints returns the full registry, hard to preference.
func DefaultConstraints() []Constraint {
	return []Constraint{
		roomCapacityConstraint{},
		roomAvailabilityConstraint{},
		facultyAvailabilityConstraint{},
		equipmentConstraint{},
		roomTypeConstraint{},
		teachingHoursConstraint{},
		facultyDayPreferenceConstraint{},
		facultyTimePreferenceConstraint{},
		courseTimePreferenceConstraint{},
		facultyBreaksConstraint{},
		consecutiveHoursConstraint{},
		roomUtilizationConstraint{},
		buildingProximityConstraint{},
		timeDistributionConstraint{},
	}
}

type roomCapacityConstraint struct{}

func (roomCapacityConstraint) Type() ConstraintType { return Hard }
func (roomCapacityConstraint) Weight() float64      { return 1.0 }
func (roomCapacityConstraint) Description() string  { return "Room capacity sufficient" }

func (roomCapacityConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	if a.Room.Capacity < a.Course.Capacity {
		return false, 0.0
	}
	switch ratio := capacityRatio(a.Course, a.Room); {
	case ratio >= 0.8 && ratio <= 1.0:
		return true, 1.0
	case ratio >= 0.6 && ratio < 0.8:
		return true, 0.9
	default:
		return true, 0.7
	}
}

type roomAvailabilityConstraint struct{}

func (roomAvailabilityConstraint) Type() ConstraintType { return Hard }
func (roomAvailabilityConstraint) Weight() float64      { return 1.0 }
func (roomAvailabilityConstraint) Description() string  { return "Room availability" }

func (roomAvailabilityConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	if a.Room.IsAvailable(a.Day, a.Time, a.Duration) {
		return true, 1.0
	}
	return false, 0.0
}

type facultyAvailabilityConstraint struct{}

func (facultyAvailabilityConstraint) Type() ConstraintType { return Hard }
func (facultyAvailabilityConstraint) Weight() float64      { return 1.0 }
func (facultyAvailabilityConstraint) Description() string  { return "Faculty availability" }

func (facultyAvailabilityConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	if a.Faculty.IsAvailable(a.Day, a.Time, a.Duration) {
		return true, 1.0
	}
	return false, 0.0
}

type equipmentConstraint struct{}

func (equipmentConstraint) Type() ConstraintType { return Hard }
func (equipmentConstraint) Weight() float64      { return 1.0 }
func (equipmentConstraint) Description() string  { return "Required equipment available" }

func (equipmentConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	if a.Room.HasEquipment(a.Course.RequiredEquipment) {
		return true, 1.0
	}
	return false, 0.0
}

type roomTypeConstraint struct{}

func (roomTypeConstraint) Type() ConstraintType { return Hard }
func (roomTypeConstraint) Weight() float64      { return 1.0 }
func (roomTypeConstraint) Description() string  { return "Room type compatibility" }

func (roomTypeConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	if a.Course.RoomTypeRequired == "" || string(a.Room.Type) == a.Course.RoomTypeRequired {
		return true, 1.0
	}
	return false, 0.0
}

type teachingHoursConstraint struct{}

func (teachingHoursConstraint) Type() ConstraintType { return Hard }
func (teachingHoursConstraint) Weight() float64      { return 1.0 }
func (teachingHoursConstraint) Description() string  { return "Faculty teaching hours limit" }

func (teachingHoursConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	load := a.Faculty.CurrentTeachingHours + a.Duration
	if load > a.Faculty.MaxTeachingHours {
		return false, 0.0
	}
	if float64(load) <= 0.8*float64(a.Faculty.MaxTeachingHours) {
		return true, 1.0
	}
	return true, 0.8
}

type facultyDayPreferenceConstraint struct{}

func (facultyDayPreferenceConstraint) Type() ConstraintType { return Soft }
func (facultyDayPreferenceConstraint) Weight() float64      { return 0.8 }
func (facultyDayPreferenceConstraint) Description() string  { return "Faculty preferred days" }

func (facultyDayPreferenceConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	if len(a.Faculty.PreferredDays) == 0 || slices.Contains(a.Faculty.PreferredDays, a.Day) {
		return true, 1.0
	}
	return true, 0.6
}

type facultyTimePreferenceConstraint struct{}

func (facultyTimePreferenceConstraint) Type() ConstraintType { return Soft }
func (facultyTimePreferenceConstraint) Weight() float64      { return 0.7 }
func (facultyTimePreferenceConstraint) Description() string  { return "Faculty preferred times" }

func (facultyTimePreferenceConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	if len(a.Faculty.PreferredTimes) == 0 || slices.Contains(a.Faculty.PreferredTimes, a.Time) {
		return true, 1.0
	}
	return true, 0.6
}

type courseTimePreferenceConstraint struct{}

func (courseTimePreferenceConstraint) Type() ConstraintType { return Soft }
func (courseTimePreferenceConstraint) Weight() float64      { return 0.6 }
func (courseTimePreferenceConstraint) Description() string  { return "Course time preferences" }

func (courseTimePreferenceConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	return true, a.Course.ConstraintScore(a.Day, a.Time)
}

type facultyBreaksConstraint struct{}

func (facultyBreaksConstraint) Type() ConstraintType { return Soft }
func (facultyBreaksConstraint) Weight() float64      { return 0.5 }
func (facultyBreaksConstraint) Description() string  { return "Faculty break requirements" }

func (facultyBreaksConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	assigned, ok := a.Faculty.AssignedSlots[a.Day]
	if !ok {
		return true, 1.0
	}
	idx := model.TimeIndex(a.Time)
	if idx < 0 {
		return true, 1.0
	}
	for _, t := range assigned {
		assignedIdx := model.TimeIndex(t)
		if assignedIdx < 0 {
			continue
		}
		gap := abs(assignedIdx - idx)
		if gap == 1 {
			if a.Faculty.ConsecutiveClassPreference {
				return true, 1.2
			}
			return true, 0.7
		}
		if gap < a.Faculty.BreakDuration {
			return true, 0.5
		}
	}
	return true, 1.0
}

type consecutiveHoursConstraint struct{}

func (consecutiveHoursConstraint) Type() ConstraintType { return Soft }
func (consecutiveHoursConstraint) Weight() float64      { return 0.4 }
func (consecutiveHoursConstraint) Description() string  { return "Consecutive hours preference" }

func (consecutiveHoursConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	if !a.Course.ConsecutiveHours {
		return true, 1.0
	}
	if a.Duration > 1 {
		// Multi-hour placements are consecutive by construction.
		return true, 1.0
	}
	return true, 0.8
}

type roomUtilizationConstraint struct{}

func (roomUtilizationConstraint) Type() ConstraintType { return Preference }
func (roomUtilizationConstraint) Weight() float64      { return 0.3 }
func (roomUtilizationConstraint) Description() string  { return "Room utilization efficiency" }

func (roomUtilizationConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	switch ratio := capacityRatio(a.Course, a.Room); {
	case ratio >= 0.8 && ratio <= 1.0:
		return true, 1.0
	case ratio >= 0.6 && ratio < 0.8:
		return true, 0.8
	case ratio >= 0.4 && ratio < 0.6:
		return true, 0.6
	default:
		return true, 0.4
	}
}

// buildingProximityConstraint always passes until building adjacency data
// exists to score against.
type buildingProximityConstraint struct{}

func (buildingProximityConstraint) Type() ConstraintType { return Preference }
func (buildingProximityConstraint) Weight() float64      { return 0.2 }
func (buildingProximityConstraint) Description() string  { return "Building proximity for faculty" }

func (buildingProximityConstraint) Evaluate(_ Assignment, _ *EvalContext) (bool, float64) {
	return true, 1.0
}

type timeDistributionConstraint struct{}

func (timeDistributionConstraint) Type() ConstraintType { return Preference }
func (timeDistributionConstraint) Weight() float64      { return 0.1 }
func (timeDistributionConstraint) Description() string  { return "Time distribution balance" }

func (timeDistributionConstraint) Evaluate(a Assignment, _ *EvalContext) (bool, float64) {
	dayScore := 1.0
	switch a.Day {
	case "Tuesday", "Wednesday", "Thursday":
		dayScore = 1.1
	case "Monday", "Friday":
		dayScore = 0.9
	}

	timeScore := 1.0
	switch a.Time {
	case "10:00", "11:00", "14:00", "15:00":
		timeScore = 1.1
	case "08:00", "17:00":
		timeScore = 0.8
	}

	return true, dayScore * timeScore
}
