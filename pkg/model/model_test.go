package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRoom() *Room {
	r := &Room{
		ID:              "R1",
		Name:            "Room 1",
		Capacity:        40,
		Type:            Classroom,
		Equipment:       []string{"projector", "whiteboard"},
		AcousticsRating: 0.9,
		LightingRating:  0.8,
	}
	r.ResetAvailability()
	return r
}

func testFaculty() *Faculty {
	f := &Faculty{
		ID:               "F1",
		Name:             "Dr. Test",
		Department:       "Computer Science",
		MaxTeachingHours: 10,
		PreferredDays:    []string{"Monday"},
		PreferredTimes:   []string{"10:00"},
		UnavailableSlots: map[string][]string{"Friday": {"08:00"}},
		BreakDuration:    1,
	}
	f.ResetAssignments()
	return f
}

func TestCourseConstraintScore(t *testing.T) {
	course := &Course{
		PreferredDays:  []string{"Monday"},
		PreferredTimes: []string{"10:00"},
	}

	assert.InDelta(t, 1.0, course.ConstraintScore("Monday", "10:00"), 1e-9)
	assert.InDelta(t, 0.7, course.ConstraintScore("Tuesday", "10:00"), 1e-9)
	assert.InDelta(t, 0.8, course.ConstraintScore("Monday", "09:00"), 1e-9)
	assert.InDelta(t, 0.56, course.ConstraintScore("Tuesday", "09:00"), 1e-9)

	unconstrained := &Course{}
	assert.InDelta(t, 1.0, unconstrained.ConstraintScore("Friday", "17:00"), 1e-9)
}

func TestRoomReserveAndRelease(t *testing.T) {
	room := testRoom()

	assert.True(t, room.IsAvailable("Monday", "09:00", 2))
	room.ReserveSlot("Monday", "09:00", 2)
	assert.False(t, room.IsAvailable("Monday", "09:00", 1))
	assert.False(t, room.IsAvailable("Monday", "10:00", 1))
	assert.True(t, room.IsAvailable("Monday", "11:00", 1))
	assert.False(t, room.IsAvailable("Monday", "08:00", 2), "reservation blocks overlapping range")

	room.ReleaseSlot("Monday", "09:00", 2)
	assert.True(t, room.IsAvailable("Monday", "09:00", 2))
}

func TestRoomAvailabilityPastEndOfDay(t *testing.T) {
	room := testRoom()
	assert.False(t, room.IsAvailable("Monday", "17:00", 2))
	assert.False(t, room.IsAvailable("Monday", "23:00", 1))
}

func TestRoomHasEquipment(t *testing.T) {
	room := testRoom()
	assert.True(t, room.HasEquipment(nil))
	assert.True(t, room.HasEquipment([]string{"projector"}))
	assert.False(t, room.HasEquipment([]string{"projector", "computers"}))
}

func TestFacultyAvailability(t *testing.T) {
	f := testFaculty()

	assert.False(t, f.IsAvailable("Friday", "08:00", 1), "blackout slot")
	assert.True(t, f.IsAvailable("Friday", "09:00", 1))

	f.AssignSlot("Monday", "10:00", 2)
	assert.False(t, f.IsAvailable("Monday", "11:00", 1))
	assert.Equal(t, 2, f.CurrentTeachingHours)

	// Hour cap: 2 assigned, 9 more would exceed 10.
	assert.False(t, f.IsAvailable("Tuesday", "08:00", 9))
	assert.True(t, f.IsAvailable("Tuesday", "08:00", 8))

	f.ReleaseSlot("Monday", "10:00", 2)
	assert.True(t, f.IsAvailable("Monday", "10:00", 1))
	assert.Equal(t, 0, f.CurrentTeachingHours)
}

func TestFacultyPreferenceScore(t *testing.T) {
	f := testFaculty()

	assert.InDelta(t, 1.44, f.PreferenceScore("Monday", "10:00"), 1e-9)
	assert.InDelta(t, 1.2, f.PreferenceScore("Monday", "09:00"), 1e-9)
	assert.InDelta(t, 1.2, f.PreferenceScore("Tuesday", "10:00"), 1e-9)
	assert.InDelta(t, 1.0, f.PreferenceScore("Tuesday", "09:00"), 1e-9)
}

func TestScheduleMetrics(t *testing.T) {
	schedule := NewSchedule()
	schedule.CalculateMetrics()
	assert.Zero(t, schedule.AccuracyScore, "empty schedule keeps zero accuracy")

	course := &Course{ID: "C1", Code: "CS101"}
	room := testRoom()
	f := testFaculty()
	schedule.AddEntry(&ScheduleEntry{
		Course: course, Room: room, Faculty: f,
		Day: "Monday", Time: "10:00", Duration: 1,
		PreferenceScore: 0.9,
	})
	schedule.CalculateMetrics()

	assert.InDelta(t, 100.0, schedule.AccuracyScore, 1e-9)
	assert.InDelta(t, 90.0, schedule.FacultySatisfaction, 1e-9)
	assert.Zero(t, schedule.TotalConflicts)
}

func TestScheduleMatrix(t *testing.T) {
	schedule := NewSchedule()
	entry := &ScheduleEntry{
		Course: &Course{ID: "C1"}, Room: testRoom(), Faculty: testFaculty(),
		Day: "Tuesday", Time: "14:00", Duration: 1,
	}
	schedule.AddEntry(entry)

	matrix := schedule.Matrix()
	assert.Len(t, matrix, len(Days))
	assert.Equal(t, []*ScheduleEntry{entry}, matrix["Tuesday"]["14:00"])
	assert.Empty(t, matrix["Monday"]["14:00"])
}

func TestConflictsByType(t *testing.T) {
	schedule := NewSchedule()
	schedule.Conflicts = []string{
		"Room R1 double booked on Monday at 10:00",
		"Faculty F1 double booked on Monday at 10:00",
		"Course CS101 exceeds room capacity",
		"Missing equipment projector",
		"Could not schedule course CS102",
	}

	types := schedule.ConflictsByType()
	assert.Equal(t, 1, types["room_double_booking"])
	assert.Equal(t, 1, types["faculty_double_booking"])
	assert.Equal(t, 1, types["capacity_exceeded"])
	assert.Equal(t, 1, types["equipment_missing"])
	assert.Equal(t, 1, types["time_constraint_violation"])
}
