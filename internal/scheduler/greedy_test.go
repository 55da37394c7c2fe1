package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

func TestGreedySchedulesSingleCourse(t *testing.T) {
	course := lecture("CS101", "F1", 30, 1)
	course.RequiredEquipment = []string{"projector"}
	course.RoomTypeRequired = "classroom"
	room := classroom("R1", 30)
	faculty := lecturer("F1", 20)

	pool := newTestPool(t, []*model.Course{course}, []*model.Room{room}, []*model.Faculty{faculty})
	schedule := NewGreedyScheduler(pool, nil).Generate()

	require.Len(t, schedule.Entries, 1)
	assert.Empty(t, schedule.Conflicts)
	assert.InDelta(t, 100.0, schedule.AccuracyScore, 1e-9)

	entry := schedule.Entries[0]
	assert.Same(t, course, entry.Course)
	assert.Same(t, room, entry.Room)
	assert.False(t, room.IsAvailable(entry.Day, entry.Time, 1), "slot reserved")
	assert.Equal(t, 1, faculty.CurrentTeachingHours)
}

func TestGreedyRecordsConflictWhenNoRoomFits(t *testing.T) {
	course := lecture("CS101", "F1", 30, 1)
	room := classroom("R1", 20)
	faculty := lecturer("F1", 20)

	pool := newTestPool(t, []*model.Course{course}, []*model.Room{room}, []*model.Faculty{faculty})
	schedule := NewGreedyScheduler(pool, nil).Generate()

	assert.Empty(t, schedule.Entries)
	require.Len(t, schedule.Conflicts, 1)
	assert.Contains(t, schedule.Conflicts[0], "CS101")
	assert.Zero(t, schedule.AccuracyScore)
}

func TestGreedyHonorsPreferences(t *testing.T) {
	course := lecture("CS101", "F1", 30, 1)
	course.PreferredDays = []string{"Wednesday"}
	course.PreferredTimes = []string{"10:00"}
	room := classroom("R1", 35)
	faculty := lecturer("F1", 20)

	pool := newTestPool(t, []*model.Course{course}, []*model.Room{room}, []*model.Faculty{faculty})
	schedule := NewGreedyScheduler(pool, nil).Generate()

	require.Len(t, schedule.Entries, 1)
	assert.Equal(t, "Wednesday", schedule.Entries[0].Day)
	assert.Equal(t, "10:00", schedule.Entries[0].Time)
}

func TestGreedyNeverDoubleBooksFaculty(t *testing.T) {
	c1 := lecture("CS101", "F1", 30, 1)
	c1.PreferredDays = []string{"Monday"}
	c1.PreferredTimes = []string{"10:00"}
	c2 := lecture("CS102", "F1", 30, 1)
	c2.PreferredDays = []string{"Monday"}
	c2.PreferredTimes = []string{"10:00"}
	rooms := []*model.Room{classroom("R1", 35), classroom("R2", 35)}
	faculty := lecturer("F1", 20)

	pool := newTestPool(t, []*model.Course{c1, c2}, rooms, []*model.Faculty{faculty})
	schedule := NewGreedyScheduler(pool, nil).Generate()

	require.Len(t, schedule.Entries, 2)
	report := NewConflictDetector().Detect(schedule)
	assert.Empty(t, report[FacultyDoubleBooking])
	assert.Empty(t, report[RoomDoubleBooking])
}

func TestGreedyPrioritizesConstrainedCourses(t *testing.T) {
	easy := lecture("EASY", "F1", 10, 1)
	hard := lecture("HARD", "F2", 30, 1)
	hard.Type = model.Lab
	hard.RequiredEquipment = []string{"projector", "computer"}
	hard.ConsecutiveHours = true

	assert.Greater(t, coursePriority(hard), coursePriority(easy))
}

func TestGreedyRespectsFacultyHourCap(t *testing.T) {
	c1 := lecture("CS101", "F1", 20, 2)
	c2 := lecture("CS102", "F1", 20, 2)
	room := classroom("R1", 25)
	faculty := lecturer("F1", 3)

	pool := newTestPool(t, []*model.Course{c1, c2}, []*model.Room{room}, []*model.Faculty{faculty})
	schedule := NewGreedyScheduler(pool, nil).Generate()

	// Only one 2 hour course fits under a 3 hour cap.
	assert.Len(t, schedule.Entries, 1)
	assert.Len(t, schedule.Conflicts, 1)
}
