package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

func classroom(id string, capacity int) *model.Room {
	r := &model.Room{
		ID:              id,
		Name:            "Room " + id,
		Capacity:        capacity,
		Type:            model.Classroom,
		Equipment:       []string{"projector", "whiteboard", "computer"},
		AcousticsRating: 0.9,
		LightingRating:  0.8,
	}
	r.ResetAvailability()
	return r
}

func lecturer(id string, maxHours int) *model.Faculty {
	f := &model.Faculty{
		ID:               id,
		Name:             "Dr. " + id,
		Department:       "Computer Science",
		MaxTeachingHours: maxHours,
		BreakDuration:    1,
	}
	f.ResetAssignments()
	return f
}

func lecture(id string, facultyID string, capacity int, duration int) *model.Course {
	return &model.Course{
		ID:         id,
		Name:       "Course " + id,
		Code:       id,
		Duration:   duration,
		Type:       model.Lecture,
		Capacity:   capacity,
		FacultyID:  facultyID,
		Department: "Computer Science",
	}
}

func newTestPool(t *testing.T, courses []*model.Course, rooms []*model.Room, faculty []*model.Faculty) *model.ResourcePool {
	t.Helper()
	pool, err := model.NewResourcePool(courses, rooms, faculty)
	require.NoError(t, err)
	return pool
}

func entryFor(pool *model.ResourcePool, course *model.Course, room *model.Room, day string, time string) *model.ScheduleEntry {
	return &model.ScheduleEntry{
		Course:   course,
		Room:     room,
		Faculty:  pool.FacultyByID(course.FacultyID),
		Day:      day,
		Time:     time,
		Duration: course.Duration,
	}
}
