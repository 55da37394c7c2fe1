package csvio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classgrid/SmartClassGrid/internal/scheduler"
	"github.com/classgrid/SmartClassGrid/pkg/model"
)

func demoSchedule() *model.Schedule {
	courses, rooms, faculty := SampleData()
	schedule := model.NewSchedule()
	schedule.AddEntry(&model.ScheduleEntry{
		Course: courses[2], Room: rooms[0], Faculty: faculty[2],
		Day: "Wednesday", Time: "09:00", Duration: 1,
	})
	schedule.AddEntry(&model.ScheduleEntry{
		Course: courses[0], Room: rooms[0], Faculty: faculty[0],
		Day: "Monday", Time: "10:00", Duration: 2,
	})
	return schedule
}

func TestExportScheduleStringOrdersByDayThenTime(t *testing.T) {
	out, err := ExportScheduleString(demoSchedule())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "course_code")
	assert.Contains(t, lines[1], "Monday")
	assert.Contains(t, lines[2], "Wednesday")
}

func TestExportSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, ExportSchedule(demoSchedule(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CS101")
}

func TestExportConflicts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conflicts.json")
	report := scheduler.ConflictReport{
		scheduler.CapacityExceeded: {{CourseCode: "CS101", Description: "over capacity"}},
	}
	require.NoError(t, ExportConflicts(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "capacity_exceeded")
	assert.Contains(t, string(data), "CS101")
}
