package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

func TestBacktrackingPlacesUnscheduledCourse(t *testing.T) {
	course := lecture("CS101", "F1", 30, 1)
	room := classroom("R1", 35)
	faculty := lecturer("F1", 20)
	pool := newTestPool(t, []*model.Course{course}, []*model.Room{room}, []*model.Faculty{faculty})

	// Empty input schedule: everything is unscheduled.
	empty := model.NewSchedule()
	result := NewBacktrackingOptimizer(pool, DefaultParams(), nil).Optimize(empty)

	require.Len(t, result.Entries, 1)
	assert.Empty(t, result.Conflicts)
	assert.Same(t, course, result.Entries[0].Course)
}

func TestBacktrackingKeepsCommittedEntries(t *testing.T) {
	placed := lecture("CS101", "F1", 30, 1)
	missing := lecture("CS102", "F2", 30, 1)
	room := classroom("R1", 35)
	f1 := lecturer("F1", 20)
	f2 := lecturer("F2", 20)
	pool := newTestPool(t, []*model.Course{placed, missing}, []*model.Room{room}, []*model.Faculty{f1, f2})

	initial := model.NewSchedule()
	initial.AddEntry(entryFor(pool, placed, room, "Monday", "10:00"))
	pool.Apply(initial)

	result := NewBacktrackingOptimizer(pool, DefaultParams(), nil).Optimize(initial)

	require.Len(t, result.Entries, 2)
	assert.Same(t, placed, result.Entries[0].Course, "committed entry survives")
	assert.Equal(t, "Monday", result.Entries[0].Day)
	assert.Equal(t, "10:00", result.Entries[0].Time)
	assert.Empty(t, result.Conflicts)
}

func TestBacktrackingNoSolutionReturnsCommittedOnly(t *testing.T) {
	placed := lecture("CS101", "F1", 30, 1)
	// Too big for any room, so no placement exists.
	impossible := lecture("CS999", "F1", 500, 1)
	room := classroom("R1", 35)
	faculty := lecturer("F1", 20)
	pool := newTestPool(t, []*model.Course{placed, impossible}, []*model.Room{room}, []*model.Faculty{faculty})

	initial := model.NewSchedule()
	initial.AddEntry(entryFor(pool, placed, room, "Monday", "10:00"))
	pool.Apply(initial)

	result := NewBacktrackingOptimizer(pool, DefaultParams(), nil).Optimize(initial)

	require.Len(t, result.Entries, 1)
	assert.Same(t, placed, result.Entries[0].Course)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0], "CS999")
}

func TestBacktrackingBudgetExhaustion(t *testing.T) {
	course := lecture("CS101", "F1", 30, 1)
	room := classroom("R1", 35)
	faculty := lecturer("F1", 20)
	pool := newTestPool(t, []*model.Course{course}, []*model.Room{room}, []*model.Faculty{faculty})

	params := DefaultParams()
	params.MaxBacktrackIterations = 0
	result := NewBacktrackingOptimizer(pool, params, nil).Optimize(model.NewSchedule())

	// Zero budget: search stops before placing anything.
	assert.Empty(t, result.Entries)
	require.Len(t, result.Conflicts, 1)
	assert.Contains(t, result.Conflicts[0], "CS101")
}

func TestBacktrackingPoolMirrorsResult(t *testing.T) {
	c1 := lecture("CS101", "F1", 30, 1)
	c2 := lecture("CS102", "F2", 30, 2)
	room := classroom("R1", 35)
	f1 := lecturer("F1", 20)
	f2 := lecturer("F2", 20)
	pool := newTestPool(t, []*model.Course{c1, c2}, []*model.Room{room}, []*model.Faculty{f1, f2})

	result := NewBacktrackingOptimizer(pool, DefaultParams(), nil).Optimize(model.NewSchedule())
	require.Len(t, result.Entries, 2)

	reservedHours := 0
	for _, entry := range result.Entries {
		assert.False(t, entry.Room.IsAvailable(entry.Day, entry.Time, entry.Duration))
		reservedHours += entry.Duration
	}
	totalAssigned := f1.CurrentTeachingHours + f2.CurrentTeachingHours
	assert.Equal(t, reservedHours, totalAssigned)
}

func TestTimeDistributionBonus(t *testing.T) {
	assert.InDelta(t, 1.21, timeDistributionBonus("Wednesday", "10:00"), 1e-9)
	assert.InDelta(t, 1.1, timeDistributionBonus("Wednesday", "08:00"), 1e-9)
	assert.InDelta(t, 1.1, timeDistributionBonus("Monday", "14:00"), 1e-9)
	assert.InDelta(t, 1.0, timeDistributionBonus("Monday", "08:00"), 1e-9)
}

func TestFacultyContinuityBonus(t *testing.T) {
	f := lecturer("F1", 20)
	assert.InDelta(t, 1.0, facultyContinuityBonus(f, "Monday", "10:00"), 1e-9)

	f.AssignSlot("Monday", "09:00", 1)
	assert.InDelta(t, 1.2, facultyContinuityBonus(f, "Monday", "10:00"), 1e-9)
	assert.InDelta(t, 1.0, facultyContinuityBonus(f, "Monday", "12:00"), 1e-9)
	assert.InDelta(t, 1.0, facultyContinuityBonus(f, "Tuesday", "10:00"), 1e-9)
}
