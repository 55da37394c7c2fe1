package scheduler

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

// GreedyScheduler produces the initial best-effort assignment: a single
// linear pass over the courses in difficulty order, each course taking the
// best valid (day, time, room) triple still open.
type GreedyScheduler struct {
	pool *model.ResourcePool
	log  *zap.Logger
}

func NewGreedyScheduler(pool *model.ResourcePool, log *zap.Logger) *GreedyScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &GreedyScheduler{pool: pool, log: log}
}

// Generate schedules every course it can and records a conflict string for
// each one it cannot. Mutates the pool's room and faculty state in place.
func (g *GreedyScheduler) Generate() *model.Schedule {
	schedule := model.NewSchedule()

	for _, course := range g.prioritize() {
		best, found := g.findBestAssignment(course)
		if !found {
			schedule.Conflicts = append(schedule.Conflicts,
				fmt.Sprintf("Could not schedule course %s", course.Code))
			g.log.Warn("course not scheduled", zap.String("course", course.Code))
			continue
		}

		best.Room.ReserveSlot(best.Day, best.Time, best.Duration)
		best.Faculty.AssignSlot(best.Day, best.Time, best.Duration)

		entry := &model.ScheduleEntry{
			Course:             best.Course,
			Room:               best.Room,
			Faculty:            best.Faculty,
			Day:                best.Day,
			Time:               best.Time,
			Duration:           best.Duration,
			PreferenceScore:    assignmentScore(best),
			ResourceEfficiency: capacityRatio(best.Course, best.Room),
		}
		schedule.AddEntry(entry)
		g.log.Debug("course placed",
			zap.String("course", course.Code),
			zap.String("room", best.Room.ID),
			zap.String("day", best.Day),
			zap.String("time", best.Time))
	}

	schedule.CalculateMetrics()
	return schedule
}

// prioritize orders courses hardest-first so constrained courses get the
// pick of the grid. Stable for equal difficulty.
func (g *GreedyScheduler) prioritize() []*model.Course {
	ordered := append([]*model.Course(nil), g.pool.Courses...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return coursePriority(ordered[i]) > coursePriority(ordered[j])
	})
	return ordered
}

func coursePriority(c *model.Course) int {
	priority := 0
	if c.Type == model.Lab {
		priority += 10
	}
	priority += len(c.RequiredEquipment) * 2
	if c.Capacity > 100 {
		priority += 5
	}
	if len(c.PreferredTimes) > 0 {
		priority += 3
	}
	if c.ConsecutiveHours {
		priority += 4
	}
	return priority
}

// findBestAssignment enumerates every (day, time, room) triple and keeps
// the highest-scoring one that passes the hard filters.
func (g *GreedyScheduler) findBestAssignment(course *model.Course) (Assignment, bool) {
	faculty := g.pool.FacultyByID(course.FacultyID)

	var best Assignment
	bestScore := -1.0
	for _, day := range model.Days {
		for _, t := range model.Times {
			for _, room := range g.pool.Rooms {
				candidate := Assignment{
					Course:   course,
					Room:     room,
					Faculty:  faculty,
					Day:      day,
					Time:     t,
					Duration: course.Duration,
				}
				if !validAssignment(candidate) {
					continue
				}
				if score := assignmentScore(candidate); score > bestScore {
					bestScore = score
					best = candidate
				}
			}
		}
	}
	return best, bestScore >= 0
}
