package scheduler

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

// searchOutcome distinguishes a complete solution from a budget-truncated
// partial result and from proven exhaustion.
type searchOutcome int

const (
	outcomeSolved searchOutcome = iota
	outcomeBudgetExhausted
	outcomeNoSolution
)

// BacktrackingOptimizer places the courses the greedy stage could not,
// keeping already-placed entries fixed as committed facts. Depth-first
// search, one unscheduled course per level, run on an explicit stack with
// pool snapshots for transactional rollback.
type BacktrackingOptimizer struct {
	pool          *model.ResourcePool
	maxIterations int
	log           *zap.Logger
}

func NewBacktrackingOptimizer(pool *model.ResourcePool, params Params, log *zap.Logger) *BacktrackingOptimizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &BacktrackingOptimizer{
		pool:          pool,
		maxIterations: params.MaxBacktrackIterations,
		log:           log,
	}
}

// Optimize rebuilds pool state from the input schedule, searches for
// placements for the unscheduled courses, and returns a fresh schedule of
// committed plus newly placed assignments. Budget exhaustion degrades to
// the best partial result; callers check the conflicts list.
func (b *BacktrackingOptimizer) Optimize(schedule *model.Schedule) *model.Schedule {
	committed := make([]Assignment, 0, len(schedule.Entries))
	for _, entry := range schedule.Entries {
		committed = append(committed, Assignment{
			Course:   entry.Course,
			Room:     entry.Room,
			Faculty:  entry.Faculty,
			Day:      entry.Day,
			Time:     entry.Time,
			Duration: entry.Duration,
		})
	}
	unscheduled := b.unscheduledCourses(schedule)

	b.pool.Reset()
	b.pool.Apply(schedule)

	placed, outcome := b.search(unscheduled)
	switch outcome {
	case outcomeSolved:
		b.log.Info("backtracking placed all courses", zap.Int("placed", len(placed)))
	case outcomeBudgetExhausted:
		b.log.Warn("backtracking budget exhausted",
			zap.Int("placed", len(placed)), zap.Int("wanted", len(unscheduled)))
	case outcomeNoSolution:
		b.log.Warn("backtracking found no placement", zap.Int("wanted", len(unscheduled)))
	}

	result := b.buildSchedule(append(committed, placed...))

	// Pool state must mirror exactly the entries of the result.
	b.pool.Reset()
	b.pool.Apply(result)
	return result
}

func (b *BacktrackingOptimizer) unscheduledCourses(schedule *model.Schedule) []*model.Course {
	scheduled := make(map[string]bool, len(schedule.Entries))
	for _, entry := range schedule.Entries {
		scheduled[entry.Course.ID] = true
	}
	var missing []*model.Course
	for _, course := range b.pool.Courses {
		if !scheduled[course.ID] {
			missing = append(missing, course)
		}
	}
	return missing
}

// frame is one level of the depth-first search.
type frame struct {
	candidates []Assignment
	next       int
	snap       *model.Snapshot
	applied    bool
}

// search walks the unscheduled courses depth first. Returns the chosen
// assignments and how the search ended; on budget exhaustion the partial
// prefix explored so far is kept.
func (b *BacktrackingOptimizer) search(unscheduled []*model.Course) ([]Assignment, searchOutcome) {
	if len(unscheduled) == 0 {
		return nil, outcomeSolved
	}

	chosen := make([]Assignment, 0, len(unscheduled))
	stack := []*frame{{candidates: b.orderedCandidates(unscheduled[0])}}
	iterations := 0

	for len(stack) > 0 {
		iterations++
		if iterations > b.maxIterations {
			return chosen, outcomeBudgetExhausted
		}

		top := stack[len(stack)-1]

		// Undo this level's previous attempt before trying the next
		// candidate (or giving up).
		if top.applied {
			b.pool.Restore(top.snap)
			top.applied = false
			chosen = chosen[:len(stack)-1]
		}

		if top.next >= len(top.candidates) {
			stack = stack[:len(stack)-1]
			continue
		}

		candidate := top.candidates[top.next]
		top.next++

		top.snap = b.pool.Snapshot()
		candidate.Room.ReserveSlot(candidate.Day, candidate.Time, candidate.Duration)
		candidate.Faculty.AssignSlot(candidate.Day, candidate.Time, candidate.Duration)

		if !b.validState() {
			b.pool.Restore(top.snap)
			continue
		}

		top.applied = true
		chosen = append(chosen, candidate)

		if len(stack) == len(unscheduled) {
			return chosen, outcomeSolved
		}
		stack = append(stack, &frame{candidates: b.orderedCandidates(unscheduled[len(stack)])})
	}

	return nil, outcomeNoSolution
}

// orderedCandidates lists every valid placement for the course, best
// first by the backtracking quality score.
func (b *BacktrackingOptimizer) orderedCandidates(course *model.Course) []Assignment {
	faculty := b.pool.FacultyByID(course.FacultyID)

	var candidates []Assignment
	for _, day := range model.Days {
		for _, t := range model.Times {
			for _, room := range b.pool.Rooms {
				candidate := Assignment{
					Course:   course,
					Room:     room,
					Faculty:  faculty,
					Day:      day,
					Time:     t,
					Duration: course.Duration,
				}
				if validAssignment(candidate) {
					candidates = append(candidates, candidate)
				}
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return b.assignmentQuality(candidates[i]) > b.assignmentQuality(candidates[j])
	})
	return candidates
}

// assignmentQuality extends the greedy score with a tighter utilization
// band, a midweek/midday distribution bonus, and a continuity bonus for
// faculty teaching an adjacent hour the same day.
func (b *BacktrackingOptimizer) assignmentQuality(a Assignment) float64 {
	quality := a.Course.ConstraintScore(a.Day, a.Time)
	quality *= a.Faculty.PreferenceScore(a.Day, a.Time)

	ratio := capacityRatio(a.Course, a.Room)
	switch {
	case ratio >= 0.8 && ratio <= 1.0:
		quality *= 1.3
	case ratio >= 0.6 && ratio < 0.8:
		quality *= 1.1
	case ratio < 0.5:
		quality *= 0.7
	}

	quality *= timeDistributionBonus(a.Day, a.Time)
	quality *= facultyContinuityBonus(a.Faculty, a.Day, a.Time)
	return quality
}

func timeDistributionBonus(day string, time string) float64 {
	bonus := 1.0
	if day == "Tuesday" || day == "Wednesday" || day == "Thursday" {
		bonus *= 1.1
	}
	if time == "10:00" || time == "11:00" || time == "14:00" || time == "15:00" {
		bonus *= 1.1
	}
	return bonus
}

func facultyContinuityBonus(faculty *model.Faculty, day string, time string) float64 {
	assigned, ok := faculty.AssignedSlots[day]
	if !ok {
		return 1.0
	}
	idx := model.TimeIndex(time)
	if idx < 0 {
		return 1.0
	}
	for _, t := range assigned {
		assignedIdx := model.TimeIndex(t)
		if assignedIdx >= 0 && abs(assignedIdx-idx) == 1 {
			return 1.2
		}
	}
	return 1.0
}

// validState holds the single global invariant checked mid-search:
// no faculty over their hour cap.
func (b *BacktrackingOptimizer) validState() bool {
	for _, f := range b.pool.Faculty {
		if f.CurrentTeachingHours > f.MaxTeachingHours {
			return false
		}
	}
	return true
}

func (b *BacktrackingOptimizer) buildSchedule(assignments []Assignment) *model.Schedule {
	schedule := model.NewSchedule()
	scheduled := make(map[string]bool, len(assignments))

	for _, a := range assignments {
		entry := &model.ScheduleEntry{
			Course:             a.Course,
			Room:               a.Room,
			Faculty:            a.Faculty,
			Day:                a.Day,
			Time:               a.Time,
			Duration:           a.Duration,
			PreferenceScore:    b.assignmentQuality(a),
			ResourceEfficiency: capacityRatio(a.Course, a.Room),
		}
		schedule.AddEntry(entry)
		scheduled[a.Course.ID] = true
	}

	for _, course := range b.pool.Courses {
		if !scheduled[course.ID] {
			schedule.Conflicts = append(schedule.Conflicts,
				fmt.Sprintf("Could not schedule course %s", course.Code))
		}
	}

	schedule.CalculateMetrics()
	return schedule
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
