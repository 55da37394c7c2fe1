package scheduler

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

// ValidationReport is the result of scoring a schedule against the full
// constraint registry.
type ValidationReport struct {
	Valid            bool
	HardViolations   []string
	SoftViolations   []string
	PreferenceScore  float64
	OverallScore     float64
	ConstraintScores map[string][]float64
}

// ConstraintSolver formulates the schedule as a CSP: one variable per
// entry, domains of (room, day, time) triples passing the hard
// constraints, unary domain re-filtering, then MRV backtracking.
type ConstraintSolver struct {
	pool        *model.ResourcePool
	constraints []Constraint
	params      Params
	log         *zap.Logger
}

func NewConstraintSolver(pool *model.ResourcePool, params Params, log *zap.Logger) *ConstraintSolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConstraintSolver{
		pool:        pool,
		constraints: DefaultConstraints(),
		params:      params,
		log:         log,
	}
}

// Validate scores every entry against every constraint. Violations of
// hard and soft constraints are reported as strings; the overall score is
// the weight-weighted constraint score on a 0-100 scale.
func (s *ConstraintSolver) Validate(schedule *model.Schedule) ValidationReport {
	report := ValidationReport{
		Valid:            true,
		HardViolations:   []string{},
		SoftViolations:   []string{},
		ConstraintScores: make(map[string][]float64),
	}

	totalWeight := 0.0
	totalScore := 0.0

	for _, entry := range schedule.Entries {
		assignment := Assignment{
			Course:   entry.Course,
			Room:     entry.Room,
			Faculty:  entry.Faculty,
			Day:      entry.Day,
			Time:     entry.Time,
			Duration: entry.Duration,
		}
		ctx := &EvalContext{Schedule: schedule, Entry: entry}

		for _, constraint := range s.constraints {
			satisfied, score := constraint.Evaluate(assignment, ctx)

			totalWeight += constraint.Weight()
			totalScore += score * constraint.Weight()

			if !satisfied {
				violation := fmt.Sprintf("%s: %s", constraint.Description(), entry.Course.Code)
				switch constraint.Type() {
				case Hard:
					report.Valid = false
					report.HardViolations = append(report.HardViolations, violation)
				case Soft:
					report.SoftViolations = append(report.SoftViolations, violation)
				}
			}

			desc := constraint.Description()
			report.ConstraintScores[desc] = append(report.ConstraintScores[desc], score)
		}
	}

	if totalWeight > 0 {
		report.OverallScore = totalScore / totalWeight * 100
	}

	prefScore := 0.0
	prefWeight := 0.0
	for _, constraint := range s.constraints {
		if constraint.Type() != Preference {
			continue
		}
		prefWeight += constraint.Weight()
		scores := report.ConstraintScores[constraint.Description()]
		if len(scores) == 0 {
			continue
		}
		sum := 0.0
		for _, score := range scores {
			sum += score
		}
		prefScore += sum / float64(len(scores)) * constraint.Weight()
	}
	if prefWeight > 0 {
		report.PreferenceScore = prefScore / prefWeight * 100
	}

	return report
}

// placement is one CSP domain value.
type placement struct {
	room *model.Room
	day  string
	time string
}

type cspVariable struct {
	entry   *model.ScheduleEntry
	course  *model.Course
	faculty *model.Faculty
	domain  []placement
}

// Solve searches for a complete conflict-free reassignment of every
// entry. The first consistent solution wins; if none exists (or the
// iteration budget runs out) the original schedule is returned unchanged.
func (s *ConstraintSolver) Solve(schedule *model.Schedule) *model.Schedule {
	variables := s.buildVariables(schedule)
	s.propagate(variables)

	solution, ok := s.searchMRV(variables)
	if !ok {
		s.log.Info("constraint solver found no complete assignment",
			zap.Int("variables", len(variables)))
		return schedule
	}

	result := model.NewSchedule()
	for i, variable := range variables {
		chosen := solution[i]
		entry := &model.ScheduleEntry{
			Course:   variable.course,
			Room:     chosen.room,
			Faculty:  variable.faculty,
			Day:      chosen.day,
			Time:     chosen.time,
			Duration: variable.course.Duration,
		}
		entry.PreferenceScore = variable.course.ConstraintScore(chosen.day, chosen.time) *
			variable.faculty.PreferenceScore(chosen.day, chosen.time)
		entry.ResourceEfficiency = capacityRatio(variable.course, chosen.room)
		result.AddEntry(entry)
	}
	result.Conflicts = append(result.Conflicts, schedule.Conflicts...)
	result.CalculateMetrics()

	s.pool.Reset()
	s.pool.Apply(result)
	return result
}

// buildVariables creates one variable per entry. Domains are memoised per
// course, not per entry, since identical courses share the same hard
// constraint signature.
func (s *ConstraintSolver) buildVariables(schedule *model.Schedule) []*cspVariable {
	domains := make(map[string][]placement, len(schedule.Entries))
	variables := make([]*cspVariable, 0, len(schedule.Entries))

	for _, entry := range schedule.Entries {
		course := entry.Course
		if _, ok := domains[course.ID]; !ok {
			domains[course.ID] = s.courseDomain(course)
		}
		variables = append(variables, &cspVariable{
			entry:   entry,
			course:  course,
			faculty: s.pool.FacultyByID(course.FacultyID),
			domain:  append([]placement(nil), domains[course.ID]...),
		})
	}
	return variables
}

func (s *ConstraintSolver) courseDomain(course *model.Course) []placement {
	faculty := s.pool.FacultyByID(course.FacultyID)

	var domain []placement
	for _, day := range model.Days {
		for _, t := range model.Times {
			for _, room := range s.pool.Rooms {
				candidate := Assignment{
					Course:   course,
					Room:     room,
					Faculty:  faculty,
					Day:      day,
					Time:     t,
					Duration: course.Duration,
				}
				if s.satisfiesHardConstraints(candidate) {
					domain = append(domain, placement{room: room, day: day, time: t})
				}
			}
		}
	}
	return domain
}

func (s *ConstraintSolver) satisfiesHardConstraints(a Assignment) bool {
	for _, constraint := range s.constraints {
		if constraint.Type() != Hard {
			continue
		}
		if satisfied, _ := constraint.Evaluate(a, nil); !satisfied {
			return false
		}
	}
	return true
}

// propagate re-filters every variable's domain by the hard constraints
// until no domain shrinks. Unary filtering only: hard constraints read
// shared availability state, so one variable's domain can shrink because
// of another's effect, but no pairwise pruning happens here.
func (s *ConstraintSolver) propagate(variables []*cspVariable) {
	for changed := true; changed; {
		changed = false
		for _, variable := range variables {
			before := len(variable.domain)
			filtered := variable.domain[:0]
			for _, value := range variable.domain {
				candidate := Assignment{
					Course:   variable.course,
					Room:     value.room,
					Faculty:  variable.faculty,
					Day:      value.day,
					Time:     value.time,
					Duration: variable.course.Duration,
				}
				if s.satisfiesHardConstraints(candidate) {
					filtered = append(filtered, value)
				}
			}
			variable.domain = filtered
			if len(variable.domain) < before {
				changed = true
			}
		}
	}
}

// searchMRV is backtracking search on an explicit stack, always branching
// on the unassigned variable with the smallest domain.
func (s *ConstraintSolver) searchMRV(variables []*cspVariable) (map[int]placement, bool) {
	if len(variables) == 0 {
		return map[int]placement{}, true
	}

	assignment := make(map[int]placement, len(variables))

	type solverFrame struct {
		variable int
		next     int
	}
	stack := []*solverFrame{{variable: s.pickMRV(variables, assignment)}}
	iterations := 0

	for len(stack) > 0 {
		iterations++
		if iterations > s.params.MaxSolverIterations {
			return nil, false
		}

		top := stack[len(stack)-1]
		variable := variables[top.variable]

		delete(assignment, top.variable)

		advanced := false
		for top.next < len(variable.domain) {
			value := variable.domain[top.next]
			top.next++
			if s.consistent(variables, assignment, top.variable, value) {
				assignment[top.variable] = value
				advanced = true
				break
			}
		}

		if !advanced {
			stack = stack[:len(stack)-1]
			continue
		}

		if len(assignment) == len(variables) {
			return assignment, true
		}
		stack = append(stack, &solverFrame{variable: s.pickMRV(variables, assignment)})
	}

	return nil, false
}

// pickMRV selects the unassigned variable with the fewest remaining
// values, failing fast on the most constrained entry.
func (s *ConstraintSolver) pickMRV(variables []*cspVariable, assignment map[int]placement) int {
	best := -1
	for i := range variables {
		if _, done := assignment[i]; done {
			continue
		}
		if best < 0 || len(variables[i].domain) < len(variables[best].domain) {
			best = i
		}
	}
	return best
}

// consistent rejects values colliding with an already-assigned variable:
// same room at the same slot, or same faculty at the same slot.
func (s *ConstraintSolver) consistent(variables []*cspVariable, assignment map[int]placement, idx int, value placement) bool {
	candidate := variables[idx]
	keys := make([]int, 0, len(assignment))
	for k := range assignment {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		other := assignment[k]
		if other.room == value.room && other.day == value.day && other.time == value.time {
			return false
		}
		if variables[k].faculty == candidate.faculty && other.day == value.day && other.time == value.time {
			return false
		}
	}
	return true
}
