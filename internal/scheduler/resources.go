package scheduler

import (
	"sort"

	"go.uber.org/zap"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

// Metrics captures aggregate resource utilization for one schedule.
type Metrics struct {
	RoomUtilization map[string]float64 `json:"room_utilization_by_room"`
	FacultyLoad     map[string]float64 `json:"faculty_load_by_faculty"`

	AverageRoomUtilization  float64 `json:"average_room_utilization"`
	RoomUtilizationVariance float64 `json:"room_utilization_variance"`
	FacultyLoadBalance      float64 `json:"faculty_load_balance"`
	TimeDistributionBalance float64 `json:"time_distribution_balance"`
	ResourceEfficiencyScore float64 `json:"resource_efficiency_score"`
	OverallEfficiency       float64 `json:"overall_efficiency"`
}

// efficiencyWeights combine the component metrics into OverallEfficiency.
// The preference-satisfaction weight multiplies the time-distribution
// metric; see DESIGN.md for the provenance of that pairing.
type efficiencyWeights struct {
	roomUtilization        float64
	facultyBalance         float64
	preferenceSatisfaction float64
	resourceEfficiency     float64
}

// ResourceOptimizer refines a finished schedule with local, best-effort
// swap passes driven by the utilization metrics.
type ResourceOptimizer struct {
	pool    *model.ResourcePool
	params  Params
	weights efficiencyWeights
	log     *zap.Logger
}

func NewResourceOptimizer(pool *model.ResourcePool, params Params, log *zap.Logger) *ResourceOptimizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResourceOptimizer{
		pool:   pool,
		params: params,
		weights: efficiencyWeights{
			roomUtilization:        0.4,
			facultyBalance:         0.3,
			preferenceSatisfaction: 0.2,
			resourceEfficiency:     0.1,
		},
		log: log,
	}
}

// CalculateMetrics is a pure function over the schedule's entries; it
// never reads or writes availability state.
func (o *ResourceOptimizer) CalculateMetrics(schedule *model.Schedule) Metrics {
	metrics := Metrics{
		RoomUtilization: make(map[string]float64, len(o.pool.Rooms)),
		FacultyLoad:     make(map[string]float64, len(o.pool.Faculty)),
	}

	totalGridHours := float64(len(model.Days) * len(model.Times))

	roomUsage := make(map[string]int, len(o.pool.Rooms))
	for _, room := range o.pool.Rooms {
		roomUsage[room.ID] = 0
	}
	for _, entry := range schedule.Entries {
		roomUsage[entry.Room.ID] += entry.Duration
	}
	utilizations := make([]float64, 0, len(o.pool.Rooms))
	for _, room := range o.pool.Rooms {
		utilization := float64(roomUsage[room.ID]) / totalGridHours * 100
		metrics.RoomUtilization[room.ID] = utilization
		utilizations = append(utilizations, utilization)
	}
	metrics.AverageRoomUtilization = mean(utilizations)
	metrics.RoomUtilizationVariance = variance(utilizations)

	facultyUsage := make(map[string]int, len(o.pool.Faculty))
	for _, f := range o.pool.Faculty {
		facultyUsage[f.ID] = 0
	}
	for _, entry := range schedule.Entries {
		facultyUsage[entry.Faculty.ID] += entry.Duration
	}
	loads := make([]float64, 0, len(o.pool.Faculty))
	for _, f := range o.pool.Faculty {
		load := float64(facultyUsage[f.ID]) / float64(f.MaxTeachingHours) * 100
		metrics.FacultyLoad[f.ID] = load
		loads = append(loads, load)
	}
	if len(loads) > 0 {
		metrics.FacultyLoadBalance = clampFloor(100-variance(loads), 0)
	}

	slotCounts := make(map[string]float64)
	for _, entry := range schedule.Entries {
		slotCounts[entry.Day+"_"+entry.Time]++
	}
	if len(slotCounts) > 0 {
		counts := make([]float64, 0, len(slotCounts))
		for _, count := range slotCounts {
			counts = append(counts, count)
		}
		metrics.TimeDistributionBalance = clampFloor(100-variance(counts)*2, 0)
	}

	efficiencies := make([]float64, 0, len(schedule.Entries))
	for _, entry := range schedule.Entries {
		ratio := capacityRatio(entry.Course, entry.Room)
		if ratio > 1.0 {
			ratio = 1.0
		}
		efficiencies = append(efficiencies, ratio)
	}
	if len(efficiencies) > 0 {
		metrics.ResourceEfficiencyScore = mean(efficiencies) * 100
	}

	metrics.OverallEfficiency = metrics.AverageRoomUtilization*o.weights.roomUtilization +
		metrics.FacultyLoadBalance*o.weights.facultyBalance +
		metrics.ResourceEfficiencyScore*o.weights.resourceEfficiency +
		metrics.TimeDistributionBalance*o.weights.preferenceSatisfaction

	return metrics
}

// Optimize runs the four refinement passes in order and reports the
// metric deltas. Each pass is a silent no-op when no improving move
// exists.
func (o *ResourceOptimizer) Optimize(schedule *model.Schedule) (*model.Schedule, map[string]float64) {
	initial := o.CalculateMetrics(schedule)

	optimized := o.roomUtilizationPass(schedule)
	optimized = o.loadBalancingPass(optimized)
	optimized = o.timeDistributionPass(optimized)
	optimized = o.efficiencyPass(optimized)

	final := o.CalculateMetrics(optimized)

	improvements := map[string]float64{
		"room_utilization_improvement": final.AverageRoomUtilization - initial.AverageRoomUtilization,
		"faculty_balance_improvement":  final.FacultyLoadBalance - initial.FacultyLoadBalance,
		"efficiency_improvement":       final.OverallEfficiency - initial.OverallEfficiency,
	}
	o.log.Info("resource optimization finished",
		zap.Float64("efficiency_delta", improvements["efficiency_improvement"]))
	return optimized, improvements
}

// OptimizationReport compares metrics before and after the refinement
// passes. OptimizationScore is the share of metric deltas that improved.
type OptimizationReport struct {
	Summary           map[string]float64 `json:"optimization_summary"`
	Before            Metrics            `json:"before"`
	After             Metrics            `json:"after"`
	Recommendations   []string           `json:"recommendations"`
	OptimizationScore float64            `json:"optimization_score"`
}

func (o *ResourceOptimizer) Report(before, after Metrics) OptimizationReport {
	report := OptimizationReport{
		Summary: map[string]float64{
			"room_utilization_improvement":    after.AverageRoomUtilization - before.AverageRoomUtilization,
			"faculty_balance_improvement":     after.FacultyLoadBalance - before.FacultyLoadBalance,
			"efficiency_improvement":          after.OverallEfficiency - before.OverallEfficiency,
			"resource_efficiency_improvement": after.ResourceEfficiencyScore - before.ResourceEfficiencyScore,
		},
		Before: before,
		After:  after,
	}

	positive := 0
	for _, delta := range report.Summary {
		if delta > 0 {
			positive++
		}
	}
	report.OptimizationScore = float64(positive) / float64(len(report.Summary)) * 100

	if after.AverageRoomUtilization < 70 {
		report.Recommendations = append(report.Recommendations,
			"Consider reducing number of rooms or increasing course offerings")
	}
	if after.FacultyLoadBalance < 80 {
		report.Recommendations = append(report.Recommendations,
			"Review faculty assignments for better load distribution")
	}
	if after.ResourceEfficiencyScore < 80 {
		report.Recommendations = append(report.Recommendations,
			"Optimize room assignments to match course capacities better")
	}

	return report
}

// roomUtilizationPass moves entries out of oversized rooms into the
// tightest compatible free room.
func (o *ResourceOptimizer) roomUtilizationPass(schedule *model.Schedule) *model.Schedule {
	entries := make([]*model.ScheduleEntry, 0, len(schedule.Entries))

	for _, entry := range schedule.Entries {
		if capacityRatio(entry.Course, entry.Room) >= 0.6 {
			entries = append(entries, entry)
			continue
		}
		better := o.findBetterRoom(entry)
		if better == nil || !better.IsAvailable(entry.Day, entry.Time, entry.Duration) {
			entries = append(entries, entry)
			continue
		}

		better.ReserveSlot(entry.Day, entry.Time, entry.Duration)
		entry.Room.ReleaseSlot(entry.Day, entry.Time, entry.Duration)

		swapped := *entry
		swapped.Room = better
		swapped.ResourceEfficiency = capacityRatio(entry.Course, better)
		entries = append(entries, &swapped)
		o.log.Debug("room swap",
			zap.String("course", entry.Course.Code),
			zap.String("from", entry.Room.ID),
			zap.String("to", better.ID))
	}

	return rebuildSchedule(schedule, entries)
}

// findBetterRoom looks for a compatible room with a tighter capacity fit,
// smallest first.
func (o *ResourceOptimizer) findBetterRoom(entry *model.ScheduleEntry) *model.Room {
	course := entry.Course
	current := entry.Room

	var candidates []*model.Room
	for _, room := range o.pool.Rooms {
		if room.ID == current.ID || room.Capacity < course.Capacity {
			continue
		}
		if course.RoomTypeRequired != "" && string(room.Type) != course.RoomTypeRequired {
			continue
		}
		if !room.HasEquipment(course.RequiredEquipment) {
			continue
		}
		candidates = append(candidates, room)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Capacity < candidates[j].Capacity
	})

	currentRatio := capacityRatio(course, current)
	for _, room := range candidates {
		if capacityRatio(course, room) > currentRatio {
			return room
		}
	}
	return nil
}

// loadBalancingPass shifts entries from overloaded faculty to
// underloaded colleagues in the same department, least-constrained
// entries first. First acceptable target wins.
func (o *ResourceOptimizer) loadBalancingPass(schedule *model.Schedule) *model.Schedule {
	loads := make(map[string]int)
	byFaculty := make(map[string][]*model.ScheduleEntry)
	for _, entry := range schedule.Entries {
		loads[entry.Faculty.ID] += entry.Duration
		byFaculty[entry.Faculty.ID] = append(byFaculty[entry.Faculty.ID], entry)
	}

	var overloaded, underloaded []*model.Faculty
	for _, f := range o.pool.Faculty {
		ratio := float64(loads[f.ID]) / float64(f.MaxTeachingHours)
		if ratio > o.params.OverloadThreshold {
			overloaded = append(overloaded, f)
		} else if ratio < o.params.UnderloadThreshold {
			underloaded = append(underloaded, f)
		}
	}

	entries := append([]*model.ScheduleEntry(nil), schedule.Entries...)

	for _, from := range overloaded {
		candidates := append([]*model.ScheduleEntry(nil), byFaculty[from.ID]...)
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i].Course.RequiredEquipment) < len(candidates[j].Course.RequiredEquipment)
		})

		for _, entry := range candidates {
			for _, to := range underloaded {
				if to.Department != entry.Course.Department {
					continue
				}
				if to.CurrentTeachingHours+entry.Duration > to.MaxTeachingHours {
					continue
				}
				if !to.IsAvailable(entry.Day, entry.Time, entry.Duration) {
					continue
				}

				entry.Faculty.ReleaseSlot(entry.Day, entry.Time, entry.Duration)
				to.AssignSlot(entry.Day, entry.Time, entry.Duration)

				for i, e := range entries {
					if e == entry {
						moved := *entry
						moved.Faculty = to
						entries[i] = &moved
						break
					}
				}
				loads[from.ID] -= entry.Duration
				loads[to.ID] += entry.Duration
				o.log.Debug("faculty reassignment",
					zap.String("course", entry.Course.Code),
					zap.String("from", from.ID),
					zap.String("to", to.ID))
				break
			}
		}
	}

	return rebuildSchedule(schedule, entries)
}

// timeDistributionPass relocates the most flexible entries from
// overcrowded slots into undercrowded ones.
func (o *ResourceOptimizer) timeDistributionPass(schedule *model.Schedule) *model.Schedule {
	counts := make(map[string]float64, len(model.Days)*len(model.Times))
	for _, day := range model.Days {
		for _, t := range model.Times {
			counts[day+"_"+t] = 0
		}
	}
	for _, entry := range schedule.Entries {
		counts[entry.Day+"_"+entry.Time]++
	}

	all := make([]float64, 0, len(counts))
	for _, count := range counts {
		all = append(all, count)
	}
	avg := mean(all)

	var overcrowded, undercrowded []string
	for _, day := range model.Days {
		for _, t := range model.Times {
			key := day + "_" + t
			if counts[key] > avg*1.5 {
				overcrowded = append(overcrowded, key)
			} else if counts[key] < avg*0.5 {
				undercrowded = append(undercrowded, key)
			}
		}
	}

	entries := append([]*model.ScheduleEntry(nil), schedule.Entries...)

	for _, slot := range overcrowded {
		day, t := splitSlotKey(slot)

		var inSlot []*model.ScheduleEntry
		for _, entry := range entries {
			if entry.Day == day && entry.Time == t {
				inSlot = append(inSlot, entry)
			}
		}
		sort.SliceStable(inSlot, func(i, j int) bool {
			fi := len(inSlot[i].Course.PreferredTimes) + len(inSlot[i].Course.PreferredDays)
			fj := len(inSlot[j].Course.PreferredTimes) + len(inSlot[j].Course.PreferredDays)
			return fi < fj
		})

		for _, entry := range inSlot {
			for _, target := range undercrowded {
				newDay, newTime := splitSlotKey(target)
				if !o.tryMove(entry, newDay, newTime) {
					continue
				}
				for i, e := range entries {
					if e == entry {
						moved := *entry
						moved.Day = newDay
						moved.Time = newTime
						entries[i] = &moved
						break
					}
				}
				counts[slot]--
				counts[target]++
				break
			}
		}
	}

	return rebuildSchedule(schedule, entries)
}

// tryMove relocates the entry's reservations to (day, time) if the
// target keeps room, faculty, and course preference constraints
// satisfied. Rolls back on failure.
func (o *ResourceOptimizer) tryMove(entry *model.ScheduleEntry, day string, time string) bool {
	if len(entry.Course.PreferredDays) > 0 && !contains(entry.Course.PreferredDays, day) {
		return false
	}
	if len(entry.Course.PreferredTimes) > 0 && !contains(entry.Course.PreferredTimes, time) {
		return false
	}

	entry.Room.ReleaseSlot(entry.Day, entry.Time, entry.Duration)
	entry.Faculty.ReleaseSlot(entry.Day, entry.Time, entry.Duration)

	if !entry.Room.IsAvailable(day, time, entry.Duration) ||
		!entry.Faculty.IsAvailable(day, time, entry.Duration) {
		entry.Room.ReserveSlot(entry.Day, entry.Time, entry.Duration)
		entry.Faculty.AssignSlot(entry.Day, entry.Time, entry.Duration)
		return false
	}

	entry.Room.ReserveSlot(day, time, entry.Duration)
	entry.Faculty.AssignSlot(day, time, entry.Duration)
	return true
}

// efficiencyPass revisits the worst capacity-fit entries and applies the
// single best room swap found for each.
func (o *ResourceOptimizer) efficiencyPass(schedule *model.Schedule) *model.Schedule {
	entries := append([]*model.ScheduleEntry(nil), schedule.Entries...)

	ranked := append([]*model.ScheduleEntry(nil), entries...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return capacityRatio(ranked[i].Course, ranked[i].Room) < capacityRatio(ranked[j].Course, ranked[j].Room)
	})
	if len(ranked) > o.params.EfficiencyWorstCount {
		ranked = ranked[:o.params.EfficiencyWorstCount]
	}

	for _, entry := range ranked {
		if capacityRatio(entry.Course, entry.Room) >= o.params.EfficiencyFloor {
			continue
		}

		bestScore := o.entryScore(entry.Course, entry.Room, entry.Faculty, entry.Day, entry.Time)
		var bestRoom *model.Room
		for _, room := range o.pool.Rooms {
			if room.ID == entry.Room.ID || room.Capacity < entry.Course.Capacity {
				continue
			}
			if entry.Course.RoomTypeRequired != "" && string(room.Type) != entry.Course.RoomTypeRequired {
				continue
			}
			if !room.HasEquipment(entry.Course.RequiredEquipment) {
				continue
			}
			if !room.IsAvailable(entry.Day, entry.Time, entry.Duration) {
				continue
			}
			if score := o.entryScore(entry.Course, room, entry.Faculty, entry.Day, entry.Time); score > bestScore {
				bestScore = score
				bestRoom = room
			}
		}
		if bestRoom == nil {
			continue
		}

		bestRoom.ReserveSlot(entry.Day, entry.Time, entry.Duration)
		entry.Room.ReleaseSlot(entry.Day, entry.Time, entry.Duration)
		for i, e := range entries {
			if e == entry {
				swapped := *entry
				swapped.Room = bestRoom
				swapped.ResourceEfficiency = capacityRatio(entry.Course, bestRoom)
				entries[i] = &swapped
				break
			}
		}
	}

	return rebuildSchedule(schedule, entries)
}

// entryScore is the composite used by the efficiency pass: capacity band
// times preference alignment times room quality.
func (o *ResourceOptimizer) entryScore(course *model.Course, room *model.Room, faculty *model.Faculty, day string, time string) float64 {
	score := 1.0

	switch ratio := capacityRatio(course, room); {
	case ratio >= 0.8 && ratio <= 1.0:
		score *= 1.3
	case ratio >= 0.6 && ratio < 0.8:
		score *= 1.1
	case ratio < 0.5:
		score *= 0.6
	}

	courseScore := course.ConstraintScore(day, time)
	facultyScore := faculty.PreferenceScore(day, time)
	score *= (courseScore + facultyScore) / 2

	score *= (room.AcousticsRating + room.LightingRating) / 2
	return score
}

func rebuildSchedule(previous *model.Schedule, entries []*model.ScheduleEntry) *model.Schedule {
	result := model.NewSchedule()
	result.Entries = entries
	result.Conflicts = append(result.Conflicts, previous.Conflicts...)
	result.CalculateMetrics()
	return result
}

func splitSlotKey(key string) (string, string) {
	for i := 0; i < len(key); i++ {
		if key[i] == '_' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance is the population variance, matching the metric definitions.
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - avg
		sum += diff * diff
	}
	return sum / float64(len(values))
}

func clampFloor(v float64, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
