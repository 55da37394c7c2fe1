package scheduler

import (
	"go.uber.org/zap"

	"github.com/classgrid/SmartClassGrid/pkg/model"
)

// Result bundles the outputs of a full pipeline run.
type Result struct {
	Schedule     *model.Schedule    `json:"schedule"`
	Validation   ValidationReport   `json:"validation"`
	Metrics      Metrics            `json:"metrics"`
	Improvements map[string]float64 `json:"improvements"`
	Optimization OptimizationReport `json:"optimization_report"`
	Conflicts    ConflictReport     `json:"conflicts"`
	Summary      ConflictSummary    `json:"conflict_summary"`
}

// Engine runs the full scheduling pipeline: greedy generation,
// backtracking optimization, constraint solving, resource refinement,
// and conflict detection, in that order. All stages share one pool.
type Engine struct {
	pool   *model.ResourcePool
	params Params
	log    *zap.Logger
}

func NewEngine(pool *model.ResourcePool, params Params, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{pool: pool, params: params, log: log}
}

// Run executes all five stages and returns the final schedule with its
// reports. Input validation happens in model.NewResourcePool, so a
// constructed engine always produces a result.
func (e *Engine) Run() *Result {
	e.log.Info("pipeline started",
		zap.Int("courses", len(e.pool.Courses)),
		zap.Int("rooms", len(e.pool.Rooms)),
		zap.Int("faculty", len(e.pool.Faculty)))

	greedy := NewGreedyScheduler(e.pool, e.log)
	schedule := greedy.Generate()
	e.log.Info("greedy pass done",
		zap.Int("scheduled", len(schedule.Entries)),
		zap.Int("conflicts", len(schedule.Conflicts)))

	optimizer := NewBacktrackingOptimizer(e.pool, e.params, e.log)
	schedule = optimizer.Optimize(schedule)
	e.log.Info("backtracking pass done", zap.Int("scheduled", len(schedule.Entries)))

	// Validation runs each entry against a clean grid; the pool is
	// re-applied afterwards so downstream passes see live state again.
	solver := NewConstraintSolver(e.pool, e.params, e.log)
	e.pool.Reset()
	report := solver.Validate(schedule)
	if len(report.HardViolations) > 0 {
		e.log.Warn("hard violations after optimization, running solver",
			zap.Int("violations", len(report.HardViolations)))
		schedule = solver.Solve(schedule)
		e.pool.Reset()
		report = solver.Validate(schedule)
	}
	e.pool.Apply(schedule)

	resources := NewResourceOptimizer(e.pool, e.params, e.log)
	before := resources.CalculateMetrics(schedule)
	schedule, improvements := resources.Optimize(schedule)
	metrics := resources.CalculateMetrics(schedule)
	optimization := resources.Report(before, metrics)

	detector := NewConflictDetector()
	conflicts := detector.Detect(schedule)
	summary := detector.Summarize(conflicts)

	schedule.CalculateMetrics()
	e.log.Info("pipeline finished",
		zap.Float64("accuracy", schedule.AccuracyScore),
		zap.Float64("overall_efficiency", metrics.OverallEfficiency))

	return &Result{
		Schedule:     schedule,
		Validation:   report,
		Metrics:      metrics,
		Improvements: improvements,
		Optimization: optimization,
		Conflicts:    conflicts,
		Summary:      summary,
	}
}
