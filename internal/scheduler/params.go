package scheduler

// Params tunes the search and optimization stages.
type Params struct {
	// MaxBacktrackIterations caps the backtracking optimizer; when the
	// budget runs out the partial result accumulated so far is returned.
	MaxBacktrackIterations int
	// MaxSolverIterations caps the CSP search the same way.
	MaxSolverIterations int

	// Faculty load thresholds for the load-balancing pass, as fractions
	// of the teaching-hour cap.
	OverloadThreshold  float64
	UnderloadThreshold float64

	// Room-swap trigger and the number of worst entries the efficiency
	// pass inspects.
	EfficiencyFloor      float64
	EfficiencyWorstCount int
}

func DefaultParams() Params {
	return Params{
		MaxBacktrackIterations: 10000,
		MaxSolverIterations:    5000,
		OverloadThreshold:      0.9,
		UnderloadThreshold:     0.6,
		EfficiencyFloor:        0.7,
		EfficiencyWorstCount:   10,
	}
}
