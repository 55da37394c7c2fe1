package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/classgrid/SmartClassGrid/internal/csvio"
	"github.com/classgrid/SmartClassGrid/internal/scheduler"
	"github.com/classgrid/SmartClassGrid/pkg/config"
	"github.com/classgrid/SmartClassGrid/pkg/logger"
	"github.com/classgrid/SmartClassGrid/pkg/model"
)

func main() {
	useSample := flag.Bool("sample", false, "run with built-in sample data")
	printOnly := flag.Bool("print", false, "print the timetable instead of exporting")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	courses, rooms, faculty, err := loadData(cfg, *useSample)
	if err != nil {
		log.Fatal("load data", zap.Error(err))
	}

	pool, err := model.NewResourcePool(courses, rooms, faculty)
	if err != nil {
		log.Fatal("build resource pool", zap.Error(err))
	}

	params := scheduler.DefaultParams()
	params.MaxBacktrackIterations = cfg.Engine.MaxBacktrackIterations
	params.MaxSolverIterations = cfg.Engine.MaxSolverIterations
	params.OverloadThreshold = cfg.Engine.OverloadThreshold
	params.UnderloadThreshold = cfg.Engine.UnderloadThreshold

	start := time.Now()
	result := scheduler.NewEngine(pool, params, log).Run()
	elapsed := time.Since(start)

	if *printOnly {
		csvio.PrintSchedule(result.Schedule)
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Output.ScheduleFile), 0755); err != nil {
			log.Fatal("create output dir", zap.Error(err))
		}
		if err := csvio.ExportSchedule(result.Schedule, cfg.Output.ScheduleFile); err != nil {
			log.Fatal("export schedule", zap.Error(err))
		}
		if err := csvio.ExportConflicts(result.Conflicts, cfg.Output.ConflictsFile); err != nil {
			log.Fatal("export conflicts", zap.Error(err))
		}
		fmt.Printf("Schedule written to %s\n", cfg.Output.ScheduleFile)
	}

	fmt.Printf("Scheduled %d/%d courses, accuracy %.1f, overall efficiency %.1f\n",
		len(result.Schedule.Entries), len(pool.Courses),
		result.Schedule.AccuracyScore, result.Metrics.OverallEfficiency)
	fmt.Printf("Validation: %d hard, %d soft violations, score %.1f\n",
		len(result.Validation.HardViolations), len(result.Validation.SoftViolations),
		result.Validation.OverallScore)
	fmt.Printf("Timer: %.2f ms\n", float64(elapsed.Microseconds())/1000.0)
}

func loadData(cfg *config.Config, useSample bool) ([]*model.Course, []*model.Room, []*model.Faculty, error) {
	if useSample {
		courses, rooms, faculty := csvio.SampleData()
		return courses, rooms, faculty, nil
	}
	if cfg.Input.JSONFile != "" {
		return csvio.LoadPoolJSON(cfg.Input.JSONFile)
	}

	delim := cfg.Input.DelimiterRune()
	courses, err := csvio.LoadCourses(cfg.Input.CoursesFile, delim)
	if err != nil {
		return nil, nil, nil, err
	}
	rooms, err := csvio.LoadRooms(cfg.Input.RoomsFile, delim)
	if err != nil {
		return nil, nil, nil, err
	}
	faculty, err := csvio.LoadFaculty(cfg.Input.FacultyFile, delim)
	if err != nil {
		return nil, nil, nil, err
	}
	return courses, rooms, faculty, nil
}
