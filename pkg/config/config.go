package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Input  InputConfig
	Output OutputConfig
	Engine EngineConfig
	Log    LogConfig
}

// InputConfig names the data files the batch runner loads.
type InputConfig struct {
	CoursesFile string
	RoomsFile   string
	FacultyFile string
	JSONFile    string
	Delimiter   string
}

type OutputConfig struct {
	ScheduleFile  string
	ConflictsFile string
}

// EngineConfig carries the tunable search budgets and thresholds.
type EngineConfig struct {
	MaxBacktrackIterations int
	MaxSolverIterations    int
	OverloadThreshold      float64
	UnderloadThreshold     float64
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	// A missing .env is fine; with an explicit config file viper
	// surfaces that as a plain path error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Input = InputConfig{
		CoursesFile: v.GetString("COURSES_FILE"),
		RoomsFile:   v.GetString("ROOMS_FILE"),
		FacultyFile: v.GetString("FACULTY_FILE"),
		JSONFile:    v.GetString("INPUT_JSON_FILE"),
		Delimiter:   v.GetString("CSV_DELIMITER"),
	}

	cfg.Output = OutputConfig{
		ScheduleFile:  v.GetString("SCHEDULE_FILE"),
		ConflictsFile: v.GetString("CONFLICTS_FILE"),
	}

	cfg.Engine = EngineConfig{
		MaxBacktrackIterations: v.GetInt("MAX_BACKTRACK_ITERATIONS"),
		MaxSolverIterations:    v.GetInt("MAX_SOLVER_ITERATIONS"),
		OverloadThreshold:      v.GetFloat64("OVERLOAD_THRESHOLD"),
		UnderloadThreshold:     v.GetFloat64("UNDERLOAD_THRESHOLD"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

// DelimiterRune returns the configured CSV delimiter, comma when unset.
func (c *InputConfig) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ','
	}
	return []rune(c.Delimiter)[0]
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)

	v.SetDefault("COURSES_FILE", "./data/courses.csv")
	v.SetDefault("ROOMS_FILE", "./data/rooms.csv")
	v.SetDefault("FACULTY_FILE", "./data/faculty.csv")
	v.SetDefault("INPUT_JSON_FILE", "")
	v.SetDefault("CSV_DELIMITER", ",")

	v.SetDefault("SCHEDULE_FILE", "./out/schedule.csv")
	v.SetDefault("CONFLICTS_FILE", "./out/conflicts.json")

	v.SetDefault("MAX_BACKTRACK_ITERATIONS", 10000)
	v.SetDefault("MAX_SOLVER_ITERATIONS", 5000)
	v.SetDefault("OVERLOAD_THRESHOLD", 0.9)
	v.SetDefault("UNDERLOAD_THRESHOLD", 0.6)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}
