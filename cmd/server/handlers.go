package main

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classgrid/SmartClassGrid/internal/csvio"
	"github.com/classgrid/SmartClassGrid/internal/scheduler"
	"github.com/classgrid/SmartClassGrid/pkg/config"
	"github.com/classgrid/SmartClassGrid/pkg/model"
)

// generateRequest is the JSON payload accepted by POST /schedule.
// Empty payloads fall back to the built-in sample dataset.
type generateRequest struct {
	Courses []*model.Course  `json:"courses"`
	Rooms   []*model.Room    `json:"rooms"`
	Faculty []*model.Faculty `json:"faculty"`
}

type server struct {
	cfg *config.Config
	log *zap.Logger

	mu   sync.RWMutex
	runs map[string]*scheduler.Result
}

func newServer(cfg *config.Config, log *zap.Logger) *server {
	return &server{
		cfg:  cfg,
		log:  log,
		runs: make(map[string]*scheduler.Result),
	}
}

func (s *server) handleGenerateSchedule(ctx *gin.Context) {
	var req generateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Courses) == 0 && len(req.Rooms) == 0 && len(req.Faculty) == 0 {
		req.Courses, req.Rooms, req.Faculty = csvio.SampleData()
	}
	for _, room := range req.Rooms {
		room.ResetAvailability()
	}
	for _, f := range req.Faculty {
		f.ResetAssignments()
	}

	pool, err := model.NewResourcePool(req.Courses, req.Rooms, req.Faculty)
	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	params := scheduler.DefaultParams()
	params.MaxBacktrackIterations = s.cfg.Engine.MaxBacktrackIterations
	params.MaxSolverIterations = s.cfg.Engine.MaxSolverIterations
	params.OverloadThreshold = s.cfg.Engine.OverloadThreshold
	params.UnderloadThreshold = s.cfg.Engine.UnderloadThreshold

	result := scheduler.NewEngine(pool, params, s.log).Run()

	id := uuid.NewString()
	s.mu.Lock()
	s.runs[id] = result
	s.mu.Unlock()

	ctx.JSON(http.StatusOK, gin.H{
		"id":             id,
		"scheduled":      len(result.Schedule.Entries),
		"conflicts":      result.Schedule.TotalConflicts,
		"accuracy_score": result.Schedule.AccuracyScore,
		"overall_score":  result.Validation.OverallScore,
	})
}

func (s *server) handleListSchedules(ctx *gin.Context) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.runs))
	for id := range s.runs {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	ctx.JSON(http.StatusOK, gin.H{"scheduleIds": ids})
}

func (s *server) handleGetSchedule(ctx *gin.Context) {
	result, ok := s.lookup(ctx.Param("id"))
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (s *server) handleExportSchedule(ctx *gin.Context) {
	result, ok := s.lookup(ctx.Param("id"))
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}

	data, err := csvio.ExportScheduleString(result.Schedule)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": data})
}

func (s *server) handleGetConflicts(ctx *gin.Context) {
	result, ok := s.lookup(ctx.Param("id"))
	if !ok {
		ctx.Status(http.StatusNotFound)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"conflicts": result.Conflicts,
		"summary":   result.Summary,
	})
}

func (s *server) lookup(id string) (*scheduler.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.runs[id]
	return result, ok
}
