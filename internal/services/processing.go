package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"imagelab/internal/logger"
	"imagelab/internal/models"
)

// Workflow names used for stats and logging.
const (
	WorkflowCompression = "jpeg"
	WorkflowFiltering   = "noise"
)

// Processor is the subset of ImageServiceClient the processing service needs.
type Processor interface {
	Compress(ctx context.Context, file models.SelectedFile, params models.CompressionParams) models.Result
	Filter(ctx context.Context, file models.SelectedFile, params models.FilterParams) models.Result
}

// ProcessingService runs requests against the image service and keeps
// per-workflow statistics.
type ProcessingService struct {
	processor Processor
	stats     *models.StatsRepository
	logger    logger.Logger

	mu       sync.Mutex
	inFlight int
}

// NewProcessingService creates a new processing service
func NewProcessingService(processor Processor, stats *models.StatsRepository, log logger.Logger) *ProcessingService {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if stats == nil {
		stats = models.NewStatsRepository()
	}
	return &ProcessingService{
		processor: processor,
		stats:     stats,
		logger:    log,
	}
}

// Compress runs one compression request.
func (ps *ProcessingService) Compress(ctx context.Context, file models.SelectedFile, params models.CompressionParams) models.Result {
	return ps.track(ctx, WorkflowCompression, func() models.Result {
		return ps.processor.Compress(ctx, file, params)
	})
}

// Filter runs one filtering request.
func (ps *ProcessingService) Filter(ctx context.Context, file models.SelectedFile, params models.FilterParams) models.Result {
	return ps.track(ctx, WorkflowFiltering, func() models.Result {
		return ps.processor.Filter(ctx, file, params)
	})
}

// track counts a request in flight and records its outcome. Requests cancelled
// by a newer run or selection are not failures and are left out of the stats.
func (ps *ProcessingService) track(ctx context.Context, workflow string, run func() models.Result) models.Result {
	ps.mu.Lock()
	ps.inFlight++
	ps.mu.Unlock()

	start := time.Now()
	result := run()
	elapsed := time.Since(start)

	ps.mu.Lock()
	ps.inFlight--
	ps.mu.Unlock()

	if errors.Is(ctx.Err(), context.Canceled) {
		ps.logger.Debug("ProcessingService", "request cancelled", map[string]interface{}{
			"workflow":    workflow,
			"duration_ms": elapsed.Milliseconds(),
		})
		return result
	}

	outcome := models.OutcomeOf(result)
	ps.stats.Record(workflow, outcome, elapsed)

	ps.logger.Debug("ProcessingService", "request finished", map[string]interface{}{
		"workflow":    workflow,
		"outcome":     string(outcome),
		"duration_ms": elapsed.Milliseconds(),
	})
	return result
}

// ProcessingStats summarises all requests seen so far.
type ProcessingStats struct {
	TotalProcessed int
	InFlight       int
	AverageTime    time.Duration
	PerWorkflow    map[string]models.RunStats
}

// GetProcessingStats returns current processing statistics
func (ps *ProcessingService) GetProcessingStats() ProcessingStats {
	snapshot := ps.stats.Snapshot()

	var total int
	var duration time.Duration
	for _, s := range snapshot {
		total += s.Runs
		duration += s.TotalDuration
	}

	ps.mu.Lock()
	inFlight := ps.inFlight
	ps.mu.Unlock()

	stats := ProcessingStats{
		TotalProcessed: total,
		InFlight:       inFlight,
		PerWorkflow:    snapshot,
	}
	if total > 0 {
		stats.AverageTime = duration / time.Duration(total)
	}
	return stats
}
