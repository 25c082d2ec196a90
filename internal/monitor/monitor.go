// Package monitor periodically logs process and request statistics.
package monitor

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"imagelab/internal/logger"
	"imagelab/internal/services"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Sample is one snapshot of resource usage.
type Sample struct {
	GoAllocMB     uint64
	GoTotalMB     uint64
	GCRuns        uint32
	Goroutines    int
	ProcessRSSMB  uint64
	Threads       int32
	SystemMemUsed float64
}

// Collect reads Go runtime, process and system memory figures.
func Collect() (Sample, error) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	sample := Sample{
		GoAllocMB:  memStats.Alloc / 1024 / 1024,
		GoTotalMB:  memStats.TotalAlloc / 1024 / 1024,
		GCRuns:     memStats.NumGC,
		Goroutines: runtime.NumGoroutine(),
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return sample, fmt.Errorf("failed to open process: %w", err)
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		return sample, fmt.Errorf("failed to get process memory: %w", err)
	}
	sample.ProcessRSSMB = info.RSS / 1024 / 1024

	if threads, err := proc.NumThreads(); err == nil {
		sample.Threads = threads
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return sample, fmt.Errorf("failed to get memory usage: %w", err)
	}
	sample.SystemMemUsed = vm.UsedPercent

	return sample, nil
}

// StatsSource reports request statistics.
type StatsSource interface {
	GetProcessingStats() services.ProcessingStats
}

// Monitor logs a Sample and request statistics on every tick.
type Monitor struct {
	interval time.Duration
	stats    StatsSource
	logger   logger.Logger
}

func New(interval time.Duration, stats StatsSource, log logger.Logger) *Monitor {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Monitor{interval: interval, stats: stats, logger: log}
}

// Run blocks until ctx is done. A non-positive interval disables it.
func (m *Monitor) Run(ctx context.Context) {
	if m.interval <= 0 {
		return
	}
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.LogOnce()
		case <-ctx.Done():
			return
		}
	}
}

// LogOnce writes a single metrics line.
func (m *Monitor) LogOnce() {
	sample, err := Collect()
	if err != nil {
		m.logger.Warning("Monitor", "partial metrics", map[string]interface{}{
			"error": err.Error(),
		})
	}

	fields := map[string]interface{}{
		"go_memory_mb":      sample.GoAllocMB,
		"go_total_alloc_mb": sample.GoTotalMB,
		"go_gc_runs":        sample.GCRuns,
		"goroutine_count":   sample.Goroutines,
		"rss_mb":            sample.ProcessRSSMB,
		"threads":           sample.Threads,
		"system_mem_pct":    sample.SystemMemUsed,
	}
	if m.stats != nil {
		stats := m.stats.GetProcessingStats()
		fields["requests"] = stats.TotalProcessed
		fields["in_flight"] = stats.InFlight
		fields["avg_request_ms"] = stats.AverageTime.Milliseconds()
	}

	m.logger.Debug("Monitor", "performance metrics", fields)
}
