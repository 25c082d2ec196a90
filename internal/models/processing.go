package models

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// DefaultJPEGQuality is the quality the compression workflow always sends.
const DefaultJPEGQuality = 50

// Parameters are the extra multipart fields sent alongside the file.
type Parameters interface {
	FormFields() map[string]string
}

// CompressionParams configure a /compress request.
type CompressionParams struct {
	Quality int
}

func (p CompressionParams) FormFields() map[string]string {
	return map[string]string{
		"quality": strconv.Itoa(p.Quality),
	}
}

// FilterKind names a noise-reduction filter as the service knows it.
type FilterKind string

const (
	FilterMedian   FilterKind = "Median Filter"
	FilterAverage  FilterKind = "Average Filter"
	FilterMinMax   FilterKind = "Min-Max Filter"
	FilterGaussian FilterKind = "Gaussian Filter"
)

// Capability says whether the client lets a filter kind reach the service.
type Capability int

const (
	Unsupported Capability = iota
	Supported
)

var filterCapabilities = []struct {
	kind       FilterKind
	capability Capability
}{
	{FilterMedian, Supported},
	{FilterAverage, Supported},
	{FilterMinMax, Unsupported},
	{FilterGaussian, Unsupported},
}

// FilterKinds lists every known filter kind in display order.
func FilterKinds() []FilterKind {
	kinds := make([]FilterKind, 0, len(filterCapabilities))
	for _, entry := range filterCapabilities {
		kinds = append(kinds, entry.kind)
	}
	return kinds
}

// CapabilityOf looks a kind up in the capability table. Unknown kinds are
// passed through as supported so the service can judge them.
func CapabilityOf(kind FilterKind) Capability {
	for _, entry := range filterCapabilities {
		if entry.kind == kind {
			return entry.capability
		}
	}
	return Supported
}

// FilterMethod is the edge-handling strategy used by the filters.
type FilterMethod string

const (
	MethodPadding   FilterMethod = "Padding"
	MethodReflect   FilterMethod = "Reflect"
	MethodEdge      FilterMethod = "Edge"
	MethodSymmetric FilterMethod = "Symmetric"
	MethodCrop      FilterMethod = "Crop"
)

func FilterMethods() []FilterMethod {
	return []FilterMethod{MethodPadding, MethodReflect, MethodEdge, MethodSymmetric, MethodCrop}
}

// KernelSizes are the odd window sizes offered for filtering.
func KernelSizes() []int {
	return []int{3, 5, 7, 9, 11}
}

const DefaultKernelSize = 3

// FilterParams configure a /filter request.
type FilterParams struct {
	Kind       FilterKind
	KernelSize int
	Method     FilterMethod
}

func (p FilterParams) FormFields() map[string]string {
	return map[string]string{
		"filter_type": string(p.Kind),
		"kernel_size": strconv.Itoa(p.KernelSize),
		"method":      string(p.Method),
	}
}

// UnsupportedFilterError is returned by the pre-flight check for kinds that
// must not be sent.
type UnsupportedFilterError struct {
	Kind FilterKind
}

func (e *UnsupportedFilterError) Error() string {
	return fmt.Sprintf("%s is not implemented yet", e.Kind)
}

// CheckFilter rejects kinds marked unsupported.
func CheckFilter(p FilterParams) error {
	if CapabilityOf(p.Kind) == Unsupported {
		return &UnsupportedFilterError{Kind: p.Kind}
	}
	return nil
}

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeFailure   Outcome = "failure"
	OutcomeTransport Outcome = "transport"
)

// OutcomeOf maps a result onto its outcome class.
func OutcomeOf(r Result) Outcome {
	switch r.(type) {
	case Success:
		return OutcomeSuccess
	case Failure:
		return OutcomeFailure
	default:
		return OutcomeTransport
	}
}

// RunStats aggregates finished runs for one workflow.
type RunStats struct {
	Runs          int
	Successes     int
	Failures      int
	Transport     int
	TotalDuration time.Duration
	LastRun       time.Time
}

// AverageTime returns the mean latency of finished runs.
func (s RunStats) AverageTime() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Runs)
}

// StatsRepository keeps RunStats per workflow name.
type StatsRepository struct {
	mu    sync.RWMutex
	stats map[string]RunStats
}

func NewStatsRepository() *StatsRepository {
	return &StatsRepository{stats: make(map[string]RunStats)}
}

// Record adds one finished run.
func (r *StatsRepository) Record(workflow string, outcome Outcome, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.stats[workflow]
	s.Runs++
	s.TotalDuration += duration
	s.LastRun = time.Now()
	switch outcome {
	case OutcomeSuccess:
		s.Successes++
	case OutcomeFailure:
		s.Failures++
	case OutcomeTransport:
		s.Transport++
	}
	r.stats[workflow] = s
}

// Get returns a copy of the stats for one workflow.
func (r *StatsRepository) Get(workflow string) RunStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats[workflow]
}

// Snapshot returns a copy of every workflow's stats.
func (r *StatsRepository) Snapshot() map[string]RunStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]RunStats, len(r.stats))
	for k, v := range r.stats {
		out[k] = v
	}
	return out
}
