package controllers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"imagelab/internal/logger"
	"imagelab/internal/models"

	EventBus "github.com/asaskevich/EventBus"
)

// StatusReady is rendered once a file has been chosen.
const StatusReady = "Ready"

// Renderer is the output side of one workflow panel. Implementations must be
// safe to call from any goroutine and must not block or call back into the
// workflow; calls are made while the workflow holds its lock.
type Renderer interface {
	SetRunEnabled(enabled bool)
	ShowPreview(preview models.Preview)
	ShowStatus(message string)
	ShowNotice(message string)
	ShowError(message string)
	ShowResult(result models.Success)
}

// Decoder turns image bytes into a displayable preview.
type Decoder interface {
	Decode(data []byte) (models.Preview, error)
}

// Dependencies are shared by every workflow instance.
type Dependencies struct {
	Decoder Decoder
	Bus     EventBus.Bus
	Logger  logger.Logger

	// Timeout bounds each request; zero waits indefinitely.
	Timeout time.Duration

	// TransportHint is shown when the service cannot be reached.
	TransportHint string
}

// WorkflowSpec parameterizes the generic upload, preview, submit and render
// cycle for one endpoint.
type WorkflowSpec[P models.Parameters] struct {
	Name             string
	ProcessingStatus string

	// Params reads the current control values when a run starts.
	Params func() P

	// Validate runs before anything is rendered or sent. A non-nil error is
	// shown as an informational notice and the run is dropped.
	Validate func(P) error

	Submit func(ctx context.Context, file models.SelectedFile, params P) models.Result
}

// Workflow owns the selected file and state of one upload/process/render
// feature. A run started while another is in flight cancels the earlier
// request; only the most recent run's result is rendered.
type Workflow[P models.Parameters] struct {
	spec     WorkflowSpec[P]
	deps     Dependencies
	renderer Renderer

	ctx        context.Context
	cancelRoot context.CancelFunc

	mu         sync.Mutex
	state      models.State
	file       *models.SelectedFile
	selection  uint64
	generation uint64
	cancelRun  context.CancelFunc
	closed     bool

	wg sync.WaitGroup
}

// NewWorkflow creates a workflow in the idle state with its run action disabled.
func NewWorkflow[P models.Parameters](spec WorkflowSpec[P], renderer Renderer, deps Dependencies) *Workflow[P] {
	if deps.Logger == nil {
		deps.Logger = logger.NoOpLogger{}
	}
	ctx, cancel := context.WithCancel(context.Background())

	w := &Workflow[P]{
		spec:       spec,
		deps:       deps,
		renderer:   renderer,
		ctx:        ctx,
		cancelRoot: cancel,
		state:      models.StateIdle,
	}
	renderer.SetRunEnabled(false)
	return w
}

// Name identifies the workflow in logs and events.
func (w *Workflow[P]) Name() string {
	return w.spec.Name
}

// State returns the current lifecycle state.
func (w *Workflow[P]) State() models.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// SelectedFile returns the held file, if any.
func (w *Workflow[P]) SelectedFile() (models.SelectedFile, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return models.SelectedFile{}, false
	}
	return *w.file, true
}

// Select replaces the held file. A non-empty file enables the run action and
// starts decoding its preview in the background; an empty one clears the
// selection and returns the workflow to idle. Any in-flight request is
// cancelled either way.
func (w *Workflow[P]) Select(file models.SelectedFile) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.abortRunLocked()
	w.selection++
	from := w.state

	if file.Empty() {
		w.file = nil
		w.state = models.StateIdle
		w.renderer.SetRunEnabled(false)
		w.mu.Unlock()

		w.publishState(from, models.StateIdle)
		return
	}

	if file.SelectedAt.IsZero() {
		file.SelectedAt = time.Now()
	}
	w.file = &file
	w.state = models.StateReady
	selection := w.selection
	w.renderer.SetRunEnabled(true)
	w.renderer.ShowStatus(StatusReady)
	w.wg.Add(1)
	w.mu.Unlock()

	w.deps.Logger.Info("Workflow", "file selected", map[string]interface{}{
		"workflow": w.spec.Name,
		"file":     file.Name,
		"bytes":    file.Size(),
	})
	w.publishState(from, models.StateReady)

	go w.renderPreview(selection, file)
}

// Run submits the held file. Without a file it does nothing.
func (w *Workflow[P]) Run() {
	w.mu.Lock()
	noFile := w.file == nil || w.closed
	w.mu.Unlock()
	if noFile {
		return
	}

	params := w.spec.Params()
	if w.spec.Validate != nil {
		if err := w.spec.Validate(params); err != nil {
			w.deps.Logger.Info("Workflow", "run rejected before submit", map[string]interface{}{
				"workflow": w.spec.Name,
				"reason":   err.Error(),
			})
			w.renderer.ShowNotice(err.Error())
			return
		}
	}

	w.mu.Lock()
	if w.file == nil || w.closed {
		w.mu.Unlock()
		return
	}
	file := *w.file
	w.abortRunLocked()
	generation := w.generation
	ctx, cancel := w.requestContext()
	w.cancelRun = cancel
	from := w.state
	w.state = models.StateProcessing
	w.renderer.ShowStatus(w.spec.ProcessingStatus)
	w.wg.Add(1)
	w.mu.Unlock()

	w.publishState(from, models.StateProcessing)

	go w.process(ctx, cancel, generation, file, params)
}

// Shutdown cancels outstanding work and waits for background goroutines.
func (w *Workflow[P]) Shutdown() {
	w.mu.Lock()
	w.closed = true
	w.abortRunLocked()
	w.mu.Unlock()

	w.cancelRoot()
	w.wg.Wait()
}

func (w *Workflow[P]) requestContext() (context.Context, context.CancelFunc) {
	if w.deps.Timeout > 0 {
		return context.WithTimeout(w.ctx, w.deps.Timeout)
	}
	return context.WithCancel(w.ctx)
}

// abortRunLocked cancels the in-flight request and invalidates its result.
func (w *Workflow[P]) abortRunLocked() {
	if w.cancelRun != nil {
		w.cancelRun()
		w.cancelRun = nil
	}
	w.generation++
}

func (w *Workflow[P]) renderPreview(selection uint64, file models.SelectedFile) {
	defer w.wg.Done()

	preview, err := w.deps.Decoder.Decode(file.Data)
	if err != nil {
		w.deps.Logger.Warning("Workflow", "preview unavailable", map[string]interface{}{
			"workflow": w.spec.Name,
			"file":     file.Name,
			"error":    err.Error(),
		})
	}

	// The check and the render share one critical section so a newer
	// selection cannot be overwritten by this one's preview.
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.selection != selection || w.closed {
		return
	}
	w.renderer.ShowPreview(preview)
}

func (w *Workflow[P]) process(ctx context.Context, cancel context.CancelFunc, generation uint64, file models.SelectedFile, params P) {
	defer w.wg.Done()
	defer cancel()

	start := time.Now()
	result := w.spec.Submit(ctx, file, params)
	if success, ok := result.(models.Success); ok {
		output, err := w.deps.Decoder.Decode(success.ImageData)
		if err != nil {
			result = models.TransportError{Err: fmt.Errorf("returned image could not be decoded: %w", err)}
		} else {
			success.Output = output
			result = success
		}
	}

	w.mu.Lock()
	if generation != w.generation {
		w.mu.Unlock()
		w.deps.Logger.Debug("Workflow", "discarding superseded result", map[string]interface{}{
			"workflow": w.spec.Name,
		})
		return
	}
	w.cancelRun = nil
	from := w.state
	to := models.StateFailed
	if _, ok := result.(models.Success); ok {
		to = models.StateDone
	}
	w.state = to
	finished := w.renderLocked(result, time.Since(start))
	w.mu.Unlock()

	w.publishState(from, to)
	w.publish(TopicRunFinished, finished)
}

// renderLocked hands result to the renderer. It runs under w.mu, after the
// generation check, so a superseded run can never render over a newer one.
func (w *Workflow[P]) renderLocked(result models.Result, elapsed time.Duration) RunFinished {
	finished := RunFinished{
		Workflow: w.spec.Name,
		Outcome:  models.OutcomeOf(result),
		Duration: elapsed,
	}

	switch r := result.(type) {
	case models.Success:
		w.renderer.ShowResult(r)
	case models.Failure:
		finished.Message = r.Message
		w.renderer.ShowError(r.Message)
	case models.TransportError:
		finished.Message = r.Error()
		if errors.Is(r, context.DeadlineExceeded) {
			finished.Message = "request timed out"
		}
		w.deps.Logger.Error("Workflow", r, map[string]interface{}{
			"workflow": w.spec.Name,
		})
		w.renderer.ShowError(w.deps.TransportHint)
	}
	return finished
}

func (w *Workflow[P]) publishState(from, to models.State) {
	if !from.CanTransition(to) {
		w.deps.Logger.Warning("Workflow", "unexpected state transition", map[string]interface{}{
			"workflow": w.spec.Name,
			"from":     from.String(),
			"to":       to.String(),
		})
	}
	w.publish(TopicStateChanged, StateChange{
		Workflow: w.spec.Name,
		From:     from,
		To:       to,
		At:       time.Now(),
	})
}

func (w *Workflow[P]) publish(topic string, event interface{}) {
	if w.deps.Bus != nil {
		w.deps.Bus.Publish(topic, event)
	}
}
