package controllers

import (
	"time"

	"imagelab/internal/logger"
	"imagelab/internal/models"

	EventBus "github.com/asaskevich/EventBus"
)

// Event topics published on the application bus.
const (
	TopicStateChanged = "workflow:state"
	TopicRunFinished  = "workflow:run"
	TopicNavigated    = "navigation:changed"
)

// StateChange is published whenever a workflow moves between states.
type StateChange struct {
	Workflow string
	From     models.State
	To       models.State
	At       time.Time
}

// RunFinished is published once per run whose result was rendered.
type RunFinished struct {
	Workflow string
	Outcome  models.Outcome
	Duration time.Duration
	Message  string
}

// Navigated is published after a panel switch.
type Navigated struct {
	Panel string
}

// NewEventBus returns the bus shared by the controllers.
func NewEventBus() EventBus.Bus {
	return EventBus.New()
}

// subscribeEventLogging writes every controller event to the log.
func subscribeEventLogging(bus EventBus.Bus, log logger.Logger) error {
	if err := bus.Subscribe(TopicStateChanged, func(e StateChange) {
		log.Debug("Workflow", "state changed", map[string]interface{}{
			"workflow": e.Workflow,
			"from":     e.From.String(),
			"to":       e.To.String(),
		})
	}); err != nil {
		return err
	}

	if err := bus.Subscribe(TopicRunFinished, func(e RunFinished) {
		fields := map[string]interface{}{
			"workflow":    e.Workflow,
			"outcome":     string(e.Outcome),
			"duration_ms": e.Duration.Milliseconds(),
		}
		if e.Message != "" {
			fields["message"] = e.Message
		}
		log.Info("Workflow", "run finished", fields)
	}); err != nil {
		return err
	}

	return bus.Subscribe(TopicNavigated, func(e Navigated) {
		log.Debug("Navigation", "panel activated", map[string]interface{}{
			"panel": e.Panel,
		})
	})
}
