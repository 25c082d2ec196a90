package controllers

import (
	"fmt"

	"imagelab/internal/logger"
	"imagelab/internal/models"
	"imagelab/internal/services"

	EventBus "github.com/asaskevich/EventBus"
)

// WorkflowView is a workflow panel: a renderer that reports file choices and
// run taps.
type WorkflowView interface {
	Renderer
	SetSelectHandler(handler func(models.SelectedFile))
	SetRunHandler(handler func())
}

// FilteringView is the filtering panel with its parameter controls.
type FilteringView interface {
	WorkflowView
	FilterControls
}

// NavigationView switches panels and reports navigation taps.
type NavigationView interface {
	PanelSwitcher
	SetNavigateHandler(handler func(target string))
}

// Processing is the request side used by both workflows.
type Processing interface {
	CompressionService
	FilterService
}

// MainController orchestrates navigation and both workflows.
type MainController struct {
	navigation  *NavigationController
	compression *CompressionWorkflow
	filtering   *FilteringWorkflow

	bus    EventBus.Bus
	logger logger.Logger
}

// NewMainController creates the workflows and binds them to their views.
func NewMainController(
	processing Processing,
	navView NavigationView,
	compressionView WorkflowView,
	filteringView FilteringView,
	deps Dependencies,
) (*MainController, error) {
	if deps.Logger == nil {
		deps.Logger = logger.NoOpLogger{}
	}
	if deps.Bus == nil {
		deps.Bus = NewEventBus()
	}
	if err := subscribeEventLogging(deps.Bus, deps.Logger); err != nil {
		return nil, fmt.Errorf("failed to subscribe event logging: %w", err)
	}

	views := models.NewViewSet(models.PanelHome, models.PanelJPEG, models.PanelNoise)

	mc := &MainController{
		navigation:  NewNavigationController(views, navView, deps.Bus, deps.Logger),
		compression: NewCompressionWorkflow(services.WorkflowCompression, processing, compressionView, deps),
		filtering:   NewFilteringWorkflow(services.WorkflowFiltering, processing, filteringView, filteringView, deps),
		bus:         deps.Bus,
		logger:      deps.Logger,
	}

	navView.SetNavigateHandler(func(target string) {
		mc.navigation.Navigate(target)
	})
	compressionView.SetSelectHandler(mc.compression.Select)
	compressionView.SetRunHandler(mc.compression.Run)
	filteringView.SetSelectHandler(mc.filtering.Select)
	filteringView.SetRunHandler(mc.filtering.Run)

	return mc, nil
}

// Start shows the initial panel.
func (mc *MainController) Start() {
	mc.navigation.Navigate(models.PanelHome)
}

func (mc *MainController) Navigation() *NavigationController {
	return mc.navigation
}

func (mc *MainController) Compression() *CompressionWorkflow {
	return mc.compression
}

func (mc *MainController) Filtering() *FilteringWorkflow {
	return mc.filtering
}

// Shutdown cancels in-flight requests of both workflows.
func (mc *MainController) Shutdown() {
	mc.compression.Shutdown()
	mc.filtering.Shutdown()
	mc.logger.Info("MainController", "workflows stopped", nil)
}
