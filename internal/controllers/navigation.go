package controllers

import (
	"imagelab/internal/logger"
	"imagelab/internal/models"

	EventBus "github.com/asaskevich/EventBus"
)

// PanelSwitcher shows or hides one panel of the main window.
type PanelSwitcher interface {
	SetPanelVisible(id string, visible bool)
}

// NavigationController keeps exactly one panel of a ViewSet visible.
type NavigationController struct {
	views    *models.ViewSet
	switcher PanelSwitcher
	bus      EventBus.Bus
	logger   logger.Logger
}

func NewNavigationController(views *models.ViewSet, switcher PanelSwitcher, bus EventBus.Bus, log logger.Logger) *NavigationController {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &NavigationController{
		views:    views,
		switcher: switcher,
		bus:      bus,
		logger:   log,
	}
}

// Navigate activates target and hides every other panel. Empty or unknown
// targets are ignored.
func (n *NavigationController) Navigate(target string) bool {
	if target == "" {
		return false
	}
	if !n.views.Activate(target) {
		n.logger.Warning("Navigation", "unknown panel", map[string]interface{}{
			"panel": target,
		})
		return false
	}

	for _, id := range n.views.Panels() {
		n.switcher.SetPanelVisible(id, id == target)
	}

	if n.bus != nil {
		n.bus.Publish(TopicNavigated, Navigated{Panel: target})
	}
	return true
}

// Active returns the visible panel.
func (n *NavigationController) Active() string {
	return n.views.Active()
}
