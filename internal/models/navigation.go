package models

import "sync"

// Panel identifiers known to the main window.
const (
	PanelHome  = "home"
	PanelJPEG  = "jpeg"
	PanelNoise = "noise"
)

// ViewSet is a fixed collection of panels with at most one active.
type ViewSet struct {
	mu     sync.RWMutex
	panels []string
	active string
}

// NewViewSet creates a set with no active panel.
func NewViewSet(panels ...string) *ViewSet {
	ids := make([]string, len(panels))
	copy(ids, panels)
	return &ViewSet{panels: ids}
}

// Has reports whether id names a panel in the set.
func (v *ViewSet) Has(id string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.indexOf(id) >= 0
}

// Activate marks id active and every other panel inactive. It returns false
// and leaves the set untouched when id is unknown.
func (v *ViewSet) Activate(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.indexOf(id) < 0 {
		return false
	}
	v.active = id
	return true
}

// Active returns the active panel id, or "" before the first activation.
func (v *ViewSet) Active() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.active
}

// IsActive reports whether id is the active panel.
func (v *ViewSet) IsActive(id string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return id != "" && v.active == id
}

// Panels returns the panel ids in declaration order.
func (v *ViewSet) Panels() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]string, len(v.panels))
	copy(out, v.panels)
	return out
}

func (v *ViewSet) indexOf(id string) int {
	for i, p := range v.panels {
		if p == id {
			return i
		}
	}
	return -1
}
