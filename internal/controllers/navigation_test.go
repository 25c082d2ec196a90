package controllers

import (
	"sync"
	"testing"

	"imagelab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSwitcher struct {
	mu      sync.Mutex
	visible map[string]bool
}

func newFakeSwitcher() *fakeSwitcher {
	return &fakeSwitcher{visible: map[string]bool{}}
}

func (s *fakeSwitcher) SetPanelVisible(id string, visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible[id] = visible
}

func (s *fakeSwitcher) shown() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, v := range s.visible {
		if v {
			ids = append(ids, id)
		}
	}
	return ids
}

func newTestNavigation() (*NavigationController, *fakeSwitcher) {
	switcher := newFakeSwitcher()
	views := models.NewViewSet(models.PanelHome, models.PanelJPEG, models.PanelNoise)
	return NewNavigationController(views, switcher, NewEventBus(), nil), switcher
}

func TestNavigateShowsExactlyOnePanel(t *testing.T) {
	nav, switcher := newTestNavigation()

	for _, target := range []string{models.PanelJPEG, models.PanelNoise, models.PanelHome, models.PanelNoise, models.PanelNoise} {
		require.True(t, nav.Navigate(target))
		assert.Equal(t, []string{target}, switcher.shown())
		assert.Equal(t, target, nav.Active())
	}
}

func TestNavigateIgnoresMissingTarget(t *testing.T) {
	nav, switcher := newTestNavigation()
	require.True(t, nav.Navigate(models.PanelJPEG))

	assert.False(t, nav.Navigate(""))
	assert.False(t, nav.Navigate("settings"))

	assert.Equal(t, []string{models.PanelJPEG}, switcher.shown())
	assert.Equal(t, models.PanelJPEG, nav.Active())
}

func TestNavigatePublishesEvent(t *testing.T) {
	bus := NewEventBus()
	var got []string
	require.NoError(t, bus.Subscribe(TopicNavigated, func(e Navigated) {
		got = append(got, e.Panel)
	}))

	views := models.NewViewSet(models.PanelHome, models.PanelJPEG)
	nav := NewNavigationController(views, newFakeSwitcher(), bus, nil)

	nav.Navigate(models.PanelJPEG)
	nav.Navigate("missing")
	nav.Navigate(models.PanelHome)

	assert.Equal(t, []string{models.PanelJPEG, models.PanelHome}, got)
}
