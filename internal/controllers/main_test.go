package controllers

import (
	"sync"
	"testing"

	"imagelab/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNavView struct {
	*fakeSwitcher
	navigate func(string)
}

func (v *fakeNavView) SetNavigateHandler(handler func(string)) {
	v.navigate = handler
}

type fakeWorkflowView struct {
	*fakeRenderer
	onSelect func(models.SelectedFile)
	onRun    func()
}

func (v *fakeWorkflowView) SetSelectHandler(handler func(models.SelectedFile)) {
	v.onSelect = handler
}

func (v *fakeWorkflowView) SetRunHandler(handler func()) {
	v.onRun = handler
}

type fakeFilteringView struct {
	fakeWorkflowView
	staticControls
}

type mainFixture struct {
	controller  *MainController
	service     *fakeService
	nav         *fakeNavView
	compression *fakeWorkflowView
	filtering   *fakeFilteringView
}

func newMainFixture(t *testing.T, deps Dependencies) *mainFixture {
	t.Helper()
	f := &mainFixture{
		service:     &fakeService{respond: respondWith(compressionSuccess())},
		nav:         &fakeNavView{fakeSwitcher: newFakeSwitcher()},
		compression: &fakeWorkflowView{fakeRenderer: &fakeRenderer{}},
		filtering: &fakeFilteringView{
			fakeWorkflowView: fakeWorkflowView{fakeRenderer: &fakeRenderer{}},
			staticControls: staticControls{params: models.FilterParams{
				Kind: models.FilterMedian, KernelSize: 3, Method: models.MethodPadding,
			}},
		},
	}

	mc, err := NewMainController(f.service, f.nav, f.compression, f.filtering, deps)
	require.NoError(t, err)
	t.Cleanup(mc.Shutdown)
	f.controller = mc
	return f
}

func TestMainControllerStartsOnHome(t *testing.T) {
	f := newMainFixture(t, testDeps())

	f.controller.Start()

	assert.Equal(t, models.PanelHome, f.controller.Navigation().Active())
	assert.Equal(t, []string{models.PanelHome}, f.nav.shown())
}

func TestMainControllerBindsViewHandlers(t *testing.T) {
	f := newMainFixture(t, testDeps())
	require.NotNil(t, f.nav.navigate)
	require.NotNil(t, f.compression.onSelect)
	require.NotNil(t, f.compression.onRun)
	require.NotNil(t, f.filtering.onSelect)
	require.NotNil(t, f.filtering.onRun)

	f.nav.navigate(models.PanelNoise)
	assert.Equal(t, []string{models.PanelNoise}, f.nav.shown())

	f.compression.onSelect(photo)
	assert.Equal(t, models.StateReady, f.controller.Compression().State())
	assert.Equal(t, models.StateIdle, f.controller.Filtering().State())

	f.compression.onRun()
	waitForState(t, f.controller.Compression().State, models.StateDone)
	assert.Equal(t, 1, f.service.callCount())
	assert.Equal(t, map[string]string{"quality": "50"}, f.service.call(0).fields)
}

func TestMainControllerFilteringUsesPanelControls(t *testing.T) {
	f := newMainFixture(t, testDeps())

	f.filtering.onSelect(photo)
	f.filtering.params = models.FilterParams{Kind: models.FilterGaussian, KernelSize: 5, Method: models.MethodEdge}
	f.filtering.onRun()

	assert.Zero(t, f.service.callCount())
	assert.Equal(t, "Gaussian Filter is not implemented yet", f.filtering.last().text)
	assert.Zero(t, f.compression.count("notice"))
}

func TestMainControllerPublishesRunEvents(t *testing.T) {
	deps := testDeps()
	deps.Bus = NewEventBus()

	var mu sync.Mutex
	var finished []RunFinished
	require.NoError(t, deps.Bus.Subscribe(TopicRunFinished, func(e RunFinished) {
		mu.Lock()
		defer mu.Unlock()
		finished = append(finished, e)
	}))

	f := newMainFixture(t, deps)
	f.service.respond = respondWith(models.Failure{Message: "Invalid file"})

	f.filtering.onSelect(photo)
	f.filtering.onRun()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(finished) == 1
	}, waitFor, tick)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "noise", finished[0].Workflow)
	assert.Equal(t, models.OutcomeFailure, finished[0].Outcome)
	assert.Equal(t, "Invalid file", finished[0].Message)
}
