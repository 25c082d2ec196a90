package views

import (
	"fmt"
	"io"

	"imagelab/internal/models"
	"imagelab/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// PanelConfig describes the static parts of a workflow panel.
type PanelConfig struct {
	Title       string
	Description string
	RunLabel    string
	OutputTitle string

	// Params is placed in the toolbar between the choose and run buttons.
	Params fyne.CanvasObject

	// ShowMetrics adds the compression size panel below the images.
	ShowMetrics bool
}

// WorkflowPanel is one upload, preview, run and result panel. All render
// methods may be called from any goroutine.
type WorkflowPanel struct {
	window    fyne.Window
	container *fyne.Container

	toolbar  *components.Toolbar
	display  *components.ImageDisplay
	status   *components.StatusBar
	metrics  *components.MetricsPanel
	fileInfo *widget.Label

	selectHandler func(models.SelectedFile)
	runHandler    func()
}

// NewWorkflowPanel builds a panel whose file dialog opens over window.
func NewWorkflowPanel(window fyne.Window, cfg PanelConfig) *WorkflowPanel {
	panel := &WorkflowPanel{window: window}
	panel.initializeComponents(cfg)
	panel.buildLayout(cfg)
	panel.setupEventHandlers()
	return panel
}

func (p *WorkflowPanel) initializeComponents(cfg PanelConfig) {
	p.toolbar = components.NewToolbar(cfg.RunLabel, cfg.Params)
	p.display = components.NewImageDisplay("Original Image", cfg.OutputTitle)
	p.status = components.NewStatusBar()
	p.fileInfo = widget.NewLabel("No file chosen")
	if cfg.ShowMetrics {
		p.metrics = components.NewMetricsPanel()
	}
}

func (p *WorkflowPanel) buildLayout(cfg PanelConfig) {
	header := container.NewVBox(
		widget.NewRichTextFromMarkdown("## "+cfg.Title),
		widget.NewLabel(cfg.Description),
		container.NewHBox(p.toolbar.GetContainer(), p.fileInfo),
	)

	bottom := container.NewVBox(p.status.GetContainer())
	if p.metrics != nil {
		bottom.Add(p.metrics.GetContainer())
	}

	p.container = container.NewBorder(header, bottom, nil, nil, p.display.GetContainer())
}

func (p *WorkflowPanel) setupEventHandlers() {
	p.toolbar.SetChooseHandler(p.chooseFile)
	p.toolbar.SetRunHandler(func() {
		if p.runHandler != nil {
			p.runHandler()
		}
	})
}

func (p *WorkflowPanel) chooseFile() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, p.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		data, err := io.ReadAll(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to read %s: %w", reader.URI().Name(), err), p.window)
			return
		}
		p.fileChosen(reader.URI().Name(), data)
	}, p.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fileDialog.Show()
}

func (p *WorkflowPanel) fileChosen(name string, data []byte) {
	p.fileInfo.SetText(fmt.Sprintf("%s (%s)", name, models.FormatKB(float64(len(data)))))
	if p.selectHandler != nil {
		p.selectHandler(models.SelectedFile{Name: name, Data: data})
	}
}

// SetSelectHandler is called with the bytes of every chosen file.
func (p *WorkflowPanel) SetSelectHandler(handler func(models.SelectedFile)) {
	p.selectHandler = handler
}

// SetRunHandler is called when the run button is tapped.
func (p *WorkflowPanel) SetRunHandler(handler func()) {
	p.runHandler = handler
}

func (p *WorkflowPanel) SetRunEnabled(enabled bool) {
	fyne.Do(func() {
		p.toolbar.SetRunEnabled(enabled)
	})
}

// ShowPreview renders the chosen file. The result area is left alone; it is
// cleared by the status that accompanies a new selection or run.
func (p *WorkflowPanel) ShowPreview(preview models.Preview) {
	fyne.Do(func() {
		p.display.SetOriginal(preview)
	})
}

// ShowStatus clears the previous result and shows message.
func (p *WorkflowPanel) ShowStatus(message string) {
	fyne.Do(func() {
		p.clearResult()
		p.status.SetMessage(components.MessageStatus, message)
	})
}

func (p *WorkflowPanel) ShowNotice(message string) {
	fyne.Do(func() {
		p.clearResult()
		p.status.SetMessage(components.MessageNotice, message)
	})
}

// ShowError replaces any previous result with message.
func (p *WorkflowPanel) ShowError(message string) {
	fyne.Do(func() {
		p.clearResult()
		p.status.SetMessage(components.MessageError, message)
	})
}

func (p *WorkflowPanel) ShowResult(result models.Success) {
	fyne.Do(func() {
		p.display.SetOutput(result.Output)
		p.status.Reset()
		if p.metrics != nil {
			p.metrics.SetMetrics(result.Metrics)
		}
	})
}

func (p *WorkflowPanel) clearResult() {
	p.display.ClearOutput()
	if p.metrics != nil {
		p.metrics.SetMetrics(nil)
	}
}

func (p *WorkflowPanel) GetContainer() *fyne.Container {
	return p.container
}

// FilteringPanel is a workflow panel with filter parameter controls.
type FilteringPanel struct {
	*WorkflowPanel
	controls *components.FilterControls
}

func NewFilteringPanel(window fyne.Window, cfg PanelConfig) *FilteringPanel {
	controls := components.NewFilterControls()
	cfg.Params = controls.GetContainer()
	return &FilteringPanel{
		WorkflowPanel: NewWorkflowPanel(window, cfg),
		controls:      controls,
	}
}

func (p *FilteringPanel) FilterParams() models.FilterParams {
	return p.controls.FilterParams()
}

func (p *FilteringPanel) Controls() *components.FilterControls {
	return p.controls
}
