package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the choose and run actions of one workflow panel, with an
// optional parameter section between them.
type Toolbar struct {
	container    *fyne.Container
	chooseButton *widget.Button
	runButton    *widget.Button

	chooseHandler func()
	runHandler    func()
}

// NewToolbar creates a toolbar whose run button is labelled runLabel.
// params may be nil.
func NewToolbar(runLabel string, params fyne.CanvasObject) *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents(runLabel)
	toolbar.buildLayout(params)
	toolbar.setupEventHandlers()
	return toolbar
}

func (t *Toolbar) createComponents(runLabel string) {
	t.chooseButton = widget.NewButton("Choose Image", nil)
	t.chooseButton.Importance = widget.MediumImportance

	t.runButton = widget.NewButton(runLabel, nil)
	t.runButton.Importance = widget.HighImportance
	t.runButton.Disable()
}

func (t *Toolbar) buildLayout(params fyne.CanvasObject) {
	objects := []fyne.CanvasObject{t.chooseButton}
	if params != nil {
		objects = append(objects, widget.NewSeparator(), params)
	}
	objects = append(objects, widget.NewSeparator(), t.runButton)
	t.container = container.NewHBox(objects...)
}

func (t *Toolbar) setupEventHandlers() {
	t.chooseButton.OnTapped = func() {
		if t.chooseHandler != nil {
			t.chooseHandler()
		}
	}

	t.runButton.OnTapped = func() {
		if t.runHandler != nil {
			t.runHandler()
		}
	}
}

func (t *Toolbar) SetChooseHandler(handler func()) {
	t.chooseHandler = handler
}

func (t *Toolbar) SetRunHandler(handler func()) {
	t.runHandler = handler
}

// SetRunEnabled toggles the run button.
func (t *Toolbar) SetRunEnabled(enabled bool) {
	if enabled {
		t.runButton.Enable()
	} else {
		t.runButton.Disable()
	}
}

func (t *Toolbar) RunButton() *widget.Button {
	return t.runButton
}

func (t *Toolbar) ChooseButton() *widget.Button {
	return t.chooseButton
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
