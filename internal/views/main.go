package views

import (
	"imagelab/internal/controllers"
	"imagelab/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var (
	_ controllers.NavigationView = (*MainView)(nil)
	_ controllers.WorkflowView   = (*WorkflowPanel)(nil)
	_ controllers.FilteringView  = (*FilteringPanel)(nil)
)

// NavItem is one navigation button. An empty Target makes the button inert.
type NavItem struct {
	Label  string
	Target string
}

// DefaultNavItems are the buttons of the main window in display order.
func DefaultNavItems() []NavItem {
	return []NavItem{
		{Label: "Home", Target: models.PanelHome},
		{Label: "JPEG Compression", Target: models.PanelJPEG},
		{Label: "Noise Filtering", Target: models.PanelNoise},
	}
}

// MainView is the application window: a navigation bar over a stack of
// panels of which one is visible at a time.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	navBar        *fyne.Container
	content       *fyne.Container

	navButtons map[string]*widget.Button
	panels     map[string]fyne.CanvasObject

	compression *WorkflowPanel
	filtering   *FilteringPanel

	navigateHandler func(target string)
}

// NewMainView creates the window content and every panel.
func NewMainView(window fyne.Window, items []NavItem) *MainView {
	view := &MainView{
		window:     window,
		navButtons: make(map[string]*widget.Button),
		panels:     make(map[string]fyne.CanvasObject),
	}

	view.initializeComponents(items)
	view.buildLayout()

	return view
}

func (mv *MainView) initializeComponents(items []NavItem) {
	mv.compression = NewWorkflowPanel(mv.window, PanelConfig{
		Title:       "JPEG Compression",
		Description: "Compress an image to JPEG and compare file sizes.",
		RunLabel:    "Compress",
		OutputTitle: "Compressed Image",
		ShowMetrics: true,
	})
	mv.filtering = NewFilteringPanel(mv.window, PanelConfig{
		Title:       "Noise Filtering",
		Description: "Remove noise with a spatial filter.",
		RunLabel:    "Apply Filter",
		OutputTitle: "Filtered Image",
	})

	mv.panels[models.PanelHome] = mv.createHomePanel()
	mv.panels[models.PanelJPEG] = mv.compression.GetContainer()
	mv.panels[models.PanelNoise] = mv.filtering.GetContainer()

	mv.navBar = container.NewHBox()
	for _, item := range items {
		target := item.Target
		button := widget.NewButton(item.Label, func() {
			if mv.navigateHandler != nil {
				mv.navigateHandler(target)
			}
		})
		button.Importance = widget.LowImportance
		mv.navBar.Add(button)
		if target != "" {
			mv.navButtons[target] = button
		}
	}
}

func (mv *MainView) createHomePanel() fyne.CanvasObject {
	intro := widget.NewLabel("Choose a tool from the navigation bar. Images are processed by the " +
		"image service; this window only uploads them and shows the results.")
	intro.Wrapping = fyne.TextWrapWord

	return container.NewVBox(
		widget.NewRichTextFromMarkdown("# Image Lab"),
		intro,
		widget.NewRichTextFromMarkdown("- **JPEG Compression** reduces file size at a fixed quality\n"+
			"- **Noise Filtering** applies a median or average filter"),
	)
}

func (mv *MainView) buildLayout() {
	var stacked []fyne.CanvasObject
	for _, id := range []string{models.PanelHome, models.PanelJPEG, models.PanelNoise} {
		panel := mv.panels[id]
		panel.Hide()
		stacked = append(stacked, panel)
	}
	mv.content = container.NewStack(stacked...)

	mv.mainContainer = container.NewBorder(
		container.NewVBox(mv.navBar, widget.NewSeparator()),
		nil, nil, nil,
		mv.content,
	)

	mv.window.SetContent(mv.mainContainer)
}

// SetNavigateHandler receives the target of every tapped navigation button.
func (mv *MainView) SetNavigateHandler(handler func(target string)) {
	mv.navigateHandler = handler
}

// SetPanelVisible shows or hides a panel and highlights its button.
func (mv *MainView) SetPanelVisible(id string, visible bool) {
	panel, ok := mv.panels[id]
	if !ok {
		return
	}
	fyne.Do(func() {
		if visible {
			panel.Show()
		} else {
			panel.Hide()
		}
		if button, ok := mv.navButtons[id]; ok {
			if visible {
				button.Importance = widget.HighImportance
			} else {
				button.Importance = widget.LowImportance
			}
			button.Refresh()
		}
	})
}

// PanelVisible reports whether id is currently shown.
func (mv *MainView) PanelVisible(id string) bool {
	panel, ok := mv.panels[id]
	return ok && panel.Visible()
}

func (mv *MainView) Compression() *WorkflowPanel {
	return mv.compression
}

func (mv *MainView) Filtering() *FilteringPanel {
	return mv.filtering
}

func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// Show displays the window.
func (mv *MainView) Show() {
	fyne.Do(func() {
		mv.window.Show()
	})
}

func (mv *MainView) Close() {
	fyne.Do(func() {
		mv.window.Close()
	})
}
