package components

import (
	"strconv"

	"imagelab/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// FilterControls lets the user pick the filter kind, kernel size and border
// method. Every kind is listed, including ones the service does not support.
type FilterControls struct {
	container    *fyne.Container
	kindSelect   *widget.Select
	kernelSelect *widget.Select
	methodSelect *widget.Select
}

func NewFilterControls() *FilterControls {
	fc := &FilterControls{}
	fc.createComponents()
	fc.buildLayout()
	return fc
}

func (fc *FilterControls) createComponents() {
	kinds := models.FilterKinds()
	kindNames := make([]string, len(kinds))
	for i, k := range kinds {
		kindNames[i] = string(k)
	}
	fc.kindSelect = widget.NewSelect(kindNames, nil)
	fc.kindSelect.SetSelected(kindNames[0])

	sizes := models.KernelSizes()
	sizeNames := make([]string, len(sizes))
	for i, s := range sizes {
		sizeNames[i] = strconv.Itoa(s)
	}
	fc.kernelSelect = widget.NewSelect(sizeNames, nil)
	fc.kernelSelect.SetSelected(strconv.Itoa(models.DefaultKernelSize))

	methods := models.FilterMethods()
	methodNames := make([]string, len(methods))
	for i, m := range methods {
		methodNames[i] = string(m)
	}
	fc.methodSelect = widget.NewSelect(methodNames, nil)
	fc.methodSelect.SetSelected(methodNames[0])
}

func (fc *FilterControls) buildLayout() {
	fc.container = container.NewHBox(
		container.NewVBox(widget.NewLabel("Filter"), fc.kindSelect),
		container.NewVBox(widget.NewLabel("Kernel Size"), fc.kernelSelect),
		container.NewVBox(widget.NewLabel("Method"), fc.methodSelect),
	)
}

// FilterParams reads the current selections.
func (fc *FilterControls) FilterParams() models.FilterParams {
	size, err := strconv.Atoi(fc.kernelSelect.Selected)
	if err != nil {
		size = models.DefaultKernelSize
	}
	return models.FilterParams{
		Kind:       models.FilterKind(fc.kindSelect.Selected),
		KernelSize: size,
		Method:     models.FilterMethod(fc.methodSelect.Selected),
	}
}

// Select sets all three controls at once.
func (fc *FilterControls) Select(params models.FilterParams) {
	fc.kindSelect.SetSelected(string(params.Kind))
	fc.kernelSelect.SetSelected(strconv.Itoa(params.KernelSize))
	fc.methodSelect.SetSelected(string(params.Method))
}

func (fc *FilterControls) GetContainer() *fyne.Container {
	return fc.container
}
