package components

import (
	"image"
	"image/color"

	"imagelab/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 420
	ImageAreaHeight = 320
)

// ImageDisplay shows the chosen image next to the service output.
type ImageDisplay struct {
	container   *fyne.Container
	original    *canvas.Image
	output      *canvas.Image
	originalMsg *widget.Label
	outputMsg   *widget.Label

	placeholder image.Image

	hasOriginal bool
	hasOutput   bool
}

// NewImageDisplay creates an image display with titled original and output areas.
func NewImageDisplay(originalTitle, outputTitle string) *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.buildLayout(originalTitle, outputTitle)
	return display
}

func (id *ImageDisplay) createComponents() {
	id.placeholder = createPlaceholderImage()

	id.original = newImageCanvas(id.placeholder)
	id.output = newImageCanvas(id.placeholder)

	id.originalMsg = widget.NewLabel("Choose an image to begin")
	id.originalMsg.Alignment = fyne.TextAlignCenter
	id.outputMsg = widget.NewLabel("Result will appear here")
	id.outputMsg.Alignment = fyne.TextAlignCenter
}

func newImageCanvas(img image.Image) *canvas.Image {
	c := canvas.NewImageFromImage(img)
	c.FillMode = canvas.ImageFillContain
	c.ScaleMode = canvas.ImageScaleSmooth
	c.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return c
}

// createPlaceholderImage draws a light gray frame shown until an image arrives.
func createPlaceholderImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, ImageAreaWidth, ImageAreaHeight))

	lightGray := color.RGBA{R: 240, G: 240, B: 240, A: 255}
	borderColor := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for y := 0; y < ImageAreaHeight; y++ {
		for x := 0; x < ImageAreaWidth; x++ {
			if x == 0 || y == 0 || x == ImageAreaWidth-1 || y == ImageAreaHeight-1 {
				img.Set(x, y, borderColor)
				continue
			}
			img.Set(x, y, lightGray)
		}
	}
	return img
}

func (id *ImageDisplay) buildLayout(originalTitle, outputTitle string) {
	originalArea := container.NewBorder(
		widget.NewRichTextFromMarkdown("**"+originalTitle+"**"),
		nil, nil, nil,
		container.NewStack(id.original, id.originalMsg),
	)
	outputArea := container.NewBorder(
		widget.NewRichTextFromMarkdown("**"+outputTitle+"**"),
		nil, nil, nil,
		container.NewStack(id.output, id.outputMsg),
	)
	id.container = container.NewGridWithColumns(2, originalArea, outputArea)
}

// SetOriginal shows the chosen file. A preview without a decoded image keeps
// the placeholder and names the file type instead.
func (id *ImageDisplay) SetOriginal(preview models.Preview) {
	id.hasOriginal = preview.HasImage()
	setCanvas(id.original, id.originalMsg, preview, id.placeholder)
}

// SetOutput shows the image returned by the service.
func (id *ImageDisplay) SetOutput(preview models.Preview) {
	id.hasOutput = preview.HasImage()
	setCanvas(id.output, id.outputMsg, preview, id.placeholder)
}

// ClearOutput restores the output placeholder.
func (id *ImageDisplay) ClearOutput() {
	id.hasOutput = false
	id.output.Image = id.placeholder
	id.output.Refresh()
	id.outputMsg.SetText("Result will appear here")
	id.outputMsg.Show()
}

func setCanvas(c *canvas.Image, msg *widget.Label, preview models.Preview, placeholder image.Image) {
	if preview.HasImage() {
		c.Image = preview.Image
		msg.Hide()
	} else {
		c.Image = placeholder
		msg.SetText("Preview unavailable (" + preview.Format + ")")
		msg.Show()
	}
	c.Refresh()
}

func (id *ImageDisplay) HasOriginal() bool {
	return id.hasOriginal
}

func (id *ImageDisplay) HasOutput() bool {
	return id.hasOutput
}

// OutputImage returns the displayed output, or nil while the placeholder shows.
func (id *ImageDisplay) OutputImage() image.Image {
	if !id.hasOutput {
		return nil
	}
	return id.output.Image
}

func (id *ImageDisplay) GetContainer() *fyne.Container {
	return id.container
}
