package components

import (
	"imagelab/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MessageKind selects how a workflow message is styled.
type MessageKind int

const (
	MessageStatus MessageKind = iota
	MessageNotice
	MessageError
)

// StatusBar shows the latest message of one workflow.
type StatusBar struct {
	container *fyne.Container
	label     *widget.Label
	kind      MessageKind
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.label = widget.NewLabel("")
	sb.label.Wrapping = fyne.TextWrapWord
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewVBox(sb.label)
}

// SetMessage replaces the message. Notices render as warnings and errors in
// the danger style.
func (sb *StatusBar) SetMessage(kind MessageKind, text string) {
	sb.kind = kind
	switch kind {
	case MessageNotice:
		sb.label.Importance = widget.WarningImportance
	case MessageError:
		sb.label.Importance = widget.DangerImportance
	default:
		sb.label.Importance = widget.MediumImportance
	}
	sb.label.SetText(text)
}

func (sb *StatusBar) Message() (MessageKind, string) {
	return sb.kind, sb.label.Text
}

func (sb *StatusBar) Reset() {
	sb.SetMessage(MessageStatus, "")
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

// MetricsPanel shows compression sizes. It stays hidden until a successful
// compression reports metrics.
type MetricsPanel struct {
	container  *fyne.Container
	original   *widget.Label
	compressed *widget.Label
	saved      *widget.Label
}

func NewMetricsPanel() *MetricsPanel {
	mp := &MetricsPanel{}
	mp.createComponents()
	mp.buildLayout()
	return mp
}

func (mp *MetricsPanel) createComponents() {
	mp.original = widget.NewLabel("--")
	mp.compressed = widget.NewLabel("--")
	mp.saved = widget.NewLabel("--")
}

func (mp *MetricsPanel) buildLayout() {
	mp.container = container.NewGridWithColumns(2,
		widget.NewLabel("Original Size:"), mp.original,
		widget.NewLabel("Compressed Size:"), mp.compressed,
		widget.NewLabel("Compression:"), mp.saved,
	)
	mp.container.Hide()
}

// SetMetrics fills and shows the panel; nil hides it.
func (mp *MetricsPanel) SetMetrics(metrics *models.CompressionMetrics) {
	if metrics == nil {
		mp.container.Hide()
		return
	}
	mp.original.SetText(metrics.OriginalSize())
	mp.compressed.SetText(metrics.CompressedSize())
	mp.saved.SetText(metrics.Saved())
	mp.container.Show()
}

// Values returns the displayed original, compressed and saved texts.
func (mp *MetricsPanel) Values() (string, string, string) {
	return mp.original.Text, mp.compressed.Text, mp.saved.Text
}

func (mp *MetricsPanel) Visible() bool {
	return mp.container.Visible()
}

func (mp *MetricsPanel) GetContainer() *fyne.Container {
	return mp.container
}
