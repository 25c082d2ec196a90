package controllers

import (
	"context"

	"imagelab/internal/models"
)

// StatusCompressing is shown while a compression request is in flight.
const StatusCompressing = "Compressing..."

// CompressionService performs one compression request.
type CompressionService interface {
	Compress(ctx context.Context, file models.SelectedFile, params models.CompressionParams) models.Result
}

// CompressionWorkflow submits the selected image at a fixed JPEG quality.
type CompressionWorkflow = Workflow[models.CompressionParams]

// NewCompressionWorkflow wires the compression endpoint into a workflow.
func NewCompressionWorkflow(name string, service CompressionService, renderer Renderer, deps Dependencies) *CompressionWorkflow {
	spec := WorkflowSpec[models.CompressionParams]{
		Name:             name,
		ProcessingStatus: StatusCompressing,
		Params: func() models.CompressionParams {
			return models.CompressionParams{Quality: models.DefaultJPEGQuality}
		},
		Submit: service.Compress,
	}
	return NewWorkflow(spec, renderer, deps)
}
