package controllers

import (
	"context"

	"imagelab/internal/models"
)

// StatusFiltering is shown while a filter request is in flight.
const StatusFiltering = "Filtering..."

// FilterService performs one filtering request.
type FilterService interface {
	Filter(ctx context.Context, file models.SelectedFile, params models.FilterParams) models.Result
}

// FilterControls exposes the user-editable filter settings.
type FilterControls interface {
	FilterParams() models.FilterParams
}

// FilteringWorkflow submits the selected image with the chosen filter.
type FilteringWorkflow = Workflow[models.FilterParams]

// NewFilteringWorkflow wires the filter endpoint into a workflow. Kinds marked
// unsupported in the capability table are stopped before any request.
func NewFilteringWorkflow(name string, service FilterService, controls FilterControls, renderer Renderer, deps Dependencies) *FilteringWorkflow {
	spec := WorkflowSpec[models.FilterParams]{
		Name:             name,
		ProcessingStatus: StatusFiltering,
		Params:           controls.FilterParams,
		Validate:         models.CheckFilter,
		Submit:           service.Filter,
	}
	return NewWorkflow(spec, renderer, deps)
}
