package handlers

import (
	"context"
	"net/http"

	"github.com/ghuser/bomlabel/pkg/httpx"
	pkgvalidator "github.com/ghuser/bomlabel/pkg/validator"
)

// BatchStarter starts a label batch workflow. *workflows.Starter satisfies it.
type BatchStarter interface {
	StartBatch(ctx context.Context, itemCodes []string) (workflowID, runID string, err error)
}

// BatchLabelRequest is the request body for POST /labels/batch.
type BatchLabelRequest struct {
	ItemCodes []string `json:"item_codes" validate:"required,min=1,max=500,dive,required,max=50" example:"1000,1100"`
} // @name BatchLabelRequest

// BatchLabelResponse identifies the started workflow.
type BatchLabelResponse struct {
	WorkflowID string `json:"workflow_id" example:"label-batch-5b1f0c52-8a3e-4d0e-9d7a-2f5e1c9b7a11"`
	RunID      string `json:"run_id"      example:"0b5f7c2e-3d41-4f9b-a1d6-9c2f3e4b5a60"`
	Count      int    `json:"count"       example:"2"`
} // @name BatchLabelResponse

// PostBatchHandler handles POST /labels/batch requests.
type PostBatchHandler struct {
	starter BatchStarter
}

// NewPostBatchHandler returns a PostBatchHandler. A nil starter answers 503.
func NewPostBatchHandler(starter BatchStarter) *PostBatchHandler {
	return &PostBatchHandler{starter: starter}
}

// Execute starts a workflow computing the labels of many items.
//
//	@Summary		Compute labels in bulk
//	@Description	Starts a Temporal workflow that computes and stores one label per item code
//	@Tags			labels
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BatchLabelRequest	true	"Items to label"
//	@Success		202		{object}	BatchLabelResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/labels/batch [post]
func (h *PostBatchHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if h.starter == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "batch processing is not available")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[BatchLabelRequest](w, r)
	if !ok {
		return
	}

	workflowID, runID, err := h.starter.StartBatch(r.Context(), req.ItemCodes)
	if err != nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	httpx.JSON(w, http.StatusAccepted, BatchLabelResponse{
		WorkflowID: workflowID,
		RunID:      runID,
		Count:      len(req.ItemCodes),
	})
}
