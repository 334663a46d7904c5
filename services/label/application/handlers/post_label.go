package handlers

import (
	"net/http"
	"path"

	"github.com/ghuser/bomlabel/pkg/errhttp"
	"github.com/ghuser/bomlabel/pkg/httpx"
	pkgvalidator "github.com/ghuser/bomlabel/pkg/validator"
	appsvcs "github.com/ghuser/bomlabel/services/label/application/services"
)

// ComputeLabelRequest is the request body for POST /labels.
type ComputeLabelRequest struct {
	ItemCode string `json:"item_code" validate:"required,max=50" example:"1000"`
} // @name ComputeLabelRequest

// PostLabelHandler handles POST /labels requests.
type PostLabelHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewPostLabelHandler returns a PostLabelHandler backed by the given services.
// In production, 5xx responses carry only the status text.
func NewPostLabelHandler(svc *appsvcs.Services, production bool) *PostLabelHandler {
	return &PostLabelHandler{svc: svc, production: production}
}

// Execute computes and stores the label of a finished or partial product.
//
//	@Summary		Compute label
//	@Description	Explodes the product tree of an item and stores its nutrition, allergens and ingredient declaration
//	@Tags			labels
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ComputeLabelRequest	true	"Item to label"
//	@Success		201		{object}	LabelResponse
//	@Header			201		{string}	Location	"URL of the latest label of the item"
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		502		{object}	ErrorResponse
//	@Router			/labels [post]
func (h *PostLabelHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ComputeLabelRequest](w, r)
	if !ok {
		return
	}

	label, err := h.svc.Label.Compute(r.Context(), req.ItemCode)
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}

	httpx.Created(w, path.Join(r.URL.Path, label.ItemCode.String()), NewLabelResponse(label))
}
