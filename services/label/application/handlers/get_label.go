package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/bomlabel/pkg/errhttp"
	"github.com/ghuser/bomlabel/pkg/httpx"
	appsvcs "github.com/ghuser/bomlabel/services/label/application/services"
)

// GetLabelHandler handles GET /labels/{itemCode} requests.
type GetLabelHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewGetLabelHandler returns a GetLabelHandler backed by the given services.
func NewGetLabelHandler(svc *appsvcs.Services, production bool) *GetLabelHandler {
	return &GetLabelHandler{svc: svc, production: production}
}

// Execute returns the latest stored label of an item.
//
//	@Summary		Get latest label
//	@Tags			labels
//	@Produce		json
//	@Param			itemCode	path		string	true	"Item code"
//	@Success		200			{object}	LabelResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Router			/labels/{itemCode} [get]
func (h *GetLabelHandler) Execute(w http.ResponseWriter, r *http.Request) {
	label, err := h.svc.Label.Latest(r.Context(), chi.URLParam(r, "itemCode"))
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}
	httpx.JSON(w, http.StatusOK, NewLabelResponse(label))
}
