package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/bomlabel/pkg/errhttp"
	"github.com/ghuser/bomlabel/pkg/httpx"
	appsvcs "github.com/ghuser/bomlabel/services/label/application/services"
)

// GetIngredientsHandler handles GET /items/{itemCode}/ingredients requests.
type GetIngredientsHandler struct {
	svc        *appsvcs.Services
	production bool
}

// NewGetIngredientsHandler returns a GetIngredientsHandler backed by the given services.
func NewGetIngredientsHandler(svc *appsvcs.Services, production bool) *GetIngredientsHandler {
	return &GetIngredientsHandler{svc: svc, production: production}
}

// Execute explodes the product tree of an item without storing a label.
//
//	@Summary		List raw materials
//	@Description	Returns every raw material consumed per unit of the item, sorted by item code, and the branches that were skipped
//	@Tags			items
//	@Produce		json
//	@Param			itemCode	path		string	true	"Item code"
//	@Success		200			{object}	IngredientsResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Failure		502			{object}	ErrorResponse
//	@Router			/items/{itemCode}/ingredients [get]
func (h *GetIngredientsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	root, explosion, err := h.svc.Label.Explode(r.Context(), chi.URLParam(r, "itemCode"))
	if err != nil {
		errhttp.WriteSafeError(w, err, h.production)
		return
	}
	httpx.JSON(w, http.StatusOK, NewIngredientsResponse(root, explosion))
}
