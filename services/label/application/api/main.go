package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/bomlabel/pkg/app"
	"github.com/ghuser/bomlabel/pkg/config"
	"github.com/ghuser/bomlabel/services/label/application/handlers"
	appsvcs "github.com/ghuser/bomlabel/services/label/application/services"
	"github.com/ghuser/bomlabel/services/label/application/workflows"
)

// LabelRoutes registers label endpoints on the provided chi router and returns
// the wired services so the caller can add health checks for them.
func LabelRoutes(r chi.Router, a *app.Application) (*appsvcs.Services, error) {
	svcs, err := appsvcs.New(a)
	if err != nil {
		return nil, err
	}
	var starter handlers.BatchStarter
	if a.TemporalClient != nil {
		starter = workflows.NewStarter(a.TemporalClient.Client, a.Config.TemporalTaskQueue)
	}
	Mount(r, svcs, starter, a.Config.Environment == config.EnvProduction)
	return svcs, nil
}

// Mount registers the label handlers. starter may be nil when Temporal is unavailable.
// With production set, server-side error details are not sent to clients.
func Mount(r chi.Router, svcs *appsvcs.Services, starter handlers.BatchStarter, production bool) {
	r.Group(func(r chi.Router) {
		r.Route("/labels", func(r chi.Router) {
			r.Post("/", handlers.NewPostLabelHandler(svcs, production).Execute)
			r.Post("/batch", handlers.NewPostBatchHandler(starter).Execute)
			r.Get("/{itemCode}", handlers.NewGetLabelHandler(svcs, production).Execute)
		})
		r.Get("/items/{itemCode}/ingredients", handlers.NewGetIngredientsHandler(svcs, production).Execute)
	})
}
