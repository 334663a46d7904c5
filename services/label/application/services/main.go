package services

import (
	"fmt"
	"time"

	"github.com/ghuser/bomlabel/pkg/app"
	"github.com/ghuser/bomlabel/pkg/cache"
	"github.com/ghuser/bomlabel/pkg/logger"
	"github.com/ghuser/bomlabel/services/label/domain/repositories"
	domainsvcs "github.com/ghuser/bomlabel/services/label/domain/services"
	"github.com/ghuser/bomlabel/services/label/infrastructure/persistence/postgres"
	"github.com/ghuser/bomlabel/services/label/infrastructure/sap"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Label      *LabelService
	Projector  *LabelProjector
	ItemMaster *sap.Client
}

// New wires all label application services with infrastructure from the Application container.
// The SAP session is shared through Redis so api and worker processes reuse one login.
func New(a *app.Application) (*Services, error) {
	sessions := cache.NewSessionCache(a.Redis, a.Config.SAPCompanyDB, a.Config.SAPUsername)
	client, err := sap.NewClient(sap.ConfigFromApp(a.Config), a.Logger, sap.WithSessionStore(sessions))
	if err != nil {
		return nil, fmt.Errorf("label services: %w", err)
	}

	repo := postgres.NewLabelRepository(a.Db, a.EventBus)
	labelCache := cache.NewLabelCache(a.Redis)

	var archive Archive
	if a.Archive != nil {
		archive = a.Archive
	}

	return &Services{
		Label:      NewFromLookups(client, client, a.Config.SAPFetchTimeout, repo, labelCache, a.Logger),
		Projector:  NewLabelProjector(repo, archive, labelCache, a.Logger),
		ItemMaster: client,
	}, nil
}

// NewFromLookups builds a LabelService over arbitrary item and tree lookups,
// such as the offline YAML catalog used by labelctl.
func NewFromLookups(
	items repositories.ItemLookup,
	trees repositories.TreeLookup,
	fetchTimeout time.Duration,
	repo repositories.LabelRepository,
	labelCache LabelCache,
	log logger.Logger,
) *LabelService {
	exploder := domainsvcs.NewExploder(items, trees, fetchTimeout)
	return NewLabelService(items, exploder, repo, labelCache, log)
}
