package app

import (
	"github.com/ghuser/bomlabel/pkg/cache"
	"github.com/ghuser/bomlabel/pkg/config"
	"github.com/ghuser/bomlabel/pkg/database"
	"github.com/ghuser/bomlabel/pkg/events"
	"github.com/ghuser/bomlabel/pkg/logger"
	"github.com/ghuser/bomlabel/pkg/storage"
	"github.com/ghuser/bomlabel/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to the service route and worker registration calls during startup.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "label computed", "item_code", code)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil when Temporal is unreachable
	Archive        *storage.LabelArchive     // nil in the api process
}
