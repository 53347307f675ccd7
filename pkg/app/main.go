package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/restock/pkg/cache"
	"github.com/ghuser/restock/pkg/config"
	"github.com/ghuser/restock/pkg/database"
	"github.com/ghuser/restock/pkg/events"
	"github.com/ghuser/restock/pkg/logger"
	"github.com/ghuser/restock/pkg/telemetry"
	"github.com/ghuser/restock/pkg/workflows"
)

// Application holds shared infrastructure for every bounded context.
// It is built once in cmd/api or cmd/worker and passed to each service's
// route or subscriber registration.
//
// Logger is trace-aware: use the *Context methods inside requests so trace_id,
// request_id and user_id are attached automatically:
//
//	app.Logger.InfoContext(ctx, "item added", "session_id", id)
//
// TemporalClient is nil unless TEMPORAL_ENABLED is set. SessionStore is nil
// in the worker process.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
	SessionStore   sessions.Store
	Metrics        *telemetry.RestockMetrics
}
