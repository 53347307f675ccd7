package services

import (
	"github.com/google/uuid"

	"github.com/ghuser/restock/pkg/app"
	"github.com/ghuser/restock/pkg/cache"
	"github.com/ghuser/restock/services/restock/application/email"
	domainsvcs "github.com/ghuser/restock/services/restock/domain/services"
	"github.com/ghuser/restock/services/restock/infrastructure/persistence/postgres"
	"github.com/ghuser/restock/services/restock/infrastructure/workflows"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Sessions *SessionUseCases
}

// New wires the restock use-cases with infrastructure from the Application container.
// Email dispatch runs through Temporal when a client is configured and inline otherwise.
func New(a *app.Application) *Services {
	sessions := postgres.NewSessionRepository(a.Db, a.EventBus)

	deps := SessionUseCaseDeps{
		Sessions:  sessions,
		Products:  postgres.NewProductRepository(a.Db),
		Suppliers: postgres.NewSupplierRepository(a.Db),
		Domain:    domainsvcs.NewSessionService(uuid.NewString, nil),
		Renderer:  email.NewTemplateRenderer(),
		Mailer:    email.NewLogMailer(a.Logger),
		Metrics:   a.Metrics,
		Logger:    a.Logger,
		NewID:     uuid.NewString,
	}
	if a.Config != nil {
		deps.Sender = domainsvcs.Sender{
			StoreName:   a.Config.StoreName,
			SenderName:  a.Config.SenderName,
			SenderEmail: a.Config.SenderEmail,
		}
	}
	if a.Redis != nil {
		ttl := cache.DefaultSessionCacheTTL
		if a.Config != nil && a.Config.SessionCacheTTL > 0 {
			ttl = a.Config.SessionCacheTTL
		}
		deps.Cache = cache.NewSessionCache(a.Redis, ttl)
	}
	if a.TemporalClient != nil {
		deps.Dispatcher = workflows.NewTemporalDispatcher(a.TemporalClient)
	}

	return &Services{Sessions: NewSessionUseCases(deps)}
}

// DispatchActivities returns the Temporal activities backed by these use-cases,
// for registration on a worker.
func (s *Services) DispatchActivities(a *app.Application) *workflows.Activities {
	return &workflows.Activities{
		Mailer:   email.NewLogMailer(a.Logger),
		Complete: s.Sessions.Complete(),
		Sessions: s.Sessions.sessions,
		Metrics:  a.Metrics,
	}
}
