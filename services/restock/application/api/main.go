package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"github.com/ghuser/restock/pkg/app"
	"github.com/ghuser/restock/pkg/auth"
	"github.com/ghuser/restock/pkg/config"
	"github.com/ghuser/restock/pkg/logger"
	"github.com/ghuser/restock/services/restock/application/handlers"
	appsvcs "github.com/ghuser/restock/services/restock/application/services"
)

// RestockRoutes registers restock endpoints on the provided chi router.
func RestockRoutes(r chi.Router, a *app.Application) {
	devLogin := a.Config == nil || a.Config.Environment != config.EnvProduction
	Mount(r, appsvcs.New(a), a.SessionStore, a.Logger, devLogin)
}

// Mount registers the routes for svcs. Everything except sign-in requires a
// session cookie carrying the user id.
func Mount(r chi.Router, svcs *appsvcs.Services, store sessions.Store, log logger.Logger, devLogin bool) {
	authH := handlers.NewAuthHandler(store, log)

	r.Route("/restock", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if devLogin {
				r.Post("/dev-login", authH.DevLogin)
			}
			r.Post("/logout", authH.Logout)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(store, log))

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", handlers.NewPostSessionHandler(svcs).Execute)
				r.Get("/", handlers.NewGetSessionsHandler(svcs).Execute)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", handlers.NewGetSessionHandler(svcs).Execute)
					r.Delete("/", handlers.NewDeleteSessionHandler(svcs).Execute)
					r.Put("/name", handlers.NewPutSessionNameHandler(svcs).Execute)
					r.Post("/items", handlers.NewPostItemHandler(svcs).Execute)
					r.Patch("/items/{productID}", handlers.NewPatchItemHandler(svcs).Execute)
					r.Delete("/items/{productID}", handlers.NewDeleteItemHandler(svcs).Execute)
					r.Post("/products", handlers.NewPostProductHandler(svcs).Execute)
					r.Post("/emails", handlers.NewPostEmailsHandler(svcs).Execute)
					r.Get("/emails", handlers.NewGetEmailsHandler(svcs).Execute)
					r.Post("/send", handlers.NewPostSendHandler(svcs).Execute)
					r.Post("/complete", handlers.NewPostCompleteHandler(svcs).Execute)
				})
			})

			r.Get("/products", handlers.NewGetProductsHandler(svcs).Execute)
			r.Get("/suppliers", handlers.NewGetSuppliersHandler(svcs).Execute)
		})
	})
}
