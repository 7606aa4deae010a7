package api

import (
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/go-chi/chi/v5"

	"github.com/savageaim/backend/internal/api/handler"
	"github.com/savageaim/backend/internal/api/middleware"
	"github.com/savageaim/backend/internal/auth"
	"github.com/savageaim/backend/internal/bis"
	"github.com/savageaim/backend/internal/character"
	"github.com/savageaim/backend/internal/notification"
	"github.com/savageaim/backend/internal/team"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	AuthService  *auth.Service
	UserRepo     auth.UserRepository
	CharRepo     character.Repository
	TeamRepo     team.Repository
	BISRepo      bis.Repository
	NotifRepo    notification.Repository
	SettingsRepo notification.SettingsRepository
	Dispatcher   handler.VerifyDispatcher
	DBPinger     handler.Pinger
	QueuePinger  handler.Pinger
	Version      string
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)

	healthHandler := handler.NewHealthHandler(deps.DBPinger, deps.QueuePinger, deps.Version)
	r.Get("/health", healthHandler.ServeHTTP)

	charHandler := handler.NewCharacterHandler(deps.CharRepo, deps.TeamRepo, deps.BISRepo, deps.Dispatcher)
	userHandler := handler.NewUserHandler(deps.AuthService, deps.UserRepo)
	notifHandler := handler.NewNotificationHandler(deps.NotifRepo)
	settingsHandler := handler.NewSettingsHandler(deps.SettingsRepo)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.AuthService))

		r.Route("/characters", func(r chi.Router) {
			r.Get("/", charHandler.List)
			r.Post("/", charHandler.Create)
			r.Get("/{id}", charHandler.Get)
			r.Post("/{id}/verify", charHandler.Verify)
			r.Get("/{id}/delete", charHandler.DeleteImpact)
			r.Delete("/{id}/delete", charHandler.Delete)
		})

		r.Post("/users", userHandler.Create)
		r.Get("/notifications", notifHandler.List)
		r.Get("/settings", settingsHandler.Get)
		r.Put("/settings", settingsHandler.Update)
	})

	return r
}
