package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lucasrosa/lembretes-api/internal/api/handlers"
	"github.com/lucasrosa/lembretes-api/internal/api/middleware"
	"github.com/lucasrosa/lembretes-api/internal/config"
	"github.com/lucasrosa/lembretes-api/internal/repository"
	"github.com/lucasrosa/lembretes-api/internal/service"
)

func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	reminderHandler := handlers.NewReminderHandler(services.Reminder)
	notificationHandler := handlers.NewNotificationHandler(services.Notification, repos.Subscription)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Put("/timezone", authHandler.UpdateTimezone)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth))

			// Reminder routes
			r.Route("/reminders", func(r chi.Router) {
				r.Get("/", reminderHandler.List)
				r.Post("/", reminderHandler.Create)
				r.Put("/{id}", reminderHandler.Update)
				r.Patch("/{id}/concluir", reminderHandler.Complete)
				r.Patch("/{id}/desmarcar", reminderHandler.Uncomplete)
				r.Delete("/{id}", reminderHandler.Delete)
			})

			// Push notification routes
			r.Route("/notifications", func(r chi.Router) {
				r.Post("/subscribe", notificationHandler.Subscribe)
				r.Post("/unsubscribe", notificationHandler.Unsubscribe)
				r.Get("/status", notificationHandler.Status)
				r.Post("/test", notificationHandler.SendTest)
			})
		})
	})

	return r
}
