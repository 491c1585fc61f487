package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/maheshk/workpulse/internal/api/handlers"
	"github.com/maheshk/workpulse/internal/api/middleware"
	"github.com/maheshk/workpulse/internal/config"
	"github.com/maheshk/workpulse/internal/realtime"
	"github.com/maheshk/workpulse/internal/repository"
	"github.com/maheshk/workpulse/internal/service"
	"github.com/maheshk/workpulse/internal/token"
)

func NewRouter(services *service.Services, tokens *token.Service, repos *repository.Repositories, hub *realtime.Hub, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		handlers.Health(w, time.Now())
	})

	// Initialize handlers
	companyHandler := handlers.NewCompanyHandler(services.Company)
	employeeHandler := handlers.NewEmployeeHandler(services.Employee)
	captureHandler := handlers.NewCaptureHandler(services.Capture, cfg.MaxUploadBytes)
	feedHandler := handlers.NewFeedHandler(hub, tokens, repos.Company)

	authAdmin := middleware.AuthAdmin(tokens, repos.Company)
	authEmployee := middleware.AuthEmployee(tokens, repos.Employee)

	r.Route("/api", func(r chi.Router) {
		// Company routes
		r.Route("/company", func(r chi.Router) {
			r.Get("/plans", companyHandler.Plans)
			r.Post("/signup", companyHandler.Signup)
			r.Post("/login", companyHandler.Login)
		})

		// Employee routes
		r.Route("/employee", func(r chi.Router) {
			r.Post("/login", employeeHandler.Login)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(authAdmin)
				r.Post("/add", employeeHandler.Add)
				r.Get("/list", employeeHandler.List)
				r.Get("/search", employeeHandler.Search)
				r.Patch("/{id}/toggle-status", employeeHandler.ToggleStatus)
				r.Patch("/{id}/revoke-tokens", employeeHandler.RevokeTokens)
			})

			// Employee only
			r.Group(func(r chi.Router) {
				r.Use(authEmployee)
				r.Post("/rotate-token", employeeHandler.RotateToken)
			})
		})

		// Screenshot routes
		r.Route("/screenshots", func(r chi.Router) {
			// Employee only
			r.Group(func(r chi.Router) {
				r.Use(authEmployee)
				r.Post("/upload", captureHandler.Upload)
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(authAdmin)
				r.Get("/dashboard", captureHandler.Dashboard)
				r.Get("/summary/{employeeID}", captureHandler.Summary)
				r.Get("/file/{id}", captureHandler.Get)
				r.Delete("/{id}", captureHandler.Delete)
			})

			// Admin token via query param (websocket)
			r.Get("/feed", feedHandler.Handle)
		})
	})

	return r
}
