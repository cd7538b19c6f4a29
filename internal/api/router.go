package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fleetpulse/fleetpulse-be/internal/api/handlers"
	"github.com/fleetpulse/fleetpulse-be/internal/auth"
	"github.com/fleetpulse/fleetpulse-be/internal/services"
	"github.com/fleetpulse/fleetpulse-be/internal/web"
	"github.com/fleetpulse/fleetpulse-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router for the portal.
func NewRouter(
	sessions *auth.Manager,
	gate *auth.Gate,
	views *web.Renderer,
	hub *websocket.Hub,
	users services.UserDirectoryProvider,
	fleet services.FleetServiceProvider,
	chat services.ChatServiceProvider,
	schedule services.ScheduleServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Resolve the session cookie once per request.
	r.Use(auth.WithSession(sessions))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(gate, sessions, users, views)
	portalHandler := handlers.NewPortalHandler(fleet, views)
	apiHandler := handlers.NewAPIHandler(chat, schedule)
	systemHandler := handlers.NewSystemHandler()
	wsHandler := handlers.NewWebSocketHandler(hub)

	// Public entry points
	r.Get("/", portalHandler.Index)
	r.Get("/portal-selection", portalHandler.PortalSelection)
	r.Get("/admin/login", authHandler.ShowAdminLogin)
	r.Post("/admin/login", authHandler.AdminLogin)
	r.Get("/user/login", authHandler.ShowUserLogin)
	r.Post("/user/login", authHandler.UserLogin)
	r.Post("/register", authHandler.Register)
	r.Get("/logout", authHandler.Logout)

	// Admin-only views
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleAdmin))
		r.Get("/admin", portalHandler.AdminDashboard)
		r.Get("/rca", portalHandler.RCAInsights)
		r.Get("/vehicles", portalHandler.VehicleMonitoring)
	})

	// Views for any authenticated role
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuthenticated())
		r.Get("/scheduling", portalHandler.Scheduling)
		r.Get("/chat", portalHandler.ChatPage)
		r.Get("/ws", wsHandler.Serve)
	})

	// Owner-only view
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireRole(auth.RoleUser))
		r.Get("/user", portalHandler.UserPortal)
	})

	// JSON APIs consumed by the page scripts
	r.Route("/api", func(r chi.Router) {
		r.Post("/chat", apiHandler.Chat)
		r.Post("/schedule", apiHandler.Schedule)
		r.Post("/generate_token", apiHandler.GenerateToken)
		r.Route("/v1", func(r chi.Router) {
			r.Get("/system", systemHandler.Status)
		})
	})

	return r
}
