package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/elysian-cafe/api/internal/config"
	"github.com/elysian-cafe/api/internal/database"
	"github.com/elysian-cafe/api/internal/enum"
	"github.com/elysian-cafe/api/internal/handler"
	mw "github.com/elysian-cafe/api/internal/middleware"
	"github.com/elysian-cafe/api/internal/service"
	"github.com/elysian-cafe/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// The storefront surface is public; staff routes need a token and admin
// routes additionally need the ADMIN role.
func New(cfg *config.Config, queries *database.Queries, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000",      // storefront dev server
			"http://localhost:5173",      // admin dev server
			"https://order.elysian.cafe", // production storefront
			"https://admin.elysian.cafe", // production admin
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// Shared handlers
	sequencer := service.NewOrderSequencer(queries)
	orderService := service.NewOrderService(queries, queries, sequencer)
	menuHandler := handler.NewMenuHandler(queries, hub)
	orderHandler := handler.NewOrderHandler(queries, orderService, hub)
	systemHandler := handler.NewSystemHandler(queries, hub)

	// Public storefront surface
	menuHandler.RegisterPublicRoutes(r)
	systemHandler.RegisterPublicRoutes(r)
	orderHandler.RegisterPublicRoutes(r)

	// WebSocket feeds (orders feed validates its token internally)
	r.Get("/ws/menu", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, ws.TopicMenu, handler.MenuSnapshot(queries), w, r)
	})
	r.Get("/ws/config", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, ws.TopicConfig, handler.ConfigSnapshot(queries), w, r)
	})
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, ws.TopicOrders, handler.OrdersSnapshot(queries), w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Staff order management
		r.Route("/staff/orders", orderHandler.RegisterStaffRoutes)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.UserRoleAdmin))

			r.Route("/admin/menu", menuHandler.RegisterAdminRoutes)
			r.Route("/admin/system", systemHandler.RegisterAdminRoutes)

			statsHandler := handler.NewStatsHandler(queries)
			r.Route("/admin/stats", statsHandler.RegisterRoutes)

			userHandler := handler.NewUserHandler(queries)
			r.Route("/admin/users", userHandler.RegisterRoutes)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
