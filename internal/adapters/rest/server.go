package rest

import (
	"addisnest-service/internal/configs"
	"addisnest-service/internal/core/domain"
	core_port "addisnest-service/internal/core/port"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers - все группы обработчиков, которые монтируются в роутер.
type Handlers struct {
	Properties   *PropertyHandlers
	Uploads      *UploadHandlers
	Auth         *AuthHandlers
	Messages     *MessageHandlers
	Partnerships *PartnershipHandlers
	Admin        *AdminHandlers
}

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewServer создает новый экземпляр сервера.
func NewServer(cfg configs.RESTconfig, handlers Handlers, authMiddleware *AuthMiddleware, baseLogger core_port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + cfg.PORT,
		Handler:           NewRouter(cfg.AllowedOrigins, handlers, authMiddleware, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(core_port.Fields{"component": "rest_server"}),
	}
}

// NewRouter собирает chi-роутер со всеми маршрутами /api.
func NewRouter(allowedOrigins []string, h Handlers, am *AuthMiddleware, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300, // 5 минут
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", h.Properties.List)

			r.Group(func(r chi.Router) {
				r.Use(am.Authenticate)
				r.Post("/", h.Properties.Create)
				// до /{id}, иначе "mine" разберется как id
				r.Get("/mine", h.Properties.ListMine)
				r.Patch("/{id}", h.Properties.Update)
				r.Put("/{id}", h.Properties.Update)
				r.Delete("/{id}", h.Properties.Delete)
				r.With(am.RequireRole(domain.RoleAdmin)).Patch("/{id}/status", h.Properties.UpdateStatus)
			})

			r.Get("/{id}", h.Properties.Get)
		})

		r.With(am.Authenticate).Post("/uploads/images", h.Uploads.UploadImages)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/otp/request", h.Auth.RequestOTP)
			r.Post("/otp/verify", h.Auth.VerifyOTP)
			r.Post("/google", h.Auth.GoogleLogin)
			r.With(am.Authenticate).Get("/me", h.Auth.Me)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Use(am.Authenticate)
			r.Post("/", h.Messages.Send)
			r.Get("/conversations", h.Messages.Conversations)
			r.Get("/{peerId}", h.Messages.Thread)
			r.Post("/{peerId}/read", h.Messages.MarkRead)
		})

		r.Post("/partnership-requests", h.Partnerships.Submit)

		// --- Только для админов ---
		r.Route("/admin", func(r chi.Router) {
			r.Use(am.Authenticate)
			r.Use(am.RequireRole(domain.RoleAdmin))
			r.Get("/dashboard", h.Admin.Dashboard)
			r.Get("/users", h.Admin.ListUsers)
			r.Get("/partnership-requests", h.Partnerships.List)
			r.Patch("/partnership-requests/{id}", h.Partnerships.UpdateStatus)
		})
	})

	return r
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
