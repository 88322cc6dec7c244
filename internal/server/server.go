package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gravadigital/conexa-api/internal/auth"
	"github.com/gravadigital/conexa-api/internal/config"
	"github.com/gravadigital/conexa-api/internal/domain/scan"
	"github.com/gravadigital/conexa-api/internal/handlers"
	"github.com/gravadigital/conexa-api/internal/logger"
	"github.com/gravadigital/conexa-api/internal/middleware/authn"
	"github.com/gravadigital/conexa-api/internal/middleware/requestlog"
	"github.com/gravadigital/conexa-api/internal/storage/objects"
	"github.com/gravadigital/conexa-api/internal/storage/postgres"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.Config
	container  *postgres.Container
}

// New creates a new server instance
func New(cfg *config.Config, container *postgres.Container) *Server {
	return &Server{
		config:    cfg,
		container: container,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	router, err := s.setupRouter()
	if err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:    ":" + s.config.Server.Port,
		Handler: router,

		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Get().Info("Starting HTTP server", "port", s.config.Server.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	logger.Get().Info("Shutting down HTTP server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() (*gin.Engine, error) {
	gin.SetMode(s.config.Server.GinMode)

	router := gin.New()

	router.Use(requestlog.New())
	router.Use(requestlog.Recovery())

	corsConfig := cors.DefaultConfig()
	if s.config.CORS.AllowOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(s.config.CORS.AllowOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = strings.Split(s.config.CORS.AllowMethods, ",")
	corsConfig.AllowHeaders = strings.Split(s.config.CORS.AllowHeaders, ",")
	router.Use(cors.New(corsConfig))

	tokens, err := auth.NewTokenService(s.config.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure token service: %w", err)
	}

	store, err := objects.New(s.config)
	if err != nil {
		// The API stays usable without the object store, image refs are
		// returned as stored.
		logger.Get().Warn("Object store unavailable, image URLs will not be resolved", "error", err)
		store = nil
	}

	eventRepo := s.container.Events()
	activityRepo := s.container.Activities()
	profileRepo := s.container.Profiles()
	pointsRepo := s.container.Points()

	scanService := scan.NewService(profileRepo, activityRepo, eventRepo, s.container.Awards())

	authHandler := handlers.NewAuthHandler(profileRepo, tokens)
	eventHandler := handlers.NewEventHandler(eventRepo, store)
	activityHandler := handlers.NewActivityHandler(activityRepo, eventRepo, store, s.config.QRCode.BaseURL)
	profileHandler := handlers.NewProfileHandler(profileRepo, store)
	rankingHandler := handlers.NewRankingHandler(pointsRepo)
	scanHandler := handlers.NewScanHandler(scanService, eventRepo, profileRepo, s.config.QRCode.BaseURL)

	router.GET("/ping", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := s.container.Health(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"message": "Conexa API is running",
			"status":  status,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.setupAPIRoutes(router, tokens, profileRepo, authHandler, eventHandler, activityHandler, profileHandler, rankingHandler, scanHandler)

	return router, nil
}

// setupAPIRoutes configures all API routes
func (s *Server) setupAPIRoutes(
	router *gin.Engine,
	tokens *auth.TokenService,
	profileRepo postgres.ProfileRepository,
	authHandler *handlers.AuthHandler,
	eventHandler *handlers.EventHandler,
	activityHandler *handlers.ActivityHandler,
	profileHandler *handlers.ProfileHandler,
	rankingHandler *handlers.RankingHandler,
	scanHandler *handlers.ScanHandler,
) {
	api := router.Group("/api")
	api.Use(authn.Identify(tokens))
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}

		events := api.Group("/events")
		{
			events.GET("", eventHandler.GetAllEvents)
			events.GET("/:id", eventHandler.GetEvent)
			events.GET("/:id/activities", activityHandler.GetEventActivities)
			events.GET("/:id/ranking", rankingHandler.GetRanking)

			events.POST("", authn.RequireAuth(), authn.RequireAdmin(profileRepo), eventHandler.CreateEvent)
			events.PUT("/:id", authn.RequireAuth(), authn.RequireAdmin(profileRepo), eventHandler.UpdateEvent)
			events.DELETE("/:id", authn.RequireAuth(), authn.RequireAdmin(profileRepo), eventHandler.DeleteEvent)
			events.POST("/:id/activities", authn.RequireAuth(), authn.RequireAdmin(profileRepo), activityHandler.CreateActivity)

			events.GET("/:id/points", authn.RequireAuth(), rankingHandler.GetMyPoints)
			events.GET("/:id/connections", authn.RequireAuth(), rankingHandler.GetMyConnections)
			events.GET("/:id/qrcode", authn.RequireAuth(), scanHandler.MyQRCode)
		}

		activities := api.Group("/activities")
		{
			activities.GET("/:id", activityHandler.GetActivity)
			activities.PUT("/:id", authn.RequireAuth(), authn.RequireAdmin(profileRepo), activityHandler.UpdateActivity)
			activities.DELETE("/:id", authn.RequireAuth(), authn.RequireAdmin(profileRepo), activityHandler.DeleteActivity)
			activities.GET("/:id/qrcode", authn.RequireAuth(), authn.RequireAdmin(profileRepo), activityHandler.GetActivityQRCode)
		}

		profileRoutes := api.Group("/profile", authn.RequireAuth())
		{
			profileRoutes.GET("", profileHandler.GetProfile)
			profileRoutes.PUT("", profileHandler.UpdateProfile)
		}

		api.POST("/scan", scanHandler.ProcessScan)
	}
}
