package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"log-triage-backend/config"
	_ "log-triage-backend/docs"
	"log-triage-backend/internal/controller"
	"log-triage-backend/internal/kafka"
	"log-triage-backend/internal/llm"
	"log-triage-backend/internal/metrics"
	"log-triage-backend/internal/parser"
	"log-triage-backend/internal/scheduler"
	"log-triage-backend/internal/service"
	"log-triage-backend/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	app := fx.New(
		// Core Dependencies
		fx.Provide(
			config.NewConfig,
		),
		// Infrastructure Dependencies
		fx.Provide(
			NewGinEngine,
			NewLineSelector,
			llm.New,
			store.NewInMemorySessionStore,
			metrics.NewSignalExtractor,
			kafka.NewKafkaAnalysisEventProducer,
			service.NewAnalysisService,
			service.NewChatService,
			controller.NewAnalysisController,
			controller.NewChatController,
		),
		fx.Invoke(RegisterAPIRoutes,
			RegisterSessionSweeper,
		),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second) // Timeout for startup
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Error().Err(err).Msg("Failed to start application")
		return err
	}
	<-app.Done()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second) // Timeout for graceful shutdown
	defer cancelStop()
	log.Info().Msg("Shutting down application...")
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown due to error or timeout")
		return err
	}
	log.Info().Msg("Application stopped")
	return nil
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = cfg.Server.MaxUploadBytes

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: !allowsAnyOrigin(cfg.Server.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// Add swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// cors rejects AllowCredentials together with a "*" origin.
func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return len(origins) == 0
}

func NewLineSelector(cfg *config.Config) parser.LineSelector {
	return parser.NewKeywordSelector(cfg.Triage.MaxFlagged)
}

func RegisterAPIRoutes(
	lifecycle fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	analysisController *controller.AnalysisController,
	chatController *controller.ChatController,
) {
	controller.RegisterAnalysisRoutes(router, analysisController)
	controller.RegisterChatRoutes(router, chatController)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Starting HTTP server on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("HTTP server ListenAndServe error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Shutting down HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}

// --- Invoker Functions ---

func RegisterSessionSweeper(lc fx.Lifecycle, cfg *config.Config, sessions store.SessionStore) error {
	_, err := scheduler.NewSessionSweeper(lc, cfg, sessions)
	return err
}
