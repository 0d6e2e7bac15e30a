package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"ideaforge/config"
	"ideaforge/database"
	_ "ideaforge/docs" // Swagger docs - auto-generated
	"ideaforge/internal/auth"
	adminctrl "ideaforge/internal/controller/admin"
	callctrl "ideaforge/internal/controller/call"
	userctrl "ideaforge/internal/controller/user"
	"ideaforge/internal/logger"
	"ideaforge/internal/model"
	"ideaforge/internal/repository"
	"ideaforge/internal/service"
	"ideaforge/pkg/monitoring"
)

// @title Project Idea Generator API
// @version 1.0
// @description Request-brokering backend for the student project-idea generator: bearer-token auth, AI idea generation, history and user administration.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	monitoring.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			func(cfg *config.Config) auth.Verifier {
				return auth.NewJWTVerifier(cfg.JWTSecret)
			},
		),

		// Repositories layer
		fx.Provide(
			repository.NewRoleRepository,
			repository.NewHistoryRepository,
			repository.NewAdminLogRepository,
		),

		// Services layer
		fx.Provide(
			service.NewRoleService,
			service.NewGameService,
			service.NewGeminiTextGenerator,
			service.NewIdeaService,
			service.NewHistoryService,
			service.NewAdminService,
		),

		// Controllers layer
		fx.Provide(
			userctrl.NewGameController,
			userctrl.NewIdeaController,
			userctrl.NewHistoryController,
			adminctrl.NewAdminController,
			callctrl.NewController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(monitoring.MetricsMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", monitoring.PrometheusHandler())

	return r
}

// RegisterRoutesAndStartServer wires both transport surfaces over the shared
// services and manages the HTTP server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	verifier auth.Verifier,
	roleService service.RoleService,
	gameCtrl *userctrl.GameController,
	ideaCtrl *userctrl.IdeaController,
	historyCtrl *userctrl.HistoryController,
	adminCtrl *adminctrl.AdminController,
	callCtrl *callctrl.Controller,
) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Project Idea Generator API",
			"status":  "running",
			"version": "1.0.0",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "project-idea-generator-api",
		})
	})

	authn := auth.Middleware(verifier, roleService)

	// REST surface
	api := router.Group("/api/v1", authn)
	{
		api.GET("/game-steps", gameCtrl.GetGameSteps)
		api.POST("/generate-idea", ideaCtrl.GenerateIdea)
		api.POST("/history", historyCtrl.SaveHistory)
		api.GET("/history/:user_id", historyCtrl.GetUserHistory)

		adminGroup := api.Group("/admin")
		adminGroup.GET("/user-role/:user_id", adminCtrl.GetUserRole)
		adminGroup.POST("/manage-users", adminCtrl.ManageUsers)
		adminGroup.GET("/logs", adminCtrl.GetAdminLogs)
		adminGroup.POST("/bulk-operations", adminCtrl.BulkOperations)
	}

	// Function-trigger surface: same operations, envelope protocol
	router.POST("/call/:name", authn, callCtrl.Handle)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Idea generator API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.UserRole{},
		&model.AdminActionLog{},
		&model.HistoryRecord{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
