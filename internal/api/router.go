package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nutritrack/foodlog-api/internal/api/handler"
	"github.com/nutritrack/foodlog-api/internal/api/middleware"
	"github.com/nutritrack/foodlog-api/internal/core/ports"
	"github.com/nutritrack/foodlog-api/internal/core/service"
	mongodb "github.com/nutritrack/foodlog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/nutritrack/foodlog-api/internal/infrastructure/db/redis"
	"github.com/nutritrack/foodlog-api/internal/infrastructure/http/handlers"
	"github.com/nutritrack/foodlog-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The classifier argument is the bounded inference gateway; images is the
// meal photo store.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	images ports.ImageStorage,
	classifier ports.Classifier,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("foodlog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	catalogRepo := redisdb.NewCatalogCache(rdb, mongodb.NewCatalogRepository(db), log)
	logRepo := mongodb.NewFoodLogRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	foodLogService := service.NewFoodLogService(catalogRepo, logRepo, classifier, images, log)
	dashboardService := service.NewDashboardService(logRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	foodLogHandler := handler.NewFoodLogHandler(foodLogService)
	predictHandler := handler.NewPredictHandler(foodLogService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	authMiddleware := middleware.Auth(tokenService)

	// --- Auth routes (public) ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	// --- User routes ---
	users := e.Group("/users", authMiddleware)
	users.GET("/me", userHandler.Me)
	users.PUT("/me", userHandler.Update)
	users.PUT("/me/password", userHandler.ChangePassword)

	// --- Prediction ---
	e.POST("/predict", predictHandler.Predict, authMiddleware)

	// --- Dashboard routes ---
	dashboard := e.Group("/dashboard", authMiddleware)
	dashboard.POST("/log", foodLogHandler.LogManual)
	dashboard.POST("/log/auto", foodLogHandler.AutoLog)
	dashboard.GET("/day", dashboardHandler.Day)
	dashboard.GET("/summary", dashboardHandler.Summary)
	dashboard.GET("/history", dashboardHandler.History)
	dashboard.GET("/chart", dashboardHandler.Chart)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
