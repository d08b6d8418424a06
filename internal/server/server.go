package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"example.com/raw-feed-planner/internal/auth"
	"example.com/raw-feed-planner/internal/config"
	"example.com/raw-feed-planner/internal/handlers"
	"example.com/raw-feed-planner/internal/notifications"
	"example.com/raw-feed-planner/internal/repository"
	"example.com/raw-feed-planner/internal/sessions"
)

// New собирает HTTP-сервер Echo с роутами и зависимостями.
func New(cfg config.Config, logger *slog.Logger, db *pgxpool.Pool) *echo.Echo {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	foodRepo := repository.NewFoodRepository(db)
	dogRepo := repository.NewDogRepository(db)
	planRepo := repository.NewPlanRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	notificationHub := notifications.NewHub()
	sessionStore := sessions.NewStore(cfg.Planner.SessionTTL, cfg.Planner.HistoryDepth)

	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, tokenManager)
	foodHandler := handlers.NewFoodHandler(foodRepo)
	dogHandler := handlers.NewDogHandler(dogRepo)
	portionHandler := handlers.NewPortionHandler(cfg.Planner)
	planHandler := handlers.NewPlanHandler(planRepo, foodRepo, notificationHub, cfg.Planner)
	sessionHandler := handlers.NewSessionHandler(sessionStore, planRepo, foodRepo, dogRepo, notificationHub, cfg.Planner)
	statsHandler := handlers.NewStatsHandler(statsRepo)
	notificationHandler := handlers.NewNotificationHandler(notificationHub)
	adminHandler := handlers.NewAdminHandler(adminRepo)

	registerRoutes(
		e,
		authHandler,
		foodHandler,
		dogHandler,
		portionHandler,
		planHandler,
		sessionHandler,
		statsHandler,
		notificationHandler,
		adminHandler,
		auth.JWTMiddleware(tokenManager),
		handlers.AdminMiddleware(userRepo, cfg.Admin.Emails),
		authRateLimiter(cfg.Auth),
		sessionRateLimiter(cfg.Planner),
	)

	return e
}

// NewHTTPServer создает net/http сервер с заданными таймаутами.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote_ip", v.RemoteIP),
				slog.Duration("latency", v.Latency),
			}

			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}

			msg := "request completed"
			if v.Status >= http.StatusInternalServerError {
				logger.LogAttrs(c.Request().Context(), slog.LevelError, msg, attrs...)
				return nil
			}

			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, msg, attrs...)
			return nil
		},
	})
}

func authRateLimiter(cfg config.AuthConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}

func sessionRateLimiter(cfg config.PlannerConfig) echo.MiddlewareFunc {
	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     cfg.RateLimitBurst,
		ExpiresIn: time.Minute,
	})

	return middleware.RateLimiter(store)
}
