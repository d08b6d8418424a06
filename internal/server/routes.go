package server

import (
	"github.com/labstack/echo/v4"

	"example.com/raw-feed-planner/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	foodHandler *handlers.FoodHandler,
	dogHandler *handlers.DogHandler,
	portionHandler *handlers.PortionHandler,
	planHandler *handlers.PlanHandler,
	sessionHandler *handlers.SessionHandler,
	statsHandler *handlers.StatsHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	sessionRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	foods := api.Group("/foods", authMiddleware)
	foods.GET("", foodHandler.List)
	foods.POST("", foodHandler.Create)
	foods.GET("/:id", foodHandler.Get)
	foods.PUT("/:id", foodHandler.Update)
	foods.DELETE("/:id", foodHandler.Delete)

	dogs := api.Group("/dogs", authMiddleware)
	dogs.GET("", dogHandler.List)
	dogs.POST("", dogHandler.Create)
	dogs.GET("/:id", dogHandler.Get)
	dogs.PUT("/:id", dogHandler.Update)
	dogs.DELETE("/:id", dogHandler.Delete)

	portions := api.Group("/portions", authMiddleware)
	portions.POST("/estimate", portionHandler.Estimate)

	plans := api.Group("/plans", authMiddleware)
	plans.GET("", planHandler.List)
	plans.POST("", planHandler.Create)
	plans.POST("/:id/duplicate", planHandler.Duplicate)
	plans.GET("/:id/export/json", planHandler.ExportJSON)
	plans.GET("/:id/export/csv", planHandler.ExportCSV)

	editSessions := plans.Group("/sessions", sessionRateLimiter)
	editSessions.POST("", sessionHandler.Create)
	editSessions.GET("/:sessionId", sessionHandler.Get)
	editSessions.POST("/:sessionId/items", sessionHandler.AddItem)
	editSessions.PUT("/:sessionId/items/:itemId/quantity", sessionHandler.UpdateItemQuantity)
	editSessions.PUT("/:sessionId/items/:itemId/meals", sessionHandler.UpdateItemMealCount)
	editSessions.DELETE("/:sessionId/items/:itemId", sessionHandler.RemoveItem)
	editSessions.PATCH("/:sessionId/schedule", sessionHandler.UpdateSchedule)
	editSessions.PATCH("/:sessionId/details", sessionHandler.UpdateDetails)
	editSessions.POST("/:sessionId/undo", sessionHandler.Undo)
	editSessions.POST("/:sessionId/redo", sessionHandler.Redo)
	editSessions.POST("/:sessionId/save", sessionHandler.Save)
	editSessions.DELETE("/:sessionId", sessionHandler.Discard)

	plans.GET("/:id", planHandler.Get)
	plans.PUT("/:id", planHandler.Update)
	plans.DELETE("/:id", planHandler.Delete)

	stats := api.Group("/stats", authMiddleware)
	stats.GET("/overview", statsHandler.Overview)
	stats.GET("/cost-by-food-type", statsHandler.CostByFoodType)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/usage", adminHandler.Usage)
}
