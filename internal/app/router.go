package app

import (
	"github.com/avc/reward-engine/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// setupRouter создает и настраивает роутер
func setupRouter(deps *dependencies, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Глобальные middleware
	setupMiddleware(r, logger)

	// Маршруты
	setupRoutes(r, deps)

	return r
}

// setupMiddleware настраивает middleware для роутера
func setupMiddleware(r *chi.Mux, logger *zap.Logger) {
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.LoggingMiddleware(logger))
	r.Use(handlers.RecoveryMiddleware(logger))
	r.Use(middleware.Compress(5))
}

// setupRoutes настраивает маршруты приложения
func setupRoutes(r *chi.Mux, deps *dependencies) {
	// Health check эндпоинты
	r.Get("/health", deps.handlers.health.Health)
	r.Get("/ready", deps.handlers.health.Ready)

	// Метрики
	r.Handle("/metrics", promhttp.Handler())

	// Административные эндпоинты (токены выпускаются внешней системой)
	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware(deps.jwtManager))
		r.Post("/api/admin/accrual/run", deps.handlers.accrual.RunCycle)
		r.Get("/api/admin/accrual/status", deps.handlers.accrual.Status)
		r.Get("/api/admin/users/{userID}/balance", deps.handlers.balance.GetBalances)
		r.Post("/api/admin/users/{userID}/withdraw", deps.handlers.balance.Withdraw)
		r.Get("/api/admin/users/{userID}/transactions", deps.handlers.transactions.GetTransactions)
	})
}
