package app

import (
	"github.com/avc/reward-engine/internal/config"
	"github.com/avc/reward-engine/internal/domain"
	"github.com/avc/reward-engine/internal/handlers"
	"github.com/avc/reward-engine/internal/jobs"
	"github.com/avc/reward-engine/internal/repository/postgres"
	"github.com/avc/reward-engine/internal/scheduler"
	"github.com/avc/reward-engine/internal/service"
	"github.com/avc/reward-engine/internal/utils/jwt"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// repositories содержит все репозитории приложения
type repositories struct {
	order       domain.OrderRepository
	product     domain.ProductRepository
	rate        domain.RateRepository
	ledger      domain.LedgerRepository
	transaction domain.TransactionRepository
}

// handlerSet содержит все хендлеры приложения
type handlerSet struct {
	accrual      *handlers.AccrualHandler
	balance      *handlers.BalanceHandler
	transactions *handlers.TransactionsHandler
	health       *handlers.HealthHandler
}

// dependencies содержит все зависимости приложения
type dependencies struct {
	repos      *repositories
	handlers   *handlerSet
	jwtManager *jwt.Manager
	scheduler  *scheduler.Scheduler
	runner     *jobs.Runner
}

// initDependencies создает все зависимости приложения
func initDependencies(cfg *config.Config, dbPool *pgxpool.Pool, logger *zap.Logger) *dependencies {
	// Создание репозиториев
	repos := &repositories{
		order:       postgres.NewOrderRepository(dbPool),
		product:     postgres.NewProductRepository(dbPool),
		rate:        postgres.NewRateRepository(dbPool),
		ledger:      postgres.NewLedgerRepository(dbPool),
		transaction: postgres.NewTransactionRepository(dbPool),
	}

	// Создание утилит
	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.JWTTokenTTL)

	// Создание сервисов
	resolver := service.NewCommissionResolver(repos.product, repos.rate)
	ledgerService := service.NewLedgerService(repos.ledger)
	historyService := service.NewHistoryService(repos.transaction)

	// Создание планировщика начислений
	sched := scheduler.NewScheduler(
		scheduler.Config{Workers: cfg.AccrualWorkers},
		repos.order,
		repos.ledger,
		repos.transaction,
		resolver,
		logger,
	)

	// Создание cron-запуска
	runner := jobs.NewRunner(cfg.AccrualCronSpec, sched, logger)

	// Создание handlers
	hdlrs := &handlerSet{
		accrual:      handlers.NewAccrualHandler(sched, logger),
		balance:      handlers.NewBalanceHandler(ledgerService, logger),
		transactions: handlers.NewTransactionsHandler(historyService, logger),
		health:       handlers.NewHealthHandler(dbPool, logger),
	}

	return &dependencies{
		repos:      repos,
		handlers:   hdlrs,
		jwtManager: jwtManager,
		scheduler:  sched,
		runner:     runner,
	}
}
