package jobs

import (
	"context"
	"time"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Runner запускает цикл начислений по расписанию cron.
// Перекрытие запусков допустимо: повторное начисление исключено проверкой
// календарного дня и условным обновлением заказа внутри цикла.
type Runner struct {
	cron      *cron.Cron
	scheduler domain.AccrualScheduler
	spec      string
	logger    *zap.Logger
}

// NewRunner создает новый Runner с заданным cron-расписанием
func NewRunner(spec string, scheduler domain.AccrualScheduler, logger *zap.Logger) *Runner {
	return &Runner{
		cron:      cron.New(),
		scheduler: scheduler,
		spec:      spec,
		logger:    logger,
	}
}

// Start регистрирует задачу и запускает планировщик
func (r *Runner) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		r.runWithRecovery(ctx)
	})
	if err != nil {
		return err
	}

	r.cron.Start()
	r.logger.Info("accrual cron started", zap.String("spec", r.spec))

	return nil
}

// Stop останавливает планировщик и дожидается завершения текущей задачи
func (r *Runner) Stop() {
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.logger.Info("accrual cron stopped")
}

// runWithRecovery выполняет цикл начислений с перехватом паники
func (r *Runner) runWithRecovery(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("accrual job panicked", zap.Any("panic", rec))
		}
	}()

	report, err := r.scheduler.RunAccrualCycle(ctx, time.Now())
	if err != nil {
		r.logger.Error("scheduled accrual cycle failed", zap.Error(err))
		return
	}

	r.logger.Info("scheduled accrual cycle finished",
		zap.Int("processed", report.OrdersProcessed),
		zap.Float64("total_credited", report.TotalCredited),
		zap.Int("expired", report.OrdersExpired),
	)
}
