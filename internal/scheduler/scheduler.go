package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avc/reward-engine/internal/domain"
	"github.com/avc/reward-engine/internal/monitoring"
	"go.uber.org/zap"
)

// Config задает параметры цикла начислений
type Config struct {
	Workers int // Количество воркеров, обрабатывающих заказы параллельно
}

// Scheduler выполняет цикл начисления вознаграждений по активным заказам.
// Заказы одного пользователя всегда обрабатываются одним воркером, поэтому
// мутации одного счета внутри цикла сериализованы.
type Scheduler struct {
	workers         int
	orderRepo       domain.OrderRepository
	ledgerRepo      domain.LedgerRepository
	transactionRepo domain.TransactionRepository
	resolver        domain.CommissionResolver
	logger          *zap.Logger
}

// NewScheduler создает новый Scheduler
func NewScheduler(
	cfg Config,
	orderRepo domain.OrderRepository,
	ledgerRepo domain.LedgerRepository,
	transactionRepo domain.TransactionRepository,
	resolver domain.CommissionResolver,
	logger *zap.Logger,
) *Scheduler {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Scheduler{
		workers:         workers,
		orderRepo:       orderRepo,
		ledgerRepo:      ledgerRepo,
		transactionRepo: transactionRepo,
		resolver:        resolver,
		logger:          logger,
	}
}

// outcome представляет результат обработки одного заказа
type outcome int

const (
	outcomeProcessed outcome = iota
	outcomeSkipped
	outcomeFailed
)

// RunAccrualCycle обрабатывает все активные заказы на момент now: не более
// одного начисления на заказ за календарный день, затем переводит просроченные
// заказы в expired. Ошибка по отдельному заказу не прерывает цикл — заказ
// будет повторен в следующем, так как его last_reward_date не сдвинулся.
// Ошибка перечисления активных заказов прерывает цикл целиком.
func (s *Scheduler) RunAccrualCycle(ctx context.Context, now time.Time) (*domain.AccrualReport, error) {
	start := time.Now()

	orders, err := s.orderRepo.FindActiveOrders(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("scheduler: failed to enumerate active orders: %w", err)
	}

	report := &domain.AccrualReport{Timestamp: now}

	if len(orders) > 0 {
		s.processBatches(ctx, groupByUser(orders), now, report)
	}

	// Перевод просроченных заказов — отдельная идемпотентная операция
	expired, err := s.orderRepo.ExpireOrders(ctx, now)
	if err != nil {
		s.logger.Error("failed to expire orders", zap.Error(err))
	} else {
		report.OrdersExpired = int(expired)
		monitoring.OrdersExpiredTotal.Add(float64(expired))
	}

	monitoring.CycleDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("accrual cycle completed",
		zap.Int("processed", report.OrdersProcessed),
		zap.Float64("total_credited", report.TotalCredited),
		zap.Int("expired", report.OrdersExpired),
		zap.Int("skipped", report.OrdersSkipped),
		zap.Int("failed", report.OrdersFailed),
	)

	return report, nil
}

// processBatches распределяет пачки заказов по воркерам и собирает итоги
func (s *Scheduler) processBatches(ctx context.Context, batches [][]*domain.Order, now time.Time, report *domain.AccrualReport) {
	queue := make(chan []*domain.Order)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for batch := range queue {
				for _, order := range batch {
					// Прерывание цикла между заказами безопасно:
					// каждое начисление — атомарная единица
					if ctx.Err() != nil {
						return
					}

					result, amount := s.processOrder(ctx, order, now)

					mu.Lock()
					switch result {
					case outcomeProcessed:
						report.OrdersProcessed++
						report.TotalCredited += amount
					case outcomeSkipped:
						report.OrdersSkipped++
					case outcomeFailed:
						report.OrdersFailed++
					}
					mu.Unlock()
				}
			}
		}()
	}

	for _, batch := range batches {
		select {
		case queue <- batch:
		case <-ctx.Done():
			s.logger.Warn("accrual cycle cancelled, remaining orders left for next cycle")
			close(queue)
			wg.Wait()
			return
		}
	}

	close(queue)
	wg.Wait()
}

// processOrder начисляет дневное вознаграждение по одному заказу
func (s *Scheduler) processOrder(ctx context.Context, order *domain.Order, now time.Time) (outcome, float64) {
	// Идемпотентность: не более одного начисления за календарный день.
	// Проверка несущая, а не оптимизация — цикл может быть запущен
	// повторно в тот же день (ручной триггер поверх планового).
	if order.LastRewardDate != nil && domain.SameCalendarDay(*order.LastRewardDate, now) {
		monitoring.OrdersSkippedTotal.WithLabelValues("already_credited").Inc()
		return outcomeSkipped, 0
	}

	amount, err := s.resolver.DailyReward(ctx, order)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			// Нарушение целостности данных: заказ ссылается на несуществующий продукт
			s.logger.Error("order references missing product",
				zap.Int64("order_id", order.ID),
				zap.Int64("product_id", order.ProductID),
			)
			monitoring.OrderFailuresTotal.Inc()
			return outcomeFailed, 0
		}
		s.logger.Error("failed to resolve daily reward",
			zap.Int64("order_id", order.ID),
			zap.Error(err),
		)
		monitoring.OrderFailuresTotal.Inc()
		return outcomeFailed, 0
	}

	if !amount.IsPositive() {
		// Пробел конфигурации: ни ставки продукта, ни активной ставки платформы
		s.logger.Warn("resolved daily reward is not positive, skipping order",
			zap.Int64("order_id", order.ID),
			zap.Float64("amount", amount.Amount),
		)
		monitoring.OrdersSkippedTotal.WithLabelValues("no_rate").Inc()
		return outcomeSkipped, 0
	}

	if err := s.ledgerRepo.CreditReward(ctx, order, amount, now); err != nil {
		// Параллельный цикл успел начислить первым — не ошибка
		if errors.Is(err, domain.ErrAlreadyCredited) {
			monitoring.OrdersSkippedTotal.WithLabelValues("already_credited").Inc()
			return outcomeSkipped, 0
		}
		s.logger.Error("failed to credit reward",
			zap.Int64("order_id", order.ID),
			zap.Int64("user_id", order.UserID),
			zap.Float64("amount", amount.Amount),
			zap.Error(err),
		)
		monitoring.OrderFailuresTotal.Inc()
		return outcomeFailed, 0
	}

	monitoring.RewardsCreditedTotal.Inc()
	monitoring.RewardAmountCreditedTotal.Add(amount.Amount)

	s.logger.Debug("reward credited",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.Float64("amount", amount.Amount),
		zap.String("currency", amount.Currency),
	)

	return outcomeProcessed, amount.Amount
}

// Status возвращает текущее состояние движка без мутаций
func (s *Scheduler) Status(ctx context.Context, now time.Time) (*domain.AccrualStatus, error) {
	count, err := s.orderRepo.CountActiveOrders(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("scheduler: failed to count active orders: %w", err)
	}

	total, err := s.transactionRepo.RewardTotalForDay(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("scheduler: failed to get today reward total: %w", err)
	}

	return &domain.AccrualStatus{
		ActiveOrders:     count,
		TodayRewardTotal: total,
		Timestamp:        now,
	}, nil
}

// groupByUser собирает заказы одного пользователя в одну пачку,
// сохраняя исходный порядок пачек
func groupByUser(orders []*domain.Order) [][]*domain.Order {
	index := make(map[int64]int)
	var batches [][]*domain.Order

	for _, order := range orders {
		i, ok := index[order.UserID]
		if !ok {
			i = len(batches)
			index[order.UserID] = i
			batches = append(batches, nil)
		}
		batches[i] = append(batches[i], order)
	}

	return batches
}
