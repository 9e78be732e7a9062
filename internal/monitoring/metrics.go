package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RewardsCreditedTotal — количество успешных начислений по заказам
	RewardsCreditedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accrual_rewards_credited_total",
			Help: "Total number of successfully credited order rewards",
		},
	)

	// RewardAmountCreditedTotal — суммарный объем начисленных средств
	RewardAmountCreditedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accrual_reward_amount_credited_total",
			Help: "Total reward amount credited across all cycles",
		},
	)

	// OrdersExpiredTotal — количество заказов, переведенных в expired
	OrdersExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accrual_orders_expired_total",
			Help: "Total number of orders transitioned to expired",
		},
	)

	// OrdersSkippedTotal — пропуски по причинам (уже начислено, нулевая ставка)
	OrdersSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accrual_orders_skipped_total",
			Help: "Total number of orders skipped during accrual cycles",
		},
		[]string{"reason"},
	)

	// OrderFailuresTotal — ошибки обработки отдельных заказов
	OrderFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accrual_order_failures_total",
			Help: "Total number of per-order failures during accrual cycles",
		},
	)

	// CycleDuration — длительность цикла начислений
	CycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "accrual_cycle_duration_seconds",
			Help:    "Histogram of accrual cycle durations",
			Buckets: prometheus.DefBuckets,
		},
	)
)
