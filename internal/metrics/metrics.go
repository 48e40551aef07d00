package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик HTTP запросов
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "HTTP запросы к инструментам",
		},
		[]string{"service", "endpoint", "status"},
	)

	// NonConvergedSchedules графики, упершиеся в лимит периодов
	NonConvergedSchedules = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "non_converged_schedules_total",
			Help: "Графики, не погашенные в пределах лимита периодов",
		},
		[]string{"tool_name"},
	)

	// SchedulePeriods распределение фактического числа периодов
	SchedulePeriods = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedule_periods",
			Help:    "Фактическое число периодов в рассчитанном графике",
			Buckets: []float64{12, 36, 60, 120, 180, 240, 360, 480, 600},
		},
	)

	// CacheRequests обращения к кэшу результатов
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Обращения к кэшу результатов",
		},
		[]string{"tool_name", "result"},
	)
)
