package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cloud-ru/loan-amortization-go/internal/cache"
	"github.com/cloud-ru/loan-amortization-go/internal/config"
	"github.com/cloud-ru/loan-amortization-go/internal/metrics"
	"go.opentelemetry.io/otel/trace"
)

// Registry - набор инструментов по имени
type Registry map[string]ToolHandler

// NewRegistry собирает все инструменты. Результаты графиков кэшируются в c, если он задан;
// расчет по форме зависит от текущей даты и не кэшируется.
func NewRegistry(cfg *config.Config, tracer trace.Tracer, c cache.Cache) Registry {
	schedule := AmortizationScheduleHandler(cfg, tracer)
	yearly := YearlyScheduleHandler(cfg, tracer)
	compare := CompareExtraPaymentHandler(cfg, tracer)
	if c != nil {
		schedule = Cached(c, ToolAmortizationSchedule, schedule)
		yearly = Cached(c, ToolYearlySchedule, yearly)
		compare = Cached(c, ToolCompareExtraPayment, compare)
	}
	return Registry{
		ToolAmortizationSchedule: schedule,
		ToolYearlySchedule:       yearly,
		ToolCompareExtraPayment:  compare,
		ToolLoanQuote:            LoanQuoteHandler(cfg, tracer, time.Now),
	}
}

// Names возвращает отсортированные имена инструментов
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call вызывает инструмент по имени
func (r Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	h, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return h(ctx, params)
}

// Cached оборачивает обработчик кэшем; ключ - имя инструмента и параметры в JSON.
// Кэшируются только успешные результаты, ответ из кэша возвращается как json.RawMessage.
func Cached(c cache.Cache, toolName string, next ToolHandler) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		// json.Marshal сортирует ключи map, поэтому ключ детерминирован
		rawParams, err := json.Marshal(params)
		if err != nil {
			return next(ctx, params)
		}
		key := toolName + ":" + string(rawParams)

		if hit, ok := c.Get(ctx, key); ok {
			metrics.CacheRequests.WithLabelValues(toolName, "hit").Inc()
			return json.RawMessage(hit), nil
		}
		metrics.CacheRequests.WithLabelValues(toolName, "miss").Inc()

		result, err := next(ctx, params)
		if err != nil {
			return nil, err
		}

		encoded, err := json.Marshal(result)
		if err != nil {
			return result, nil
		}
		if err := c.Set(ctx, key, string(encoded)); err != nil {
			slog.WarnContext(ctx, "cache set failed", "tool", toolName, "error", err)
		}
		return result, nil
	}
}
