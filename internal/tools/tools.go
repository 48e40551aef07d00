package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
	"github.com/cloud-ru/loan-amortization-go/internal/config"
	"github.com/cloud-ru/loan-amortization-go/internal/metrics"
	"github.com/cloud-ru/loan-amortization-go/internal/quote"
	"github.com/cloud-ru/loan-amortization-go/internal/validators"
	"github.com/cloud-ru/loan-amortization-go/pkg/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	ToolAmortizationSchedule = "amortization_schedule"
	ToolLoanQuote            = "loan_quote"
	ToolCompareExtraPayment  = "compare_extra_payment"
	ToolYearlySchedule       = "yearly_schedule"
)

const (
	nonConvergedWarning = "график не погашен в пределах лимита периодов: платеж с доплатой не покрывает проценты, результат неполный"
	divergentWarning    = "платеж с доплатой не превышает проценты, график не сойдется"
)

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// ScheduleSummary - сводка по графику
type ScheduleSummary struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	Months            int     `json:"months"`
	ExtraPayment      float64 `json:"extra_payment"`
	MonthlyPayment    float64 `json:"monthly_payment"`
	TotalInterest     float64 `json:"total_interest"`
	TotalPaid         float64 `json:"total_paid"`
	ActualMonths      int     `json:"actual_months"`
	Converged         bool    `json:"converged"`
}

// ScheduleResponse - ответ инструмента amortization_schedule
type ScheduleResponse struct {
	Summary   ScheduleSummary             `json:"summary"`
	View      string                      `json:"view"`
	Schedule  []calculations.PeriodRecord `json:"schedule,omitempty"`
	Years     []calculations.YearRecord   `json:"years,omitempty"`
	Truncated bool                        `json:"truncated,omitempty"`
	Balance   []BalancePoint              `json:"balance_series,omitempty"`
	Warning   string                      `json:"warning,omitempty"`
}

// BalancePoint - точка графика остатка долга
type BalancePoint struct {
	Period  int     `json:"period"`
	Balance float64 `json:"balance"`
}

// CompareResponse - ответ инструмента compare_extra_payment
type CompareResponse struct {
	*calculations.ExtraPaymentComparison
	Warning string `json:"warning,omitempty"`
}

// QuoteResponse - ответ инструмента loan_quote
type QuoteResponse struct {
	LoanAmount        float64                   `json:"loan_amount"`
	DownPaymentAmount float64                   `json:"down_payment_amount"`
	MonthlyPayment    float64                   `json:"monthly_payment"`
	MonthlyTax        float64                   `json:"monthly_tax"`
	MonthlyInsurance  float64                   `json:"monthly_insurance"`
	TotalMonthlyCost  float64                   `json:"total_monthly_cost"`
	TotalMonthly      float64                   `json:"total_monthly"`
	TotalInterest     float64                   `json:"total_interest"`
	TotalCost         float64                   `json:"total_cost"`
	UpfrontCosts      float64                   `json:"upfront_costs"`
	PayoffMonths      int                       `json:"payoff_months"`
	PayoffDate        string                    `json:"payoff_date"`
	Years             []calculations.YearRecord `json:"years"`
	Balance           []BalancePoint            `json:"balance_series,omitempty"`
	Warning           string                    `json:"warning,omitempty"`
}

// call объединяет трейсинг и метрики одного вызова инструмента
type call struct {
	toolName string
	span     trace.Span
}

func startCall(ctx context.Context, tracer trace.Tracer, toolName string) (context.Context, *call) {
	ctx, span := tracer.Start(ctx, toolName)
	metrics.APICalls.WithLabelValues("http", toolName, "started").Inc()
	return ctx, &call{toolName: toolName, span: span}
}

func (c *call) fail(kind string, err error) error {
	c.span.SetAttributes(attribute.String("error", kind+"_error"))
	c.span.RecordError(err)
	metrics.ToolCalls.WithLabelValues(c.toolName, kind+"_error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.toolName, kind).Inc()
	metrics.APICalls.WithLabelValues("http", c.toolName, "error").Inc()
	if kind == "validation" {
		return fmt.Errorf("неверные параметры: %w", err)
	}
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

func (c *call) succeed(ctx context.Context, result *calculations.AmortizationResult) {
	c.span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Bool("converged", result.Converged),
		attribute.Int("actual_periods", result.ActualPeriods),
		attribute.Float64("total_interest", result.TotalInterest),
	)
	metrics.SchedulePeriods.Observe(float64(result.ActualPeriods))
	if !result.Converged {
		metrics.NonConvergedSchedules.WithLabelValues(c.toolName).Inc()
		slog.WarnContext(ctx, "schedule did not converge",
			"tool", c.toolName,
			"periods", result.ActualPeriods,
			"final_balance", result.FinalBalance(),
		)
	}
	metrics.ToolCalls.WithLabelValues(c.toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("http", c.toolName, "success").Inc()
}

func (c *call) end() {
	c.span.End()
}

// balanceSeries - остаток на начало каждого года и после последнего платежа
func balanceSeries(result *calculations.AmortizationResult) []BalancePoint {
	samples := calculations.BalanceSamples(result, calculations.PeriodsPerYear)
	points := make([]BalancePoint, 0, len(samples))
	for _, rec := range samples {
		points = append(points, BalancePoint{Period: rec.Period, Balance: utils.Round2(rec.EndingBalance)})
	}
	return points
}

// convergenceWarning проверяет до расчета, что платеж уменьшает долг
func convergenceWarning(ctx context.Context, toolName string, p calculations.LoanParameters) string {
	err := calculations.CheckConvergence(p)
	if !errors.Is(err, calculations.ErrNonConvergence) {
		return ""
	}
	slog.WarnContext(ctx, "payment does not cover interest", "tool", toolName, "error", err)
	return divergentWarning + ": " + err.Error()
}

// resultWarning выбирает предупреждение для ответа: диагностика до расчета важнее итога
func resultWarning(precheck string, result *calculations.AmortizationResult) string {
	if precheck != "" {
		return precheck
	}
	if !result.Converged {
		return nonConvergedWarning
	}
	return ""
}

func options(cfg *config.Config) calculations.Options {
	return calculations.Options{Epsilon: calculations.DefaultEpsilon, CapMultiple: cfg.CapMultiple()}
}

// loanInput - общие параметры инструментов графика
type loanInput struct {
	principal         float64
	annualRatePercent float64
	months            int
	extraPayment      float64
}

func (in loanInput) parameters() calculations.LoanParameters {
	return calculations.LoanParameters{
		Principal:    in.principal,
		PeriodicRate: in.annualRatePercent / 100 / 12,
		TotalPeriods: in.months,
		ExtraPayment: in.extraPayment,
	}
}

func parseLoanInput(params map[string]interface{}) (loanInput, error) {
	var in loanInput
	var err error
	if in.principal, err = floatParam(params, "principal", true); err != nil {
		return in, err
	}
	if in.annualRatePercent, err = floatParam(params, "annual_rate_percent", true); err != nil {
		return in, err
	}
	if in.months, err = intParam(params, "months", true); err != nil {
		return in, err
	}
	if in.extraPayment, err = floatParam(params, "extra_payment", false); err != nil {
		return in, err
	}
	return in, nil
}

func validateLoanInput(cfg *config.Config, in loanInput) error {
	if err := validators.CheckPrincipal(cfg, in.principal); err != nil {
		return err
	}
	if err := validators.CheckRate(cfg, in.annualRatePercent); err != nil {
		return err
	}
	if err := validators.CheckMonths(cfg, in.months); err != nil {
		return err
	}
	return validators.CheckExtraPayment(cfg, in.extraPayment)
}

func (c *call) traceLoanInput(in loanInput) {
	c.span.SetAttributes(
		attribute.Float64("principal", in.principal),
		attribute.Float64("annual_rate_percent", in.annualRatePercent),
		attribute.Int("months", in.months),
		attribute.Float64("extra_payment", in.extraPayment),
	)
}

// AmortizationScheduleHandler обрабатывает запрос на расчет графика погашения.
// Параметр view: "full" (по умолчанию), "monthly" (первые 60 месяцев) или "yearly".
func AmortizationScheduleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return scheduleHandler(cfg, tracer, ToolAmortizationSchedule, "")
}

// YearlyScheduleHandler возвращает график, сгруппированный по годам
func YearlyScheduleHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return scheduleHandler(cfg, tracer, ToolYearlySchedule, "yearly")
}

// scheduleHandler - общий обработчик графиков; fixedView задает представление,
// пустое значение берет его из параметра view
func scheduleHandler(cfg *config.Config, tracer trace.Tracer, toolName, fixedView string) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := startCall(ctx, tracer, toolName)
		defer c.end()

		in, err := parseLoanInput(params)
		if err != nil {
			return nil, c.fail("validation", err)
		}
		view := fixedView
		if view == "" {
			if view, err = stringParam(params, "view", "full"); err != nil {
				return nil, c.fail("validation", err)
			}
		}
		c.traceLoanInput(in)
		c.span.SetAttributes(attribute.String("view", view))

		if err := validateLoanInput(cfg, in); err != nil {
			return nil, c.fail("validation", err)
		}
		if view != "full" && view != "monthly" && view != "yearly" {
			return nil, c.fail("validation", fmt.Errorf("view: неизвестное представление %q", view))
		}

		p := in.parameters()
		precheck := convergenceWarning(ctx, toolName, p)

		result, err := calculations.ComputeAmortizationWithOptions(p, options(cfg))
		if err != nil {
			return nil, c.fail("calculation", err)
		}

		rounded := result.Rounded()
		resp := ScheduleResponse{
			Summary: ScheduleSummary{
				Principal:         utils.Round2(in.principal),
				AnnualRatePercent: utils.Round2(in.annualRatePercent),
				Months:            in.months,
				ExtraPayment:      utils.Round2(in.extraPayment),
				MonthlyPayment:    rounded.LevelPayment,
				TotalInterest:     rounded.TotalInterest,
				TotalPaid:         rounded.TotalPaid,
				ActualMonths:      rounded.ActualPeriods,
				Converged:         rounded.Converged,
			},
			View:    view,
			Balance: balanceSeries(result),
			Warning: resultWarning(precheck, result),
		}
		switch view {
		case "yearly":
			resp.Years = calculations.RoundYears(calculations.YearlySummary(result))
		case "monthly":
			resp.Schedule, resp.Truncated = calculations.MonthlyView(&rounded, calculations.MonthlyViewLimit)
		default:
			resp.Schedule = rounded.Schedule
		}

		c.succeed(ctx, result)
		return resp, nil
	}
}

// CompareExtraPaymentHandler обрабатывает запрос на сравнение графиков с доплатой и без
func CompareExtraPaymentHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := startCall(ctx, tracer, ToolCompareExtraPayment)
		defer c.end()

		in, err := parseLoanInput(params)
		if err != nil {
			return nil, c.fail("validation", err)
		}
		c.traceLoanInput(in)

		if err := validateLoanInput(cfg, in); err != nil {
			return nil, c.fail("validation", err)
		}

		p := in.parameters()
		precheck := convergenceWarning(ctx, ToolCompareExtraPayment, p)

		result, err := calculations.CompareExtraPayment(p, options(cfg))
		if err != nil {
			return nil, c.fail("calculation", err)
		}

		c.span.SetAttributes(
			attribute.Float64("interest_saved", result.InterestSaved),
			attribute.Int("periods_saved", result.PeriodsSaved),
		)
		c.succeed(ctx, &result.Accelerated)
		return CompareResponse{
			ExtraPaymentComparison: result,
			Warning:                resultWarning(precheck, &result.Accelerated),
		}, nil
	}
}

// LoanQuoteHandler обрабатывает запрос на расчет по форме покупки участка.
// Пустые поля считаются нулевыми.
func LoanQuoteHandler(cfg *config.Config, tracer trace.Tracer, now func() time.Time) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := startCall(ctx, tracer, ToolLoanQuote)
		defer c.end()

		in, err := parseQuoteInput(params)
		if err != nil {
			return nil, c.fail("validation", err)
		}
		c.span.SetAttributes(
			attribute.Float64("property_price", in.PropertyPrice),
			attribute.Float64("down_payment_percent", in.DownPaymentPercent),
			attribute.Float64("annual_rate_percent", in.AnnualRatePercent),
			attribute.Int("term_years", in.TermYears),
			attribute.Float64("extra_payment", in.ExtraPayment),
		)

		if err := validators.CheckQuote(cfg, in); err != nil {
			return nil, c.fail("validation", err)
		}

		precheck := convergenceWarning(ctx, ToolLoanQuote, in.Parameters())
		q, err := quote.Calculate(in, now(), options(cfg))
		if err != nil {
			return nil, c.fail("calculation", err)
		}

		resp := QuoteResponse{
			LoanAmount:        utils.Round2(q.LoanAmount),
			DownPaymentAmount: utils.Round2(q.DownPaymentAmount),
			MonthlyPayment:    utils.Round2(q.MonthlyPayment),
			MonthlyTax:        utils.Round2(q.MonthlyTax),
			MonthlyInsurance:  utils.Round2(q.MonthlyInsurance),
			TotalMonthlyCost:  utils.Round2(q.TotalMonthlyCost),
			TotalMonthly:      utils.Round2(q.TotalMonthly),
			TotalInterest:     utils.Round2(q.TotalInterest),
			TotalCost:         utils.Round2(q.TotalCost),
			UpfrontCosts:      utils.Round2(q.UpfrontCosts),
			PayoffMonths:      q.PayoffMonths,
			PayoffDate:        q.PayoffDate.Format("Jan 2006"),
			Years:             calculations.RoundYears(calculations.YearlySummary(q.Amortization)),
			Balance:           balanceSeries(q.Amortization),
			Warning:           resultWarning(precheck, q.Amortization),
		}

		c.succeed(ctx, q.Amortization)
		return resp, nil
	}
}

func parseQuoteInput(params map[string]interface{}) (quote.QuoteInput, error) {
	var in quote.QuoteInput
	floats := []struct {
		name string
		dst  *float64
	}{
		{"property_price", &in.PropertyPrice},
		{"down_payment_percent", &in.DownPaymentPercent},
		{"annual_rate_percent", &in.AnnualRatePercent},
		{"annual_property_tax", &in.AnnualPropertyTax},
		{"annual_insurance", &in.AnnualInsurance},
		{"closing_costs", &in.ClosingCosts},
		{"survey_fee", &in.SurveyFee},
		{"extra_payment", &in.ExtraPayment},
	}
	for _, f := range floats {
		v, err := floatParam(params, f.name, false)
		if err != nil {
			return in, err
		}
		*f.dst = v
	}
	years, err := intParam(params, "term_years", false)
	if err != nil {
		return in, err
	}
	in.TermYears = years
	return in, nil
}
