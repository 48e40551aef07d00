package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/loan-amortization-go/internal/cache"
	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
	"github.com/cloud-ru/loan-amortization-go/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return cfg
}

var tracer = noop.NewTracerProvider().Tracer("test")

func scenarioParams() map[string]interface{} {
	return map[string]interface{}{
		"principal":           80000.0,
		"annual_rate_percent": 7.5,
		"months":              180.0,
	}
}

func TestAmortizationScheduleHandler(t *testing.T) {
	cfg := testConfig(t)
	handler := AmortizationScheduleHandler(cfg, tracer)

	tests := []struct {
		name      string
		params    func() map[string]interface{}
		wantError bool
		check     func(*testing.T, ScheduleResponse)
	}{
		{
			name:   "full schedule",
			params: scenarioParams,
			check: func(t *testing.T, resp ScheduleResponse) {
				assert.Equal(t, 741.61, resp.Summary.MonthlyPayment)
				assert.Equal(t, 53489.78, resp.Summary.TotalInterest)
				assert.Equal(t, 180, resp.Summary.ActualMonths)
				assert.True(t, resp.Summary.Converged)
				assert.Len(t, resp.Schedule, 180)
				assert.Empty(t, resp.Warning)
				require.Len(t, resp.Balance, 16)
				assert.Equal(t, 1, resp.Balance[0].Period)
				assert.Equal(t, BalancePoint{Period: 180, Balance: 0}, resp.Balance[15])
			},
		},
		{
			name: "yearly view",
			params: func() map[string]interface{} {
				p := scenarioParams()
				p["view"] = "yearly"
				return p
			},
			check: func(t *testing.T, resp ScheduleResponse) {
				assert.Len(t, resp.Years, 15)
				assert.Empty(t, resp.Schedule)
			},
		},
		{
			name: "monthly view is truncated",
			params: func() map[string]interface{} {
				p := scenarioParams()
				p["view"] = "monthly"
				return p
			},
			check: func(t *testing.T, resp ScheduleResponse) {
				assert.Len(t, resp.Schedule, calculations.MonthlyViewLimit)
				assert.True(t, resp.Truncated)
			},
		},
		{
			name: "extra payment",
			params: func() map[string]interface{} {
				p := scenarioParams()
				p["extra_payment"] = 500.0
				return p
			},
			check: func(t *testing.T, resp ScheduleResponse) {
				assert.Equal(t, 83, resp.Summary.ActualMonths)
				assert.Less(t, resp.Summary.TotalInterest, 53489.78)
			},
		},
		{
			name: "zero principal",
			params: func() map[string]interface{} {
				p := scenarioParams()
				p["principal"] = 0.0
				return p
			},
			check: func(t *testing.T, resp ScheduleResponse) {
				assert.Zero(t, resp.Summary.ActualMonths)
				assert.Zero(t, resp.Summary.TotalInterest)
				assert.Empty(t, resp.Schedule)
			},
		},
		{
			name: "does not converge",
			params: func() map[string]interface{} {
				return map[string]interface{}{
					"principal":           1000.0,
					"annual_rate_percent": 200.0,
					"months":              600.0,
				}
			},
			check: func(t *testing.T, resp ScheduleResponse) {
				assert.False(t, resp.Summary.Converged)
				assert.Equal(t, 1200, resp.Summary.ActualMonths)
				assert.NotEmpty(t, resp.Warning)
			},
		},
		{
			name: "missing principal",
			params: func() map[string]interface{} {
				p := scenarioParams()
				delete(p, "principal")
				return p
			},
			wantError: true,
		},
		{
			name: "negative extra payment",
			params: func() map[string]interface{} {
				p := scenarioParams()
				p["extra_payment"] = -1.0
				return p
			},
			wantError: true,
		},
		{
			name: "zero months",
			params: func() map[string]interface{} {
				p := scenarioParams()
				p["months"] = 0.0
				return p
			},
			wantError: true,
		},
		{
			name: "fractional months",
			params: func() map[string]interface{} {
				p := scenarioParams()
				p["months"] = 12.5
				return p
			},
			wantError: true,
		},
		{
			name: "unknown view",
			params: func() map[string]interface{} {
				p := scenarioParams()
				p["view"] = "weekly"
				return p
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler(context.Background(), tt.params())
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			resp, ok := result.(ScheduleResponse)
			require.True(t, ok, "unexpected result type %T", result)
			tt.check(t, resp)
		})
	}
}

func TestCompareExtraPaymentHandler(t *testing.T) {
	handler := CompareExtraPaymentHandler(testConfig(t), tracer)

	params := scenarioParams()
	params["extra_payment"] = 500.0

	result, err := handler(context.Background(), params)
	require.NoError(t, err)

	cmp, ok := result.(CompareResponse)
	require.True(t, ok)
	assert.Equal(t, 97, cmp.PeriodsSaved)
	assert.Greater(t, cmp.InterestSaved, 0.0)
	assert.Empty(t, cmp.Warning)
}

func TestYearlyScheduleHandler(t *testing.T) {
	handler := YearlyScheduleHandler(testConfig(t), tracer)

	params := scenarioParams()
	params["view"] = "full"

	result, err := handler(context.Background(), params)
	require.NoError(t, err)

	resp, ok := result.(ScheduleResponse)
	require.True(t, ok)
	assert.Equal(t, "yearly", resp.View, "view parameter is ignored")
	assert.Len(t, resp.Years, 15)
	assert.Empty(t, resp.Schedule)
	assert.Equal(t, 53489.78, resp.Summary.TotalInterest)

	_, err = handler(context.Background(), map[string]interface{}{"principal": 1000.0})
	assert.Error(t, err)
}

func divergentConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testConfig(t)
	cfg.MaxRate = 1000
	cfg.MaxMonths = 6000
	return cfg
}

// 600% годовых: (1.5)^5000 переполняется, платеж равен процентам
func divergentParams() map[string]interface{} {
	return map[string]interface{}{
		"principal":           1000.0,
		"annual_rate_percent": 600.0,
		"months":              5000.0,
	}
}

func TestHandlers_WarnBeforeComputingWhenPaymentDoesNotCoverInterest(t *testing.T) {
	cfg := divergentConfig(t)

	result, err := AmortizationScheduleHandler(cfg, tracer)(context.Background(), divergentParams())
	require.NoError(t, err)
	resp := result.(ScheduleResponse)
	assert.False(t, resp.Summary.Converged)
	assert.Equal(t, 10000, resp.Summary.ActualMonths)
	assert.Contains(t, resp.Warning, divergentWarning)
	assert.Contains(t, resp.Warning, calculations.ErrNonConvergence.Error())

	result, err = CompareExtraPaymentHandler(cfg, tracer)(context.Background(), divergentParams())
	require.NoError(t, err)
	cmp := result.(CompareResponse)
	assert.Contains(t, cmp.Warning, divergentWarning)
}

func TestLoanQuoteHandler(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) }
	handler := LoanQuoteHandler(testConfig(t), tracer, now)

	result, err := handler(context.Background(), map[string]interface{}{
		"property_price":       100000.0,
		"down_payment_percent": 20.0,
		"annual_rate_percent":  7.5,
		"term_years":           15.0,
		"annual_property_tax":  1200.0,
		"annual_insurance":     500.0,
		"closing_costs":        3000.0,
		"survey_fee":           1500.0,
	})
	require.NoError(t, err)

	resp, ok := result.(QuoteResponse)
	require.True(t, ok)
	assert.Equal(t, 80000.0, resp.LoanAmount)
	assert.Equal(t, 741.61, resp.MonthlyPayment)
	assert.Equal(t, 883.28, resp.TotalMonthlyCost)
	assert.Equal(t, 24500.0, resp.UpfrontCosts)
	assert.Equal(t, 180, resp.PayoffMonths)
	assert.Equal(t, "Mar 2040", resp.PayoffDate)
	assert.Len(t, resp.Years, 15)
	require.Len(t, resp.Balance, 16)
	assert.Equal(t, 0.0, resp.Balance[15].Balance)
	assert.Empty(t, resp.Warning)

	_, err = handler(context.Background(), map[string]interface{}{"property_price": 100000.0})
	assert.Error(t, err, "empty term defaults to zero and is rejected")
}

func TestRegistry(t *testing.T) {
	mem := cache.NewMemory(time.Minute, 100)
	reg := NewRegistry(testConfig(t), tracer, mem)

	assert.Equal(t, []string{ToolAmortizationSchedule, ToolCompareExtraPayment, ToolLoanQuote, ToolYearlySchedule}, reg.Names())

	_, err := reg.Call(context.Background(), "nope", nil)
	assert.ErrorIs(t, err, ErrUnknownTool)

	first, err := reg.Call(context.Background(), ToolAmortizationSchedule, scenarioParams())
	require.NoError(t, err)
	assert.IsType(t, ScheduleResponse{}, first)
	assert.Equal(t, 1, mem.Len())

	second, err := reg.Call(context.Background(), ToolAmortizationSchedule, scenarioParams())
	require.NoError(t, err)
	raw, ok := second.(json.RawMessage)
	require.True(t, ok, "second call should be served from cache")

	encoded, err := json.Marshal(first)
	require.NoError(t, err)
	assert.JSONEq(t, string(encoded), string(raw))
}

func TestCached_SkipsErrors(t *testing.T) {
	mem := cache.NewMemory(0, 10)
	handler := Cached(mem, ToolAmortizationSchedule, AmortizationScheduleHandler(testConfig(t), tracer))

	_, err := handler(context.Background(), map[string]interface{}{"principal": -1.0})
	assert.Error(t, err)
	assert.Equal(t, 0, mem.Len())
}
