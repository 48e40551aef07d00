package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYearlySummary(t *testing.T) {
	result, err := ComputeAmortization(LoanParameters{Principal: scenarioPrincipal, PeriodicRate: scenarioRate, TotalPeriods: scenarioPeriods})
	require.NoError(t, err)

	years := YearlySummary(result)
	require.Len(t, years, 15)

	totalPrincipal, totalInterest := 0.0, 0.0
	for i, y := range years {
		assert.Equal(t, i+1, y.Year)
		assert.InDelta(t, y.Principal+y.Interest, y.Payment, 1e-6)
		assert.Equal(t, result.Schedule[min((i+1)*12, len(result.Schedule))-1].EndingBalance, y.EndingBalance)
		totalPrincipal += y.Principal
		totalInterest += y.Interest
	}
	assert.InDelta(t, scenarioPrincipal, totalPrincipal, DefaultEpsilon)
	assert.InDelta(t, result.TotalInterest, totalInterest, 1e-6)
	assert.Equal(t, 0.0, years[len(years)-1].EndingBalance)
}

func TestYearlySummary_PartialYear(t *testing.T) {
	result, err := ComputeAmortization(LoanParameters{Principal: 12000, PeriodicRate: 0, TotalPeriods: 12, ExtraPayment: 250})
	require.NoError(t, err)
	require.Equal(t, 10, result.ActualPeriods)

	years := YearlySummary(result)
	require.Len(t, years, 1)
	assert.InDelta(t, 12000, years[0].Principal, 1e-9)
	assert.Empty(t, YearlySummary(&AmortizationResult{}))
}

func TestMonthlyView(t *testing.T) {
	result, err := ComputeAmortization(LoanParameters{Principal: scenarioPrincipal, PeriodicRate: scenarioRate, TotalPeriods: scenarioPeriods})
	require.NoError(t, err)

	view, truncated := MonthlyView(result, MonthlyViewLimit)
	assert.True(t, truncated)
	assert.Len(t, view, MonthlyViewLimit)
	assert.Equal(t, 60, view[len(view)-1].Period)

	view, truncated = MonthlyView(result, 0)
	assert.False(t, truncated)
	assert.Len(t, view, scenarioPeriods)

	view, truncated = MonthlyView(result, 500)
	assert.False(t, truncated)
	assert.Len(t, view, scenarioPeriods)
}

func TestBalanceSamples(t *testing.T) {
	result, err := ComputeAmortization(LoanParameters{Principal: 12000, PeriodicRate: 0.01, TotalPeriods: 30})
	require.NoError(t, err)
	require.Equal(t, 30, result.ActualPeriods)

	samples := BalanceSamples(result, 12)
	periods := make([]int, 0, len(samples))
	for _, s := range samples {
		periods = append(periods, s.Period)
	}
	assert.Equal(t, []int{1, 13, 25, 30}, periods)
	assert.Empty(t, BalanceSamples(&AmortizationResult{}, 12))
}

func TestRounded(t *testing.T) {
	result, err := ComputeAmortization(LoanParameters{Principal: scenarioPrincipal, PeriodicRate: scenarioRate, TotalPeriods: scenarioPeriods})
	require.NoError(t, err)

	rounded := result.Rounded()
	assert.Equal(t, 741.61, rounded.LevelPayment)
	assert.Equal(t, 53489.78, rounded.TotalInterest)
	assert.Equal(t, 500.0, rounded.Schedule[0].Interest)
	assert.Equal(t, result.ActualPeriods, rounded.ActualPeriods)
}
