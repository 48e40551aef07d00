package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
	"github.com/cloud-ru/loan-amortization-go/pkg/utils"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2c5f2d"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f4a259"))
)

var (
	scheduleHeaders = []string{"Период", "Платеж", "Основной долг", "Проценты", "Остаток"}
	chartHeaders    = []string{"Период", "Остаток", ""}
)

const chartWidth = 40

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
}

func money(v float64) string {
	return "$" + utils.FormatMoney(v)
}

func renderMonthly(w io.Writer, records []calculations.PeriodRecord, truncated bool) {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			"Месяц " + strconv.Itoa(rec.Period),
			money(rec.Payment),
			money(rec.Principal),
			money(rec.Interest),
			money(rec.EndingBalance),
		})
	}
	fmt.Fprintln(w, newTable(scheduleHeaders, rows).String())
	if truncated {
		fmt.Fprintf(w, "Показаны первые %d месяцев. Используйте --view yearly для полного графика.\n", len(records))
	}
}

func renderYearly(w io.Writer, years []calculations.YearRecord) {
	rows := make([][]string, 0, len(years))
	for _, y := range years {
		rows = append(rows, []string{
			"Год " + strconv.Itoa(y.Year),
			money(y.Payment),
			money(y.Principal),
			money(y.Interest),
			money(y.EndingBalance),
		})
	}
	fmt.Fprintln(w, newTable(scheduleHeaders, rows).String())
}

// renderBalanceChart рисует остаток долга на начало каждого года полосой
func renderBalanceChart(w io.Writer, result *calculations.AmortizationResult) {
	if result.IsEmpty() {
		return
	}
	first := result.Schedule[0]
	start := first.EndingBalance + first.Principal

	samples := calculations.BalanceSamples(result, calculations.PeriodsPerYear)
	rows := make([][]string, 0, len(samples))
	for _, rec := range samples {
		bar := int(rec.EndingBalance / start * chartWidth)
		rows = append(rows, []string{
			"Месяц " + strconv.Itoa(rec.Period),
			money(rec.EndingBalance),
			strings.Repeat("█", min(bar, chartWidth)),
		})
	}
	fmt.Fprintln(w, newTable(chartHeaders, rows).String())
}

func renderSchedule(w io.Writer, result *calculations.AmortizationResult, view string, limit int) {
	switch view {
	case "monthly":
		records, truncated := calculations.MonthlyView(result, limit)
		renderMonthly(w, records, truncated)
	case "full":
		renderMonthly(w, result.Schedule, false)
	case "chart":
		renderBalanceChart(w, result)
	default:
		renderYearly(w, calculations.YearlySummary(result))
	}
	if !result.Converged {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf(
			"Внимание: кредит не погашен за %d периодов, остаток %s. Платеж с доплатой не покрывает проценты.",
			result.ActualPeriods, money(result.FinalBalance()))))
	}
}

// renderDivergence печатает диагностику до расчета, если платеж не покрывает проценты
func renderDivergence(w io.Writer, p calculations.LoanParameters) {
	err := calculations.CheckConvergence(p)
	if !errors.Is(err, calculations.ErrNonConvergence) {
		return
	}
	fmt.Fprintln(w, warningStyle.Render("Внимание: платеж с доплатой не превышает проценты, график не сойдется ("+err.Error()+")"))
}

func renderLine(w io.Writer, label string, value string) {
	fmt.Fprintf(w, "  %-28s %s\n", label+":", value)
}

func validateView(view string) error {
	switch view {
	case "yearly", "monthly", "full", "chart":
		return nil
	}
	return fmt.Errorf("view: неизвестное представление %q", view)
}
