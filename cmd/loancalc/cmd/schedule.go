package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
	"github.com/cloud-ru/loan-amortization-go/internal/validators"
)

var scheduleFlags struct {
	principal float64
	rate      float64
	months    int
	extra     float64
	view      string
	limit     int
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Рассчитывает график погашения",
	Long: `Рассчитывает аннуитетный график по сумме кредита, годовой ставке
и сроку в месяцах. Доплата (--extra) ежемесячно уменьшает основной долг.`,
	RunE: runSchedule,
}

func init() {
	f := scheduleCmd.Flags()
	f.Float64Var(&scheduleFlags.principal, "principal", 80000, "Сумма кредита")
	f.Float64Var(&scheduleFlags.rate, "rate", 7.5, "Годовая ставка, %")
	f.IntVar(&scheduleFlags.months, "months", 180, "Срок в месяцах")
	f.Float64Var(&scheduleFlags.extra, "extra", 0, "Ежемесячная доплата")
	f.StringVar(&scheduleFlags.view, "view", "yearly", "Представление: yearly, monthly, full, chart")
	f.IntVar(&scheduleFlags.limit, "limit", calculations.MonthlyViewLimit, "Число месяцев для --view monthly")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	sf := scheduleFlags
	for _, check := range []error{
		validators.CheckPrincipal(appConfig, sf.principal),
		validators.CheckRate(appConfig, sf.rate),
		validators.CheckMonths(appConfig, sf.months),
		validators.CheckExtraPayment(appConfig, sf.extra),
	} {
		if check != nil {
			printError("неверные параметры", check)
			return check
		}
	}
	if err := validateView(sf.view); err != nil {
		printError("неверные параметры", err)
		return err
	}

	params := calculations.LoanParameters{
		Principal:    sf.principal,
		PeriodicRate: sf.rate / 100 / 12,
		TotalPeriods: sf.months,
		ExtraPayment: sf.extra,
	}
	w := cmd.OutOrStdout()
	renderDivergence(w, params)

	result, err := calculations.ComputeAmortizationWithOptions(params, calcOptions())
	if err != nil {
		printError("расчет", err)
		return err
	}

	fmt.Fprintln(w, titleStyle.Render("График погашения"))
	renderLine(w, "Ежемесячный платеж", money(result.LevelPayment))
	if sf.extra > 0 {
		renderLine(w, "С доплатой", money(result.LevelPayment+sf.extra))
	}
	renderLine(w, "Проценты всего", money(result.TotalInterest))
	renderLine(w, "Выплачено всего", money(result.TotalPaid))
	renderLine(w, "Фактический срок, мес.", fmt.Sprint(result.ActualPeriods))
	fmt.Fprintln(w)

	if result.IsEmpty() {
		fmt.Fprintln(w, "Сумма кредита равна нулю: график пуст.")
		return nil
	}
	renderSchedule(w, result, sf.view, sf.limit)
	return nil
}
