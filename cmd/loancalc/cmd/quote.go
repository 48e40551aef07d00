package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/loan-amortization-go/internal/quote"
	"github.com/cloud-ru/loan-amortization-go/internal/validators"
)

var (
	quoteFile  string
	quoteView  string
	quoteInput = quote.DefaultQuoteInput()
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Расчет по форме покупки участка",
	Long: `Считает сумму кредита по цене и первоначальному взносу, ежемесячный
платеж с налогом и страховкой, переплату, полную стоимость и дату погашения.

Параметры читаются из TOML файла (--file), флаги переопределяют значения файла.`,
	RunE: runQuote,
}

func init() {
	f := quoteCmd.Flags()
	f.StringVar(&quoteFile, "file", "", "TOML файл с параметрами формы")
	f.StringVar(&quoteView, "view", "yearly", "Представление графика: yearly, monthly, full, chart")
	f.Float64Var(&quoteInput.PropertyPrice, "price", quoteInput.PropertyPrice, "Цена участка")
	f.Float64Var(&quoteInput.DownPaymentPercent, "down-payment", quoteInput.DownPaymentPercent, "Первоначальный взнос, %")
	f.Float64Var(&quoteInput.AnnualRatePercent, "rate", quoteInput.AnnualRatePercent, "Годовая ставка, %")
	f.IntVar(&quoteInput.TermYears, "years", quoteInput.TermYears, "Срок в годах")
	f.Float64Var(&quoteInput.AnnualPropertyTax, "tax", quoteInput.AnnualPropertyTax, "Налог на имущество в год")
	f.Float64Var(&quoteInput.AnnualInsurance, "insurance", quoteInput.AnnualInsurance, "Страховка в год")
	f.Float64Var(&quoteInput.ClosingCosts, "closing-costs", quoteInput.ClosingCosts, "Расходы на оформление")
	f.Float64Var(&quoteInput.SurveyFee, "survey-fee", quoteInput.SurveyFee, "Межевание")
	f.Float64Var(&quoteInput.ExtraPayment, "extra", quoteInput.ExtraPayment, "Ежемесячная доплата")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	in := quoteInput
	if quoteFile != "" {
		fromFile, err := quote.LoadFile(quoteFile)
		if err != nil {
			printError("файл формы", err)
			return err
		}
		in = mergeChangedFlags(cmd, fromFile, quoteInput)
	}

	if err := validateView(quoteView); err != nil {
		printError("неверные параметры", err)
		return err
	}
	if err := validators.CheckQuote(appConfig, in); err != nil {
		printError("неверные параметры", err)
		return err
	}

	w := cmd.OutOrStdout()
	renderDivergence(w, in.Parameters())

	q, err := quote.Calculate(in, time.Now(), calcOptions())
	if err != nil {
		printError("расчет", err)
		return err
	}

	fmt.Fprintln(w, titleStyle.Render("Расчет кредита"))
	renderLine(w, "Сумма кредита", money(q.LoanAmount))
	renderLine(w, "Первоначальный взнос", money(q.DownPaymentAmount))
	renderLine(w, "Платеж (основной долг и %)", money(q.MonthlyPayment))
	renderLine(w, "Налог в месяц", money(q.MonthlyTax))
	renderLine(w, "Страховка в месяц", money(q.MonthlyInsurance))
	if in.ExtraPayment > 0 {
		renderLine(w, "Доплата", money(in.ExtraPayment))
	}
	renderLine(w, "Итого в месяц", money(q.TotalMonthly))
	renderLine(w, "Проценты всего", money(q.TotalInterest))
	renderLine(w, "Полная стоимость", money(q.TotalCost))
	renderLine(w, "Расходы при покупке", money(q.UpfrontCosts))
	renderLine(w, "Дата погашения", q.PayoffDate.Format("Jan 2006"))
	fmt.Fprintln(w)

	if q.Amortization.IsEmpty() {
		fmt.Fprintln(w, "Сумма кредита равна нулю: график пуст.")
		return nil
	}
	renderSchedule(w, q.Amortization, quoteView, 60)
	return nil
}

// mergeChangedFlags накладывает явно заданные флаги на значения из файла
func mergeChangedFlags(cmd *cobra.Command, base, flags quote.QuoteInput) quote.QuoteInput {
	changed := cmd.Flags().Changed
	if changed("price") {
		base.PropertyPrice = flags.PropertyPrice
	}
	if changed("down-payment") {
		base.DownPaymentPercent = flags.DownPaymentPercent
	}
	if changed("rate") {
		base.AnnualRatePercent = flags.AnnualRatePercent
	}
	if changed("years") {
		base.TermYears = flags.TermYears
	}
	if changed("tax") {
		base.AnnualPropertyTax = flags.AnnualPropertyTax
	}
	if changed("insurance") {
		base.AnnualInsurance = flags.AnnualInsurance
	}
	if changed("closing-costs") {
		base.ClosingCosts = flags.ClosingCosts
	}
	if changed("survey-fee") {
		base.SurveyFee = flags.SurveyFee
	}
	if changed("extra") {
		base.ExtraPayment = flags.ExtraPayment
	}
	return base
}
