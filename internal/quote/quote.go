// Package quote переводит поля формы расчета (цена, первоначальный взнос,
// годовая ставка, срок в годах, налоги и сборы) в параметры графика и
// считает итоговые показатели кредита.
package quote

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cloud-ru/loan-amortization-go/internal/calculations"
)

// QuoteInput - поля формы расчета. Годовые суммы и проценты, срок в годах.
type QuoteInput struct {
	PropertyPrice      float64 `toml:"property_price" json:"property_price"`
	DownPaymentPercent float64 `toml:"down_payment_percent" json:"down_payment_percent"`
	AnnualRatePercent  float64 `toml:"annual_rate_percent" json:"annual_rate_percent"`
	TermYears          int     `toml:"term_years" json:"term_years"`
	AnnualPropertyTax  float64 `toml:"annual_property_tax" json:"annual_property_tax"`
	AnnualInsurance    float64 `toml:"annual_insurance" json:"annual_insurance"`
	ClosingCosts       float64 `toml:"closing_costs" json:"closing_costs"`
	SurveyFee          float64 `toml:"survey_fee" json:"survey_fee"`
	ExtraPayment       float64 `toml:"extra_payment" json:"extra_payment"`
}

// DefaultQuoteInput возвращает значения формы по умолчанию
func DefaultQuoteInput() QuoteInput {
	return QuoteInput{
		PropertyPrice:      100000,
		DownPaymentPercent: 20,
		AnnualRatePercent:  7.5,
		TermYears:          15,
		AnnualPropertyTax:  1200,
		AnnualInsurance:    500,
		ClosingCosts:       3000,
		SurveyFee:          1500,
		ExtraPayment:       0,
	}
}

// Quote - итоговые показатели кредита
type Quote struct {
	LoanAmount        float64                          `json:"loan_amount"`
	DownPaymentAmount float64                          `json:"down_payment_amount"`
	MonthlyPayment    float64                          `json:"monthly_payment"`
	MonthlyTax        float64                          `json:"monthly_tax"`
	MonthlyInsurance  float64                          `json:"monthly_insurance"`
	TotalMonthlyCost  float64                          `json:"total_monthly_cost"`
	TotalMonthly      float64                          `json:"total_monthly"`
	TotalInterest     float64                          `json:"total_interest"`
	TotalCost         float64                          `json:"total_cost"`
	UpfrontCosts      float64                          `json:"upfront_costs"`
	PayoffMonths      int                              `json:"payoff_months"`
	PayoffDate        time.Time                        `json:"payoff_date"`
	Converged         bool                             `json:"converged"`
	Amortization      *calculations.AmortizationResult `json:"-"`
}

// DownPaymentAmount возвращает сумму первоначального взноса
func (in QuoteInput) DownPaymentAmount() float64 {
	return in.PropertyPrice * (in.DownPaymentPercent / 100)
}

// LoanAmount возвращает сумму кредита. Взнос больше цены дает нулевой кредит.
func (in QuoteInput) LoanAmount() float64 {
	amount := in.PropertyPrice - in.DownPaymentAmount()
	if amount < 0 {
		return 0
	}
	return amount
}

// Parameters переводит форму в параметры графика: ставка/100/12, срок*12
func (in QuoteInput) Parameters() calculations.LoanParameters {
	return calculations.LoanParameters{
		Principal:    in.LoanAmount(),
		PeriodicRate: in.AnnualRatePercent / 100 / 12,
		TotalPeriods: in.TermYears * 12,
		ExtraPayment: in.ExtraPayment,
	}
}

// Calculate рассчитывает итоговые показатели; start - дата, от которой считается дата погашения
func Calculate(in QuoteInput, start time.Time, opts calculations.Options) (*Quote, error) {
	params := in.Parameters()

	result, err := calculations.ComputeAmortizationWithOptions(params, opts)
	if err != nil {
		return nil, fmt.Errorf("amortization: %w", err)
	}

	loanAmount := params.Principal
	monthlyPayment := result.LevelPayment
	monthlyTax := in.AnnualPropertyTax / 12
	monthlyInsurance := in.AnnualInsurance / 12
	totalMonthlyCost := monthlyPayment + monthlyTax + monthlyInsurance

	return &Quote{
		LoanAmount:        loanAmount,
		DownPaymentAmount: in.DownPaymentAmount(),
		MonthlyPayment:    monthlyPayment,
		MonthlyTax:        monthlyTax,
		MonthlyInsurance:  monthlyInsurance,
		TotalMonthlyCost:  totalMonthlyCost,
		TotalMonthly:      totalMonthlyCost + in.ExtraPayment,
		TotalInterest:     result.TotalInterest,
		TotalCost:         loanAmount + result.TotalInterest + in.ClosingCosts + in.SurveyFee,
		UpfrontCosts:      in.DownPaymentAmount() + in.ClosingCosts + in.SurveyFee,
		PayoffMonths:      result.ActualPeriods,
		PayoffDate:        start.AddDate(0, result.ActualPeriods, 0),
		Converged:         result.Converged,
		Amortization:      result,
	}, nil
}

// LoadFile читает форму из TOML файла; отсутствующие поля берутся по умолчанию
func LoadFile(path string) (QuoteInput, error) {
	in := DefaultQuoteInput()
	if _, err := toml.DecodeFile(path, &in); err != nil {
		return QuoteInput{}, fmt.Errorf("decode quote file %s: %w", path, err)
	}
	return in, nil
}
