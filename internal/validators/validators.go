package validators

import (
	"errors"
	"fmt"

	"github.com/cloud-ru/loan-amortization-go/internal/config"
	"github.com/cloud-ru/loan-amortization-go/internal/quote"
	"github.com/cloud-ru/loan-amortization-go/pkg/utils"
)

// ValidatePositiveNumber проверяет, что число конечно и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%s: значение не является конечным числом", name)
	}
	if value < minInclusive {
		return fmt.Errorf("%s: значение должно быть ≥ %.0f", name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%s: значение слишком велико (>%.0f)", name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%s: значение должно быть в диапазоне [%d; %d]", name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита. Ноль допустим: это вырожденный кредит без графика.
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 0.0, cfg.MaxPrincipal)
}

// CheckRate проверяет годовую процентную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckMonths проверяет срок в месяцах
func CheckMonths(cfg *config.Config, months int) error {
	return ValidateIntRange("months", months, 1, cfg.MaxMonths)
}

// CheckExtraPayment проверяет ежемесячную доплату
func CheckExtraPayment(cfg *config.Config, extra float64) error {
	return ValidatePositiveNumber("extra_payment", extra, 0.0, cfg.MaxExtraPayment)
}

// CheckPercent проверяет процент в диапазоне [0; 100]
func CheckPercent(name string, value float64) error {
	return ValidatePositiveNumber(name, value, 0.0, 100.0)
}

// CheckQuote проверяет все поля формы расчета
func CheckQuote(cfg *config.Config, in quote.QuoteInput) error {
	errs := []error{
		ValidatePositiveNumber("property_price", in.PropertyPrice, 0.0, cfg.MaxPrincipal),
		CheckPercent("down_payment_percent", in.DownPaymentPercent),
		CheckRate(cfg, in.AnnualRatePercent),
		ValidateIntRange("term_years", in.TermYears, 1, cfg.MaxMonths/12),
		ValidatePositiveNumber("annual_property_tax", in.AnnualPropertyTax, 0.0, cfg.MaxPrincipal),
		ValidatePositiveNumber("annual_insurance", in.AnnualInsurance, 0.0, cfg.MaxPrincipal),
		ValidatePositiveNumber("closing_costs", in.ClosingCosts, 0.0, cfg.MaxPrincipal),
		ValidatePositiveNumber("survey_fee", in.SurveyFee, 0.0, cfg.MaxPrincipal),
		CheckExtraPayment(cfg, in.ExtraPayment),
	}
	return errors.Join(errs...)
}
