package calculations

import (
	"errors"
	"fmt"

	"github.com/cloud-ru/loan-amortization-go/pkg/utils"
)

var (
	// ErrInvalidTerm - срок кредита не положителен
	ErrInvalidTerm = errors.New("invalid term")
	// ErrInvalidParameter - отрицательная или неконечная сумма, ставка или доплата
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNonConvergence - платеж не покрывает начисляемые проценты, график не сходится
	ErrNonConvergence = errors.New("schedule does not converge")
)

// Validate проверяет параметры перед расчетом
func (p LoanParameters) Validate() error {
	if p.TotalPeriods <= 0 {
		return fmt.Errorf("%w: total periods must be positive, got %d", ErrInvalidTerm, p.TotalPeriods)
	}
	checks := []struct {
		name  string
		value float64
	}{
		{"principal", p.Principal},
		{"periodic rate", p.PeriodicRate},
		{"extra payment", p.ExtraPayment},
	}
	for _, c := range checks {
		if !utils.IsFinite(c.value) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidParameter, c.name)
		}
		if c.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidParameter, c.name, c.value)
		}
	}
	return nil
}

// CheckConvergence проверяет до расчета, что платеж с доплатой превышает
// проценты первого периода. Иначе остаток не уменьшается и график упрется в лимит.
func CheckConvergence(p LoanParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Principal == 0 {
		return nil
	}
	payment := LevelPayment(p.Principal, p.PeriodicRate, p.TotalPeriods) + p.ExtraPayment
	interest := p.Principal * p.PeriodicRate
	if !(payment > interest) {
		return fmt.Errorf("%w: payment %.2f does not exceed first period interest %.2f",
			ErrNonConvergence, payment, interest)
	}
	return nil
}
