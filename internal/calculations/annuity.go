package calculations

import (
	"math"
)

// LevelPayment рассчитывает аннуитетный платеж без учета досрочных доплат:
//
//	r > 0:  P * r * (1+r)^n / ((1+r)^n - 1)
//	r == 0: P / n
//
// Если (1+r)^n переполняется, используется предел P * r.
func LevelPayment(principal, periodicRate float64, periods int) float64 {
	if periods <= 0 || principal <= 0 {
		return 0
	}
	n := float64(periods)
	if periodicRate == 0 {
		return principal / n
	}

	factor := math.Pow(1+periodicRate, n)
	if math.IsInf(factor, 1) {
		return principal * periodicRate
	}
	return principal * (periodicRate * factor) / (factor - 1)
}

// ComputeAmortization рассчитывает график с параметрами итерации по умолчанию
func ComputeAmortization(p LoanParameters) (*AmortizationResult, error) {
	return ComputeAmortizationWithOptions(p, DefaultOptions())
}

// ComputeAmortizationWithOptions рассчитывает график погашения с досрочными доплатами.
// Платеж считается один раз по исходной сумме и сроку и не пересчитывается,
// когда доплаты сокращают срок. Число периодов ограничено CapMultiple * TotalPeriods;
// при достижении лимита возвращается частичный график с Converged == false.
func ComputeAmortizationWithOptions(p LoanParameters, opts Options) (*AmortizationResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	opts = opts.normalize()

	result := &AmortizationResult{
		Schedule:  []PeriodRecord{},
		Converged: true,
	}
	// остаток в пределах epsilon считается погашенным: платеж не начисляется
	if p.Principal <= opts.Epsilon {
		return result, nil
	}

	r := p.PeriodicRate
	level := LevelPayment(p.Principal, r, p.TotalPeriods)
	result.LevelPayment = level

	limit := opts.CapMultiple * p.TotalPeriods
	schedule := make([]PeriodRecord, 0, p.TotalPeriods)
	balance := p.Principal
	period := 0

	for balance > opts.Epsilon && period < limit {
		period++

		interest := balance * r
		principal := level - interest + p.ExtraPayment
		if principal < 0 {
			principal = 0
		}
		// остаток в пределах epsilon гасится в этом же периоде
		if principal >= balance || balance-principal <= opts.Epsilon {
			principal = balance
		}

		balance -= principal
		if balance < 0 {
			balance = 0
		}

		schedule = append(schedule, PeriodRecord{
			Period:        period,
			Payment:       principal + interest,
			Principal:     principal,
			Interest:      interest,
			EndingBalance: balance,
		})

		result.TotalInterest += interest
		result.TotalPrincipal += principal
	}

	result.Schedule = schedule
	result.ActualPeriods = len(schedule)
	result.TotalPaid = result.TotalPrincipal + result.TotalInterest
	result.Converged = balance <= opts.Epsilon

	return result, nil
}
