package calculations

import (
	"fmt"

	"github.com/cloud-ru/loan-amortization-go/pkg/utils"
)

// CompareExtraPayment сравнивает график с досрочными доплатами и без них
func CompareExtraPayment(p LoanParameters, opts Options) (*ExtraPaymentComparison, error) {
	// Рассчитываем оба варианта
	baselineParams := p
	baselineParams.ExtraPayment = 0

	baseline, err := ComputeAmortizationWithOptions(baselineParams, opts)
	if err != nil {
		return nil, err
	}

	accelerated, err := ComputeAmortizationWithOptions(p, opts)
	if err != nil {
		return nil, err
	}

	interestSaved := utils.Round2(baseline.TotalInterest - accelerated.TotalInterest)
	periodsSaved := baseline.ActualPeriods - accelerated.ActualPeriods

	var recommendation string
	switch {
	case p.Principal == 0:
		recommendation = "Кредит не требуется: сумма займа равна нулю."
	case !accelerated.Converged:
		recommendation = "График с доплатой не сходится в пределах лимита периодов. Проверьте параметры."
	case p.ExtraPayment == 0:
		recommendation = "Доплата не задана. Укажите сумму доплаты, чтобы оценить экономию."
	case interestSaved > 0:
		recommendation = fmt.Sprintf(
			"Доплата %s в месяц сокращает срок на %d мес. и экономит %s на процентах.",
			utils.FormatMoney(p.ExtraPayment), periodsSaved, utils.FormatMoney(interestSaved))
	default:
		recommendation = "Доплата не дает экономии на процентах (беспроцентный кредит), но сокращает срок."
	}

	return &ExtraPaymentComparison{
		Baseline:       baseline.Rounded(),
		Accelerated:    accelerated.Rounded(),
		InterestSaved:  interestSaved,
		PeriodsSaved:   periodsSaved,
		Recommendation: recommendation,
	}, nil
}
