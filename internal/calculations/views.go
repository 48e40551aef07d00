package calculations

import (
	"github.com/cloud-ru/loan-amortization-go/pkg/utils"
)

const (
	PeriodsPerYear   = 12
	MonthlyViewLimit = 60
)

// YearlySummary группирует график по годам (год = ceil(период / 12))
func YearlySummary(result *AmortizationResult) []YearRecord {
	years := make([]YearRecord, 0, len(result.Schedule)/PeriodsPerYear+1)
	for _, rec := range result.Schedule {
		year := (rec.Period + PeriodsPerYear - 1) / PeriodsPerYear
		if len(years) == 0 || years[len(years)-1].Year != year {
			years = append(years, YearRecord{Year: year})
		}
		y := &years[len(years)-1]
		y.Payment += rec.Payment
		y.Principal += rec.Principal
		y.Interest += rec.Interest
		y.EndingBalance = rec.EndingBalance
	}
	return years
}

// MonthlyView возвращает первые limit записей и признак усечения
func MonthlyView(result *AmortizationResult, limit int) ([]PeriodRecord, bool) {
	if limit <= 0 || limit >= len(result.Schedule) {
		return result.Schedule, false
	}
	return result.Schedule[:limit], true
}

// BalanceSamples возвращает каждую every-ю запись и последнюю (для графика остатка)
func BalanceSamples(result *AmortizationResult, every int) []PeriodRecord {
	if every <= 0 {
		every = PeriodsPerYear
	}
	last := len(result.Schedule) - 1
	samples := make([]PeriodRecord, 0, len(result.Schedule)/every+1)
	for i, rec := range result.Schedule {
		if i%every == 0 || i == last {
			samples = append(samples, rec)
		}
	}
	return samples
}

// Rounded возвращает копию результата с суммами, округленными до 2 знаков
func (r *AmortizationResult) Rounded() AmortizationResult {
	out := *r
	out.LevelPayment = utils.Round2(r.LevelPayment)
	out.TotalInterest = utils.Round2(r.TotalInterest)
	out.TotalPrincipal = utils.Round2(r.TotalPrincipal)
	out.TotalPaid = utils.Round2(r.TotalPaid)
	out.Schedule = make([]PeriodRecord, len(r.Schedule))
	for i, rec := range r.Schedule {
		out.Schedule[i] = PeriodRecord{
			Period:        rec.Period,
			Payment:       utils.Round2(rec.Payment),
			Principal:     utils.Round2(rec.Principal),
			Interest:      utils.Round2(rec.Interest),
			EndingBalance: utils.Round2(rec.EndingBalance),
		}
	}
	return out
}

// RoundYears округляет агрегированные записи
func RoundYears(years []YearRecord) []YearRecord {
	out := make([]YearRecord, len(years))
	for i, y := range years {
		out[i] = YearRecord{
			Year:          y.Year,
			Payment:       utils.Round2(y.Payment),
			Principal:     utils.Round2(y.Principal),
			Interest:      utils.Round2(y.Interest),
			EndingBalance: utils.Round2(y.EndingBalance),
		}
	}
	return out
}
