package calculations

// LoanParameters описывает входные данные расчета графика.
// PeriodicRate задается долей за период (0.00625 = 7.5% годовых / 12).
type LoanParameters struct {
	Principal    float64 `json:"principal"`
	PeriodicRate float64 `json:"periodic_rate"`
	TotalPeriods int     `json:"total_periods"`
	ExtraPayment float64 `json:"extra_payment"`
}

// PeriodRecord представляет одну запись в графике платежей
type PeriodRecord struct {
	Period        int     `json:"period"`
	Payment       float64 `json:"payment"`
	Principal     float64 `json:"principal"`
	Interest      float64 `json:"interest"`
	EndingBalance float64 `json:"ending_balance"`
}

// AmortizationResult представляет результат расчета графика.
// Payment последней записи равен фактически уплаченной сумме (Principal + Interest),
// а не номинальному LevelPayment + ExtraPayment.
type AmortizationResult struct {
	Schedule       []PeriodRecord `json:"schedule"`
	LevelPayment   float64        `json:"level_payment"`
	TotalInterest  float64        `json:"total_interest"`
	TotalPrincipal float64        `json:"total_principal"`
	TotalPaid      float64        `json:"total_paid"`
	ActualPeriods  int            `json:"actual_periods"`
	Converged      bool           `json:"converged"`
}

// IsEmpty сообщает, что кредита нет (нулевая сумма)
func (r *AmortizationResult) IsEmpty() bool {
	return len(r.Schedule) == 0
}

// FinalBalance возвращает остаток после последнего периода
func (r *AmortizationResult) FinalBalance() float64 {
	if len(r.Schedule) == 0 {
		return 0
	}
	return r.Schedule[len(r.Schedule)-1].EndingBalance
}

// Options задает параметры итерации
type Options struct {
	// Epsilon - остаток, при котором кредит считается погашенным
	Epsilon float64
	// CapMultiple ограничивает число периодов: CapMultiple * TotalPeriods
	CapMultiple int
}

const (
	DefaultEpsilon     = 0.01
	DefaultCapMultiple = 2
)

// DefaultOptions возвращает параметры по умолчанию
func DefaultOptions() Options {
	return Options{Epsilon: DefaultEpsilon, CapMultiple: DefaultCapMultiple}
}

func (o Options) normalize() Options {
	if o.Epsilon <= 0 {
		o.Epsilon = DefaultEpsilon
	}
	if o.CapMultiple < 1 {
		o.CapMultiple = DefaultCapMultiple
	}
	return o
}

// YearRecord - агрегированная за год запись графика
type YearRecord struct {
	Year          int     `json:"year"`
	Payment       float64 `json:"payment"`
	Principal     float64 `json:"principal"`
	Interest      float64 `json:"interest"`
	EndingBalance float64 `json:"ending_balance"`
}

// ExtraPaymentComparison представляет результат сравнения графиков с досрочными платежами и без
type ExtraPaymentComparison struct {
	Baseline       AmortizationResult `json:"baseline"`
	Accelerated    AmortizationResult `json:"accelerated"`
	InterestSaved  float64            `json:"interest_saved"`
	PeriodsSaved   int                `json:"periods_saved"`
	Recommendation string             `json:"recommendation"`
}
