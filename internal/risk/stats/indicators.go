package stats

import "errors"

// MinReturnObservations is the shortest return series a risk calculation accepts.
const MinReturnObservations = 30

// ErrInsufficientHistory is returned when the price history yields too few returns.
var ErrInsufficientHistory = errors.New("insufficient price history")

// Indicators is the statistical half of a RiskIndicatorSet.
type Indicators struct {
	Volatility   float64  `json:"volatility"`
	VaR95        float64  `json:"var_95"`
	SharpeRatio  float64  `json:"sharpe_ratio"`
	MaxDrawdown  float64  `json:"max_drawdown"`
	Beta         *float64 `json:"beta"`
	Observations int      `json:"observations"`
}

// Calculate derives the indicator set for prices, with beta against benchmark when given.
// Volatility is returned as a percentage to match VaR and drawdown.
func Calculate(prices, benchmark []PricePoint, annualRiskFreeRate float64) (Indicators, error) {
	returns := ComputeReturns(prices)
	if len(returns) < MinReturnObservations {
		return Indicators{Observations: len(returns)}, ErrInsufficientHistory
	}

	ind := Indicators{
		Volatility:   Volatility(returns) * 100,
		VaR95:        VaR95(returns),
		SharpeRatio:  SharpeRatio(returns, annualRiskFreeRate),
		MaxDrawdown:  MaxDrawdown(prices),
		Observations: len(returns),
	}

	if len(benchmark) > 0 {
		a, m := AlignTail(returns, ComputeReturns(benchmark))
		ind.Beta = Beta(a, m)
	}
	return ind, nil
}
