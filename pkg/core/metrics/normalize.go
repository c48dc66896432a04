package metrics

import (
	"fmt"
	"math"
)

// Source unit scales for ToBillions. The public provider reports monetary
// values in raw dollars; the private form collects revenue in millions.
const (
	UnitScaleDollars  = 1.0
	UnitScaleMillions = 1e6
	UnitScaleBillions = 1e9
)

// ToBillions converts a monetary value from its source unit into billions.
// Both adapters must route every monetary conversion through here so the
// two paths stay bit-identical.
func ToBillions(value, sourceUnitScale float64) float64 {
	return value * sourceUnitScale / 1e9
}

// DeriveProfitMargin computes net income over revenue as a percentage.
// Zero revenue (or any non-finite outcome) is reported as ErrInvalidMetric
// instead of letting NaN/Inf leak into the record.
func DeriveProfitMargin(netIncome, revenue float64) (float64, error) {
	if revenue == 0 {
		return 0, fmt.Errorf("%w: profit margin undefined for zero revenue", ErrInvalidMetric)
	}
	margin := netIncome / revenue * 100
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		return 0, fmt.Errorf("%w: profit margin is non-finite (net income %v, revenue %v)", ErrInvalidMetric, netIncome, revenue)
	}
	return margin, nil
}

// DeriveNetIncome computes net income in billions from revenue in billions
// and a profit margin in percent. Used for private companies, where net
// income is never entered directly.
func DeriveNetIncome(revenueBillions, profitMarginPct float64) float64 {
	return revenueBillions * profitMarginPct / 100
}

// DeriveGrowthPercent computes period-over-period growth in percent from
// the two most recent figures, most recent first. A zero prior period (or
// a non-finite outcome) is reported as ErrInvalidMetric.
func DeriveGrowthPercent(current, previous float64) (float64, error) {
	if previous == 0 {
		return 0, fmt.Errorf("%w: growth undefined for zero prior-period value", ErrInvalidMetric)
	}
	growth := (current/previous - 1) * 100
	if math.IsNaN(growth) || math.IsInf(growth, 0) {
		return 0, fmt.Errorf("%w: growth is non-finite (current %v, previous %v)", ErrInvalidMetric, current, previous)
	}
	return growth, nil
}
