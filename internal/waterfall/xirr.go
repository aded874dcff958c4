package waterfall

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Solver parameters. The iteration caps guarantee the root search terminates
// on pathological cash flow series.
const (
	maxNewtonIterations    = 100
	maxBisectionIterations = 200
	convergenceTolerance   = 1e-9
	derivativeThreshold    = 1e-12
	bracketLow             = -0.9999
	bracketHigh            = 10.0
)

// IRRStatus describes the outcome of a yield calculation.
type IRRStatus int

const (
	// IRRConverged means Rate holds a valid internal rate of return.
	IRRConverged IRRStatus = iota
	// IRRNotEnoughData means the series has fewer than two flows or all
	// amounts share the same sign. Not an error: the IRR is not yet meaningful.
	IRRNotEnoughData
	// IRRDidNotConverge means the root search hit its iteration cap without
	// finding a rate inside the bracket.
	IRRDidNotConverge
)

// IRROutcome is the result of solving for an internal rate of return.
// Rate is only valid when Status is IRRConverged.
type IRROutcome struct {
	Status IRRStatus
	Rate   decimal.Decimal
}

// Converged reports whether the solver found a rate.
func (o IRROutcome) Converged() bool {
	return o.Status == IRRConverged
}

// RatePtr returns the rate as a pointer, or nil when the solver did not
// converge. Convenient for optional result fields.
func (o IRROutcome) RatePtr() *decimal.Decimal {
	if o.Status != IRRConverged {
		return nil
	}
	r := o.Rate
	return &r
}

// XIRR finds the annual rate r such that
//
//	sum( amount_i / (1+r)^(days_i/365) ) = 0
//
// over an irregularly dated cash flow series (negative = outflow, positive =
// inflow). It tries damped Newton-Raphson first and falls back to bisection
// over a fixed bracket. The search runs in float64; the solved rate is an
// analytic, not a monetary amount, so controlled precision is acceptable.
func XIRR(dates []time.Time, amounts []decimal.Decimal) IRROutcome {
	if len(dates) < 2 || len(dates) != len(amounts) {
		return IRROutcome{Status: IRRNotEnoughData}
	}

	t0 := dates[0]
	values := make([]float64, len(amounts))
	years := make([]float64, len(dates))
	hasPositive, hasNegative := false, false
	for i := range amounts {
		v := amounts[i].InexactFloat64()
		values[i] = v
		years[i] = float64(daysBetween(t0, dates[i])) / 365.0
		if v > 0 {
			hasPositive = true
		}
		if v < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return IRROutcome{Status: IRRNotEnoughData}
	}

	// Scale the NPV tolerance by the largest flow so convergence is not
	// defeated by float64 rounding on large notionals.
	maxAbs := 1.0
	for _, v := range values {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	tolerance := convergenceTolerance * maxAbs

	if rate, ok := solveNewton(values, years, tolerance); ok {
		return IRROutcome{Status: IRRConverged, Rate: decimal.NewFromFloat(rate)}
	}
	if rate, ok := solveBisection(values, years, tolerance); ok {
		return IRROutcome{Status: IRRConverged, Rate: decimal.NewFromFloat(rate)}
	}
	return IRROutcome{Status: IRRDidNotConverge}
}

// npv evaluates the discounted sum and its derivative with respect to rate.
func npv(values, years []float64, rate float64) (float64, float64) {
	var sum, deriv float64
	for i := range values {
		t := years[i]
		discount := math.Pow(1+rate, t)
		sum += values[i] / discount
		deriv -= t * values[i] / math.Pow(1+rate, t+1)
	}
	return sum, deriv
}

func solveNewton(values, years []float64, tolerance float64) (float64, bool) {
	rate := 0.1
	for i := 0; i < maxNewtonIterations; i++ {
		sum, deriv := npv(values, years, rate)
		if math.Abs(sum) < tolerance {
			return rate, true
		}
		if math.Abs(deriv) < derivativeThreshold {
			return 0, false
		}
		next := rate - sum/deriv
		// Keep the iterate inside the valid domain; halve toward -100%
		// instead of stepping past it.
		if next <= -1 {
			next = (rate - 1) / 2
		}
		if math.IsNaN(next) || math.IsInf(next, 0) {
			return 0, false
		}
		rate = next
	}
	return 0, false
}

func solveBisection(values, years []float64, tolerance float64) (float64, bool) {
	lo, hi := bracketLow, bracketHigh
	flo, _ := npv(values, years, lo)
	fhi, _ := npv(values, years, hi)
	if flo*fhi > 0 {
		return 0, false
	}
	for i := 0; i < maxBisectionIterations; i++ {
		mid := (lo + hi) / 2
		fmid, _ := npv(values, years, mid)
		if math.Abs(fmid) < tolerance {
			return mid, true
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo = mid
			flo = fmid
		}
	}
	return 0, false
}
