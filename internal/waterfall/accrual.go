package waterfall

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// daysBetween returns the number of whole days from one date to another.
// Dates are expected at midnight UTC, so the division is exact.
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// Accrue computes the interest accrued on a capital-account balance between
// two dates at an annual rate given in percent (8 = 8%). Day counting is
// actual/365 with annual compounding:
//
//	interest = balance * ((1 + rate)^(days/365) - 1)
//
// Returns zero when the balance is non-positive or no days have elapsed.
// The exponentiation runs in float64 (decimal has no fractional Pow); all
// monetary arithmetic stays in decimal.
func Accrue(balance, annualRatePct decimal.Decimal, current, prior time.Time) decimal.Decimal {
	if balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	days := daysBetween(prior, current)
	if days <= 0 {
		return decimal.Zero
	}
	rate := annualRatePct.Div(hundred).InexactFloat64()
	if rate <= 0 {
		return decimal.Zero
	}
	factor := math.Pow(1+rate, float64(days)/365.0)
	return balance.Mul(decimal.NewFromFloat(factor - 1))
}
