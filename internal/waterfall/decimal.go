// Package waterfall implements the multi-tier equity waterfall distribution
// engine: a pure, synchronous calculation that allocates periodic cash flows
// between a limited partner and a general partner across up to five ordered
// return tiers. The package performs no I/O; callers load tier configuration
// and cash flows, construct an Engine, and consume the Result.
package waterfall

import "github.com/shopspring/decimal"

var (
	zero    = decimal.Zero
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// safeDiv returns a/b, or zero when b is zero. Used for ratios like equity
// multiple where a zero denominator means "not meaningful yet", not an error.
func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}

// minDecimal returns the smaller of a and b.
func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// reduceFloor returns balance - amount, floored at zero.
func reduceFloor(balance, amount decimal.Decimal) decimal.Decimal {
	out := balance.Sub(amount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
