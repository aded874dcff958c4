package waterfall_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Greggwolin/landscape-sub003/internal/waterfall"
)

func TestXIRR(t *testing.T) {
	t.Run("reports not enough data for fewer than two flows", func(t *testing.T) {
		out := waterfall.XIRR(
			[]time.Time{date(2023, 1, 1)},
			[]decimal.Decimal{decimal.NewFromInt(-1000)},
		)
		if out.Status != waterfall.IRRNotEnoughData {
			t.Errorf("Expected IRRNotEnoughData, got %v", out.Status)
		}
		if out.RatePtr() != nil {
			t.Error("Expected nil rate pointer for non-converged outcome")
		}
	})

	t.Run("reports not enough data when all amounts share a sign", func(t *testing.T) {
		out := waterfall.XIRR(
			[]time.Time{date(2023, 1, 1), date(2023, 6, 1), date(2024, 1, 1)},
			[]decimal.Decimal{
				decimal.NewFromInt(-1000),
				decimal.NewFromInt(-500),
				decimal.NewFromInt(-200),
			},
		)
		if out.Status != waterfall.IRRNotEnoughData {
			t.Errorf("Expected IRRNotEnoughData, got %v", out.Status)
		}
	})

	t.Run("solves a one-year round trip exactly", func(t *testing.T) {
		// -1000 now, +1100 in 365 days: r = 10%.
		out := waterfall.XIRR(
			[]time.Time{date(2023, 1, 1), date(2024, 1, 1)},
			[]decimal.Decimal{decimal.NewFromInt(-1000), decimal.NewFromInt(1100)},
		)
		if !out.Converged() {
			t.Fatalf("Expected convergence, got status %v", out.Status)
		}
		if !approxEqual(out.Rate, decimal.NewFromFloat(0.10), 1e-6) {
			t.Errorf("Expected rate ~0.10, got %s", out.Rate)
		}
	})

	t.Run("solves a two-year compounded round trip", func(t *testing.T) {
		// -1000 now, +1210 in 730 days: (1+r)^2 = 1.21, r = 10%.
		out := waterfall.XIRR(
			[]time.Time{date(2023, 1, 1), date(2024, 12, 31)},
			[]decimal.Decimal{decimal.NewFromInt(-1000), decimal.NewFromInt(1210)},
		)
		if !out.Converged() {
			t.Fatalf("Expected convergence, got status %v", out.Status)
		}
		if !approxEqual(out.Rate, decimal.NewFromFloat(0.10), 1e-6) {
			t.Errorf("Expected rate ~0.10, got %s", out.Rate)
		}
	})

	t.Run("solves deeply negative returns", func(t *testing.T) {
		// -100000 now, +2000 in a year: r close to -98%.
		out := waterfall.XIRR(
			[]time.Time{date(2023, 1, 1), date(2024, 1, 1)},
			[]decimal.Decimal{decimal.NewFromInt(-100000), decimal.NewFromInt(2000)},
		)
		if !out.Converged() {
			t.Fatalf("Expected convergence, got status %v", out.Status)
		}
		if !approxEqual(out.Rate, decimal.NewFromFloat(-0.98), 1e-4) {
			t.Errorf("Expected rate ~-0.98, got %s", out.Rate)
		}
	})

	t.Run("solved rate zeroes the discounted sum", func(t *testing.T) {
		dates := []time.Time{
			date(2023, 1, 15),
			date(2023, 4, 15),
			date(2023, 9, 15),
			date(2024, 3, 15),
		}
		amounts := []decimal.Decimal{
			decimal.NewFromInt(-50000),
			decimal.NewFromInt(10000),
			decimal.NewFromInt(20000),
			decimal.NewFromInt(30000),
		}
		out := waterfall.XIRR(dates, amounts)
		if !out.Converged() {
			t.Fatalf("Expected convergence, got status %v", out.Status)
		}

		rate := out.Rate.InexactFloat64()
		var npv float64
		for i := range dates {
			days := dates[i].Sub(dates[0]).Hours() / 24
			npv += amounts[i].InexactFloat64() / math.Pow(1+rate, days/365)
		}
		if math.Abs(npv) > 1e-3 {
			t.Errorf("NPV at solved rate should be ~0, got %g", npv)
		}
	})

	t.Run("is deterministic across repeated calls", func(t *testing.T) {
		dates := []time.Time{date(2023, 1, 1), date(2023, 7, 1), date(2024, 1, 1)}
		amounts := []decimal.Decimal{
			decimal.NewFromInt(-1000),
			decimal.NewFromInt(300),
			decimal.NewFromInt(900),
		}
		first := waterfall.XIRR(dates, amounts)
		second := waterfall.XIRR(dates, amounts)
		if first.Status != second.Status || !first.Rate.Equal(second.Rate) {
			t.Errorf("Expected identical outcomes, got %v/%s and %v/%s",
				first.Status, first.Rate, second.Status, second.Rate)
		}
	})
}
