package waterfall

import (
	"github.com/shopspring/decimal"

	"github.com/Greggwolin/landscape-sub003/internal/model"
)

// TierDistribution is the outcome of one tier formula: the amounts allocated
// to each partner and the cash left for later tiers. The formulas are pure;
// the engine applies all state mutation.
type TierDistribution struct {
	LP        decimal.Decimal
	GP        decimal.Decimal
	Remaining decimal.Decimal
}

// Tier1Distribution allocates cash to principal and preferred-return repayment
// up to each partner's Tier 1 capital-account balance.
//
// Under ReturnLPFirst the LP balance is exhausted before GP receives anything;
// under ReturnPariPassu both partners are repaid proportional to their
// remaining balances. When GP catch-up is enabled, GP first receives cash
// ahead of the ordering until its share of cumulative Tier 1 distributions
// (lpPaidToDate/gpPaidToDate) reaches its target ownership percentage.
//
// Returns whatever cash remains after both balances are satisfied or cash
// runs out, whichever comes first.
func Tier1Distribution(
	cash decimal.Decimal,
	lpBalance, gpBalance decimal.Decimal,
	lpPaidToDate, gpPaidToDate decimal.Decimal,
	settings model.WaterfallSettings,
) TierDistribution {
	if cash.LessThanOrEqual(zero) {
		return TierDistribution{LP: zero, GP: zero, Remaining: zero}
	}

	lp, gp := zero, zero
	remaining := cash

	if settings.GPCatchUp {
		gpTarget := one.Sub(settings.LPOwnership)
		need := gpCatchUpNeed(lpPaidToDate, gpPaidToDate, gpTarget)
		take := minDecimal(minDecimal(need, remaining), gpBalance)
		if take.IsPositive() {
			gp = gp.Add(take)
			gpBalance = gpBalance.Sub(take)
			remaining = remaining.Sub(take)
		}
	}

	switch settings.ReturnOfCapital {
	case model.ReturnLPFirst:
		take := minDecimal(remaining, lpBalance)
		lp = lp.Add(take)
		remaining = remaining.Sub(take)

		take = minDecimal(remaining, gpBalance)
		gp = gp.Add(take)
		remaining = remaining.Sub(take)

	default: // pari passu, proportional to remaining balances
		total := lpBalance.Add(gpBalance)
		if total.IsPositive() {
			if remaining.GreaterThanOrEqual(total) {
				lp = lp.Add(lpBalance)
				gp = gp.Add(gpBalance)
				remaining = remaining.Sub(total)
			} else {
				lpTake := minDecimal(remaining.Mul(lpBalance).Div(total), lpBalance)
				gpTake := minDecimal(remaining.Sub(lpTake), gpBalance)
				lp = lp.Add(lpTake)
				gp = gp.Add(gpTake)
				remaining = remaining.Sub(lpTake).Sub(gpTake)
			}
		}
	}

	return TierDistribution{LP: lp, GP: gp, Remaining: remaining}
}

// gpCatchUpNeed solves for the amount x that brings GP's share of cumulative
// Tier 1 distributions up to its target:
//
//	gpPaid + x = target * (lpPaid + gpPaid + x)
func gpCatchUpNeed(lpPaid, gpPaid, target decimal.Decimal) decimal.Decimal {
	denom := one.Sub(target)
	if denom.LessThanOrEqual(zero) {
		return zero
	}
	need := target.Mul(lpPaid.Add(gpPaid)).Sub(gpPaid).Div(denom)
	if need.IsNegative() {
		return zero
	}
	return need
}

// PromoteTierDistribution splits cash at the tier's configured percentages.
// Total tier cash is capped at the LP's remaining capital-account need for
// the tier (lpBalance - priorLPDistributions) grossed up by the LP split, so
// the LP share of a capped distribution exactly exhausts the need and the
// tier closes. The engine reflects prior-tier claw-down directly in the
// balance before calling, so priorLPDistributions is always passed as zero
// in practice.
//
// A tier with a zero LP split can never close its LP need, so it passes cash
// straight through instead of trapping it.
//
// There is no live IRR/EMx re-check here: capital-account exhaustion is the
// only gate between tiers.
func PromoteTierDistribution(
	cash decimal.Decimal,
	tier model.WaterfallTierConfig,
	lpBalance, priorLPDistributions decimal.Decimal,
) TierDistribution {
	if cash.LessThanOrEqual(zero) {
		return TierDistribution{LP: zero, GP: zero, Remaining: zero}
	}
	need := lpBalance.Sub(priorLPDistributions)
	if need.LessThanOrEqual(zero) || !tier.LPSplitPct.IsPositive() {
		return TierDistribution{LP: zero, GP: zero, Remaining: cash}
	}
	tierCash := minDecimal(cash, need.Mul(hundred).Div(tier.LPSplitPct))
	lp := tierCash.Mul(tier.LPSplitPct).Div(hundred)
	gp := tierCash.Mul(tier.GPSplitPct).Div(hundred)
	return TierDistribution{LP: lp, GP: gp, Remaining: cash.Sub(lp).Sub(gp)}
}

// ResidualDistribution is the final tier: it unconditionally splits all
// remaining cash at the tier's configured percentages with no capital-account
// cap. GP takes the complement of the LP share so the residual tier absorbs
// the full remainder.
func ResidualDistribution(cash decimal.Decimal, tier model.WaterfallTierConfig) TierDistribution {
	if cash.LessThanOrEqual(zero) {
		return TierDistribution{LP: zero, GP: zero, Remaining: zero}
	}
	lp := cash.Mul(tier.LPSplitPct).Div(hundred)
	gp := cash.Sub(lp)
	return TierDistribution{LP: lp, GP: gp, Remaining: zero}
}
