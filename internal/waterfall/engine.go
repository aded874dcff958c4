package waterfall

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Greggwolin/landscape-sub003/internal/apperrors"
	"github.com/Greggwolin/landscape-sub003/internal/model"
)

// Engine runs the multi-tier waterfall over a dated cash flow series.
// Construction validates and normalizes all inputs; Calculate has no failure
// modes of its own and no side effects outside the instance.
type Engine struct {
	tiers    []model.WaterfallTierConfig // normalized, sorted by tier number
	settings model.WaterfallSettings
	flows    []model.CashFlow // sorted ascending by date

	// fixedTargets selects the EMx capital-account strategy: targets are set
	// once at contribution time and never accrete. Decided at construction so
	// the per-period loop does not re-branch on the hurdle method.
	fixedTargets bool

	lp, gp       *PartnerState
	unpaidPref   decimal.Decimal
	unpaidHurdle decimal.Decimal
}

// NewEngine validates the configuration and prepares a calculation over the
// given cash flows. The flows are copied and sorted ascending by date; the
// caller's slice is never mutated. Configuration problems are rejected here,
// before any period is processed.
func NewEngine(
	tiers []model.WaterfallTierConfig,
	settings model.WaterfallSettings,
	flows []model.CashFlow,
) (*Engine, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	normalized, err := normalizeTiers(tiers, settings)
	if err != nil {
		return nil, err
	}
	sorted, err := sortFlows(flows)
	if err != nil {
		return nil, err
	}
	return &Engine{
		tiers:        normalized,
		settings:     settings,
		flows:        sorted,
		fixedTargets: settings.HurdleMethod == model.HurdleEMx,
	}, nil
}

func validateSettings(s model.WaterfallSettings) error {
	switch s.HurdleMethod {
	case model.HurdleIRR, model.HurdleEMx, model.HurdleIRRAndEMx:
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidHurdleMethod, s.HurdleMethod)
	}
	switch s.ReturnOfCapital {
	case model.ReturnLPFirst, model.ReturnPariPassu:
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidReturnOfCapital, s.ReturnOfCapital)
	}
	if s.LPOwnership.LessThanOrEqual(zero) || s.LPOwnership.GreaterThan(one) {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidOwnership, s.LPOwnership)
	}
	if s.PreferredReturnPct.IsNegative() {
		return fmt.Errorf("%w: preferred return %s", apperrors.ErrInvalidSplit, s.PreferredReturnPct)
	}
	return nil
}

// normalizeTiers sorts the configs by tier number, keeps the active count,
// fills default names, and enforces the construction-time invariants:
// contiguous tier numbers from 1, valid splits, and the hurdles the selected
// method requires.
func normalizeTiers(tiers []model.WaterfallTierConfig, s model.WaterfallSettings) ([]model.WaterfallTierConfig, error) {
	if s.NumTiers < 1 || s.NumTiers > MaxTiers {
		return nil, fmt.Errorf("%w: num_tiers %d", apperrors.ErrInvalidTierCount, s.NumTiers)
	}
	if len(tiers) < s.NumTiers {
		return nil, fmt.Errorf("%w: num_tiers %d but only %d tiers supplied",
			apperrors.ErrInvalidTierCount, s.NumTiers, len(tiers))
	}

	normalized := make([]model.WaterfallTierConfig, len(tiers))
	copy(normalized, tiers)
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].TierNumber < normalized[j].TierNumber
	})
	normalized = normalized[:s.NumTiers]

	needsIRR := s.HurdleMethod == model.HurdleIRR || s.HurdleMethod == model.HurdleIRRAndEMx
	needsEMx := s.HurdleMethod == model.HurdleEMx || s.HurdleMethod == model.HurdleIRRAndEMx

	for i := range normalized {
		t := &normalized[i]
		if t.TierNumber != i+1 {
			return nil, fmt.Errorf("%w: got tier %d at position %d",
				apperrors.ErrNonContiguousTiers, t.TierNumber, i+1)
		}
		if t.TierName == "" {
			t.TierName = fmt.Sprintf("Tier %d", t.TierNumber)
		}
		if t.LPSplitPct.IsNegative() || t.GPSplitPct.IsNegative() ||
			t.LPSplitPct.Add(t.GPSplitPct).GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: tier %d lp=%s gp=%s",
				apperrors.ErrInvalidSplit, t.TierNumber, t.LPSplitPct, t.GPSplitPct)
		}

		residual := i == s.NumTiers-1
		if residual {
			continue // the final tier has no hurdle target
		}
		// Tier 1 accrues at the preferred return rate, not an IRR hurdle.
		if needsIRR && i > 0 && t.IRRHurdle == nil {
			return nil, fmt.Errorf("%w: tier %d requires an IRR hurdle",
				apperrors.ErrMissingHurdle, t.TierNumber)
		}
		if needsEMx && t.EMxHurdle == nil {
			return nil, fmt.Errorf("%w: tier %d requires an EMx hurdle",
				apperrors.ErrMissingHurdle, t.TierNumber)
		}
	}
	return normalized, nil
}

// sortFlows copies the flows sorted ascending by date. Duplicate period IDs
// are a caller contract violation surfaced as a configuration error, never
// silently merged.
func sortFlows(flows []model.CashFlow) ([]model.CashFlow, error) {
	seen := make(map[int]struct{}, len(flows))
	for _, f := range flows {
		if _, dup := seen[f.PeriodID]; dup {
			return nil, fmt.Errorf("%w: period %d", apperrors.ErrDuplicatePeriodID, f.PeriodID)
		}
		seen[f.PeriodID] = struct{}{}
	}
	sorted := make([]model.CashFlow, len(flows))
	copy(sorted, flows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted, nil
}

// startOfMonth returns the first day of the date's month. Used as the prior
// date of period 1 so the first contribution accrues for a partial period
// rather than zero days.
func startOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// reset rebuilds all mutable run state so Calculate is repeatable: identical
// inputs produce identical results on every call.
func (e *Engine) reset() {
	e.lp = newPartnerState(model.PartnerLP)
	e.gp = newPartnerState(model.PartnerGP)
	e.unpaidPref = decimal.Zero
	e.unpaidHurdle = decimal.Zero
}

// Calculate processes every cash flow period in ascending date order and
// returns the full waterfall result. Periods depend on the prior period's
// ending capital-account balances, so the loop is strictly sequential.
func (e *Engine) Calculate() *Result {
	e.reset()

	periods := make([]PeriodResult, 0, len(e.flows))
	cumulative := decimal.Zero

	for i, cf := range e.flows {
		var prior time.Time
		if i == 0 {
			prior = startOfMonth(cf.Date)
		} else {
			prior = e.flows[i-1].Date
		}

		cumulative = cumulative.Add(cf.Amount)
		pr := PeriodResult{
			PeriodID:           cf.PeriodID,
			Date:               cf.Date,
			NetCashFlow:        cf.Amount,
			CumulativeCashFlow: cumulative,
		}

		contribution := decimal.Zero
		if cf.Amount.IsNegative() {
			contribution = cf.Amount.Neg()
		}

		// Period 1 posts its contribution before accrual so capital deployed
		// at the start of the period accrues through period end. All later
		// periods accrue first on the prior ending balances.
		if i == 0 {
			if contribution.IsPositive() {
				e.postContribution(cf.Date, contribution, &pr)
			}
			e.applyAccruals(cf.Date, prior, &pr)
		} else {
			e.applyAccruals(cf.Date, prior, &pr)
			if contribution.IsPositive() {
				e.postContribution(cf.Date, contribution, &pr)
			}
		}

		if cf.Amount.IsPositive() {
			e.distribute(cf.Date, cf.Amount, &pr)
		}

		pr.LPIRR = e.lp.runningIRR().RatePtr()
		pr.GPIRR = e.gp.runningIRR().RatePtr()
		pr.LPEquityMultiple = e.lp.equityMultiple()
		pr.GPEquityMultiple = e.gp.equityMultiple()
		pr.LPCapitalAccounts = e.lp.CapitalAccounts.Snapshot()
		pr.GPCapitalAccounts = e.gp.CapitalAccounts.Snapshot()

		// Pay down the accrued-but-unpaid trackers with whatever this
		// period's tier 1 and tier 2 distributions covered.
		paidPref := pr.TierDistributions[0].LP.Add(pr.TierDistributions[0].GP)
		e.unpaidPref = reduceFloor(e.unpaidPref, paidPref)
		paidHurdle := pr.TierDistributions[1].LP.Add(pr.TierDistributions[1].GP)
		e.unpaidHurdle = reduceFloor(e.unpaidHurdle, paidHurdle)
		pr.UnpaidPreferredReturn = e.unpaidPref
		pr.UnpaidHurdleInterest = e.unpaidHurdle

		periods = append(periods, pr)
	}

	return e.buildResult(periods)
}

// postContribution splits a contribution pro-rata by LP ownership into both
// partners' totals, yield series, and capital accounts. The capital-account
// posting depends on the strategy: fixed EMx targets are set once at
// contribution time; accrual-based accounts start at the raw contribution
// and grow every period.
func (e *Engine) postContribution(date time.Time, amount decimal.Decimal, pr *PeriodResult) {
	lpShare := amount.Mul(e.settings.LPOwnership)
	gpShare := amount.Sub(lpShare)

	if lpShare.IsPositive() {
		e.lp.recordContribution(date, lpShare)
	}
	if gpShare.IsPositive() {
		e.gp.recordContribution(date, gpShare)
	}
	pr.LPContribution = pr.LPContribution.Add(lpShare)
	pr.GPContribution = pr.GPContribution.Add(gpShare)

	for i, tier := range e.tiers {
		if i == len(e.tiers)-1 {
			continue // the residual tier carries no target
		}
		n := tier.TierNumber
		if e.fixedTargets {
			if tier.EMxHurdle != nil {
				e.lp.CapitalAccounts.Add(n, lpShare.Mul(*tier.EMxHurdle))
				e.gp.CapitalAccounts.Add(n, gpShare.Mul(*tier.EMxHurdle))
			}
			continue
		}
		e.lp.CapitalAccounts.Add(n, lpShare)
		e.gp.CapitalAccounts.Add(n, gpShare)
	}
}

// tierRate returns the annual accrual rate (percent) for a tier index:
// tier 1 accrues at the preferred return rate, later tiers at their IRR
// hurdle.
func (e *Engine) tierRate(i int) decimal.Decimal {
	if i == 0 {
		return e.settings.PreferredReturnPct
	}
	if e.tiers[i].IRRHurdle != nil {
		return *e.tiers[i].IRRHurdle
	}
	return decimal.Zero
}

// applyAccruals grows every non-residual tier's capital accounts for the
// elapsed days. Fixed EMx targets never accrete.
func (e *Engine) applyAccruals(current, prior time.Time, pr *PeriodResult) {
	if e.fixedTargets {
		return
	}
	for i, tier := range e.tiers {
		if i == len(e.tiers)-1 {
			continue
		}
		rate := e.tierRate(i)
		if !rate.IsPositive() {
			continue
		}
		n := tier.TierNumber
		lpAcc := Accrue(e.lp.CapitalAccounts.Balance(n), rate, current, prior)
		gpAcc := Accrue(e.gp.CapitalAccounts.Balance(n), rate, current, prior)
		if lpAcc.IsPositive() {
			e.lp.CapitalAccounts.Add(n, lpAcc)
		}
		if gpAcc.IsPositive() {
			e.gp.CapitalAccounts.Add(n, gpAcc)
		}
		pr.TierAccruals[i] = TierAmount{LP: lpAcc, GP: gpAcc}

		switch i {
		case 0:
			e.lp.PreferredAccrued = e.lp.PreferredAccrued.Add(lpAcc)
			e.gp.PreferredAccrued = e.gp.PreferredAccrued.Add(gpAcc)
			e.unpaidPref = e.unpaidPref.Add(lpAcc).Add(gpAcc)
		case 1:
			e.unpaidHurdle = e.unpaidHurdle.Add(lpAcc).Add(gpAcc)
		}
	}
}

// distribute pushes the period's positive cash flow through the tiers in
// order, applying each formula's result to partner state and clawing down
// later tiers immediately after every LP distribution.
func (e *Engine) distribute(date time.Time, cash decimal.Decimal, pr *PeriodResult) {
	n := len(e.tiers)
	remaining := cash
	lpTotal, gpTotal := decimal.Zero, decimal.Zero

	for i := 0; i < n && remaining.IsPositive(); i++ {
		tier := e.tiers[i]

		var d TierDistribution
		switch {
		case i == n-1:
			d = ResidualDistribution(remaining, tier)
		case i == 0:
			d = Tier1Distribution(
				remaining,
				e.lp.CapitalAccounts.Balance(1),
				e.gp.CapitalAccounts.Balance(1),
				e.lp.TierDistributions[0],
				e.gp.TierDistributions[0],
				e.settings,
			)
		default:
			// Prior-tier claw-down is already reflected in the balance, so
			// the prior-distribution argument is zero.
			d = PromoteTierDistribution(remaining, tier, e.lp.CapitalAccounts.Balance(tier.TierNumber), decimal.Zero)
		}

		if d.LP.IsPositive() || d.GP.IsPositive() {
			e.applyTierDistribution(i, d, pr)
		}
		remaining = d.Remaining
		lpTotal = lpTotal.Add(d.LP)
		gpTotal = gpTotal.Add(d.GP)
	}

	if lpTotal.IsPositive() {
		e.lp.recordInflow(date, lpTotal)
	}
	if gpTotal.IsPositive() {
		e.gp.recordInflow(date, gpTotal)
	}
}

// applyTierDistribution folds one tier's result into partner state: totals,
// this tier's capital accounts, and the claw-down of the LP amount from every
// later tier's LP balance.
func (e *Engine) applyTierDistribution(i int, d TierDistribution, pr *PeriodResult) {
	n := e.tiers[i].TierNumber
	e.lp.recordTierDistribution(n, d.LP)
	e.gp.recordTierDistribution(n, d.GP)
	pr.TierDistributions[i].LP = pr.TierDistributions[i].LP.Add(d.LP)
	pr.TierDistributions[i].GP = pr.TierDistributions[i].GP.Add(d.GP)

	e.lp.CapitalAccounts.Reduce(n, d.LP)
	e.gp.CapitalAccounts.Reduce(n, d.GP)

	if d.LP.IsPositive() {
		for later := i + 1; later < len(e.tiers); later++ {
			e.lp.CapitalAccounts.Reduce(e.tiers[later].TierNumber, d.LP)
		}
	}
}

func (e *Engine) buildResult(periods []PeriodResult) *Result {
	lpSummary := partnerSummary(e.lp)
	gpSummary := partnerSummary(e.gp)

	totalContrib := e.lp.TotalContributions.Add(e.gp.TotalContributions)
	totalDist := e.lp.TotalDistributions.Add(e.gp.TotalDistributions)

	return &Result{
		Periods:   periods,
		LPSummary: lpSummary,
		GPSummary: gpSummary,
		ProjectSummary: ProjectSummary{
			TotalContributions: totalContrib,
			TotalDistributions: totalDist,
			TotalProfit:        totalDist.Sub(totalContrib),
			EquityMultiple:     safeDiv(totalDist, totalContrib),
			IRR:                blendedIRR(e.lp, e.gp).RatePtr(),
		},
		LPState: e.lp,
		GPState: e.gp,
	}
}

// partnerSummary derives the read-only aggregates from a partner's final
// state, including the category breakdown. The LP's tier 1 distributions are
// split into preferred return (up to the accrued preferred) and return of
// capital; everything above tier 1 is excess cash flow. For the GP, tier 1
// is return of capital and the rest is promote.
func partnerSummary(p *PartnerState) PartnerSummary {
	tier1 := p.TierDistributions[0]
	upper := decimal.Zero
	for i := 1; i < MaxTiers; i++ {
		upper = upper.Add(p.TierDistributions[i])
	}

	var breakdown DistributionBreakdown
	if p.PartnerType == model.PartnerLP {
		pref := minDecimal(tier1, p.PreferredAccrued)
		breakdown = DistributionBreakdown{
			ReturnOfCapital: tier1.Sub(pref),
			PreferredReturn: pref,
			ExcessCashFlow:  upper,
		}
	} else {
		breakdown = DistributionBreakdown{
			ReturnOfCapital: tier1,
			Promote:         upper,
		}
	}

	return PartnerSummary{
		PartnerType:        p.PartnerType,
		TotalContributions: p.TotalContributions,
		TotalDistributions: p.TotalDistributions,
		TotalProfit:        p.TotalDistributions.Sub(p.TotalContributions),
		EquityMultiple:     p.equityMultiple(),
		IRR:                p.runningIRR().RatePtr(),
		TierDistributions:  p.TierDistributions,
		Breakdown:          breakdown,
	}
}

// blendedIRR solves the project-level IRR over the union of both partners'
// dated cash flows, merged in date order.
func blendedIRR(lp, gp *PartnerState) IRROutcome {
	type flow struct {
		date   time.Time
		amount decimal.Decimal
	}
	merged := make([]flow, 0, len(lp.CashFlowDates)+len(gp.CashFlowDates))
	for i := range lp.CashFlowDates {
		merged = append(merged, flow{lp.CashFlowDates[i], lp.CashFlowAmounts[i]})
	}
	for i := range gp.CashFlowDates {
		merged = append(merged, flow{gp.CashFlowDates[i], gp.CashFlowAmounts[i]})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].date.Before(merged[j].date)
	})

	dates := make([]time.Time, len(merged))
	amounts := make([]decimal.Decimal, len(merged))
	for i, f := range merged {
		dates[i] = f.date
		amounts[i] = f.amount
	}
	return XIRR(dates, amounts)
}
