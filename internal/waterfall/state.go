package waterfall

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Greggwolin/landscape-sub003/internal/model"
)

// MaxTiers is the maximum number of return tiers a waterfall supports.
const MaxTiers = 5

// TierCapitalAccounts holds one balance per tier: the amount still owed to a
// partner under that tier's target before the next tier may receive cash.
// Balances are addressed by tier number (1..MaxTiers) through explicit
// accessors; there is no reflection-style lookup.
type TierCapitalAccounts struct {
	balances [MaxTiers]decimal.Decimal
}

// Balance returns the balance for the given tier number (1-based).
func (t *TierCapitalAccounts) Balance(tier int) decimal.Decimal {
	return t.balances[tier-1]
}

// Add increases the given tier's balance.
func (t *TierCapitalAccounts) Add(tier int, amount decimal.Decimal) {
	t.balances[tier-1] = t.balances[tier-1].Add(amount)
}

// Reduce decreases the given tier's balance, flooring at zero.
func (t *TierCapitalAccounts) Reduce(tier int, amount decimal.Decimal) {
	t.balances[tier-1] = reduceFloor(t.balances[tier-1], amount)
}

// Snapshot returns a copy of all five balances.
func (t *TierCapitalAccounts) Snapshot() [MaxTiers]decimal.Decimal {
	return t.balances
}

// PartnerState accumulates one partner's running totals over an engine run.
// It is owned exclusively by the engine while Calculate executes and is
// read-only once the run completes.
type PartnerState struct {
	PartnerID          string                    `json:"partnerId"`
	PartnerType        model.PartnerType         `json:"partnerType"`
	TotalContributions decimal.Decimal           `json:"totalContributions"`
	TotalDistributions decimal.Decimal           `json:"totalDistributions"`
	TierDistributions  [MaxTiers]decimal.Decimal `json:"tierDistributions"`
	PreferredAccrued   decimal.Decimal           `json:"preferredAccrued"`
	CapitalAccounts    TierCapitalAccounts       `json:"-"`

	// Dated signed series used for yield computation: contributions are
	// appended negative, distributions positive.
	CashFlowDates   []time.Time       `json:"cashFlowDates"`
	CashFlowAmounts []decimal.Decimal `json:"cashFlowAmounts"`
}

func newPartnerState(pt model.PartnerType) *PartnerState {
	return &PartnerState{
		PartnerID:          string(pt),
		PartnerType:        pt,
		TotalContributions: decimal.Zero,
		TotalDistributions: decimal.Zero,
		PreferredAccrued:   decimal.Zero,
	}
}

// recordContribution posts a contribution (positive magnitude) to the running
// totals and appends the outflow to the yield series.
func (p *PartnerState) recordContribution(date time.Time, amount decimal.Decimal) {
	p.TotalContributions = p.TotalContributions.Add(amount)
	p.CashFlowDates = append(p.CashFlowDates, date)
	p.CashFlowAmounts = append(p.CashFlowAmounts, amount.Neg())
}

// recordTierDistribution adds a tier distribution to the running totals.
// The yield series entry is posted once per period by the engine.
func (p *PartnerState) recordTierDistribution(tier int, amount decimal.Decimal) {
	p.TotalDistributions = p.TotalDistributions.Add(amount)
	p.TierDistributions[tier-1] = p.TierDistributions[tier-1].Add(amount)
}

// recordInflow appends a period's total distribution to the yield series.
func (p *PartnerState) recordInflow(date time.Time, amount decimal.Decimal) {
	p.CashFlowDates = append(p.CashFlowDates, date)
	p.CashFlowAmounts = append(p.CashFlowAmounts, amount)
}

// runningIRR solves the partner's IRR over the flows recorded so far.
func (p *PartnerState) runningIRR() IRROutcome {
	return XIRR(p.CashFlowDates, p.CashFlowAmounts)
}

// equityMultiple returns total distributions over total contributions,
// zero when nothing has been contributed.
func (p *PartnerState) equityMultiple() decimal.Decimal {
	return safeDiv(p.TotalDistributions, p.TotalContributions)
}
