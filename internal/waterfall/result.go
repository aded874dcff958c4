package waterfall

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Greggwolin/landscape-sub003/internal/model"
)

// TierAmount pairs the LP and GP amounts for one tier in one period.
type TierAmount struct {
	LP decimal.Decimal `json:"lp"`
	GP decimal.Decimal `json:"gp"`
}

// PeriodResult is an immutable snapshot of one processed period.
type PeriodResult struct {
	PeriodID           int             `json:"periodId"`
	Date               time.Time       `json:"date"`
	NetCashFlow        decimal.Decimal `json:"netCashFlow"`
	CumulativeCashFlow decimal.Decimal `json:"cumulativeCashFlow"`

	LPContribution decimal.Decimal `json:"lpContribution"`
	GPContribution decimal.Decimal `json:"gpContribution"`

	TierDistributions [MaxTiers]TierAmount `json:"tierDistributions"`
	TierAccruals      [MaxTiers]TierAmount `json:"tierAccruals"`

	// Running yield snapshots; nil when the solver reports the IRR is not
	// yet meaningful or did not converge.
	LPIRR *decimal.Decimal `json:"lpIrr,omitempty"`
	GPIRR *decimal.Decimal `json:"gpIrr,omitempty"`

	LPEquityMultiple decimal.Decimal `json:"lpEquityMultiple"`
	GPEquityMultiple decimal.Decimal `json:"gpEquityMultiple"`

	LPCapitalAccounts [MaxTiers]decimal.Decimal `json:"lpCapitalAccounts"`
	GPCapitalAccounts [MaxTiers]decimal.Decimal `json:"gpCapitalAccounts"`

	// Cumulative accrued-but-unpaid preferred return (tier 1) and hurdle
	// interest (tier 2) after this period's distributions paid them down.
	UnpaidPreferredReturn decimal.Decimal `json:"unpaidPreferredReturn"`
	UnpaidHurdleInterest  decimal.Decimal `json:"unpaidHurdleInterest"`
}

// DistributionBreakdown categorizes a partner's lifetime distributions.
// PreferredReturn and ExcessCashFlow apply to the LP; Promote applies to
// the GP.
type DistributionBreakdown struct {
	ReturnOfCapital decimal.Decimal `json:"returnOfCapital"`
	PreferredReturn decimal.Decimal `json:"preferredReturn,omitempty"`
	ExcessCashFlow  decimal.Decimal `json:"excessCashFlow,omitempty"`
	Promote         decimal.Decimal `json:"promote,omitempty"`
}

// PartnerSummary aggregates one partner's results at the end of a run.
type PartnerSummary struct {
	PartnerType        model.PartnerType         `json:"partnerType"`
	TotalContributions decimal.Decimal           `json:"totalContributions"`
	TotalDistributions decimal.Decimal           `json:"totalDistributions"`
	TotalProfit        decimal.Decimal           `json:"totalProfit"`
	EquityMultiple     decimal.Decimal           `json:"equityMultiple"`
	IRR                *decimal.Decimal          `json:"irr,omitempty"`
	TierDistributions  [MaxTiers]decimal.Decimal `json:"tierDistributions"`
	Breakdown          DistributionBreakdown     `json:"breakdown"`
}

// ProjectSummary combines both partners' totals with a blended project IRR
// computed over the union of their dated cash flows.
type ProjectSummary struct {
	TotalContributions decimal.Decimal  `json:"totalContributions"`
	TotalDistributions decimal.Decimal  `json:"totalDistributions"`
	TotalProfit        decimal.Decimal  `json:"totalProfit"`
	EquityMultiple     decimal.Decimal  `json:"equityMultiple"`
	IRR                *decimal.Decimal `json:"irr,omitempty"`
}

// Result is the sole output artifact of an engine run.
type Result struct {
	Periods        []PeriodResult `json:"periods"`
	LPSummary      PartnerSummary `json:"lpSummary"`
	GPSummary      PartnerSummary `json:"gpSummary"`
	ProjectSummary ProjectSummary `json:"projectSummary"`
	LPState        *PartnerState  `json:"lpState"`
	GPState        *PartnerState  `json:"gpState"`
}
