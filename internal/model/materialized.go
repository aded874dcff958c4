package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WaterfallPeriodMaterialized represents a pre-calculated waterfall period for
// a project. This is used for fast retrieval of period results without
// re-running the engine on every request.
type WaterfallPeriodMaterialized struct {
	ID                 string           // Primary key
	ProjectID          string           // Project identifier
	PeriodID           int              // Source cash flow period
	Date               time.Time        // Period date
	NetCashFlow        decimal.Decimal  // Signed cash flow for the period
	CumulativeCashFlow decimal.Decimal  // Running total through this period
	LPContribution     decimal.Decimal  // LP share of any contribution
	GPContribution     decimal.Decimal  // GP share of any contribution
	LPDistribution     decimal.Decimal  // LP distributions across all tiers
	GPDistribution     decimal.Decimal  // GP distributions across all tiers
	LPIRR              *decimal.Decimal // Running LP IRR, nil when not meaningful
	GPIRR              *decimal.Decimal // Running GP IRR, nil when not meaningful
	CalculatedAt       time.Time        // When this record was calculated
}
