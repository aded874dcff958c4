package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// HurdleMethod selects how tier targets are measured.
type HurdleMethod string

const (
	// HurdleIRR grows capital-account targets over time at each tier's rate.
	HurdleIRR HurdleMethod = "irr"
	// HurdleEMx fixes capital-account targets at contribution time as a
	// multiple of contributed capital.
	HurdleEMx HurdleMethod = "emx"
	// HurdleIRRAndEMx uses accrual-based capital accounts like HurdleIRR.
	HurdleIRRAndEMx HurdleMethod = "irr_and_emx"
)

// ReturnOfCapitalOrder controls how Tier 1 repays the two partners.
type ReturnOfCapitalOrder string

const (
	// ReturnLPFirst exhausts the LP capital account before GP receives anything.
	ReturnLPFirst ReturnOfCapitalOrder = "lp_first"
	// ReturnPariPassu repays both partners proportional to their balances.
	ReturnPariPassu ReturnOfCapitalOrder = "pari_passu"
)

// PartnerType identifies one of the two capital partners.
type PartnerType string

const (
	PartnerLP PartnerType = "lp"
	PartnerGP PartnerType = "gp"
)

// CashFlow represents one dated cash flow for a project.
// Negative amounts are contributions into the deal, positive amounts are
// distributions out to the partners.
type CashFlow struct {
	ID        string          `json:"id"`
	ProjectID string          `json:"projectId"`
	PeriodID  int             `json:"periodId"`
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt,omitempty"`
}

// WaterfallTierConfig configures one return tier.
// Rates (IRRHurdle, splits, preferred return) are expressed as percentages
// (8 = 8%); EMxHurdle is a multiple of contributed capital (1.5 = 1.5x).
type WaterfallTierConfig struct {
	ID         string           `json:"id"`
	ProjectID  string           `json:"projectId"`
	TierNumber int              `json:"tierNumber"`
	TierName   string           `json:"tierName"`
	IRRHurdle  *decimal.Decimal `json:"irrHurdle,omitempty"`
	EMxHurdle  *decimal.Decimal `json:"emxHurdle,omitempty"`
	LPSplitPct decimal.Decimal  `json:"lpSplitPct"`
	GPSplitPct decimal.Decimal  `json:"gpSplitPct"`
}

// WaterfallSettings holds the project-level distribution policy.
// Immutable for the duration of one calculation.
type WaterfallSettings struct {
	HurdleMethod       HurdleMethod         `json:"hurdleMethod"`
	NumTiers           int                  `json:"numTiers"`
	ReturnOfCapital    ReturnOfCapitalOrder `json:"returnOfCapital"`
	GPCatchUp          bool                 `json:"gpCatchUp"`
	LPOwnership        decimal.Decimal      `json:"lpOwnership"`        // fraction, 0-1
	PreferredReturnPct decimal.Decimal      `json:"preferredReturnPct"` // percent, e.g. 8
}
