package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/Greggwolin/landscape-sub003/internal/model"
	"github.com/shopspring/decimal"
)

// ProjectBuilder provides a fluent interface for creating test projects.
//
// Example usage:
//
//	// Simple creation with defaults
//	project := testutil.NewProject().Build(t, db)
//
//	// Customized project
//	project := testutil.NewProject().
//	    WithName("Custom Project").
//	    WithHurdleMethod("emx").
//	    WithNumTiers(3).
//	    Build(t, db)
type ProjectBuilder struct {
	ID                 string
	Name               string
	Description        string
	IsArchived         bool
	HurdleMethod       string
	NumTiers           int
	ReturnOfCapital    string
	GPCatchUp          bool
	LPOwnership        string
	PreferredReturnPct string
}

// NewProject creates a ProjectBuilder with sensible defaults: a two-tier IRR
// waterfall, LP-first capital return, 90% LP ownership and an 8% preferred
// return.
func NewProject() *ProjectBuilder {
	return &ProjectBuilder{
		ID:                 MakeID(),
		Name:               MakeProjectName("Test Project"),
		Description:        "Test description",
		HurdleMethod:       "irr",
		NumTiers:           2,
		ReturnOfCapital:    "lp_first",
		LPOwnership:        "0.9",
		PreferredReturnPct: "8",
	}
}

// WithID sets a custom ID.
func (b *ProjectBuilder) WithID(id string) *ProjectBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *ProjectBuilder) WithName(name string) *ProjectBuilder {
	b.Name = name
	return b
}

// WithHurdleMethod sets the hurdle method ("irr", "emx" or "irr_and_emx").
func (b *ProjectBuilder) WithHurdleMethod(method string) *ProjectBuilder {
	b.HurdleMethod = method
	return b
}

// WithNumTiers sets the number of active tiers.
func (b *ProjectBuilder) WithNumTiers(n int) *ProjectBuilder {
	b.NumTiers = n
	return b
}

// WithReturnOfCapital sets the tier 1 repayment order ("lp_first" or "pari_passu").
func (b *ProjectBuilder) WithReturnOfCapital(order string) *ProjectBuilder {
	b.ReturnOfCapital = order
	return b
}

// WithGPCatchUp enables the GP catch-up in tier 1.
func (b *ProjectBuilder) WithGPCatchUp() *ProjectBuilder {
	b.GPCatchUp = true
	return b
}

// WithLPOwnership sets the LP ownership fraction as a decimal string.
func (b *ProjectBuilder) WithLPOwnership(fraction string) *ProjectBuilder {
	b.LPOwnership = fraction
	return b
}

// WithPreferredReturn sets the preferred return percentage as a decimal string.
func (b *ProjectBuilder) WithPreferredReturn(pct string) *ProjectBuilder {
	b.PreferredReturnPct = pct
	return b
}

// Archived marks the project as archived.
func (b *ProjectBuilder) Archived() *ProjectBuilder {
	b.IsArchived = true
	return b
}

// Build inserts the project into the database and returns the model.
func (b *ProjectBuilder) Build(t *testing.T, db *sql.DB) model.Project {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO project (
			id, name, description, is_archived,
			hurdle_method, num_tiers, return_of_capital, gp_catch_up,
			lp_ownership, preferred_return_pct
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Description, b.IsArchived,
		b.HurdleMethod, b.NumTiers, b.ReturnOfCapital, b.GPCatchUp,
		b.LPOwnership, b.PreferredReturnPct,
	)
	if err != nil {
		t.Fatalf("Failed to insert test project: %v", err)
	}

	return model.Project{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		IsArchived:  b.IsArchived,
		Settings: model.WaterfallSettings{
			HurdleMethod:       model.HurdleMethod(b.HurdleMethod),
			NumTiers:           b.NumTiers,
			ReturnOfCapital:    model.ReturnOfCapitalOrder(b.ReturnOfCapital),
			GPCatchUp:          b.GPCatchUp,
			LPOwnership:        decimal.RequireFromString(b.LPOwnership),
			PreferredReturnPct: decimal.RequireFromString(b.PreferredReturnPct),
		},
	}
}

// TierBuilder provides a fluent interface for creating test waterfall tiers.
//
// Example usage:
//
//	tier := testutil.NewTier(project.ID, 1).
//	    WithName("Preferred Return").
//	    WithSplits("90", "10").
//	    Build(t, db)
type TierBuilder struct {
	ID         string
	ProjectID  string
	TierNumber int
	TierName   string
	IRRHurdle  *string
	EMxHurdle  *string
	LPSplitPct string
	GPSplitPct string
}

// NewTier creates a TierBuilder for the given project and tier number with a
// 90/10 split and no hurdles.
func NewTier(projectID string, tierNumber int) *TierBuilder {
	return &TierBuilder{
		ID:         MakeID(),
		ProjectID:  projectID,
		TierNumber: tierNumber,
		TierName:   "",
		LPSplitPct: "90",
		GPSplitPct: "10",
	}
}

// WithName sets the tier name.
func (b *TierBuilder) WithName(name string) *TierBuilder {
	b.TierName = name
	return b
}

// WithIRRHurdle sets the IRR hurdle percentage as a decimal string.
func (b *TierBuilder) WithIRRHurdle(pct string) *TierBuilder {
	b.IRRHurdle = &pct
	return b
}

// WithEMxHurdle sets the equity-multiple hurdle as a decimal string.
func (b *TierBuilder) WithEMxHurdle(multiple string) *TierBuilder {
	b.EMxHurdle = &multiple
	return b
}

// WithSplits sets the LP and GP split percentages as decimal strings.
func (b *TierBuilder) WithSplits(lp, gp string) *TierBuilder {
	b.LPSplitPct = lp
	b.GPSplitPct = gp
	return b
}

// Build inserts the tier into the database and returns the model.
func (b *TierBuilder) Build(t *testing.T, db *sql.DB) model.WaterfallTierConfig {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO waterfall_tier (
			id, project_id, tier_number, tier_name,
			irr_hurdle, emx_hurdle, lp_split_pct, gp_split_pct
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.ProjectID, b.TierNumber, b.TierName,
		nullString(b.IRRHurdle), nullString(b.EMxHurdle),
		b.LPSplitPct, b.GPSplitPct,
	)
	if err != nil {
		t.Fatalf("Failed to insert test tier: %v", err)
	}

	return model.WaterfallTierConfig{
		ID:         b.ID,
		ProjectID:  b.ProjectID,
		TierNumber: b.TierNumber,
		TierName:   b.TierName,
		IRRHurdle:  decimalPtr(b.IRRHurdle),
		EMxHurdle:  decimalPtr(b.EMxHurdle),
		LPSplitPct: decimal.RequireFromString(b.LPSplitPct),
		GPSplitPct: decimal.RequireFromString(b.GPSplitPct),
	}
}

// CashFlowBuilder provides a fluent interface for creating test cash flows.
//
// Example usage:
//
//	flow := testutil.NewCashFlow(project.ID, 1).
//	    WithDate("2023-01-15").
//	    WithAmount("-1000000").
//	    Build(t, db)
type CashFlowBuilder struct {
	ID        string
	ProjectID string
	PeriodID  int
	Date      string
	Amount    string
}

// NewCashFlow creates a CashFlowBuilder for the given project and period.
func NewCashFlow(projectID string, periodID int) *CashFlowBuilder {
	return &CashFlowBuilder{
		ID:        MakeID(),
		ProjectID: projectID,
		PeriodID:  periodID,
		Date:      "2023-01-15",
		Amount:    "-100000",
	}
}

// WithDate sets the flow date in YYYY-MM-DD format.
func (b *CashFlowBuilder) WithDate(date string) *CashFlowBuilder {
	b.Date = date
	return b
}

// WithAmount sets the signed amount as a decimal string.
func (b *CashFlowBuilder) WithAmount(amount string) *CashFlowBuilder {
	b.Amount = amount
	return b
}

// Build inserts the cash flow into the database and returns the model.
func (b *CashFlowBuilder) Build(t *testing.T, db *sql.DB) model.CashFlow {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO cash_flow (id, project_id, period_id, date, amount)
		VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.ProjectID, b.PeriodID, b.Date, b.Amount,
	)
	if err != nil {
		t.Fatalf("Failed to insert test cash flow: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test cash flow date %q: %v", b.Date, err)
	}

	return model.CashFlow{
		ID:        b.ID,
		ProjectID: b.ProjectID,
		PeriodID:  b.PeriodID,
		Date:      date.UTC(),
		Amount:    decimal.RequireFromString(b.Amount),
	}
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func decimalPtr(s *string) *decimal.Decimal {
	if s == nil {
		return nil
	}
	d := decimal.RequireFromString(*s)
	return &d
}
