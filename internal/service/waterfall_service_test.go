package service_test

import (
	"errors"
	"testing"

	"github.com/Greggwolin/landscape-sub003/internal/apperrors"
	"github.com/Greggwolin/landscape-sub003/internal/testutil"
)

// TestWaterfallService_CalculateWaterfall tests the full path from stored
// configuration to engine results.
// WHY: the engine is covered in isolation; this verifies the service loads
// tiers, settings and cash flows correctly and that decimal values survive
// the database round trip.
func TestWaterfallService_CalculateWaterfall(t *testing.T) {
	t.Run("two-tier preferred return deal distributes through tier 1", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWaterfallService(t, db)

		project := testutil.NewProject().Build(t, db)
		testutil.NewTier(project.ID, 1).
			WithName("Preferred Return").
			WithSplits("90", "10").
			Build(t, db)
		testutil.NewTier(project.ID, 2).
			WithName("Residual").
			WithSplits("70", "30").
			Build(t, db)

		testutil.NewCashFlow(project.ID, 1).
			WithDate("2023-01-15").
			WithAmount("-1000000").
			Build(t, db)
		testutil.NewCashFlow(project.ID, 2).
			WithDate("2023-02-15").
			WithAmount("20000").
			Build(t, db)

		result, err := svc.CalculateWaterfall(project.ID)
		if err != nil {
			t.Fatalf("CalculateWaterfall failed: %v", err)
		}

		if len(result.Periods) != 2 {
			t.Fatalf("Expected 2 periods, got %d", len(result.Periods))
		}

		first := result.Periods[0]
		if !first.NetCashFlow.Equal(first.LPContribution.Add(first.GPContribution).Neg()) {
			t.Errorf("Contribution split does not conserve the net flow")
		}
		// 90% LP ownership on a 1M contribution
		if first.LPContribution.String() != "900000" {
			t.Errorf("Expected LP contribution 900000, got %s", first.LPContribution)
		}

		second := result.Periods[1]
		tier1 := second.TierDistributions[0]
		total := tier1.LP.Add(tier1.GP)
		if total.String() != "20000" {
			t.Errorf("Expected 20000 through tier 1, got %s", total)
		}
		// Residual stays untouched while capital and pref are outstanding
		if !second.TierDistributions[1].LP.IsZero() || !second.TierDistributions[1].GP.IsZero() {
			t.Errorf("Expected no residual distribution, got %+v", second.TierDistributions[1])
		}
	})

	t.Run("fills default equity multiple hurdles for emx projects", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWaterfallService(t, db)

		// Tiers carry no hurdles; the service defaults tier 1 to 1.0x
		project := testutil.NewProject().
			WithHurdleMethod("emx").
			WithLPOwnership("0.8").
			Build(t, db)
		testutil.NewTier(project.ID, 1).WithSplits("80", "20").Build(t, db)
		testutil.NewTier(project.ID, 2).WithSplits("50", "50").Build(t, db)

		testutil.NewCashFlow(project.ID, 1).
			WithDate("2023-01-01").
			WithAmount("-100000").
			Build(t, db)
		testutil.NewCashFlow(project.ID, 2).
			WithDate("2023-06-01").
			WithAmount("120000").
			Build(t, db)

		result, err := svc.CalculateWaterfall(project.ID)
		if err != nil {
			t.Fatalf("CalculateWaterfall failed: %v", err)
		}

		// 1.0x target: tier 1 absorbs exactly the 100000 contributed,
		// the remaining 20000 flows to the residual split
		final := result.Periods[len(result.Periods)-1]
		tier1Total := final.TierDistributions[0].LP.Add(final.TierDistributions[0].GP)
		if tier1Total.String() != "100000" {
			t.Errorf("Expected 100000 through tier 1, got %s", tier1Total)
		}
		residualTotal := final.TierDistributions[1].LP.Add(final.TierDistributions[1].GP)
		if residualTotal.String() != "20000" {
			t.Errorf("Expected 20000 through residual, got %s", residualTotal)
		}
	})

	t.Run("returns not found for unknown project", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWaterfallService(t, db)

		_, err := svc.CalculateWaterfall(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrProjectNotFound) {
			t.Errorf("Expected ErrProjectNotFound, got %v", err)
		}
	})

	t.Run("surfaces configuration errors from the engine", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestWaterfallService(t, db)

		// num_tiers says 2 but only one tier is configured
		project := testutil.NewProject().Build(t, db)
		testutil.NewTier(project.ID, 1).Build(t, db)

		testutil.NewCashFlow(project.ID, 1).WithAmount("-1000").Build(t, db)

		_, err := svc.CalculateWaterfall(project.ID)
		if !errors.Is(err, apperrors.ErrInvalidTierCount) {
			t.Errorf("Expected ErrInvalidTierCount, got %v", err)
		}
	})
}
