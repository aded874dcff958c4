package service_test

import (
	"errors"
	"testing"

	"github.com/Greggwolin/landscape-sub003/internal/api/request"
	"github.com/Greggwolin/landscape-sub003/internal/apperrors"
	"github.com/Greggwolin/landscape-sub003/internal/testutil"
)

func TestProjectService_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestProjectService(t, db)

	t.Run("create and read back a project", func(t *testing.T) {
		created, err := svc.CreateProject(request.CreateProjectRequest{
			Name:        "Sunset Ridge",
			Description: "Phase 1 land development",
			Settings: request.WaterfallSettingsRequest{
				HurdleMethod:       "irr",
				NumTiers:           2,
				ReturnOfCapital:    "lp_first",
				LPOwnership:        0.9,
				PreferredReturnPct: 8,
			},
		})
		if err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}

		got, err := svc.GetProject(created.ID)
		if err != nil {
			t.Fatalf("GetProject failed: %v", err)
		}
		if got.Name != "Sunset Ridge" {
			t.Errorf("Expected name 'Sunset Ridge', got %q", got.Name)
		}
		if got.Settings.NumTiers != 2 {
			t.Errorf("Expected 2 tiers, got %d", got.Settings.NumTiers)
		}
		// Decimal settings survive the round trip exactly
		if got.Settings.LPOwnership.String() != "0.9" {
			t.Errorf("Expected LP ownership 0.9, got %s", got.Settings.LPOwnership)
		}
		if got.Settings.PreferredReturnPct.String() != "8" {
			t.Errorf("Expected preferred return 8, got %s", got.Settings.PreferredReturnPct)
		}
	})

	t.Run("update applies only provided fields", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)

		newName := "Renamed"
		updated, err := svc.UpdateProject(project.ID, request.UpdateProjectRequest{
			Name: &newName,
		})
		if err != nil {
			t.Fatalf("UpdateProject failed: %v", err)
		}
		if updated.Name != "Renamed" {
			t.Errorf("Expected name 'Renamed', got %q", updated.Name)
		}
		if updated.Description != project.Description {
			t.Errorf("Description changed unexpectedly: %q", updated.Description)
		}
	})

	t.Run("delete cascades to dependent rows", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)
		testutil.NewTier(project.ID, 1).Build(t, db)
		testutil.NewCashFlow(project.ID, 1).Build(t, db)

		if err := svc.DeleteProject(project.ID); err != nil {
			t.Fatalf("DeleteProject failed: %v", err)
		}

		if _, err := svc.GetProject(project.ID); !errors.Is(err, apperrors.ErrProjectNotFound) {
			t.Errorf("Expected ErrProjectNotFound after delete, got %v", err)
		}

		var tierCount int
		if err := db.QueryRow("SELECT COUNT(*) FROM waterfall_tier WHERE project_id = ?", project.ID).Scan(&tierCount); err != nil {
			t.Fatalf("Failed to count tiers: %v", err)
		}
		if tierCount != 0 {
			t.Errorf("Expected tiers removed by cascade, found %d", tierCount)
		}
	})

	t.Run("replace tiers overwrites the previous set", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)
		testutil.NewTier(project.ID, 1).Build(t, db)

		hurdle := 12.0
		tiers, err := svc.ReplaceTiers(project.ID, request.ReplaceTiersRequest{
			Tiers: []request.TierRequest{
				{TierNumber: 1, TierName: "Pref", LPSplitPct: 90, GPSplitPct: 10},
				{TierNumber: 2, TierName: "Promote", IRRHurdle: &hurdle, LPSplitPct: 80, GPSplitPct: 20},
				{TierNumber: 3, TierName: "Residual", LPSplitPct: 70, GPSplitPct: 30},
			},
		})
		if err != nil {
			t.Fatalf("ReplaceTiers failed: %v", err)
		}
		if len(tiers) != 3 {
			t.Fatalf("Expected 3 tiers, got %d", len(tiers))
		}

		stored, err := svc.GetTiers(project.ID)
		if err != nil {
			t.Fatalf("GetTiers failed: %v", err)
		}
		if len(stored) != 3 {
			t.Fatalf("Expected 3 stored tiers, got %d", len(stored))
		}
		if stored[1].IRRHurdle == nil || stored[1].IRRHurdle.String() != "12" {
			t.Errorf("Expected tier 2 hurdle 12, got %v", stored[1].IRRHurdle)
		}
	})
}

func TestCashFlowService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestCashFlowService(t, db)

	t.Run("create and list ordered by date", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)

		// Inserted out of order
		if _, err := svc.CreateCashFlow(project.ID, request.CreateCashFlowRequest{
			PeriodID: 2, Date: "2023-06-01", Amount: 5000,
		}); err != nil {
			t.Fatalf("CreateCashFlow failed: %v", err)
		}
		if _, err := svc.CreateCashFlow(project.ID, request.CreateCashFlowRequest{
			PeriodID: 1, Date: "2023-01-01", Amount: -100000,
		}); err != nil {
			t.Fatalf("CreateCashFlow failed: %v", err)
		}

		flows, err := svc.GetCashFlows(project.ID)
		if err != nil {
			t.Fatalf("GetCashFlows failed: %v", err)
		}
		if len(flows) != 2 {
			t.Fatalf("Expected 2 flows, got %d", len(flows))
		}
		if flows[0].PeriodID != 1 || flows[1].PeriodID != 2 {
			t.Errorf("Expected flows ordered by date, got periods %d, %d", flows[0].PeriodID, flows[1].PeriodID)
		}
	})

	t.Run("rejects a second flow for the same period", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)
		testutil.NewCashFlow(project.ID, 1).Build(t, db)

		_, err := svc.CreateCashFlow(project.ID, request.CreateCashFlowRequest{
			PeriodID: 1, Date: "2023-03-01", Amount: 100,
		})
		if !errors.Is(err, apperrors.ErrDuplicateEntry) {
			t.Errorf("Expected ErrDuplicateEntry, got %v", err)
		}
	})

	t.Run("update moves a flow to a new date", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)
		flow := testutil.NewCashFlow(project.ID, 1).WithDate("2023-01-01").Build(t, db)

		newDate := "2023-02-01"
		updated, err := svc.UpdateCashFlow(flow.ID, request.UpdateCashFlowRequest{
			Date: &newDate,
		})
		if err != nil {
			t.Fatalf("UpdateCashFlow failed: %v", err)
		}
		if updated.Date.Format("2006-01-02") != "2023-02-01" {
			t.Errorf("Expected date 2023-02-01, got %s", updated.Date)
		}
		// Untouched fields survive
		if !updated.Amount.Equal(flow.Amount) {
			t.Errorf("Amount changed unexpectedly: %s", updated.Amount)
		}
	})

	t.Run("delete removes the flow", func(t *testing.T) {
		project := testutil.NewProject().Build(t, db)
		flow := testutil.NewCashFlow(project.ID, 1).Build(t, db)

		if err := svc.DeleteCashFlow(flow.ID); err != nil {
			t.Fatalf("DeleteCashFlow failed: %v", err)
		}
		if err := svc.DeleteCashFlow(flow.ID); !errors.Is(err, apperrors.ErrCashFlowNotFound) {
			t.Errorf("Expected ErrCashFlowNotFound on second delete, got %v", err)
		}
	})
}
