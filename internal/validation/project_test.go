package validation_test

import (
	"strings"
	"testing"

	"github.com/Greggwolin/landscape-sub003/internal/api/request"
	"github.com/Greggwolin/landscape-sub003/internal/validation"
)

func validSettings() request.WaterfallSettingsRequest {
	return request.WaterfallSettingsRequest{
		HurdleMethod:       "irr",
		NumTiers:           2,
		ReturnOfCapital:    "lp_first",
		LPOwnership:        0.9,
		PreferredReturnPct: 8,
	}
}

func TestValidateCreateProject(t *testing.T) {
	t.Run("accepts a valid request", func(t *testing.T) {
		err := validation.ValidateCreateProject(request.CreateProjectRequest{
			Name:     "Test Project",
			Settings: validSettings(),
		})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("requires a name", func(t *testing.T) {
		err := validation.ValidateCreateProject(request.CreateProjectRequest{
			Name:     "   ",
			Settings: validSettings(),
		})
		if err == nil || !strings.Contains(err.Error(), "name") {
			t.Errorf("Expected name error, got %v", err)
		}
	})

	t.Run("rejects unknown hurdle method", func(t *testing.T) {
		s := validSettings()
		s.HurdleMethod = "npv"
		err := validation.ValidateCreateProject(request.CreateProjectRequest{
			Name:     "Test Project",
			Settings: s,
		})
		if err == nil || !strings.Contains(err.Error(), "hurdleMethod") {
			t.Errorf("Expected hurdleMethod error, got %v", err)
		}
	})

	t.Run("rejects tier count outside 1 to 5", func(t *testing.T) {
		for _, n := range []int{0, 6} {
			s := validSettings()
			s.NumTiers = n
			err := validation.ValidateCreateProject(request.CreateProjectRequest{
				Name:     "Test Project",
				Settings: s,
			})
			if err == nil || !strings.Contains(err.Error(), "numTiers") {
				t.Errorf("numTiers=%d: expected numTiers error, got %v", n, err)
			}
		}
	})

	t.Run("rejects ownership outside (0, 1]", func(t *testing.T) {
		for _, o := range []float64{0, -0.1, 1.5} {
			s := validSettings()
			s.LPOwnership = o
			err := validation.ValidateCreateProject(request.CreateProjectRequest{
				Name:     "Test Project",
				Settings: s,
			})
			if err == nil || !strings.Contains(err.Error(), "lpOwnership") {
				t.Errorf("lpOwnership=%f: expected lpOwnership error, got %v", o, err)
			}
		}
	})
}

func TestValidateReplaceTiers(t *testing.T) {
	t.Run("accepts contiguous tiers with valid splits", func(t *testing.T) {
		err := validation.ValidateReplaceTiers(request.ReplaceTiersRequest{
			Tiers: []request.TierRequest{
				{TierNumber: 1, LPSplitPct: 90, GPSplitPct: 10},
				{TierNumber: 2, LPSplitPct: 70, GPSplitPct: 30},
			},
		})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects an empty tier set", func(t *testing.T) {
		err := validation.ValidateReplaceTiers(request.ReplaceTiersRequest{})
		if err == nil {
			t.Error("Expected error for empty tiers")
		}
	})

	t.Run("rejects gaps in tier numbering", func(t *testing.T) {
		err := validation.ValidateReplaceTiers(request.ReplaceTiersRequest{
			Tiers: []request.TierRequest{
				{TierNumber: 1, LPSplitPct: 90, GPSplitPct: 10},
				{TierNumber: 3, LPSplitPct: 70, GPSplitPct: 30},
			},
		})
		if err == nil || !strings.Contains(err.Error(), "tierNumber") {
			t.Errorf("Expected tierNumber error, got %v", err)
		}
	})

	t.Run("rejects splits summing above 100", func(t *testing.T) {
		err := validation.ValidateReplaceTiers(request.ReplaceTiersRequest{
			Tiers: []request.TierRequest{
				{TierNumber: 1, LPSplitPct: 90, GPSplitPct: 20},
			},
		})
		if err == nil || !strings.Contains(err.Error(), "splits") {
			t.Errorf("Expected splits error, got %v", err)
		}
	})

	t.Run("rejects a non-positive equity multiple hurdle", func(t *testing.T) {
		zero := 0.0
		err := validation.ValidateReplaceTiers(request.ReplaceTiersRequest{
			Tiers: []request.TierRequest{
				{TierNumber: 1, EMxHurdle: &zero, LPSplitPct: 90, GPSplitPct: 10},
			},
		})
		if err == nil || !strings.Contains(err.Error(), "emxHurdle") {
			t.Errorf("Expected emxHurdle error, got %v", err)
		}
	})
}

func TestValidateCashFlow(t *testing.T) {
	t.Run("accepts a valid create request", func(t *testing.T) {
		err := validation.ValidateCreateCashFlow(request.CreateCashFlowRequest{
			PeriodID: 1,
			Date:     "2023-01-15",
			Amount:   -1000000,
		})
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		err := validation.ValidateCreateCashFlow(request.CreateCashFlowRequest{
			PeriodID: 1,
			Date:     "15-01-2023",
			Amount:   100,
		})
		if err == nil || !strings.Contains(err.Error(), "date") {
			t.Errorf("Expected date error, got %v", err)
		}
	})

	t.Run("rejects a zero amount", func(t *testing.T) {
		err := validation.ValidateCreateCashFlow(request.CreateCashFlowRequest{
			PeriodID: 1,
			Date:     "2023-01-15",
		})
		if err == nil || !strings.Contains(err.Error(), "amount") {
			t.Errorf("Expected amount error, got %v", err)
		}
	})

	t.Run("update validates only provided fields", func(t *testing.T) {
		if err := validation.ValidateUpdateCashFlow(request.UpdateCashFlowRequest{}); err != nil {
			t.Errorf("Expected empty update to pass, got %v", err)
		}

		badPeriod := 0
		err := validation.ValidateUpdateCashFlow(request.UpdateCashFlowRequest{PeriodID: &badPeriod})
		if err == nil || !strings.Contains(err.Error(), "periodId") {
			t.Errorf("Expected periodId error, got %v", err)
		}
	})
}
