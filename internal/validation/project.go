package validation

import (
	"fmt"
	"strings"

	"github.com/Greggwolin/landscape-sub003/internal/api/request"
)

var validHurdleMethods = map[string]bool{
	"irr":         true,
	"emx":         true,
	"irr_and_emx": true,
}

var validReturnOfCapitalOrders = map[string]bool{
	"lp_first":   true,
	"pari_passu": true,
}

func ValidateCreateProject(req request.CreateProjectRequest) error {
	errors := make(map[string]string)

	// Required field
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	// Optional but has constraints
	if len(req.Description) > 500 {
		errors["description"] = "description must be 500 characters or less"
	}

	validateSettings(req.Settings, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateProject(req request.UpdateProjectRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > 100 {
			errors["name"] = "name must be 100 characters or less"
		}
	}

	if req.Description != nil && len(*req.Description) > 500 {
		errors["description"] = "description must be 500 characters or less"
	}

	if req.Settings != nil {
		validateSettings(*req.Settings, errors)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func validateSettings(s request.WaterfallSettingsRequest, errors map[string]string) {
	if !validHurdleMethods[s.HurdleMethod] {
		errors["hurdleMethod"] = "hurdleMethod must be one of: irr, emx, irr_and_emx"
	}

	if s.NumTiers < 1 || s.NumTiers > 5 {
		errors["numTiers"] = "numTiers must be between 1 and 5"
	}

	if !validReturnOfCapitalOrders[s.ReturnOfCapital] {
		errors["returnOfCapital"] = "returnOfCapital must be one of: lp_first, pari_passu"
	}

	if s.LPOwnership <= 0 || s.LPOwnership > 1 {
		errors["lpOwnership"] = "lpOwnership must be greater than 0 and at most 1"
	}

	if s.PreferredReturnPct < 0 {
		errors["preferredReturnPct"] = "preferredReturnPct cannot be negative"
	}
}

func ValidateReplaceTiers(req request.ReplaceTiersRequest) error {
	errors := make(map[string]string)

	if len(req.Tiers) == 0 {
		errors["tiers"] = "at least one tier is required"
	} else if len(req.Tiers) > 5 {
		errors["tiers"] = "at most 5 tiers are supported"
	}

	for i, t := range req.Tiers {
		field := fmt.Sprintf("tiers[%d]", i)

		// Tiers must be numbered contiguously from 1
		if t.TierNumber != i+1 {
			errors[field+".tierNumber"] = fmt.Sprintf("expected tier number %d, got %d", i+1, t.TierNumber)
		}

		if len(t.TierName) > 100 {
			errors[field+".tierName"] = "tierName must be 100 characters or less"
		}

		if t.LPSplitPct < 0 || t.LPSplitPct > 100 {
			errors[field+".lpSplitPct"] = "lpSplitPct must be between 0 and 100"
		}
		if t.GPSplitPct < 0 || t.GPSplitPct > 100 {
			errors[field+".gpSplitPct"] = "gpSplitPct must be between 0 and 100"
		}
		if t.LPSplitPct+t.GPSplitPct > 100 {
			errors[field+".splits"] = "lpSplitPct and gpSplitPct cannot sum above 100"
		}

		if t.IRRHurdle != nil && *t.IRRHurdle < 0 {
			errors[field+".irrHurdle"] = "irrHurdle cannot be negative"
		}
		if t.EMxHurdle != nil && *t.EMxHurdle <= 0 {
			errors[field+".emxHurdle"] = "emxHurdle must be greater than 0"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
