package validation

import (
	"time"

	"github.com/Greggwolin/landscape-sub003/internal/api/request"
)

func ValidateCreateCashFlow(req request.CreateCashFlowRequest) error {
	errors := make(map[string]string)

	if req.PeriodID < 1 {
		errors["periodId"] = "periodId must be a positive integer"
	}

	if req.Date == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = "date must be in YYYY-MM-DD format"
	}

	// Zero-amount flows carry no information for the waterfall
	if req.Amount == 0 {
		errors["amount"] = "amount cannot be zero"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateUpdateCashFlow(req request.UpdateCashFlowRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.PeriodID != nil && *req.PeriodID < 1 {
		errors["periodId"] = "periodId must be a positive integer"
	}

	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			errors["date"] = "date must be in YYYY-MM-DD format"
		}
	}

	if req.Amount != nil && *req.Amount == 0 {
		errors["amount"] = "amount cannot be zero"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
