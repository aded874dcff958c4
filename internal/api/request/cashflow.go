package request

// CreateCashFlowRequest represents the request body for creating a cash flow.
// Negative amounts are contributions, positive amounts are distributions.
type CreateCashFlowRequest struct {
	PeriodID int     `json:"periodId"`
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
}

type UpdateCashFlowRequest struct {
	PeriodID *int     `json:"periodId,omitempty"`
	Date     *string  `json:"date,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`
}
