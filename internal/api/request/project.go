package request

// WaterfallSettingsRequest carries the project-level distribution policy.
// Rates are percentages (8 = 8%), lpOwnership is a fraction between 0 and 1.
type WaterfallSettingsRequest struct {
	HurdleMethod       string  `json:"hurdleMethod"`
	NumTiers           int     `json:"numTiers"`
	ReturnOfCapital    string  `json:"returnOfCapital"`
	GPCatchUp          bool    `json:"gpCatchUp"`
	LPOwnership        float64 `json:"lpOwnership"`
	PreferredReturnPct float64 `json:"preferredReturnPct"`
}

// CreateProjectRequest represents the request body for creating a project
type CreateProjectRequest struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Settings    WaterfallSettingsRequest `json:"settings"`
}

type UpdateProjectRequest struct {
	Name        *string                   `json:"name,omitempty"`
	Description *string                   `json:"description,omitempty"`
	IsArchived  *bool                     `json:"isArchived,omitempty"`
	Settings    *WaterfallSettingsRequest `json:"settings,omitempty"`
}

// TierRequest configures one waterfall tier. Hurdles are optional; the
// residual tier carries neither.
type TierRequest struct {
	TierNumber int      `json:"tierNumber"`
	TierName   string   `json:"tierName"`
	IRRHurdle  *float64 `json:"irrHurdle,omitempty"`
	EMxHurdle  *float64 `json:"emxHurdle,omitempty"`
	LPSplitPct float64  `json:"lpSplitPct"`
	GPSplitPct float64  `json:"gpSplitPct"`
}

// ReplaceTiersRequest replaces a project's full tier configuration.
type ReplaceTiersRequest struct {
	Tiers []TierRequest `json:"tiers"`
}
