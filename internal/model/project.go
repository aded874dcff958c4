package model

// Project represents a project from the database. Waterfall settings are
// stored on the project row; tiers and cash flows hang off it.
type Project struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IsArchived  bool              `json:"isArchived"`
	Settings    WaterfallSettings `json:"settings"`
}

// ProjectFilter for querying projects
type ProjectFilter struct {
	IncludeArchived bool
}
