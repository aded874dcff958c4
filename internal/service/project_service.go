package service

import (
	"github.com/google/uuid"

	"github.com/Greggwolin/landscape-sub003/internal/api/request"
	"github.com/Greggwolin/landscape-sub003/internal/model"
	"github.com/Greggwolin/landscape-sub003/internal/repository"
	"github.com/shopspring/decimal"
)

// ProjectService handles project-related business logic operations.
// It owns project metadata, waterfall settings and tier configuration.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	tierRepo    *repository.TierRepository
}

// NewProjectService creates a new ProjectService with the provided repository dependencies.
func NewProjectService(
	projectRepo *repository.ProjectRepository,
	tierRepo *repository.TierRepository,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		tierRepo:    tierRepo,
	}
}

// GetAllProjects retrieves all projects including archived ones.
func (s *ProjectService) GetAllProjects() ([]model.Project, error) {
	return s.projectRepo.GetProjects(model.ProjectFilter{
		IncludeArchived: true,
	})
}

// GetActiveProjects retrieves all non-archived projects.
func (s *ProjectService) GetActiveProjects() ([]model.Project, error) {
	return s.projectRepo.GetProjects(model.ProjectFilter{})
}

// GetProject retrieves a single project by ID.
func (s *ProjectService) GetProject(projectID string) (model.Project, error) {
	return s.projectRepo.GetProjectOnID(projectID)
}

// CreateProject creates a new project from the request and returns it.
func (s *ProjectService) CreateProject(req request.CreateProjectRequest) (model.Project, error) {
	p := model.Project{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Settings:    settingsFromRequest(req.Settings),
	}

	if err := s.projectRepo.CreateProject(p); err != nil {
		return model.Project{}, err
	}

	return p, nil
}

// UpdateProject applies the provided fields to an existing project and returns
// the updated project.
func (s *ProjectService) UpdateProject(projectID string, req request.UpdateProjectRequest) (model.Project, error) {
	p, err := s.projectRepo.GetProjectOnID(projectID)
	if err != nil {
		return model.Project{}, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.IsArchived != nil {
		p.IsArchived = *req.IsArchived
	}
	if req.Settings != nil {
		p.Settings = settingsFromRequest(*req.Settings)
	}

	if err := s.projectRepo.UpdateProject(p); err != nil {
		return model.Project{}, err
	}

	return p, nil
}

// DeleteProject removes a project and, through the schema cascade, its tiers,
// cash flows and materialized periods.
func (s *ProjectService) DeleteProject(projectID string) error {
	return s.projectRepo.DeleteProject(projectID)
}

// GetTiers retrieves the tier configuration for a project.
func (s *ProjectService) GetTiers(projectID string) ([]model.WaterfallTierConfig, error) {
	if _, err := s.projectRepo.GetProjectOnID(projectID); err != nil {
		return nil, err
	}
	return s.tierRepo.GetTiersOnProjectID(projectID)
}

// ReplaceTiers replaces the full tier configuration for a project.
func (s *ProjectService) ReplaceTiers(projectID string, req request.ReplaceTiersRequest) ([]model.WaterfallTierConfig, error) {
	if _, err := s.projectRepo.GetProjectOnID(projectID); err != nil {
		return nil, err
	}

	tiers := make([]model.WaterfallTierConfig, len(req.Tiers))
	for i, t := range req.Tiers {
		tiers[i] = model.WaterfallTierConfig{
			ID:         uuid.New().String(),
			ProjectID:  projectID,
			TierNumber: t.TierNumber,
			TierName:   t.TierName,
			IRRHurdle:  decimalFromFloatPtr(t.IRRHurdle),
			EMxHurdle:  decimalFromFloatPtr(t.EMxHurdle),
			LPSplitPct: decimal.NewFromFloat(t.LPSplitPct),
			GPSplitPct: decimal.NewFromFloat(t.GPSplitPct),
		}
	}

	if err := s.tierRepo.ReplaceTiers(projectID, tiers); err != nil {
		return nil, err
	}

	return tiers, nil
}

func settingsFromRequest(s request.WaterfallSettingsRequest) model.WaterfallSettings {
	return model.WaterfallSettings{
		HurdleMethod:       model.HurdleMethod(s.HurdleMethod),
		NumTiers:           s.NumTiers,
		ReturnOfCapital:    model.ReturnOfCapitalOrder(s.ReturnOfCapital),
		GPCatchUp:          s.GPCatchUp,
		LPOwnership:        decimal.NewFromFloat(s.LPOwnership),
		PreferredReturnPct: decimal.NewFromFloat(s.PreferredReturnPct),
	}
}

func decimalFromFloatPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}
