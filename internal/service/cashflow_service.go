package service

import (
	"github.com/google/uuid"

	"github.com/Greggwolin/landscape-sub003/internal/api/request"
	"github.com/Greggwolin/landscape-sub003/internal/model"
	"github.com/Greggwolin/landscape-sub003/internal/repository"
	"github.com/shopspring/decimal"
)

// CashFlowService handles cash-flow-related business logic operations.
type CashFlowService struct {
	projectRepo  *repository.ProjectRepository
	cashFlowRepo *repository.CashFlowRepository
}

// NewCashFlowService creates a new CashFlowService with the provided repository dependencies.
func NewCashFlowService(
	projectRepo *repository.ProjectRepository,
	cashFlowRepo *repository.CashFlowRepository,
) *CashFlowService {
	return &CashFlowService{
		projectRepo:  projectRepo,
		cashFlowRepo: cashFlowRepo,
	}
}

// GetCashFlows retrieves all cash flows for a project, ordered by date.
func (s *CashFlowService) GetCashFlows(projectID string) ([]model.CashFlow, error) {
	if _, err := s.projectRepo.GetProjectOnID(projectID); err != nil {
		return nil, err
	}
	return s.cashFlowRepo.GetCashFlowsOnProjectID(projectID)
}

// CreateCashFlow creates a new cash flow for a project and returns it.
func (s *CashFlowService) CreateCashFlow(projectID string, req request.CreateCashFlowRequest) (model.CashFlow, error) {
	if _, err := s.projectRepo.GetProjectOnID(projectID); err != nil {
		return model.CashFlow{}, err
	}

	date, err := repository.ParseTime(req.Date)
	if err != nil {
		return model.CashFlow{}, err
	}

	cf := model.CashFlow{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		PeriodID:  req.PeriodID,
		Date:      date,
		Amount:    decimal.NewFromFloat(req.Amount),
	}

	if err := s.cashFlowRepo.CreateCashFlow(cf); err != nil {
		return model.CashFlow{}, err
	}

	return cf, nil
}

// UpdateCashFlow applies the provided fields to an existing cash flow and
// returns the updated record.
func (s *CashFlowService) UpdateCashFlow(cashFlowID string, req request.UpdateCashFlowRequest) (model.CashFlow, error) {
	cf, err := s.cashFlowRepo.GetCashFlowOnID(cashFlowID)
	if err != nil {
		return model.CashFlow{}, err
	}

	if req.PeriodID != nil {
		cf.PeriodID = *req.PeriodID
	}
	if req.Date != nil {
		date, err := repository.ParseTime(*req.Date)
		if err != nil {
			return model.CashFlow{}, err
		}
		cf.Date = date
	}
	if req.Amount != nil {
		cf.Amount = decimal.NewFromFloat(*req.Amount)
	}

	if err := s.cashFlowRepo.UpdateCashFlow(cf); err != nil {
		return model.CashFlow{}, err
	}

	return cf, nil
}

// DeleteCashFlow removes a single cash flow.
func (s *CashFlowService) DeleteCashFlow(cashFlowID string) error {
	return s.cashFlowRepo.DeleteCashFlow(cashFlowID)
}
