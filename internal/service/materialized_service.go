package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Greggwolin/landscape-sub003/internal/model"
	"github.com/Greggwolin/landscape-sub003/internal/repository"
)

// refreshConcurrency bounds how many projects are recalculated at once
// during a full refresh. Each refresh runs the engine over the project's
// entire cash flow history, so this is CPU-bound work.
const refreshConcurrency = 4

// MaterializedService maintains the waterfall_period_materialized table.
// It re-runs the distribution engine per project and stores a flattened
// per-period record for fast reads, so interactive requests never pay for
// a full engine run.
type MaterializedService struct {
	projectRepo      *repository.ProjectRepository
	materializedRepo *repository.MaterializedRepository
	waterfallService *WaterfallService
}

// NewMaterializedService creates a new MaterializedService with the provided dependencies.
func NewMaterializedService(
	projectRepo *repository.ProjectRepository,
	materializedRepo *repository.MaterializedRepository,
	waterfallService *WaterfallService,
) *MaterializedService {
	return &MaterializedService{
		projectRepo:      projectRepo,
		materializedRepo: materializedRepo,
		waterfallService: waterfallService,
	}
}

// GetMaterializedPeriods retrieves the stored per-period records for a project.
func (s *MaterializedService) GetMaterializedPeriods(projectID string) ([]model.WaterfallPeriodMaterialized, error) {
	if _, err := s.projectRepo.GetProjectOnID(projectID); err != nil {
		return nil, err
	}

	records := []model.WaterfallPeriodMaterialized{}
	err := s.materializedRepo.GetMaterializedPeriods(projectID, func(record model.WaterfallPeriodMaterialized) error {
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// RefreshProject recalculates the waterfall for one project and replaces its
// materialized periods. Configuration errors from the engine (no tiers yet,
// invalid settings) are returned wrapped so the caller can decide whether to
// report or skip the project.
func (s *MaterializedService) RefreshProject(projectID string) error {
	result, err := s.waterfallService.CalculateWaterfall(projectID)
	if err != nil {
		return fmt.Errorf("failed to calculate waterfall for project %s: %w", projectID, err)
	}

	calculatedAt := time.Now().UTC()
	records := make([]model.WaterfallPeriodMaterialized, len(result.Periods))

	for i, period := range result.Periods {
		lpDist, gpDist := decimal.Zero, decimal.Zero
		for _, tier := range period.TierDistributions {
			lpDist = lpDist.Add(tier.LP)
			gpDist = gpDist.Add(tier.GP)
		}

		records[i] = model.WaterfallPeriodMaterialized{
			ID:                 uuid.New().String(),
			ProjectID:          projectID,
			PeriodID:           period.PeriodID,
			Date:               period.Date,
			NetCashFlow:        period.NetCashFlow,
			CumulativeCashFlow: period.CumulativeCashFlow,
			LPContribution:     period.LPContribution,
			GPContribution:     period.GPContribution,
			LPDistribution:     lpDist,
			GPDistribution:     gpDist,
			LPIRR:              period.LPIRR,
			GPIRR:              period.GPIRR,
			CalculatedAt:       calculatedAt,
		}
	}

	return s.materializedRepo.ReplaceMaterializedPeriods(projectID, records)
}

// RefreshAllProjects recalculates the materialized periods for every active
// project, fanning out across a bounded worker group. The first failure
// cancels the remaining work and is returned.
func (s *MaterializedService) RefreshAllProjects(ctx context.Context) error {
	projects, err := s.projectRepo.GetProjects(model.ProjectFilter{})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshConcurrency)

	for _, project := range projects {
		project := project
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.RefreshProject(project.ID)
		})
	}

	return g.Wait()
}
