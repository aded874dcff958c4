package service

import (
	"github.com/Greggwolin/landscape-sub003/internal/model"
	"github.com/Greggwolin/landscape-sub003/internal/repository"
	"github.com/Greggwolin/landscape-sub003/internal/waterfall"
	"github.com/shopspring/decimal"
)

// Default equity-multiple hurdles applied when a tier configuration leaves
// them unset: return of capital at 1.0x, first promote tier at 1.5x.
var (
	defaultEMxTier1 = decimal.NewFromInt(1)
	defaultEMxLater = decimal.RequireFromString("1.5")
)

// WaterfallService loads a project's configuration and cash flows and runs
// the distribution engine over them.
type WaterfallService struct {
	projectRepo  *repository.ProjectRepository
	tierRepo     *repository.TierRepository
	cashFlowRepo *repository.CashFlowRepository
}

// NewWaterfallService creates a new WaterfallService with the provided repository dependencies.
func NewWaterfallService(
	projectRepo *repository.ProjectRepository,
	tierRepo *repository.TierRepository,
	cashFlowRepo *repository.CashFlowRepository,
) *WaterfallService {
	return &WaterfallService{
		projectRepo:  projectRepo,
		tierRepo:     tierRepo,
		cashFlowRepo: cashFlowRepo,
	}
}

// CalculateWaterfall runs the full waterfall for a project: loads settings,
// tiers and cash flows, fills in default equity-multiple hurdles where the
// configuration leaves them open, and executes the engine.
func (s *WaterfallService) CalculateWaterfall(projectID string) (*waterfall.Result, error) {
	project, err := s.projectRepo.GetProjectOnID(projectID)
	if err != nil {
		return nil, err
	}

	tiers, err := s.tierRepo.GetTiersOnProjectID(projectID)
	if err != nil {
		return nil, err
	}

	flows, err := s.cashFlowRepo.GetCashFlowsOnProjectID(projectID)
	if err != nil {
		return nil, err
	}

	tiers = applyEMxDefaults(tiers, project.Settings)

	engine, err := waterfall.NewEngine(tiers, project.Settings, flows)
	if err != nil {
		return nil, err
	}

	return engine.Calculate(), nil
}

// applyEMxDefaults fills in missing equity-multiple hurdles for methods that
// need them. The engine itself rejects missing hurdles, so defaulting is a
// policy decision made here rather than inside the engine: tier 1 defaults to
// returning capital exactly (1.0x), later non-residual tiers to 1.5x. The
// residual tier never carries a hurdle.
func applyEMxDefaults(tiers []model.WaterfallTierConfig, settings model.WaterfallSettings) []model.WaterfallTierConfig {
	if settings.HurdleMethod != model.HurdleEMx && settings.HurdleMethod != model.HurdleIRRAndEMx {
		return tiers
	}

	out := make([]model.WaterfallTierConfig, len(tiers))
	copy(out, tiers)

	for i := range out {
		if out[i].TierNumber == settings.NumTiers {
			continue
		}
		if out[i].EMxHurdle != nil {
			continue
		}
		d := defaultEMxLater
		if out[i].TierNumber == 1 {
			d = defaultEMxTier1
		}
		out[i].EMxHurdle = &d
	}

	return out
}
