package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Greggwolin/landscape-sub003/internal/api/response"
	"github.com/Greggwolin/landscape-sub003/internal/apperrors"
	"github.com/Greggwolin/landscape-sub003/internal/service"
	"github.com/Greggwolin/landscape-sub003/internal/waterfall"
)

// WaterfallHandler handles HTTP requests for waterfall calculation endpoints.
type WaterfallHandler struct {
	waterfallService    *service.WaterfallService
	materializedService *service.MaterializedService
}

// NewWaterfallHandler creates a new WaterfallHandler with the provided service dependencies.
func NewWaterfallHandler(
	waterfallService *service.WaterfallService,
	materializedService *service.MaterializedService,
) *WaterfallHandler {
	return &WaterfallHandler{
		waterfallService:    waterfallService,
		materializedService: materializedService,
	}
}

// TierAmountResponse pairs the LP and GP amounts for one tier.
type TierAmountResponse struct {
	LP float64 `json:"lp"`
	GP float64 `json:"gp"`
}

// WaterfallPeriodResponse is the per-period slice of a waterfall calculation.
type WaterfallPeriodResponse struct {
	PeriodID              int                  `json:"periodId"`
	Date                  string               `json:"date"`
	NetCashFlow           float64              `json:"netCashFlow"`
	CumulativeCashFlow    float64              `json:"cumulativeCashFlow"`
	LPContribution        float64              `json:"lpContribution"`
	GPContribution        float64              `json:"gpContribution"`
	TierDistributions     []TierAmountResponse `json:"tierDistributions"`
	LPIRR                 *float64             `json:"lpIrr,omitempty"`
	GPIRR                 *float64             `json:"gpIrr,omitempty"`
	LPEquityMultiple      float64              `json:"lpEquityMultiple"`
	GPEquityMultiple      float64              `json:"gpEquityMultiple"`
	UnpaidPreferredReturn float64              `json:"unpaidPreferredReturn"`
	UnpaidHurdleInterest  float64              `json:"unpaidHurdleInterest"`
}

// BreakdownResponse categorizes a partner's lifetime distributions.
type BreakdownResponse struct {
	ReturnOfCapital float64 `json:"returnOfCapital"`
	PreferredReturn float64 `json:"preferredReturn"`
	ExcessCashFlow  float64 `json:"excessCashFlow"`
	Promote         float64 `json:"promote"`
}

// PartnerSummaryResponse aggregates one partner's lifetime results.
type PartnerSummaryResponse struct {
	PartnerType        string            `json:"partnerType"`
	TotalContributions float64           `json:"totalContributions"`
	TotalDistributions float64           `json:"totalDistributions"`
	TotalProfit        float64           `json:"totalProfit"`
	EquityMultiple     float64           `json:"equityMultiple"`
	IRR                *float64          `json:"irr,omitempty"`
	TierDistributions  []float64         `json:"tierDistributions"`
	Breakdown          BreakdownResponse `json:"breakdown"`
}

// ProjectSummaryResponse carries the blended project totals.
type ProjectSummaryResponse struct {
	TotalContributions float64  `json:"totalContributions"`
	TotalDistributions float64  `json:"totalDistributions"`
	TotalProfit        float64  `json:"totalProfit"`
	EquityMultiple     float64  `json:"equityMultiple"`
	IRR                *float64 `json:"irr,omitempty"`
}

// WaterfallResponse is the full calculation result for a project.
type WaterfallResponse struct {
	Periods        []WaterfallPeriodResponse `json:"periods"`
	LPSummary      PartnerSummaryResponse    `json:"lpSummary"`
	GPSummary      PartnerSummaryResponse    `json:"gpSummary"`
	ProjectSummary ProjectSummaryResponse    `json:"projectSummary"`
}

// Waterfall handles GET requests to run the waterfall calculation for a project.
// The calculation always runs over the project's full cash flow history.
//
// Endpoint: GET /api/project/{uuid}/waterfall
// Response: 200 OK with WaterfallResponse
// Error: 400 Bad Request if the waterfall configuration is invalid
// Error: 404 Not Found if project not found
// Error: 500 Internal Server Error if the calculation fails
func (h *WaterfallHandler) Waterfall(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	result, err := h.waterfallService.CalculateWaterfall(projectID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrProjectNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProjectNotFound.Error(), err.Error())
		case isConfigurationError(err):
			response.RespondError(w, http.StatusBadRequest, "invalid waterfall configuration", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to calculate waterfall", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, waterfallResponseFromResult(result))
}

// MaterializedPeriods handles GET requests for the stored per-period records.
// Serves pre-calculated results without running the engine.
//
// Endpoint: GET /api/project/{uuid}/waterfall/materialized
// Response: 200 OK with array of WaterfallPeriodMaterialized
// Error: 404 Not Found if project not found
// Error: 500 Internal Server Error if retrieval fails
func (h *WaterfallHandler) MaterializedPeriods(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	records, err := h.materializedService.GetMaterializedPeriods(projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProjectNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProjectNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve materialized periods", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, records)
}

// RefreshMaterialized handles POST requests to recalculate and store the
// materialized periods for one project.
//
// Endpoint: POST /api/project/{uuid}/waterfall/materialized/refresh
// Response: 200 OK with a status message
// Error: 400 Bad Request if the waterfall configuration is invalid
// Error: 404 Not Found if project not found
// Error: 500 Internal Server Error if the refresh fails
func (h *WaterfallHandler) RefreshMaterialized(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	if err := h.materializedService.RefreshProject(projectID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrProjectNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrProjectNotFound.Error(), err.Error())
		case isConfigurationError(err):
			response.RespondError(w, http.StatusBadRequest, "invalid waterfall configuration", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to refresh materialized periods", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// RefreshAllMaterialized handles POST requests to recalculate the materialized
// periods for every active project. The route is API-key protected.
//
// Endpoint: POST /api/system/materialized/refresh
// Response: 200 OK with a status message
// Error: 500 Internal Server Error if any project refresh fails
func (h *WaterfallHandler) RefreshAllMaterialized(w http.ResponseWriter, r *http.Request) {
	if err := h.materializedService.RefreshAllProjects(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh materialized periods", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// Configuration errors from the engine are the caller's to fix, so they map
// to 400 rather than 500.
func isConfigurationError(err error) bool {
	for _, target := range []error{
		apperrors.ErrInvalidTierCount,
		apperrors.ErrNonContiguousTiers,
		apperrors.ErrMissingHurdle,
		apperrors.ErrInvalidSplit,
		apperrors.ErrInvalidOwnership,
		apperrors.ErrInvalidHurdleMethod,
		apperrors.ErrInvalidReturnOfCapital,
		apperrors.ErrDuplicatePeriodID,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func waterfallResponseFromResult(result *waterfall.Result) WaterfallResponse {
	periods := make([]WaterfallPeriodResponse, len(result.Periods))
	for i, p := range result.Periods {
		tiers := make([]TierAmountResponse, len(p.TierDistributions))
		for j, tier := range p.TierDistributions {
			tiers[j] = TierAmountResponse{
				LP: tier.LP.InexactFloat64(),
				GP: tier.GP.InexactFloat64(),
			}
		}

		periods[i] = WaterfallPeriodResponse{
			PeriodID:              p.PeriodID,
			Date:                  p.Date.Format("2006-01-02"),
			NetCashFlow:           p.NetCashFlow.InexactFloat64(),
			CumulativeCashFlow:    p.CumulativeCashFlow.InexactFloat64(),
			LPContribution:        p.LPContribution.InexactFloat64(),
			GPContribution:        p.GPContribution.InexactFloat64(),
			TierDistributions:     tiers,
			LPIRR:                 floatPtr(p.LPIRR),
			GPIRR:                 floatPtr(p.GPIRR),
			LPEquityMultiple:      p.LPEquityMultiple.InexactFloat64(),
			GPEquityMultiple:      p.GPEquityMultiple.InexactFloat64(),
			UnpaidPreferredReturn: p.UnpaidPreferredReturn.InexactFloat64(),
			UnpaidHurdleInterest:  p.UnpaidHurdleInterest.InexactFloat64(),
		}
	}

	return WaterfallResponse{
		Periods:        periods,
		LPSummary:      partnerSummaryResponse(result.LPSummary),
		GPSummary:      partnerSummaryResponse(result.GPSummary),
		ProjectSummary: projectSummaryResponse(result.ProjectSummary),
	}
}

func partnerSummaryResponse(s waterfall.PartnerSummary) PartnerSummaryResponse {
	tiers := make([]float64, len(s.TierDistributions))
	for i, d := range s.TierDistributions {
		tiers[i] = d.InexactFloat64()
	}

	return PartnerSummaryResponse{
		PartnerType:        string(s.PartnerType),
		TotalContributions: s.TotalContributions.InexactFloat64(),
		TotalDistributions: s.TotalDistributions.InexactFloat64(),
		TotalProfit:        s.TotalProfit.InexactFloat64(),
		EquityMultiple:     s.EquityMultiple.InexactFloat64(),
		IRR:                floatPtr(s.IRR),
		TierDistributions:  tiers,
		Breakdown: BreakdownResponse{
			ReturnOfCapital: s.Breakdown.ReturnOfCapital.InexactFloat64(),
			PreferredReturn: s.Breakdown.PreferredReturn.InexactFloat64(),
			ExcessCashFlow:  s.Breakdown.ExcessCashFlow.InexactFloat64(),
			Promote:         s.Breakdown.Promote.InexactFloat64(),
		},
	}
}

func projectSummaryResponse(s waterfall.ProjectSummary) ProjectSummaryResponse {
	return ProjectSummaryResponse{
		TotalContributions: s.TotalContributions.InexactFloat64(),
		TotalDistributions: s.TotalDistributions.InexactFloat64(),
		TotalProfit:        s.TotalProfit.InexactFloat64(),
		EquityMultiple:     s.EquityMultiple.InexactFloat64(),
		IRR:                floatPtr(s.IRR),
	}
}

func floatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
